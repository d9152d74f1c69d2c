package memberrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sahakari-society/members-console/internal/domain"
	"github.com/sahakari-society/members-console/internal/ports/out/memberrepo"
)

// Repo is a read-only Postgres implementation of memberrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const selectMembers = `
	SELECT
		id,
		name,
		email,
		phone,
		avatar,
		join_date,
		last_active,
		status,
		savings_paise,
		loans_paise
	FROM members
`

func (r *Repo) List(ctx context.Context) ([]domain.Member, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, selectMembers+` ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Member, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.MemberID) (domain.Member, error) {
	if r.pool == nil {
		return domain.Member{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, selectMembers+` WHERE id = $1`, string(id))
	return scanMember(row)
}

func scanMember(row interface {
	Scan(dest ...any) error
}) (domain.Member, error) {
	var (
		id           string
		name         string
		email        string
		phone        string
		avatar       string
		joinDate     time.Time
		lastActive   time.Time
		status       string
		savingsPaise int64
		loansPaise   int64
	)
	if err := row.Scan(
		&id,
		&name,
		&email,
		&phone,
		&avatar,
		&joinDate,
		&lastActive,
		&status,
		&savingsPaise,
		&loansPaise,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Member{}, memberrepo.ErrNotFound
		}
		return domain.Member{}, err
	}
	st, err := domain.ParseStatus(status)
	if err != nil {
		return domain.Member{}, fmt.Errorf("member %s: %w", id, err)
	}
	return domain.Member{
		ID:         domain.MemberID(id),
		Name:       name,
		Email:      email,
		Phone:      phone,
		Avatar:     avatar,
		JoinDate:   dateOnly(joinDate),
		LastActive: dateOnly(lastActive),
		Status:     st,
		Savings:    domain.Money{Paise: savingsPaise},
		Loans:      domain.Money{Paise: loansPaise},
	}, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return domain.Date(y, m, d)
}

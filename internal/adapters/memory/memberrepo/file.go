package memberrepo

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sahakari-society/members-console/internal/domain"
)

// fileRecord is the on-disk roster shape. Amounts are display strings such as
// "₹ 1,25,000" so rosters exported from the old console load unchanged.
type fileRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Avatar     string `json:"avatar"`
	JoinDate   string `json:"joinDate"`
	LastActive string `json:"lastActive"`
	Status     string `json:"status"`
	Savings    string `json:"savings"`
	Loans      string `json:"loans"`
}

// LoadFile reads a JSON array of roster records from path.
func LoadFile(path string) (*Repo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}
	var recs []fileRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("decode roster file: %w", err)
	}
	ms := make([]domain.Member, 0, len(recs))
	for i, rec := range recs {
		m, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("roster record %d: %w", i, err)
		}
		ms = append(ms, m)
	}
	return NewRepo(ms)
}

func (rec fileRecord) toDomain() (domain.Member, error) {
	status, err := domain.ParseStatus(rec.Status)
	if err != nil {
		return domain.Member{}, fmt.Errorf("status %q: %w", rec.Status, err)
	}
	joined, err := parseDate(rec.JoinDate)
	if err != nil {
		return domain.Member{}, fmt.Errorf("joinDate: %w", err)
	}
	lastActive, err := parseDate(rec.LastActive)
	if err != nil {
		return domain.Member{}, fmt.Errorf("lastActive: %w", err)
	}
	savings, err := domain.ParseINR(rec.Savings)
	if err != nil {
		return domain.Member{}, fmt.Errorf("savings %q: %w", rec.Savings, err)
	}
	loans, err := domain.ParseINR(rec.Loans)
	if err != nil {
		return domain.Member{}, fmt.Errorf("loans %q: %w", rec.Loans, err)
	}
	return domain.Member{
		ID:         domain.MemberID(rec.ID),
		Name:       domain.NormalizeHumanName(rec.Name),
		Email:      rec.Email,
		Phone:      rec.Phone,
		Avatar:     rec.Avatar,
		JoinDate:   joined,
		LastActive: lastActive,
		Status:     status,
		Savings:    savings,
		Loans:      loans,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}

package memberrepo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sahakari-society/members-console/internal/domain"
	"github.com/sahakari-society/members-console/internal/ports/out/memberrepo"
)

// Repo is an in-memory implementation of memberrepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byID    map[domain.MemberID]domain.Member
	ordered []domain.MemberID
}

// NewRepo builds a read-only roster from seed. Every record must validate and
// IDs must be unique.
func NewRepo(seed []domain.Member) (*Repo, error) {
	r := &Repo{
		byID:    make(map[domain.MemberID]domain.Member, len(seed)),
		ordered: make([]domain.MemberID, 0, len(seed)),
	}
	for _, m := range seed {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, ok := r.byID[m.ID]; ok {
			return nil, fmt.Errorf("%w: %s", memberrepo.ErrDuplicateID, m.ID)
		}
		r.byID[m.ID] = m
		r.ordered = append(r.ordered, m.ID)
	}
	sort.Slice(r.ordered, func(i, j int) bool { return r.ordered[i] < r.ordered[j] })
	return r, nil
}

// NewSampleRepo returns a repo holding SampleMembers.
func NewSampleRepo() *Repo {
	r, err := NewRepo(SampleMembers())
	if err != nil {
		panic(fmt.Sprintf("sample roster is invalid: %v", err))
	}
	return r
}

func (r *Repo) List(ctx context.Context) ([]domain.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Member, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.MemberID) (domain.Member, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byID[id]
	if !ok {
		return domain.Member{}, memberrepo.ErrNotFound
	}
	return m, nil
}

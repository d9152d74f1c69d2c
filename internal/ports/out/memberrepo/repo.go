package memberrepo

import (
	"context"

	"github.com/sahakari-society/members-console/internal/domain"
)

// Repository provides read access to the member roster.
//
// The roster is a snapshot fixed at construction; there are no write methods.
// List returns records ordered by ID ascending. Returned values are copies.
type Repository interface {
	List(ctx context.Context) ([]domain.Member, error)
	GetByID(ctx context.Context, id domain.MemberID) (domain.Member, error)
}

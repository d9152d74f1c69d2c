package members

import (
	"time"

	"github.com/sahakari-society/members-console/internal/domain"
	"github.com/sahakari-society/members-console/internal/ports/out/commandsink"
)

// Optional is a tri-state field used to distinguish:
// - unspecified (omitted)
// - specified as null
// - specified with a value
type Optional[T any] struct {
	specified bool
	isNull    bool
	value     T
}

func Unspecified[T any]() Optional[T] { return Optional[T]{} }
func Null[T any]() Optional[T]        { return Optional[T]{specified: true, isNull: true} }
func Some[T any](v T) Optional[T]     { return Optional[T]{specified: true, value: v} }

func (o Optional[T]) IsSpecified() bool { return o.specified }
func (o Optional[T]) IsNull() bool      { return o.specified && o.isNull }
func (o Optional[T]) Value() T          { return o.value }

// DirectoryQuery asks for one page of the filtered roster. Status is the raw
// filter text; "" and "All" select every status.
type DirectoryQuery struct {
	Query    string
	Status   string
	Page     int
	PageSize int
}

// DirectoryPage is one page of the filtered roster.
type DirectoryPage struct {
	Query    string
	Status   domain.StatusFilter
	Page     int
	PageSize int

	// Matched is the number of members passing the filter, before paging.
	Matched   int
	PageCount int
	Members   []domain.Member
}

// UpdateViewInput patches the interactive view. A null field resets it to
// its default. Changing PageSize moves the view back to the first page.
type UpdateViewInput struct {
	Query    Optional[string]
	Status   Optional[string]
	Page     Optional[int]
	PageSize Optional[int]
}

type AddMemberInput struct {
	Name    string
	Email   string
	Phone   string
	Aadhaar string
	Address string
}

// EditMemberInput fields cannot be null. At least one must be specified.
type EditMemberInput struct {
	Name  Optional[string]
	Email Optional[string]
	Phone Optional[string]
}

type SuspendMemberInput struct {
	Reason string
}

type SendEmailInput struct {
	Subject string
	Body    string
}

// Receipt acknowledges a dispatched command. Applied is always false: the
// console never changes the roster itself.
type Receipt struct {
	CommandID domain.CommandID
	Kind      commandsink.Kind
	MemberID  domain.MemberID
	IssuedAt  time.Time
	Applied   bool
}

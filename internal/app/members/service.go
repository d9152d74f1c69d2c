package members

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/sahakari-society/members-console/internal/domain"
	clockport "github.com/sahakari-society/members-console/internal/ports/out/clock"
	"github.com/sahakari-society/members-console/internal/ports/out/commandsink"
	"github.com/sahakari-society/members-console/internal/ports/out/memberrepo"
)

type Service struct {
	repo memberrepo.Repository
	sink commandsink.Sink
	clk  clockport.Clock
	log  *slog.Logger

	newCommandID func() domain.CommandID

	mu   sync.Mutex
	view domain.ViewState
}

func NewService(repo memberrepo.Repository, sink commandsink.Sink, clk clockport.Clock, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo: repo,
		sink: sink,
		clk:  clk,
		log:  logger.With("component", "members"),
		newCommandID: func() domain.CommandID {
			return domain.CommandID(uuid.NewString())
		},
		view: domain.NewViewState(),
	}
}

// SetNewCommandIDForTest overrides command ID generation for deterministic tests.
// It should not be used in production code.
func (s *Service) SetNewCommandIDForTest(fn func() domain.CommandID) {
	if fn != nil {
		s.newCommandID = fn
	}
}

// Directory filters the roster and returns the requested page. It does not
// touch the interactive view.
func (s *Service) Directory(ctx context.Context, q DirectoryQuery) (DirectoryPage, error) {
	status, err := parseStatusFilter(q.Status)
	if err != nil {
		return DirectoryPage{}, err
	}
	if q.PageSize < 1 {
		return DirectoryPage{}, validationError("invalid pageSize", "pageSize", "must be a positive integer")
	}
	if q.Page < 0 {
		return DirectoryPage{}, validationError("invalid page", "page", "must be non-negative")
	}
	return s.page(ctx, domain.ViewState{Query: q.Query, Status: status, Page: q.Page, PageSize: q.PageSize})
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	ms, err := s.repo.List(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.ComputeStats(ms), nil
}

func (s *Service) GetMember(ctx context.Context, id domain.MemberID) (domain.Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return domain.Member{}, notFoundError()
		}
		return domain.Member{}, err
	}
	return m, nil
}

// View returns the current page of the interactive view.
func (s *Service) View(ctx context.Context) (DirectoryPage, error) {
	s.mu.Lock()
	v := s.view
	s.mu.Unlock()
	return s.page(ctx, v)
}

// UpdateView applies a patch to the interactive view and returns the
// resulting page. The patch is all-or-nothing.
func (s *Service) UpdateView(ctx context.Context, in UpdateViewInput) (DirectoryPage, error) {
	s.mu.Lock()
	next := s.view
	def := domain.NewViewState()

	if in.Query.IsSpecified() {
		next.Query = def.Query
		if !in.Query.IsNull() {
			next.Query = in.Query.Value()
		}
	}
	if in.Status.IsSpecified() {
		next.Status = def.Status
		if !in.Status.IsNull() {
			st, err := parseStatusFilter(in.Status.Value())
			if err != nil {
				s.mu.Unlock()
				return DirectoryPage{}, err
			}
			next.Status = st
		}
	}
	if in.PageSize.IsSpecified() {
		size := def.PageSize
		if !in.PageSize.IsNull() {
			size = in.PageSize.Value()
		}
		if err := next.SetPageSize(size); err != nil {
			s.mu.Unlock()
			return DirectoryPage{}, validationError("invalid pageSize", "pageSize", err.Error())
		}
	}
	if in.Page.IsSpecified() {
		page := def.Page
		if !in.Page.IsNull() {
			page = in.Page.Value()
		}
		if err := next.SetPage(page); err != nil {
			s.mu.Unlock()
			return DirectoryPage{}, validationError("invalid page", "page", err.Error())
		}
	}

	s.view = next
	s.mu.Unlock()
	return s.page(ctx, next)
}

func (s *Service) page(ctx context.Context, v domain.ViewState) (DirectoryPage, error) {
	ms, err := s.repo.List(ctx)
	if err != nil {
		return DirectoryPage{}, err
	}
	matched := domain.FilterMembers(ms, v.Filter())
	return DirectoryPage{
		Query:     v.Query,
		Status:    v.Status,
		Page:      v.Page,
		PageSize:  v.PageSize,
		Matched:   len(matched),
		PageCount: domain.PageCount(len(matched), v.PageSize),
		Members:   domain.Paginate(matched, v.Page, v.PageSize),
	}, nil
}

func (s *Service) AddMember(ctx context.Context, operator string, in AddMemberInput) (Receipt, error) {
	name := domain.NormalizeHumanName(in.Name)
	if name == "" {
		return Receipt{}, validationError("invalid name", "name", "must be non-empty")
	}
	email := strings.TrimSpace(in.Email)
	if err := validateEmail(email); err != nil {
		return Receipt{}, validationError("invalid email", "email", err.Error())
	}
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return Receipt{}, validationError("invalid phone", "phone", "must be non-empty")
	}
	aadhaar := strings.Join(strings.Fields(in.Aadhaar), "")
	if aadhaar != "" && !isAadhaar(aadhaar) {
		return Receipt{}, validationError("invalid aadhaar", "aadhaar", "must be 12 digits")
	}

	return s.dispatch(ctx, operator, commandsink.KindAddMember, "", commandsink.AddMemberPayload{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Aadhaar: aadhaar,
		Address: strings.TrimSpace(in.Address),
	})
}

func (s *Service) EditMember(ctx context.Context, operator string, id domain.MemberID, in EditMemberInput) (Receipt, error) {
	if _, err := s.GetMember(ctx, id); err != nil {
		return Receipt{}, err
	}
	if !in.Name.IsSpecified() && !in.Email.IsSpecified() && !in.Phone.IsSpecified() {
		return Receipt{}, &Error{
			Status:  422,
			Code:    CodeValidation,
			Message: "no changes requested",
			Details: map[string]any{"body": "at least one of name, email, phone is required"},
		}
	}

	var p commandsink.EditMemberPayload
	if in.Name.IsSpecified() {
		if in.Name.IsNull() {
			return Receipt{}, validationError("invalid name", "name", "cannot be null")
		}
		name := domain.NormalizeHumanName(in.Name.Value())
		if name == "" {
			return Receipt{}, validationError("invalid name", "name", "must be non-empty")
		}
		p.Name = &name
	}
	if in.Email.IsSpecified() {
		if in.Email.IsNull() {
			return Receipt{}, validationError("invalid email", "email", "cannot be null")
		}
		email := strings.TrimSpace(in.Email.Value())
		if err := validateEmail(email); err != nil {
			return Receipt{}, validationError("invalid email", "email", err.Error())
		}
		p.Email = &email
	}
	if in.Phone.IsSpecified() {
		if in.Phone.IsNull() {
			return Receipt{}, validationError("invalid phone", "phone", "cannot be null")
		}
		phone := strings.TrimSpace(in.Phone.Value())
		if phone == "" {
			return Receipt{}, validationError("invalid phone", "phone", "must be non-empty")
		}
		p.Phone = &phone
	}

	return s.dispatch(ctx, operator, commandsink.KindEditMember, id, p)
}

func (s *Service) SuspendMember(ctx context.Context, operator string, id domain.MemberID, in SuspendMemberInput) (Receipt, error) {
	if _, err := s.GetMember(ctx, id); err != nil {
		return Receipt{}, err
	}
	return s.dispatch(ctx, operator, commandsink.KindSuspendMember, id, commandsink.SuspendMemberPayload{
		Reason: strings.TrimSpace(in.Reason),
	})
}

// SendEmail raises an email intent addressed to the member's roster email.
func (s *Service) SendEmail(ctx context.Context, operator string, id domain.MemberID, in SendEmailInput) (Receipt, error) {
	m, err := s.GetMember(ctx, id)
	if err != nil {
		return Receipt{}, err
	}
	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		return Receipt{}, validationError("invalid subject", "subject", "must be non-empty")
	}
	return s.dispatch(ctx, operator, commandsink.KindSendEmail, id, commandsink.SendEmailPayload{
		To:      m.Email,
		Subject: subject,
		Body:    in.Body,
	})
}

func (s *Service) dispatch(ctx context.Context, operator string, kind commandsink.Kind, id domain.MemberID, payload any) (Receipt, error) {
	cmd := commandsink.Command{
		ID:       s.newCommandID(),
		Kind:     kind,
		MemberID: id,
		Operator: operator,
		IssuedAt: s.clk.Now(),
		Payload:  payload,
	}
	if err := s.sink.Dispatch(ctx, cmd); err != nil {
		return Receipt{}, fmt.Errorf("dispatch %s: %w", kind, err)
	}
	s.log.InfoContext(ctx, "command dispatched",
		"command_id", string(cmd.ID),
		"kind", string(kind),
		"member_id", string(id),
		"operator", operator,
	)
	return Receipt{
		CommandID: cmd.ID,
		Kind:      kind,
		MemberID:  id,
		IssuedAt:  cmd.IssuedAt,
		Applied:   false,
	}, nil
}

func parseStatusFilter(v string) (domain.StatusFilter, error) {
	st, err := domain.ParseStatusFilter(v)
	if err != nil {
		return "", validationError("invalid status", "status", "must be one of All, Active, Inactive, Suspended")
	}
	return st, nil
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("must be non-empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return errors.New("must be a valid email address")
	}
	// Ensure no "Name <email@x>" format sneaks in.
	if addr.Address != email {
		return errors.New("must be a bare email address")
	}
	return nil
}

func isAadhaar(s string) bool {
	if len(s) != 12 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

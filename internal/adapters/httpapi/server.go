package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sahakari-society/members-console/internal/app/members"
	"github.com/sahakari-society/members-console/internal/app/session"
	"github.com/sahakari-society/members-console/internal/domain"
	"github.com/sahakari-society/members-console/internal/ports/out/idempotency"
)

const maxBodyBytes = 64 << 10

type Server struct {
	Members *members.Service
	Gate    *session.Gate
	Idem    idempotency.Store
	Log     *slog.Logger
}

func NewServer(membersSvc *members.Service, gate *session.Gate, idem idempotency.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{Members: membersSvc, Gate: gate, Idem: idem, Log: logger}
}

func (s *Server) LogIn(w http.ResponseWriter, r *http.Request) {
	var body LoginRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	op, err := s.Gate.LogIn(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, session.ErrMissingCredentials) {
			writeError(w, r, http.StatusUnprocessableEntity, members.CodeValidation, "invalid login", map[string]any{"credentials": err.Error()})
			return
		}
		writeAppError(w, r, s.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{LoggedIn: true, Operator: op})
}

func (s *Server) LogOut(w http.ResponseWriter, _ *http.Request) {
	s.Gate.LogOut()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) ListMembers(w http.ResponseWriter, r *http.Request) {
	q, err := bindDirectoryQuery(r)
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	page, err := s.Members.Directory(r.Context(), q)
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, memberPageFromApp(page))
}

func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.Members.Stats(r.Context())
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, statsFromDomain(st))
}

func (s *Server) GetView(w http.ResponseWriter, r *http.Request) {
	page, err := s.Members.View(r.Context())
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, memberPageFromApp(page))
}

func (s *Server) UpdateView(w http.ResponseWriter, r *http.Request) {
	var body UpdateViewRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	page, err := s.Members.UpdateView(r.Context(), members.UpdateViewInput{
		Query:    optionalFromNullable(body.Query),
		Status:   optionalFromNullable(body.Status),
		Page:     optionalFromNullable(body.Page),
		PageSize: optionalFromNullable(body.PageSize),
	})
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, memberPageFromApp(page))
}

func (s *Server) GetMember(w http.ResponseWriter, r *http.Request) {
	m, err := s.Members.GetMember(r.Context(), memberIDParam(r))
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, MemberResponse{Member: memberFromDomain(m)})
}

func (s *Server) AddMember(w http.ResponseWriter, r *http.Request) {
	var body AddMemberRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	s.runCommand(w, r, "/members", body, func(op string) (members.Receipt, error) {
		return s.Members.AddMember(r.Context(), op, members.AddMemberInput{
			Name:    body.Name,
			Email:   body.Email,
			Phone:   body.Phone,
			Aadhaar: body.Aadhaar,
			Address: body.Address,
		})
	})
}

func (s *Server) EditMember(w http.ResponseWriter, r *http.Request) {
	var body EditMemberRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	id := memberIDParam(r)
	s.runCommand(w, r, "/members/{memberId}", body, func(op string) (members.Receipt, error) {
		return s.Members.EditMember(r.Context(), op, id, members.EditMemberInput{
			Name:  optionalFromNullable(body.Name),
			Email: optionalFromNullable(body.Email),
			Phone: optionalFromNullable(body.Phone),
		})
	})
}

func (s *Server) SuspendMember(w http.ResponseWriter, r *http.Request) {
	var body SuspendMemberRequest
	if err := decodeBody(r, &body, true); err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	id := memberIDParam(r)
	s.runCommand(w, r, "/members/{memberId}/suspend", body, func(op string) (members.Receipt, error) {
		return s.Members.SuspendMember(r.Context(), op, id, members.SuspendMemberInput{Reason: body.Reason})
	})
}

func (s *Server) SendEmail(w http.ResponseWriter, r *http.Request) {
	var body SendEmailRequest
	if err := decodeBody(r, &body, false); err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	id := memberIDParam(r)
	s.runCommand(w, r, "/members/{memberId}/email", body, func(op string) (members.Receipt, error) {
		return s.Members.SendEmail(r.Context(), op, id, members.SendEmailInput{Subject: body.Subject, Body: body.Body})
	})
}

func memberIDParam(r *http.Request) domain.MemberID {
	return domain.MemberID(chi.URLParam(r, "memberId"))
}

// decodeBody reads a JSON object into dst, rejecting unknown fields and
// trailing data. With allowEmpty, an empty body leaves dst at its zero value.
func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return err
	}
	if len(raw) > maxBodyBytes {
		return bodyError("request body too large")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if allowEmpty {
			return nil
		}
		return bodyError("missing request body")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return bodyError("invalid JSON: " + err.Error())
	}
	if dec.More() {
		return bodyError("unexpected data after JSON object")
	}
	return nil
}

func bodyError(reason string) *members.Error {
	return &members.Error{
		Status:  http.StatusUnprocessableEntity,
		Code:    members.CodeValidation,
		Message: "invalid request body",
		Details: map[string]any{"body": reason},
	}
}

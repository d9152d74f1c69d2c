package commandsink

import (
	"context"
	"time"

	"github.com/sahakari-society/members-console/internal/domain"
)

// Kind names a console command intent.
type Kind string

const (
	KindAddMember     Kind = "AddMember"
	KindEditMember    Kind = "EditMember"
	KindSuspendMember Kind = "SuspendMember"
	KindSendEmail     Kind = "SendEmail"
)

// Command is an intent raised from the console. Dispatching a command never
// changes the roster; the sink hands it to whatever backend is listening.
type Command struct {
	ID       domain.CommandID
	Kind     Kind
	MemberID domain.MemberID // empty for AddMember
	Operator string
	IssuedAt time.Time

	// Payload is one of the *Payload types below.
	Payload any
}

type AddMemberPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Aadhaar string `json:"aadhaar,omitempty"`
	Address string `json:"address,omitempty"`
}

// EditMemberPayload carries only the fields the operator changed.
type EditMemberPayload struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type SuspendMemberPayload struct {
	Reason string `json:"reason,omitempty"`
}

type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sink accepts dispatched commands.
type Sink interface {
	Dispatch(ctx context.Context, cmd Command) error
}

package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Member is one row of society membership data.
//
// Members are immutable once the roster is loaded; console actions travel as
// command intents and never write back to a Member.
type Member struct {
	ID    MemberID
	Name  string
	Email string
	Phone string

	// Avatar holds display initials. Empty means derive from Name.
	Avatar string

	JoinDate   time.Time
	LastActive time.Time

	Status Status

	Savings Money
	Loans   Money
}

// Initials returns the avatar initials for the member.
func (m Member) Initials() string {
	if m.Avatar != "" {
		return m.Avatar
	}
	return Initials(m.Name)
}

// HasActiveLoan reports whether the member carries a non-zero loan balance.
func (m Member) HasActiveLoan() bool {
	return !m.Loans.IsZero()
}

// LoanTone is the presentation tone for the member's loan cell.
func (m Member) LoanTone() string {
	if m.HasActiveLoan() {
		return "warning.main"
	}
	return "text.secondary"
}

// Validate checks the record-level invariants of a roster entry.
func (m Member) Validate() error {
	if strings.TrimSpace(string(m.ID)) == "" {
		return errors.New("member id must be non-empty")
	}
	if !m.Status.Valid() {
		return fmt.Errorf("member %s: %w", m.ID, ErrInvalidStatus)
	}
	if m.Savings.IsNegative() || m.Loans.IsNegative() {
		return fmt.Errorf("member %s: %w", m.ID, ErrInvalidAmount)
	}
	return nil
}

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

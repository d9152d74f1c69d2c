package domain

import (
	"errors"
	"strings"
)

// Status is the membership standing of a member. It is a closed set.
type Status string

const (
	StatusActive    Status = "Active"
	StatusInactive  Status = "Inactive"
	StatusSuspended Status = "Suspended"
)

var ErrInvalidStatus = errors.New("invalid member status")

// Statuses lists every valid status in display order.
func Statuses() []Status {
	return []Status{StatusActive, StatusInactive, StatusSuspended}
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	default:
		return false
	}
}

func (s Status) String() string { return string(s) }

// ParseStatus accepts a status name case-insensitively.
func ParseStatus(v string) (Status, error) {
	for _, s := range Statuses() {
		if strings.EqualFold(strings.TrimSpace(v), string(s)) {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// StatusStyle is the chip presentation associated with a status.
type StatusStyle struct {
	Background string
	Foreground string
}

var statusStyles = map[Status]StatusStyle{
	StatusActive:    {Background: "linear-gradient(135deg, #4caf50, #45a049)", Foreground: "white"},
	StatusInactive:  {Background: "linear-gradient(135deg, #ff9800, #f57c00)", Foreground: "white"},
	StatusSuspended: {Background: "linear-gradient(135deg, #f44336, #d32f2f)", Foreground: "white"},
}

// Style returns the chip style for s. Unknown statuses get the zero style.
func (s Status) Style() StatusStyle {
	return statusStyles[s]
}

// StatusFilter selects records by status. AllStatuses is the wildcard.
type StatusFilter string

const AllStatuses StatusFilter = "All"

// ParseStatusFilter maps "", "all" (any case) to AllStatuses and anything else
// to a single status.
func ParseStatusFilter(v string) (StatusFilter, error) {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, string(AllStatuses)) {
		return AllStatuses, nil
	}
	s, err := ParseStatus(v)
	if err != nil {
		return "", err
	}
	return StatusFilter(s), nil
}

// Only returns the filter that matches exactly s.
func Only(s Status) StatusFilter { return StatusFilter(s) }

// Admits reports whether a record with status s passes the filter.
// The zero StatusFilter behaves like AllStatuses.
func (f StatusFilter) Admits(s Status) bool {
	return f == AllStatuses || f == "" || Status(f) == s
}

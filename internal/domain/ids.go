package domain

// MemberID is the society-issued identifier of a member record (e.g. "M001").
type MemberID string

// CommandID identifies a dispatched command intent.
type CommandID string

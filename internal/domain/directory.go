package domain

import "strings"

// Filter is the member list search: a free-text query plus a status filter.
type Filter struct {
	Query  string
	Status StatusFilter
}

// Matches reports whether m passes both the status filter and the query.
//
// The query matches name and email case-insensitively, and phone as typed.
// An empty query matches everything. The query is not trimmed.
func (f Filter) Matches(m Member) bool {
	if !f.Status.Admits(m.Status) {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(m.Name), q) ||
		strings.Contains(strings.ToLower(m.Email), q) ||
		strings.Contains(m.Phone, f.Query)
}

// FilterMembers returns the members matching f, preserving input order.
// The result never aliases ms.
func FilterMembers(ms []Member, f Filter) []Member {
	out := make([]Member, 0, len(ms))
	for _, m := range ms {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}

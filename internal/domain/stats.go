package domain

// Stats is the roster summary shown on the member statistics cards.
//
// ComputeStats is a full O(n) pass; nothing is maintained incrementally.
type Stats struct {
	TotalMembers  int
	ActiveMembers int
	TotalSavings  Money
	ActiveLoans   int
}

func ComputeStats(ms []Member) Stats {
	var st Stats
	st.TotalMembers = len(ms)
	for _, m := range ms {
		if m.Status == StatusActive {
			st.ActiveMembers++
		}
		st.TotalSavings = st.TotalSavings.Add(m.Savings)
		if m.HasActiveLoan() {
			st.ActiveLoans++
		}
	}
	return st
}

// ActiveShare is the percentage of members with Active status.
func (s Stats) ActiveShare() float64 { return percentOf(s.ActiveMembers, s.TotalMembers) }

// LoanShare is the percentage of members carrying a loan.
func (s Stats) LoanShare() float64 { return percentOf(s.ActiveLoans, s.TotalMembers) }

func percentOf(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

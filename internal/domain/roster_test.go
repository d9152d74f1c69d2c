package domain

func sampleRoster() []Member {
	return []Member{
		{ID: "M001", Name: "Ravi Kumar", Email: "ravi.kumar@email.com", Phone: "+91 98765 43210", Avatar: "RK",
			JoinDate: Date(2023, 1, 15), LastActive: Date(2024, 1, 15), Status: StatusActive,
			Savings: Rupees(125000), Loans: Rupees(250000)},
		{ID: "M002", Name: "Priya Sharma", Email: "priya.sharma@email.com", Phone: "+91 98765 43211", Avatar: "PS",
			JoinDate: Date(2023, 2, 20), LastActive: Date(2024, 1, 14), Status: StatusActive,
			Savings: Rupees(85000), Loans: Rupees(120000)},
		{ID: "M003", Name: "Amit Patel", Email: "amit.patel@email.com", Phone: "+91 98765 43212", Avatar: "AP",
			JoinDate: Date(2023, 3, 10), LastActive: Date(2023, 12, 1), Status: StatusInactive,
			Savings: Rupees(45000), Loans: Rupees(0)},
		{ID: "M004", Name: "Sneha Reddy", Email: "sneha.reddy@email.com", Phone: "+91 98765 43213", Avatar: "SR",
			JoinDate: Date(2023, 4, 5), LastActive: Date(2024, 1, 15), Status: StatusActive,
			Savings: Rupees(210000), Loans: Rupees(375000)},
		{ID: "M005", Name: "Vikram Singh", Email: "vikram.singh@email.com", Phone: "+91 98765 43214", Avatar: "VS",
			JoinDate: Date(2023, 5, 12), LastActive: Date(2023, 11, 20), Status: StatusSuspended,
			Savings: Rupees(15000), Loans: Rupees(85000)},
	}
}

func names(ms []Member) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name)
	}
	return out
}

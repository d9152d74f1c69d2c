package memberrepo

import "github.com/sahakari-society/members-console/internal/domain"

// SampleMembers is the demonstration roster the console ships with.
func SampleMembers() []domain.Member {
	return []domain.Member{
		{
			ID:         "M001",
			Name:       "Ravi Kumar",
			Email:      "ravi.kumar@email.com",
			Phone:      "+91 98765 43210",
			Avatar:     "RK",
			JoinDate:   domain.Date(2023, 1, 15),
			LastActive: domain.Date(2024, 1, 15),
			Status:     domain.StatusActive,
			Savings:    domain.Rupees(125000),
			Loans:      domain.Rupees(250000),
		},
		{
			ID:         "M002",
			Name:       "Priya Sharma",
			Email:      "priya.sharma@email.com",
			Phone:      "+91 98765 43211",
			Avatar:     "PS",
			JoinDate:   domain.Date(2023, 2, 20),
			LastActive: domain.Date(2024, 1, 14),
			Status:     domain.StatusActive,
			Savings:    domain.Rupees(85000),
			Loans:      domain.Rupees(120000),
		},
		{
			ID:         "M003",
			Name:       "Amit Patel",
			Email:      "amit.patel@email.com",
			Phone:      "+91 98765 43212",
			Avatar:     "AP",
			JoinDate:   domain.Date(2023, 3, 10),
			LastActive: domain.Date(2023, 12, 1),
			Status:     domain.StatusInactive,
			Savings:    domain.Rupees(45000),
			Loans:      domain.Rupees(0),
		},
		{
			ID:         "M004",
			Name:       "Sneha Reddy",
			Email:      "sneha.reddy@email.com",
			Phone:      "+91 98765 43213",
			Avatar:     "SR",
			JoinDate:   domain.Date(2023, 4, 5),
			LastActive: domain.Date(2024, 1, 15),
			Status:     domain.StatusActive,
			Savings:    domain.Rupees(210000),
			Loans:      domain.Rupees(375000),
		},
		{
			ID:         "M005",
			Name:       "Vikram Singh",
			Email:      "vikram.singh@email.com",
			Phone:      "+91 98765 43214",
			Avatar:     "VS",
			JoinDate:   domain.Date(2023, 5, 12),
			LastActive: domain.Date(2023, 11, 20),
			Status:     domain.StatusSuspended,
			Savings:    domain.Rupees(15000),
			Loans:      domain.Rupees(85000),
		},
	}
}

package httpapi

import (
	"time"

	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/sahakari-society/members-console/internal/app/members"
	"github.com/sahakari-society/members-console/internal/domain"
)

type ErrorResponse struct {
	Error struct {
		Code      string                            `json:"code"`
		Message   string                            `json:"message"`
		Details   nullable.Nullable[map[string]any] `json:"details,omitempty"`
		RequestId nullable.Nullable[string]         `json:"requestId,omitempty"`
	} `json:"error"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	LoggedIn bool   `json:"loggedIn"`
	Operator string `json:"operator"`
}

// Amount carries minor units for arithmetic and the display string for rendering.
type Amount struct {
	Paise   int64  `json:"paise"`
	Display string `json:"display"`
}

type StatusStyle struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

type Member struct {
	Id          string             `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	Avatar      string             `json:"avatar"`
	JoinDate    openapi_types.Date `json:"joinDate"`
	LastActive  openapi_types.Date `json:"lastActive"`
	Status      string             `json:"status"`
	StatusStyle StatusStyle        `json:"statusStyle"`
	Savings     Amount             `json:"savings"`
	Loans       Amount             `json:"loans"`
	LoanTone    string             `json:"loanTone"`
}

type MemberResponse struct {
	Member Member `json:"member"`
}

type MemberPage struct {
	Query           string   `json:"query"`
	Status          string   `json:"status"`
	Page            int      `json:"page"`
	PageSize        int      `json:"pageSize"`
	PageCount       int      `json:"pageCount"`
	Matched         int      `json:"matched"`
	PageSizeOptions []int    `json:"pageSizeOptions"`
	Members         []Member `json:"members"`
}

// StatsProgress holds the stats-card progress shares in percent. Savings has
// no defined share and is always null.
type StatsProgress struct {
	Total   float64                    `json:"total"`
	Active  float64                    `json:"active"`
	Savings nullable.Nullable[float64] `json:"savings"`
	Loans   float64                    `json:"loans"`
}

type StatsResponse struct {
	TotalMembers      int           `json:"totalMembers"`
	ActiveMembers     int           `json:"activeMembers"`
	TotalSavings      Amount        `json:"totalSavings"`
	TotalSavingsLakhs string        `json:"totalSavingsLakhs"`
	ActiveLoans       int           `json:"activeLoans"`
	Progress          StatsProgress `json:"progress"`
}

// UpdateViewRequest fields are tri-state: omitted keeps, null resets, a value sets.
type UpdateViewRequest struct {
	Query    nullable.Nullable[string] `json:"query,omitempty"`
	Status   nullable.Nullable[string] `json:"status,omitempty"`
	Page     nullable.Nullable[int]    `json:"page,omitempty"`
	PageSize nullable.Nullable[int]    `json:"pageSize,omitempty"`
}

type AddMemberRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Aadhaar string `json:"aadhaar,omitempty"`
	Address string `json:"address,omitempty"`
}

type EditMemberRequest struct {
	Name  nullable.Nullable[string] `json:"name,omitempty"`
	Email nullable.Nullable[string] `json:"email,omitempty"`
	Phone nullable.Nullable[string] `json:"phone,omitempty"`
}

type SuspendMemberRequest struct {
	Reason string `json:"reason,omitempty"`
}

type SendEmailRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type CommandReceipt struct {
	CommandId string    `json:"commandId"`
	Kind      string    `json:"kind"`
	MemberId  string    `json:"memberId,omitempty"`
	IssuedAt  time.Time `json:"issuedAt"`
	Applied   bool      `json:"applied"`
}

func amountFromDomain(m domain.Money) Amount {
	return Amount{Paise: m.Paise, Display: m.String()}
}

func memberFromDomain(m domain.Member) Member {
	st := m.Status.Style()
	return Member{
		Id:          string(m.ID),
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Avatar:      m.Initials(),
		JoinDate:    openapi_types.Date{Time: m.JoinDate},
		LastActive:  openapi_types.Date{Time: m.LastActive},
		Status:      m.Status.String(),
		StatusStyle: StatusStyle{Background: st.Background, Foreground: st.Foreground},
		Savings:     amountFromDomain(m.Savings),
		Loans:       amountFromDomain(m.Loans),
		LoanTone:    m.LoanTone(),
	}
}

func memberPageFromApp(p members.DirectoryPage) MemberPage {
	out := MemberPage{
		Query:           p.Query,
		Status:          string(p.Status),
		Page:            p.Page,
		PageSize:        p.PageSize,
		PageCount:       p.PageCount,
		Matched:         p.Matched,
		PageSizeOptions: append([]int(nil), domain.PageSizeOptions...),
		Members:         make([]Member, 0, len(p.Members)),
	}
	for _, m := range p.Members {
		out.Members = append(out.Members, memberFromDomain(m))
	}
	return out
}

func statsFromDomain(s domain.Stats) StatsResponse {
	return StatsResponse{
		TotalMembers:      s.TotalMembers,
		ActiveMembers:     s.ActiveMembers,
		TotalSavings:      amountFromDomain(s.TotalSavings),
		TotalSavingsLakhs: s.TotalSavings.LakhsString(),
		ActiveLoans:       s.ActiveLoans,
		Progress: StatsProgress{
			Total:   100,
			Active:  s.ActiveShare(),
			Savings: nullable.NewNullNullable[float64](),
			Loans:   s.LoanShare(),
		},
	}
}

func receiptFromApp(r members.Receipt) CommandReceipt {
	return CommandReceipt{
		CommandId: string(r.CommandID),
		Kind:      string(r.Kind),
		MemberId:  string(r.MemberID),
		IssuedAt:  r.IssuedAt,
		Applied:   r.Applied,
	}
}

func optionalFromNullable[T any](n nullable.Nullable[T]) members.Optional[T] {
	if !n.IsSpecified() {
		return members.Unspecified[T]()
	}
	if n.IsNull() {
		return members.Null[T]()
	}
	v, err := n.Get()
	if err != nil {
		return members.Unspecified[T]()
	}
	return members.Some(v)
}

package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	memclock "github.com/sahakari-society/members-console/internal/adapters/memory/clock"
	memcommandsink "github.com/sahakari-society/members-console/internal/adapters/memory/commandsink"
	memidempotency "github.com/sahakari-society/members-console/internal/adapters/memory/idempotency"
	memmemberrepo "github.com/sahakari-society/members-console/internal/adapters/memory/memberrepo"
	"github.com/sahakari-society/members-console/internal/app/members"
	"github.com/sahakari-society/members-console/internal/app/session"
	"github.com/sahakari-society/members-console/internal/ports/out/idempotency"
)

type testConsole struct {
	handler http.Handler
	gate    *session.Gate
	sink    *memcommandsink.Sink
}

func newTestConsole(t *testing.T) *testConsole {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := memclock.NewManualClock(time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC))
	sink := memcommandsink.NewSink()
	svc := members.NewService(memmemberrepo.NewSampleRepo(), sink, clk, logger)
	gate := session.NewGate()
	api := NewServer(svc, gate, memidempotency.NewStore(), logger)

	return &testConsole{
		handler: NewRouter(api, RouterOptions{Logger: logger}),
		gate:    gate,
		sink:    sink,
	}
}

func loggedInConsole(t *testing.T) *testConsole {
	t.Helper()
	c := newTestConsole(t)
	if _, err := c.gate.LogIn("clerk", "pw"); err != nil {
		t.Fatalf("LogIn: %v", err)
	}
	return c
}

func (c *testConsole) do(t *testing.T, method, path string, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, rr.Body.String())
	}
	return out
}

type errorBody struct {
	Error struct {
		Code      string         `json:"code"`
		Message   string         `json:"message"`
		Details   map[string]any `json:"details"`
		RequestId string         `json:"requestId"`
	} `json:"error"`
}

func requireError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) errorBody {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, status, rr.Body.String())
	}
	eb := decode[errorBody](t, rr)
	if eb.Error.Code != code {
		t.Fatalf("code=%q want=%q body=%s", eb.Error.Code, code, rr.Body.String())
	}
	return eb
}

func TestHealthz_Ungated(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)

	rr := c.do(t, http.MethodGet, "/healthz", "", nil)
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("status=%d body=%q", rr.Code, rr.Body.String())
	}
}

func TestGate_RequiresLogin(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)

	for _, path := range []string{"/members", "/members/stats", "/members/view", "/members/M001"} {
		rr := c.do(t, http.MethodGet, path, "", nil)
		eb := requireError(t, rr, http.StatusUnauthorized, members.CodeLoginRequired)
		if eb.Error.RequestId == "" {
			t.Fatalf("%s: expected requestId in error body", path)
		}
	}
}

func TestLoginLogout(t *testing.T) {
	t.Parallel()
	c := newTestConsole(t)

	rr := c.do(t, http.MethodPost, "/login", `{"username":"","password":"x"}`, nil)
	requireError(t, rr, http.StatusUnprocessableEntity, members.CodeValidation)

	rr = c.do(t, http.MethodPost, "/login", `{"username":"admin","password":"secret"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("login status=%d body=%s", rr.Code, rr.Body.String())
	}
	lr := decode[LoginResponse](t, rr)
	if !lr.LoggedIn || lr.Operator != "admin" {
		t.Fatalf("login=%+v", lr)
	}

	if rr := c.do(t, http.MethodGet, "/members", "", nil); rr.Code != http.StatusOK {
		t.Fatalf("members after login status=%d", rr.Code)
	}

	if rr := c.do(t, http.MethodPost, "/logout", "", nil); rr.Code != http.StatusNoContent {
		t.Fatalf("logout status=%d", rr.Code)
	}
	rr = c.do(t, http.MethodGet, "/members", "", nil)
	requireError(t, rr, http.StatusUnauthorized, members.CodeLoginRequired)
}

func TestListMembers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		query     string
		wantIDs   []string
		matched   int
		pageCount int
	}{
		{name: "defaults", query: "", wantIDs: []string{"M001", "M002", "M003", "M004", "M005"}, matched: 5, pageCount: 1},
		{name: "active", query: "?status=Active", wantIDs: []string{"M001", "M002", "M004"}, matched: 3, pageCount: 1},
		{name: "search", query: "?q=priya", wantIDs: []string{"M002"}, matched: 1, pageCount: 1},
		{name: "phone search", query: "?q=43214", wantIDs: []string{"M005"}, matched: 1, pageCount: 1},
		{name: "page two of three", query: "?pageSize=2&page=1", wantIDs: []string{"M003", "M004"}, matched: 5, pageCount: 3},
		{name: "last page", query: "?pageSize=2&page=2", wantIDs: []string{"M005"}, matched: 5, pageCount: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := loggedInConsole(t)

			rr := c.do(t, http.MethodGet, "/members"+tc.query, "", nil)
			if rr.Code != http.StatusOK {
				t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
			}
			page := decode[MemberPage](t, rr)
			if len(page.Members) != len(tc.wantIDs) {
				t.Fatalf("members=%d want %d body=%s", len(page.Members), len(tc.wantIDs), rr.Body.String())
			}
			for i, id := range tc.wantIDs {
				if page.Members[i].Id != id {
					t.Fatalf("members[%d]=%s want %s", i, page.Members[i].Id, id)
				}
			}
			if page.Matched != tc.matched || page.PageCount != tc.pageCount {
				t.Fatalf("matched=%d pageCount=%d", page.Matched, page.PageCount)
			}
		})
	}
}

func TestListMembers_RejectsBadParams(t *testing.T) {
	t.Parallel()

	for _, query := range []string{"?pageSize=0", "?pageSize=abc", "?page=-1", "?status=Dormant"} {
		t.Run(query, func(t *testing.T) {
			t.Parallel()
			c := loggedInConsole(t)
			rr := c.do(t, http.MethodGet, "/members"+query, "", nil)
			requireError(t, rr, http.StatusUnprocessableEntity, members.CodeValidation)
		})
	}
}

func TestGetMember_RendersPresentation(t *testing.T) {
	t.Parallel()
	c := loggedInConsole(t)

	rr := c.do(t, http.MethodGet, "/members/M001", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var raw struct {
		Member struct {
			JoinDate    string      `json:"joinDate"`
			Avatar      string      `json:"avatar"`
			Savings     Amount      `json:"savings"`
			Loans       Amount      `json:"loans"`
			LoanTone    string      `json:"loanTone"`
			StatusStyle StatusStyle `json:"statusStyle"`
		} `json:"member"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	m := raw.Member
	if m.JoinDate != "2023-01-15" || m.Avatar != "RK" {
		t.Fatalf("member=%+v", m)
	}
	if m.Savings.Display != "₹ 1,25,000" || m.Savings.Paise != 12500000 || m.Loans.Display != "₹ 2,50,000" {
		t.Fatalf("amounts=%+v/%+v", m.Savings, m.Loans)
	}
	if m.LoanTone != "warning.main" || m.StatusStyle.Foreground != "white" || !strings.Contains(m.StatusStyle.Background, "#4caf50") {
		t.Fatalf("presentation=%+v", m)
	}

	rr = c.do(t, http.MethodGet, "/members/M999", "", nil)
	requireError(t, rr, http.StatusNotFound, members.CodeNotFound)
}

func TestGetStats(t *testing.T) {
	t.Parallel()
	c := loggedInConsole(t)

	rr := c.do(t, http.MethodGet, "/members/stats", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	var got struct {
		TotalMembers      int    `json:"totalMembers"`
		ActiveMembers     int    `json:"activeMembers"`
		ActiveLoans       int    `json:"activeLoans"`
		TotalSavings      Amount `json:"totalSavings"`
		TotalSavingsLakhs string `json:"totalSavingsLakhs"`
		Progress          struct {
			Total   float64  `json:"total"`
			Active  float64  `json:"active"`
			Savings *float64 `json:"savings"`
			Loans   float64  `json:"loans"`
		} `json:"progress"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.TotalMembers != 5 || got.ActiveMembers != 3 || got.ActiveLoans != 4 {
		t.Fatalf("stats=%+v", got)
	}
	if got.TotalSavings.Display != "₹ 4,80,000" || got.TotalSavingsLakhs != "₹4.8L" {
		t.Fatalf("savings=%+v lakhs=%q", got.TotalSavings, got.TotalSavingsLakhs)
	}
	if got.Progress.Total != 100 || got.Progress.Active != 60 || got.Progress.Loans != 80 || got.Progress.Savings != nil {
		t.Fatalf("progress=%+v", got.Progress)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte(`"savings":null`)) {
		t.Fatalf("savings progress should be explicit null: %s", rr.Body.String())
	}
}

func TestView_PageSizeChangeResetsPage(t *testing.T) {
	t.Parallel()
	c := loggedInConsole(t)

	rr := c.do(t, http.MethodPatch, "/members/view", `{"pageSize":2}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	rr = c.do(t, http.MethodPatch, "/members/view", `{"page":2}`, nil)
	page := decode[MemberPage](t, rr)
	if page.Page != 2 || len(page.Members) != 1 || page.Members[0].Id != "M005" {
		t.Fatalf("page=%+v", page)
	}

	rr = c.do(t, http.MethodPatch, "/members/view", `{"pageSize":10}`, nil)
	page = decode[MemberPage](t, rr)
	if page.Page != 0 || page.PageSize != 10 || len(page.Members) != 5 {
		t.Fatalf("page=%+v", page)
	}

	rr = c.do(t, http.MethodGet, "/members/view", "", nil)
	page = decode[MemberPage](t, rr)
	if page.PageSize != 10 || len(page.PageSizeOptions) != 3 {
		t.Fatalf("view=%+v", page)
	}
}

func TestView_NullResetsAndBadBodyRejected(t *testing.T) {
	t.Parallel()
	c := loggedInConsole(t)

	rr := c.do(t, http.MethodPatch, "/members/view", `{"query":"sharma","status":"Active"}`, nil)
	page := decode[MemberPage](t, rr)
	if page.Matched != 1 || page.Status != "Active" {
		t.Fatalf("page=%+v", page)
	}

	rr = c.do(t, http.MethodPatch, "/members/view", `{"query":null,"status":null}`, nil)
	page = decode[MemberPage](t, rr)
	if page.Matched != 5 || page.Status != "All" || page.Query != "" {
		t.Fatalf("page=%+v", page)
	}

	rr = c.do(t, http.MethodPatch, "/members/view", `{"pageSize":0}`, nil)
	requireError(t, rr, http.StatusUnprocessableEntity, members.CodeValidation)

	rr = c.do(t, http.MethodPatch, "/members/view", `{"sort":"name"}`, nil)
	requireError(t, rr, http.StatusUnprocessableEntity, members.CodeValidation)
}

func TestAddMember_Accepted(t *testing.T) {
	t.Parallel()
	c := loggedInConsole(t)

	rr := c.do(t, http.MethodPost, "/members", `{"name":"Meera Nair","email":"meera@email.com","phone":"+91 98765 43215"}`, nil)
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	receipt := decode[CommandReceipt](t, rr)
	if receipt.Kind != "AddMember" || receipt.Applied || receipt.CommandId == "" {
		t.Fatalf("receipt=%+v", receipt)
	}
	cmds := c.sink.Commands()
	if len(cmds) != 1 || cmds[0].Operator != "clerk" {
		t.Fatalf("commands=%+v", cmds)
	}

	rr = c.do(t, http.MethodGet, "/members/stats", "", nil)
	if !strings.Contains(rr.Body.String(), `"totalMembers":5`) {
		t.Fatalf("roster changed: %s", rr.Body.String())
	}
}

func TestAddMember_Validation(t *testing.T) {
	t.Parallel()
	c := loggedInConsole(t)

	rr := c.do(t, http.MethodPost, "/members", `{"name":"Meera","email":"nope","phone":"1"}`, nil)
	eb := requireError(t, rr, http.StatusUnprocessableEntity, members.CodeValidation)
	if _, ok := eb.Error.Details["email"]; !ok {
		t.Fatalf("details=%v", eb.Error.Details)
	}

	rr = c.do(t, http.MethodPost, "/members", "", nil)
	requireError(t, rr, http.StatusUnprocessableEntity, members.CodeValidation)
}

func TestCommand_IdempotencyReplay(t *testing.T) {
	t.Parallel()
	c := loggedInConsole(t)
	hdr := map[string]string{idempotencyHeader: "k-1"}

	first := c.do(t, http.MethodPost, "/members/M002/suspend", `{"reason":"dues"}`, hdr)
	if first.Code != http.StatusAccepted {
		t.Fatalf("status=%d body=%s", first.Code, first.Body.String())
	}
	second := c.do(t, http.MethodPost, "/members/M002/suspend", `{"reason":"dues"}`, hdr)
	if second.Code != http.StatusAccepted || second.Body.String() != first.Body.String() {
		t.Fatalf("replay status=%d body=%s first=%s", second.Code, second.Body.String(), first.Body.String())
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatalf("expected replay header")
	}
	if n := len(c.sink.Commands()); n != 1 {
		t.Fatalf("replay dispatched again: %d commands", n)
	}

	reused := c.do(t, http.MethodPost, "/members/M002/suspend", `{"reason":"other"}`, hdr)
	requireError(t, reused, http.StatusUnprocessableEntity, members.CodeIdemReused)

	otherMember := c.do(t, http.MethodPost, "/members/M003/suspend", `{"reason":"dues"}`, hdr)
	requireError(t, otherMember, http.StatusUnprocessableEntity, members.CodeIdemReused)
}

func TestEditAndEmail(t *testing.T) {
	t.Parallel()
	c := loggedInConsole(t)

	rr := c.do(t, http.MethodPatch, "/members/M001", `{"email":"ravi@society.in"}`, nil)
	if rr.Code != http.StatusAccepted {
		t.Fatalf("edit status=%d body=%s", rr.Code, rr.Body.String())
	}
	if r := decode[CommandReceipt](t, rr); r.MemberId != "M001" || r.Kind != "EditMember" {
		t.Fatalf("receipt=%+v", r)
	}

	rr = c.do(t, http.MethodPatch, "/members/M001", `{"name":null}`, nil)
	requireError(t, rr, http.StatusUnprocessableEntity, members.CodeValidation)

	rr = c.do(t, http.MethodPatch, "/members/M404", `{"name":"X"}`, nil)
	requireError(t, rr, http.StatusNotFound, members.CodeNotFound)

	rr = c.do(t, http.MethodPost, "/members/M001/email", `{"subject":"Meeting","body":"Sunday 10am"}`, nil)
	if rr.Code != http.StatusAccepted {
		t.Fatalf("email status=%d body=%s", rr.Code, rr.Body.String())
	}

	rr = c.do(t, http.MethodPost, "/members/M001/suspend", "", nil)
	if rr.Code != http.StatusAccepted {
		t.Fatalf("suspend with empty body status=%d body=%s", rr.Code, rr.Body.String())
	}

	if n := len(c.sink.Commands()); n != 3 {
		t.Fatalf("commands=%d", n)
	}
}

func TestListMembers_HugePagingStaysInBounds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		query     string
		members   int
		pageCount int
	}{
		{name: "page far past the end", query: "?page=4611686018427387904&pageSize=4", members: 0, pageCount: 2},
		{name: "max page size", query: "?pageSize=9223372036854775807", members: 5, pageCount: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := loggedInConsole(t)

			rr := c.do(t, http.MethodGet, "/members"+tc.query, "", nil)
			if rr.Code != http.StatusOK {
				t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
			}
			page := decode[MemberPage](t, rr)
			if len(page.Members) != tc.members || page.PageCount != tc.pageCount || page.Matched != 5 {
				t.Fatalf("members=%d pageCount=%d matched=%d", len(page.Members), page.PageCount, page.Matched)
			}
		})
	}
}

type failingIdemStore struct{ err error }

func (f failingIdemStore) Get(context.Context, idempotency.Fingerprint) (idempotency.Record, bool, error) {
	return idempotency.Record{}, false, nil
}

func (f failingIdemStore) Put(context.Context, idempotency.Fingerprint, idempotency.Record) error {
	return f.err
}

func TestCommand_IdempotencyWriteFailureIsLogged(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	clk := memclock.NewManualClock(time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC))
	sink := memcommandsink.NewSink()
	svc := members.NewService(memmemberrepo.NewSampleRepo(), sink, clk, logger)
	gate := session.NewGate()
	if _, err := gate.LogIn("clerk", "pw"); err != nil {
		t.Fatalf("LogIn: %v", err)
	}
	api := NewServer(svc, gate, failingIdemStore{err: errors.New("store offline")}, logger)
	c := &testConsole{handler: NewRouter(api, RouterOptions{}), gate: gate, sink: sink}

	rr := c.do(t, http.MethodPost, "/members/M001/suspend", `{"reason":"dues"}`, map[string]string{idempotencyHeader: "k-9"})
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if got := strings.Count(logs.String(), "idempotency store write failed"); got != 2 {
		t.Fatalf("warnings=%d, want 2; logs=%s", got, logs.String())
	}
	if !strings.Contains(logs.String(), "store offline") {
		t.Fatalf("logs missing cause: %s", logs.String())
	}
}

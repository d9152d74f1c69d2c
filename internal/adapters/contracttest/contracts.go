package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sahakari-society/members-console/internal/domain"
	idempotencyport "github.com/sahakari-society/members-console/internal/ports/out/idempotency"
	memberrepoport "github.com/sahakari-society/members-console/internal/ports/out/memberrepo"
)

type CleanupFunc = func()

// MemberRepoFactory returns a repository holding the sample society roster.
type MemberRepoFactory func(t *testing.T) (memberrepoport.Repository, CleanupFunc)
type IdemStoreFactory func(t *testing.T) (idempotencyport.Store, CleanupFunc)

func RunIdempotencyStore(t *testing.T, newStore IdemStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	fp := idempotencyport.Fingerprint{
		Key:      "k-1",
		Operator: "clerk",
		Method:   "POST",
		Route:    "/members",
		BodyHash: "",
	}
	if _, ok, err := store.Get(ctx, fp); err != nil || ok {
		t.Fatalf("Get before Put: ok=%v err=%v", ok, err)
	}

	rec := idempotencyport.Record{
		StatusCode:  202,
		ContentType: "application/json",
		Body:        []byte("receipt-abc"),
		CreatedAt:   time.Unix(123, 0).UTC(),
	}
	if err := store.Put(ctx, fp, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := store.Get(ctx, fp)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if string(got.Body) != "receipt-abc" || got.ContentType != "application/json" || got.StatusCode != 202 {
		t.Fatalf("unexpected record: %+v", got)
	}

	// Fingerprints are scoped by operator.
	other := fp
	other.Operator = "manager"
	if _, ok, err := store.Get(ctx, other); err != nil || ok {
		t.Fatalf("Get for other operator: ok=%v err=%v", ok, err)
	}

	// Overwrite semantics.
	rec2 := rec
	rec2.Body = []byte("receipt-def")
	if err := store.Put(ctx, fp, rec2); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, ok, err = store.Get(ctx, fp)
	if err != nil || !ok || string(got.Body) != "receipt-def" {
		t.Fatalf("expected overwritten record, got ok=%v err=%v body=%q", ok, err, string(got.Body))
	}
}

func RunMemberRepo(t *testing.T, newRepo MemberRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	ms, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	wantIDs := []domain.MemberID{"M001", "M002", "M003", "M004", "M005"}
	if len(ms) != len(wantIDs) {
		t.Fatalf("List len=%d, want %d", len(ms), len(wantIDs))
	}
	for i, id := range wantIDs {
		if ms[i].ID != id {
			t.Fatalf("List[%d].ID=%q, want %q (ordered by ID)", i, ms[i].ID, id)
		}
	}

	amit, err := repo.GetByID(ctx, "M003")
	if err != nil {
		t.Fatalf("GetByID(M003): %v", err)
	}
	if amit.Name != "Amit Patel" || amit.Status != domain.StatusInactive {
		t.Fatalf("M003=%+v", amit)
	}
	if amit.HasActiveLoan() || amit.Savings != domain.Rupees(45000) {
		t.Fatalf("M003 amounts savings=%s loans=%s", amit.Savings, amit.Loans)
	}
	if !amit.JoinDate.Equal(domain.Date(2023, 3, 10)) || !amit.LastActive.Equal(domain.Date(2023, 12, 1)) {
		t.Fatalf("M003 dates join=%v last=%v", amit.JoinDate, amit.LastActive)
	}

	if _, err := repo.GetByID(ctx, "M999"); !errors.Is(err, memberrepoport.ErrNotFound) {
		t.Fatalf("GetByID(M999) err=%v, want ErrNotFound", err)
	}

	// Results are copies.
	ms[0].Name = "Someone Else"
	again, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List again: %v", err)
	}
	if again[0].Name != "Ravi Kumar" {
		t.Fatalf("List result mutation leaked into repo: %q", again[0].Name)
	}

	stats := domain.ComputeStats(again)
	if stats.TotalMembers != 5 || stats.ActiveMembers != 3 || stats.ActiveLoans != 4 || stats.TotalSavings != domain.Rupees(480000) {
		t.Fatalf("stats over repo roster=%+v", stats)
	}
}

package itest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sahakari-society/members-console/internal/adapters/httpapi"
	memclock "github.com/sahakari-society/members-console/internal/adapters/memory/clock"
	memcommandsink "github.com/sahakari-society/members-console/internal/adapters/memory/commandsink"
	memidempotency "github.com/sahakari-society/members-console/internal/adapters/memory/idempotency"
	memmemberrepo "github.com/sahakari-society/members-console/internal/adapters/memory/memberrepo"
	pgmemberrepo "github.com/sahakari-society/members-console/internal/adapters/postgres/memberrepo"
	postgres_testutil "github.com/sahakari-society/members-console/internal/adapters/postgres/testutil"
	"github.com/sahakari-society/members-console/internal/app/members"
	"github.com/sahakari-society/members-console/internal/app/session"
	memberrepoport "github.com/sahakari-society/members-console/internal/ports/out/memberrepo"
)

type backend string

const (
	backendMemory   backend = "memory"
	backendFile     backend = "file"
	backendPostgres backend = "postgres"
)

func backendsFromEnv(t *testing.T) []backend {
	t.Helper()
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ITEST_BACKEND"))) {
	case "", "memory":
		return []backend{backendMemory, backendFile}
	case "postgres":
		return []backend{backendPostgres}
	case "all":
		return []backend{backendMemory, backendFile, backendPostgres}
	default:
		t.Fatalf("unknown ITEST_BACKEND value (expected memory|postgres|all)")
		return nil
	}
}

type testServer struct {
	baseURL string
	client  *http.Client
	sink    *memcommandsink.Sink
}

func newTestServer(t *testing.T, b backend) *testServer {
	t.Helper()

	var repo memberrepoport.Repository
	switch b {
	case backendPostgres:
		repo = pgmemberrepo.NewRepo(postgres_testutil.OpenMigratedPool(t))
	case backendFile:
		r, err := memmemberrepo.LoadFile("../../memory/memberrepo/testdata/roster.json")
		if err != nil {
			t.Fatalf("LoadFile: %v", err)
		}
		repo = r
	case backendMemory:
		repo = memmemberrepo.NewSampleRepo()
	default:
		t.Fatalf("unknown backend: %s", b)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := memclock.NewManualClock(time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC))
	sink := memcommandsink.NewSink()
	svc := members.NewService(repo, sink, clk, logger)
	api := httpapi.NewServer(svc, session.NewGate(), memidempotency.NewStore(), logger)

	srv := httptest.NewServer(httpapi.NewRouter(api, httpapi.RouterOptions{Logger: logger}))
	t.Cleanup(srv.Close)

	return &testServer{
		baseURL: srv.URL,
		client:  srv.Client(),
		sink:    sink,
	}
}

func (s *testServer) url(path string) string {
	if strings.HasPrefix(path, "/") {
		return s.baseURL + path
	}
	return s.baseURL + "/" + path
}

func (s *testServer) doJSON(t *testing.T, method string, path string, body any, hdr map[string]string) (int, []byte, http.Header) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.url(path), r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out, resp.Header
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func mustUnmarshal[T any](t *testing.T, b []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v\nbody=%s", err, string(b))
	}
	return out
}

func requireStatus(t *testing.T, status int, body []byte, want int) {
	t.Helper()
	if status != want {
		t.Fatalf("status=%d want=%d body=%s", status, want, string(body))
	}
}

func requireErrorCode(t *testing.T, status int, body []byte, wantStatus int, wantCode string) {
	t.Helper()
	requireStatus(t, status, body, wantStatus)
	got := mustUnmarshal[errorResponse](t, body)
	if got.Error.Code != wantCode {
		t.Fatalf("error.code=%q want=%q body=%s", got.Error.Code, wantCode, string(body))
	}
}

func requireHeaderPresent(t *testing.T, h http.Header, key string) {
	t.Helper()
	if strings.TrimSpace(h.Get(key)) == "" {
		t.Fatalf("expected header %q to be present", key)
	}
}

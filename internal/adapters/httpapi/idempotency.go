package httpapi

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/sahakari-society/members-console/internal/app/members"
	"github.com/sahakari-society/members-console/internal/ports/out/idempotency"
)

const idempotencyHeader = "Idempotency-Key"

// runCommand executes a command route with Idempotency-Key handling:
//   - replay the stored receipt if operator+key+route+bodyHash match
//   - reject if operator+key+route match with a different bodyHash (422)
//
// Without the header, or without a store, exec simply runs.
func (s *Server) runCommand(w http.ResponseWriter, r *http.Request, route string, body any, exec func(operator string) (members.Receipt, error)) {
	ctx := r.Context()
	operator, _ := OperatorFromContext(ctx)

	key := strings.TrimSpace(r.Header.Get(idempotencyHeader))
	if key == "" || s.Idem == nil {
		receipt, err := exec(operator)
		if err != nil {
			writeAppError(w, r, s.Log, err)
			return
		}
		writeJSON(w, http.StatusAccepted, receiptFromApp(receipt))
		return
	}

	bodyHash, err := hashCommandBody(r.URL.Path, body)
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	metaFP := idempotency.Fingerprint{
		Key:      idempotency.Key(key),
		Operator: operator,
		Method:   r.Method,
		Route:    route,
		BodyHash: "",
	}
	if meta, ok, err := s.Idem.Get(ctx, metaFP); err != nil {
		writeAppError(w, r, s.Log, err)
		return
	} else if ok {
		if string(meta.Body) != bodyHash {
			writeError(w, r, http.StatusUnprocessableEntity, members.CodeIdemReused, "idempotency key reuse with different payload", nil)
			return
		}
	} else {
		s.putIdem(r, metaFP, idempotency.Record{
			StatusCode:  0,
			ContentType: "text/plain",
			Body:        []byte(bodyHash),
			CreatedAt:   time.Now().UTC(),
		})
	}

	respFP := metaFP
	respFP.BodyHash = bodyHash
	if rec, ok, err := s.Idem.Get(ctx, respFP); err != nil {
		writeAppError(w, r, s.Log, err)
		return
	} else if ok && rec.StatusCode == http.StatusAccepted && strings.HasPrefix(rec.ContentType, "application/json") {
		w.Header().Set("Content-Type", rec.ContentType)
		w.Header().Set("Idempotent-Replayed", "true")
		w.WriteHeader(rec.StatusCode)
		_, _ = w.Write(rec.Body)
		return
	}

	receipt, err := exec(operator)
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	resp := receiptFromApp(receipt)
	b, err := json.Marshal(resp)
	if err != nil {
		writeAppError(w, r, s.Log, err)
		return
	}
	b = append(b, '\n')
	s.putIdem(r, respFP, idempotency.Record{
		StatusCode:  http.StatusAccepted,
		ContentType: "application/json",
		Body:        b,
		CreatedAt:   time.Now().UTC(),
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write(b)
}

// putIdem stores rec, logging a failed write instead of failing the request.
func (s *Server) putIdem(r *http.Request, fp idempotency.Fingerprint, rec idempotency.Record) {
	if err := s.Idem.Put(r.Context(), fp, rec); err != nil {
		s.Log.WarnContext(r.Context(), "idempotency store write failed",
			"error", err,
			"route", fp.Route,
			"request_id", middleware.GetReqID(r.Context()),
		)
	}
}

func hashCommandBody(path string, body any) (string, error) {
	raw, err := json.Marshal(struct {
		Path string `json:"path"`
		Body any    `json:"body"`
	}{
		Path: path,
		Body: body,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

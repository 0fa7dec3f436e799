package middleware

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/tablepos/api/internal/idempotency"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	ReplayedHeader       = "Idempotent-Replayed"

	maxIdempotencyKeyLen = 255
)

// Idempotent replays the recorded response when a tenant repeats a request
// with the same Idempotency-Key. Only 2xx responses are recorded; anything
// else releases the key so the client can retry. Requests without the
// header pass through untouched.
func Idempotent(store idempotency.Store, scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientKey := r.Header.Get(IdempotencyKeyHeader)
			if clientKey == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(clientKey) > maxIdempotencyKeyLen {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Idempotency-Key is too long"})
				return
			}

			tenant, ok := TenantID(r.Context())
			if !ok {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
				return
			}

			key := idempotency.Key(scope, tenant, clientKey)
			recorded, err := store.Reserve(r.Context(), key)
			if errors.Is(err, idempotency.ErrInFlight) {
				writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
				return
			}
			if err != nil {
				// Store outage degrades to a plain request.
				log.Printf("ERROR: reserve idempotency key: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if recorded != nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set(ReplayedHeader, "true")
				w.WriteHeader(recorded.Status)
				w.Write(recorded.Body)
				return
			}

			var body bytes.Buffer
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&body)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			if status >= 200 && status < 300 {
				resp := idempotency.Response{Status: status, Body: bytes.TrimSpace(body.Bytes())}
				if err := store.Save(r.Context(), key, resp); err != nil {
					log.Printf("ERROR: save idempotent response: %v", err)
				}
				return
			}
			if err := store.Release(r.Context(), key); err != nil {
				log.Printf("ERROR: release idempotency key: %v", err)
			}
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/milkwise/mother-care-service/internal/core/domain"
)

type stubVerifier struct {
	accept string
	id     int64
}

func (s stubVerifier) Verify(token string) (int64, error) {
	if token == s.accept {
		return s.id, nil
	}
	return 0, domain.ErrUnauthorized
}

func TestRequireMother(t *testing.T) {
	mw := NewAuthMiddleware(stubVerifier{accept: "good-token", id: 7}, zerolog.Nop())

	var gotID int64
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = MotherID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.RequireMother(next)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"bearer token", "Bearer good-token", http.StatusOK},
		{"lowercase scheme", "bearer good-token", http.StatusOK},
		{"bare token", "good-token", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized},
		{"bad token", "Bearer forged", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotID, gotOK = 0, false
			req := httptest.NewRequest(http.MethodGet, "/maes/7", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.status == http.StatusOK {
				if !gotOK || gotID != 7 {
					t.Errorf("context id = %d (ok=%v), want 7", gotID, gotOK)
				}
			} else if gotOK {
				t.Error("handler ran despite rejection")
			}
		})
	}
}

func TestMotherIDAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := MotherID(req.Context()); ok {
		t.Error("MotherID reported a value on a bare context")
	}
}

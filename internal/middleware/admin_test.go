package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdminAuth(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		header     string
		wantCode   int
		wantCalled bool
	}{
		{"disabled", "", "Bearer anything", http.StatusForbidden, false},
		{"missing header", "tok", "", http.StatusUnauthorized, false},
		{"wrong scheme", "tok", "Basic tok", http.StatusUnauthorized, false},
		{"wrong token", "tok", "Bearer nope", http.StatusUnauthorized, false},
		{"valid", "tok", "Bearer tok", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dummy := &dummyHandler{}
			req := httptest.NewRequest("GET", "/api/admin/settings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			AdminAuth(tt.token)(dummy).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d; want %d", rec.Code, tt.wantCode)
			}
			if dummy.called != tt.wantCalled {
				t.Errorf("called = %v; want %v", dummy.called, tt.wantCalled)
			}
		})
	}
}

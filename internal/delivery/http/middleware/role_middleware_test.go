package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"city-services-backend/internal/domain/entity"
)

func requestWithRole(role entity.Role) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(r.Context(), RoleKey, role)
	return r.WithContext(ctx)
}

func TestRequireStaff(t *testing.T) {
	cases := []struct {
		role entity.Role
		want int
	}{
		{entity.RoleStaff, http.StatusOK},
		{entity.RoleAdmin, http.StatusOK},
		{entity.RoleCitizen, http.StatusForbidden},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, tt := range cases {
		w := httptest.NewRecorder()
		RequireStaff(next).ServeHTTP(w, requestWithRole(tt.role))
		if w.Code != tt.want {
			t.Fatalf("RequireStaff(%s): status=%d, want %d", tt.role, w.Code, tt.want)
		}
	}
}

func TestRequireAdminRejectsStaff(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(w, requestWithRole(entity.RoleStaff))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestRequireRoleWithoutContext(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	RequireAdmin(next).ServeHTTP(w, r)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
}

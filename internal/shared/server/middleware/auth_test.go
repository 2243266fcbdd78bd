package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KarimovMurodilla/lead-management-system/internal/shared/auth"
)

func authTestRouter(t *testing.T) (*gin.Engine, *auth.Issuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer, err := auth.NewIssuer("test-secret", 30*time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}

	router := gin.New()
	router.Use(Auth(issuer))
	router.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  UserIDFromContext(c),
			"username": UsernameFromContext(c),
			"is_staff": IsStaffFromContext(c),
		})
	})
	return router, issuer
}

func TestAuthRejectsMissingOrBadToken(t *testing.T) {
	router, issuer := authTestRouter(t)

	refresh, err := issuer.IssuePair("user-1", "jane", true)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not.a.token"},
		{"refresh token", "Bearer " + refresh.Refresh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)
			if resp.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", resp.Code)
			}
		})
	}
}

func TestAuthSetsIdentity(t *testing.T) {
	router, issuer := authTestRouter(t)

	token, err := issuer.IssueAccess("user-1", "jane", true)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{`"user_id":"user-1"`, `"username":"jane"`, `"is_staff":true`} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %s in %s", want, body)
		}
	}
}

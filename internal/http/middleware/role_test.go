package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/ctxutil"
)

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AttachRole())
	r.GET("/teacher", RequireRole(RoleTeacher), func(c *gin.Context) {
		c.String(http.StatusOK, ctxutil.GetRole(c.Request.Context()))
	})

	cases := []struct {
		role string
		want int
	}{
		{"", http.StatusForbidden},
		{"student", http.StatusForbidden},
		{"teacher", http.StatusOK},
		{" Teacher ", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/teacher", nil)
		if tc.role != "" {
			req.Header.Set(headerRole, tc.role)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("role %q: got=%d want=%d", tc.role, rec.Code, tc.want)
		}
		if tc.want == http.StatusOK && rec.Body.String() != RoleTeacher {
			t.Fatalf("role %q: context role = %q", tc.role, rec.Body.String())
		}
	}
}

func TestAttachTraceContextEchoesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/x", func(c *gin.Context) {
		td := ctxutil.GetTraceData(c.Request.Context())
		if td == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, td.RequestID)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(headerRequestID, "req-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Body.String() != "req-1" || rec.Header().Get(headerRequestID) != "req-1" {
		t.Fatalf("request id not propagated: body=%q header=%q", rec.Body.String(), rec.Header().Get(headerRequestID))
	}
	if rec.Header().Get(headerTraceID) == "" {
		t.Fatalf("trace id header missing")
	}
}

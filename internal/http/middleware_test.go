package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	httpapi "github.com/s84/movie-catalog/internal/http"
	"github.com/s84/movie-catalog/internal/security"
)

// guardRouter wires the auth and admin middleware in front of a trivial
// handler, with no store behind it.
func guardRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", httpapi.AuthRequired(testJWTSecret), func(c *gin.Context) {
		u, _ := httpapi.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"email": u.Email, "isAdmin": u.IsAdmin})
	})
	r.GET("/admin", httpapi.AuthRequired(testJWTSecret), httpapi.AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	w := get(guardRouter(), "/private", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("code=%d", w.Code)
	}
	if want := `{"error":"Missing Authorization header."}`; w.Body.String() != want {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestAuthRequired_BadScheme(t *testing.T) {
	r := guardRouter()
	for _, h := range []string{"Token abc", "bearer abc", "Bearer", "Bearer "} {
		w := get(r, "/private", h)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: code=%d", h, w.Code)
		}
		if want := `{"error":"Invalid Authorization format. Use: Bearer <token>"}`; w.Body.String() != want {
			t.Fatalf("header %q: body=%s", h, w.Body.String())
		}
	}
}

func TestAuthRequired_InvalidOrExpiredToken(t *testing.T) {
	r := guardRouter()

	expired, err := security.MakeAccess(testJWTSecret, "u1", "", "u@e.com", false, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := security.MakeAccess("another_secret", "u1", "", "u@e.com", false, time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	// garbage, expired, and wrong-secret tokens all collapse to one answer
	for _, tok := range []string{"not.a.jwt", expired, foreign} {
		w := get(r, "/private", "Bearer "+tok)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("token %q: code=%d", tok, w.Code)
		}
		if want := `{"error":"Invalid or expired token."}`; w.Body.String() != want {
			t.Fatalf("token %q: body=%s", tok, w.Body.String())
		}
	}
}

func TestAuthRequired_ValidTokenPopulatesIdentity(t *testing.T) {
	tok, err := security.MakeAccess(testJWTSecret, "u1", "John", "john@example.com", true, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	w := get(guardRouter(), "/private", "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("code=%d body=%s", w.Code, w.Body.String())
	}
	if want := `{"email":"john@example.com","isAdmin":true}`; w.Body.String() != want {
		t.Fatalf("body=%s", w.Body.String())
	}
}

func TestAdminOnly_Gate(t *testing.T) {
	r := guardRouter()

	plain, err := security.MakeAccess(testJWTSecret, "u1", "", "u@e.com", false, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	w := get(r, "/admin", "Bearer "+plain)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin: code=%d", w.Code)
	}
	if want := `{"error":"Admin access required."}`; w.Body.String() != want {
		t.Fatalf("body=%s", w.Body.String())
	}

	admin, err := security.MakeAccess(testJWTSecret, "u2", "", "a@e.com", true, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if w := get(r, "/admin", "Bearer "+admin); w.Code != http.StatusOK {
		t.Fatalf("admin: code=%d body=%s", w.Code, w.Body.String())
	}
}

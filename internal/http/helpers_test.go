package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	httpapi "github.com/s84/movie-catalog/internal/http"
	"github.com/s84/movie-catalog/internal/queue"
	"github.com/s84/movie-catalog/internal/repo"
)

const testJWTSecret = "test_secret"

type testEnv struct {
	T      *testing.T
	Ctx    context.Context
	Mongo  *mongodb.MongoDBContainer
	Store  *repo.Store
	Router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	mc, err := mongodb.RunContainer(ctx,
		testcontainers.WithImage("mongo:6"),
	)
	if err != nil {
		t.Fatalf("mongo container: %v", err)
	}

	uri, err := mc.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("mongo uri: %v", err)
	}

	store, err := repo.NewStore(ctx, uri, "catalog_test")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatal(err)
	}

	h := httpapi.NewHandler(store, testJWTSecret, 7, nil, 0, queue.NewNoop())

	gin.SetMode(gin.TestMode)
	r := httpapi.NewRouter(h)

	return &testEnv{T: t, Ctx: ctx, Mongo: mc, Store: store, Router: r}
}

func (e *testEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close(e.Ctx)
	}
	if e.Mongo != nil {
		_ = e.Mongo.Terminate(e.Ctx)
	}
}

func (e *testEnv) do(method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	e.Router.ServeHTTP(w, req)
	return w
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// registerAndLogin creates a user through the API and returns its token.
// Registration honors isAdmin from the payload, so admin callers are minted
// the same way.
func (e *testEnv) registerAndLogin(email, password string, isAdmin bool) string {
	e.T.Helper()

	reg := map[string]any{"name": "Tester", "email": email, "password": password, "isAdmin": isAdmin}
	b, _ := json.Marshal(reg)
	if w := e.do("POST", "/auth/register", string(b), nil); w.Code != 201 {
		e.T.Fatalf("register %s: %d %s", email, w.Code, w.Body.String())
	}

	w := e.do("POST", "/auth/login", `{"email":"`+email+`","password":"`+password+`"}`, nil)
	if w.Code != 200 {
		e.T.Fatalf("login %s: %d %s", email, w.Code, w.Body.String())
	}
	var lr struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &lr); err != nil || lr.Token == "" {
		e.T.Fatalf("login resp parse: %v; body=%s", err, w.Body.String())
	}
	return lr.Token
}

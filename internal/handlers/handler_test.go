// handler_test.go provides shared test infrastructure for handler tests.
// Integration tests are skipped when PostgreSQL is unavailable; the PDF
// backend is always a local fake.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"brandkit/internal/assets"
	"brandkit/internal/catalog"
	"brandkit/internal/database"
	"brandkit/internal/models"
	"brandkit/internal/pdf"
	"brandkit/internal/storage"
	"brandkit/internal/store"
)

// fakePDF is the body the fake Gotenberg returns for every conversion.
const fakePDF = "%PDF-1.7 handler test"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "brandkit")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "brandkit")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(t.Context(), db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// newFakeGotenberg starts a conversion backend that answers every request
// with status and body.
func newFakeGotenberg(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB        *sql.DB
	Users     *store.UserStore
	Records   *store.AssetStore
	Artifacts *storage.LocalStore
	Manager   *assets.Manager
	Router    chi.Router
	User      *models.User
}

// newTestEnv creates a complete test environment backed by PostgreSQL, a
// temporary artifact directory and a fake conversion backend. A fresh user
// is created and removed afterwards.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	users := store.NewUserStore(db)
	records := store.NewAssetStore(db)

	artifacts, err := storage.NewLocal(t.TempDir())
	if err != nil {
		t.Fatalf("storage.NewLocal: %v", err)
	}
	backend := pdf.New(newFakeGotenberg(t, http.StatusOK, fakePDF).URL, 5*time.Second)

	m := assets.New(assets.Deps{
		Users:     users,
		Records:   records,
		Artifacts: artifacts,
		Backend:   backend,
	})

	email := "handler-" + uuid.NewString()[:8] + "@example.com"
	u, err := users.Create(context.Background(), email, models.BrandSnapshot{
		FullName: "Maya Lin",
		Email:    email,
		Website:  "https://mayalin.yoga",
		OneLine:  "Breathwork for busy people",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })

	return &testEnv{
		DB:        db,
		Users:     users,
		Records:   records,
		Artifacts: artifacts,
		Manager:   m,
		Router:    newTestRouter(m),
		User:      u,
	}
}

// newManagerWithBackend builds a manager over env's stores that converts
// through the Gotenberg instance at backendURL.
func newManagerWithBackend(t *testing.T, env *testEnv, backendURL string) *assets.Manager {
	t.Helper()
	return assets.New(assets.Deps{
		Users:     env.Users,
		Records:   env.Records,
		Artifacts: env.Artifacts,
		Backend:   pdf.New(backendURL, 5*time.Second),
	})
}

// newTestRouter mounts the handlers the way the application router does.
func newTestRouter(m *assets.Manager) chi.Router {
	a := NewAssets(m)
	b := NewBrand(m)
	tp := NewTemplates(m.Catalog())

	r := chi.NewRouter()
	r.Get("/api/templates", tp.List)
	r.Get("/api/brand/{userId}", b.Get)
	r.Put("/api/brand/{userId}", b.Save)
	r.Post("/api/assets/initialize", a.Initialize)
	r.Post("/api/assets/generate/{templateId}", a.Generate)
	r.Post("/api/assets/preview/{templateId}", a.Preview)
	r.Get("/api/assets/user/{userId}", a.List)
	r.Get("/api/assets/download/{assetId}", a.Download)
	return r
}

// offlineRouter returns a router whose manager has no stores. Only requests
// rejected before reaching the manager, or served from the catalog, may be
// sent through it.
func offlineRouter() chi.Router {
	return newTestRouter(assets.New(assets.Deps{Catalog: catalog.Default()}))
}

// do sends a request through h and returns the recorder.
func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

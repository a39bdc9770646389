package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"contacts_backend/internal/app"
	"contacts_backend/internal/config"
	"contacts_backend/internal/database"
	"contacts_backend/internal/email"
	"contacts_backend/pkg/contextkeys"
)

// TestServer bundles the router, database handle and mail recorder for
// integration tests. Requests are served in-process; each test runs its
// writes inside a transaction injected through the request context and
// rolled back afterwards.
type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
	Mailer *email.MockSender
	Config *config.Config
}

// NewTestServer builds the full application against the database named
// by TEST_DATABASE_URL. Tests are skipped when it is unset.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration tests")
	}

	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Server.BaseURL = "http://localhost:8000"
	cfg.Database.DSN = dsn
	cfg.JWT.Secret = "integration-test-secret"
	cfg.JWT.AccessTTLMin = 60
	cfg.JWT.RefreshTTLMin = 7 * 24 * 60
	cfg.JWT.VerificationTTLMin = 24 * 60
	cfg.JWT.ResetTTLMin = 15
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = t.TempDir()
	cfg.Upload.MaxSize = 10 * 1024 * 1024
	cfg.Upload.AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

	db, err := database.Connect(dsn)
	if err != nil {
		t.Fatalf("connect to test database (%s): %v", dsn, err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	mailer := &email.MockSender{}
	router, err := app.SetupRouter(cfg, db, mailer)
	if err != nil {
		t.Fatalf("set up router: %v", err)
	}

	return &TestServer{
		Router: router,
		DB:     db,
		Mailer: mailer,
		Config: cfg,
	}
}

func (ts *TestServer) Close() {
	sqlDB, err := ts.DB.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// Begin opens the per-test transaction.
func (ts *TestServer) Begin(t *testing.T) *gorm.DB {
	t.Helper()
	tx := ts.DB.Begin()
	if tx.Error != nil {
		t.Fatalf("begin transaction: %v", tx.Error)
	}
	return tx
}

func (ts *TestServer) Rollback(t *testing.T, tx *gorm.DB) {
	t.Helper()
	if err := tx.Rollback().Error; err != nil && err != gorm.ErrInvalidTransaction {
		t.Logf("rollback: %v", err)
	}
}

// SendRequest serves a JSON request through the router inside the given
// transaction and returns the response with its body.
func (ts *TestServer) SendRequest(t *testing.T, tx *gorm.DB, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return ts.do(t, tx, req, token)
}

// SendForm serves a form-encoded request, used for the login endpoint.
func (ts *TestServer) SendForm(t *testing.T, tx *gorm.DB, method, path string, form string) (*http.Response, string) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ts.do(t, tx, req, "")
}

// SendFile uploads a single file as multipart form data.
func (ts *TestServer) SendFile(t *testing.T, tx *gorm.DB, method, path, token, field, filename, contentType string, data []byte) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		t.Fatalf("create multipart part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write multipart part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return ts.do(t, tx, req, token)
}

func (ts *TestServer) do(t *testing.T, tx *gorm.DB, req *http.Request, token string) (*http.Response, string) {
	t.Helper()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if tx != nil {
		ctx := context.WithValue(req.Context(), contextkeys.DBContextKey, tx)
		req = req.WithContext(ctx)
	}

	rec := httptest.NewRecorder()
	ts.Router.ServeHTTP(rec, req)

	res := rec.Result()
	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	res.Body.Close()

	return res, string(bodyBytes)
}

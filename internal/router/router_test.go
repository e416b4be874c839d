package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nemosite/internal/content"
	"github.com/nemosite/internal/db"
	"github.com/nemosite/internal/handler"
	"github.com/nemosite/internal/upload"
)

func setupRouterTestAPI(t *testing.T) *handler.API {
	t.Helper()

	dsn := fmt.Sprintf("file:router-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := gdb.AutoMigrate(&db.User{}, &db.Post{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	source := content.NewFlatFileSource(t.TempDir(), ".md", true)
	uploads := upload.NewStore(t.TempDir(), "/static/uploads")
	return handler.NewAPI(gdb, source, uploads, "NEMO")
}

func TestSetupServesStaticFiles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	staticDir := t.TempDir()
	fileContent := []byte("body { margin: 0; }")
	if err := os.WriteFile(filepath.Join(staticDir, "site.css"), fileContent, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	r := Setup(setupRouterTestAPI(t), Options{
		SessionSecret: "test-secret",
		StaticDir:     staticDir,
	})

	req := httptest.NewRequest(http.MethodGet, "/static/site.css", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Body.String() != string(fileContent) {
		t.Fatalf("unexpected body, got %q", rr.Body.String())
	}
}

func TestSetupGuardsWriteRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := Setup(setupRouterTestAPI(t), Options{SessionSecret: "test-secret"})

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/drafts"},
		{http.MethodGet, "/account-settings"},
		{http.MethodPost, "/post/save"},
		{http.MethodPost, "/delete-post/1"},
		{http.MethodPost, "/upload-image"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/login" {
				t.Fatalf("expected /login redirect, got %d -> %q", rr.Code, rr.Header().Get("Location"))
			}
		})
	}
}

func TestSetupPublicPostViewIsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := Setup(setupRouterTestAPI(t), Options{SessionSecret: "test-secret"})

	req := httptest.NewRequest(http.MethodGet, "/post/news/others/missing", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	// No document by that identifier exists, but the route itself does not
	// bounce anonymous readers to the login page.
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown document, got %d", rr.Code)
	}
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"paydash/internal/config"
	"paydash/internal/db"
	"paydash/internal/llm"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestDB opens a fresh in-memory store migrated and seeded with the demo
// dataset.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_") // One shared in-memory DB per test
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	require.NoError(t, db.Seed(gdb))
	return gdb
}

// newTestRouter wires the full route table against the given store and a
// chat provider at providerURL.
func newTestRouter(gdb *gorm.DB, providerURL string, llmTimeout time.Duration) *gin.Engine {
	cfg := &config.Config{
		SessionTTL:     3600,
		FrontendOrigin: "http://localhost:3000",
		LLMTimeout:     llmTimeout,
	}
	client := llm.New(providerURL, "test-key", "test-model")
	return NewRouter(gdb, nil, client, cfg)
}

// loginAs logs in through the router and returns the session cookies.
func loginAs(t *testing.T, r *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())
	return w.Result().Cookies()
}

// doJSON performs one JSON request through the router.
func doJSON(r *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

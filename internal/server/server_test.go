package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/petmily/petmily-v2/backend/config"
	"github.com/petmily/petmily-v2/backend/internal/database"
)

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, "unused"))

	cfg := &config.Config{
		ServerHost:   "localhost",
		ServerPort:   "8080",
		GeminiAPIKey: "test-key",
		GeminiModel:  "gemini-2.5-flash",
	}

	srv := New(cfg, db, nil, &config.S3Config{BucketName: "test-bucket"})
	require.NotNil(t, srv)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRoutesRegistered(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{ServerHost: "localhost", ServerPort: "8080"}
	srv := New(cfg, db, nil, &config.S3Config{BucketName: "test-bucket"})

	var paths []string
	for _, route := range srv.Router().Routes() {
		paths = append(paths, route.Method+" "+route.Path)
	}
	assert.Contains(t, paths, "POST /api/v1/analyses/food")
	assert.Contains(t, paths, "POST /api/v1/analyses/stool")
	assert.Contains(t, paths, "POST /api/v1/analyses/food-package")
	assert.Contains(t, paths, "POST /api/v1/analyses/:id/confirm")
	assert.Contains(t, paths, "DELETE /api/v1/analyses/:id")
}

package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(zapLogger))
	router.GET("/api/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/status", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	logs := recorded.All()
	require.NotEmpty(t, logs)

	var httpLog *observer.LoggedEntry
	for i := range logs {
		if logs[i].Message == "HTTP Request" {
			httpLog = &logs[i]
			break
		}
	}
	require.NotNil(t, httpLog, "HTTP Request log should exist")
	assert.Equal(t, zapcore.InfoLevel, httpLog.Level)
}

func TestGinMiddleware_SkipPaths(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(zapLogger, "/healthz"))
	router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/healthz", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, recorded.All(), "skipped path must not be logged")
}

func TestGinMiddleware_WithRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	// Simulate RequestID middleware running first
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "test-req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zapLogger))
	router.GET("/api/status", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/status", nil)
	router.ServeHTTP(w, req)

	logs := recorded.All()
	require.NotEmpty(t, logs)

	found := false
	for _, entry := range logs {
		for _, field := range entry.Context {
			if field.Key == "request_id" && field.String == "test-req-123" {
				found = true
			}
		}
	}
	assert.True(t, found, "request_id field should be logged")
}

func TestGinMiddleware_ErrorStatusLogsWarn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(zapLogger))
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/missing", nil)
	router.ServeHTTP(w, req)

	logs := recorded.All()
	require.NotEmpty(t, logs)
	assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.ErrorLevel)
	zapLogger := zap.New(core)

	router := gin.New()
	router.Use(Recovery(zapLogger))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/panic", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	logs := recorded.All()
	require.NotEmpty(t, logs)
	assert.Equal(t, "Panic recovered", logs[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns stored logger", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		stored := zap.NewNop().Named("request")
		c.Set("logger", stored)

		assert.Equal(t, stored, GetGinLogger(c))
	})

	t.Run("returns no-op when absent", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.NotNil(t, GetGinLogger(c))
	})
}

package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"Vista_Video/internal/middleware"
	"Vista_Video/pkg/logger"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Log.SetOutput(io.Discard)
}

// 测试里跳过JWT，直接把用户和会话塞进context
func withIdentity(userID uint64, sessionID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != 0 {
			c.Set(middleware.ContextUserID, userID)
			c.Set(middleware.ContextUsername, "tester")
		}
		if sessionID != "" {
			c.Set(middleware.ContextSessionID, sessionID)
		}
		c.Next()
	}
}

func perform(t *testing.T, r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

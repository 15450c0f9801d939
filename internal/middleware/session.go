package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie    = "vista_session"
	ContextSessionID = "sessionID"
)

// SessionMiddleware 给每个浏览器发一个匿名会话ID，播放量按会话去重
func SessionMiddleware(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err == nil {
			_, err = uuid.Parse(sid)
		}
		if err != nil {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sid, int(ttl.Seconds()), "/", "", false, true)
		}
		c.Set(ContextSessionID, sid)
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}

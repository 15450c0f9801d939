package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	// TokenCookie 网页端登录后把token放在cookie里，API调用方用Authorization头
	TokenCookie = "vista_token"
)

var (
	errNoToken        = errors.New("请求未包含授权令牌")
	errMalformedToken = errors.New("授权令牌格式不正确")
	errInvalidToken   = errors.New("无效的授权令牌")
)

// AuthMiddleware 必须登录
// 流程：1、从Authorization头或cookie中取出token 2、通过secret验证token有效性 3、若成功，把用户信息放入context
func AuthMiddleware(secret string) gin.HandlerFunc {
	secretKey := []byte(secret)
	return func(c *gin.Context) {
		if err := authenticate(c, secretKey); err != nil {
			// 立刻调用c.Abort()，阻止后续的任何处理器被执行
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.Next()
	}
}

// OptionalAuth 列表页和详情页游客也能看，有合法token就带上用户信息，没有或无效都直接放行
func OptionalAuth(secret string) gin.HandlerFunc {
	secretKey := []byte(secret)
	return func(c *gin.Context) {
		_ = authenticate(c, secretKey)
		c.Next()
	}
}

func authenticate(c *gin.Context, secretKey []byte) error {
	tokenString, err := extractToken(c)
	if err != nil {
		return err
	}

	// 解析Token，附带valid判断是否有效（包括exp过期检查）
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 确保签名方法是对称加密族
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("非预期的签名方法")
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errInvalidToken
	}
	// MapClaims里的数字都是float64
	rawID, ok := claims["user_id"].(float64)
	if !ok || rawID <= 0 {
		return errInvalidToken
	}
	c.Set(ContextUserID, uint64(rawID))
	if username, ok := claims["username"].(string); ok {
		c.Set(ContextUsername, username)
	}
	return nil
}

// 通常Token的格式是 "Bearer [token]"
func extractToken(c *gin.Context) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", errMalformedToken
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", errNoToken
}

// CurrentUserID 未登录返回0,false
func CurrentUserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok && id != 0
}

func CurrentUsername(c *gin.Context) string {
	return c.GetString(ContextUsername)
}

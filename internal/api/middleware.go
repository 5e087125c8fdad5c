package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shacklabs/house-gateway/internal/auth"
	"github.com/shacklabs/house-gateway/internal/logging"
)

const contextUserKey = "username"
const contextJTIKey = "jti"
const contextExpiryKey = "token_expiry"

// jwtMiddleware проверяет заголовок Authorization и кладет имя
// пользователя в контекст запроса. Схема "JWT" выдается при входе,
// "Bearer" принимается для совместимости с обычными клиентами.
func (s *RestServer) jwtMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"msg":     "Authorization header required",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || (parts[0] != auth.TokenScheme && parts[0] != "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"msg":     "Invalid authorization header",
			})
			c.Abort()
			return
		}

		claims, valid := auth.ValidateJWT(parts[1])
		if !valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"msg":     "Invalid or expired token",
			})
			c.Abort()
			return
		}

		// Отозванные токены (после signout) отклоняются до истечения срока
		if s.revoker != nil {
			revoked, err := s.revoker.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				logging.Warn("Проверка отзыва токена не удалась: %v", err)
			} else if revoked {
				c.JSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"msg":     "Token revoked",
				})
				c.Abort()
				return
			}
		}

		c.Set(contextUserKey, claims.Username)
		c.Set(contextJTIKey, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(contextExpiryKey, claims.ExpiresAt.Time)
		}
		c.Next()
	}
}

// currentUser возвращает имя пользователя, положенное jwtMiddleware
func currentUser(c *gin.Context) string {
	return c.GetString(contextUserKey)
}

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shacklabs/house-gateway/internal/auth"
	"github.com/shacklabs/house-gateway/internal/logging"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleRegister создает учетную запись. Имя пользователя — hex-адрес
// кошелька, хранится в нижнем регистре.
func (s *RestServer) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"msg":     "Please pass username and password.",
		})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logging.Error("Хеширование пароля не удалось: %v", err)
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"msg":     "Failed to create new user.",
		})
		return
	}

	username := strings.ToLower(req.Username)
	if _, err := s.userRepo.CreateUser(username, hash); err != nil {
		if !errors.Is(err, auth.ErrUserExists) {
			logging.Error("Создание пользователя %s не удалось: %v", username, err)
		}
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"msg":     "Username already exists.",
		})
		return
	}

	logging.Info("Зарегистрирован пользователь %s", username)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"msg":     "Successful created new user.",
	})
}

// handleSignin проверяет пароль и выдает токен сессии со схемой JWT
func (s *RestServer) handleSignin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"msg":     "Authentication failed. User not found.",
		})
		return
	}

	username := strings.ToLower(req.Username)
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"msg":     "Authentication failed. User not found.",
		})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"msg":     "Authentication failed. Wrong password.",
		})
		return
	}

	token, err := auth.GenerateJWT(user.Username)
	if err != nil {
		logging.Error("Выпуск токена для %s не удался: %v", username, err)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"msg":     "Authentication failed. Wrong password.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   auth.TokenScheme + " " + token,
	})
}

// handleSignout отзывает текущий токен, если настроено хранилище отзыва
func (s *RestServer) handleSignout(c *gin.Context) {
	if s.revoker != nil {
		jti := c.GetString(contextJTIKey)
		if jti != "" {
			// TTL — остаток жизни токена, дольше хранить запись незачем
			ttl := auth.TokenTTL
			if expiry, ok := c.Get(contextExpiryKey); ok {
				if remain := time.Until(expiry.(time.Time)); remain > 0 {
					ttl = remain
				}
			}
			if err := s.revoker.Revoke(c.Request.Context(), jti, ttl); err != nil {
				logging.Warn("Отзыв токена %s не удался: %v", jti, err)
			}
		}
	}

	logging.Debug("Пользователь %s вышел, время %s", currentUser(c), time.Now().Format(time.RFC3339))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"msg":     "Sign out successfully.",
	})
}

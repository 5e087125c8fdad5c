package api

import (
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shacklabs/house-gateway/internal/logging"
)

// failValidation отвечает 400 со статусом Failed: проверка владения или
// предусловия действия не прошла, транзакция не отправлялась
func failValidation(c *gin.Context, reason string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status": "Failed",
		"reason": reason,
	})
}

// failRead отвечает 400 со статусом error: чтение из контракта не удалось
func failRead(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status": "error",
		"reason": err.Error(),
	})
}

// successJSON отвечает 200 со статусом success и дополнительными полями
func successJSON(c *gin.Context, fields gin.H) {
	body := gin.H{"status": "success"}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// bigString переводит значение контракта в десятичную строку.
// nil превращается в "0", чтобы клиент всегда получал число.
func bigString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// bigStrings переводит срез значений контракта в десятичные строки
func bigStrings(vs []*big.Int) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = bigString(v)
	}
	return out
}

// allowed сводит результат валидатора к bool: ошибка вызова трактуется
// как отказ, а не как сбой запроса
func allowed(ok bool, err error, action string) bool {
	if err != nil {
		logging.Warn("Валидатор %s вернул ошибку: %v", action, err)
		return false
	}
	return ok
}

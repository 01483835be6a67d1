package middleware

import (
	"net/http"
	"strings"

	"chequered/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by RequireRole.
const (
	OperatorIDKey   = "operatorID"
	OperatorRoleKey = "operatorRole"
)

// RequireRole admits requests whose bearer token carries one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header", "")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		operator, err := utils.ExtractOperator(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", err.Error())
			return
		}
		if _, ok := allowed[operator.Role]; !ok {
			zap.L().Warn("operator role rejected",
				zap.String("operator", operator.Subject), zap.String("role", operator.Role), zap.String("path", c.FullPath()))
			utils.JSONError(c, http.StatusForbidden, "Insufficient role", "")
			return
		}

		c.Set(OperatorIDKey, operator.Subject)
		c.Set(OperatorRoleKey, operator.Role)
		c.Next()
	}
}

package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spoonapp/spoon/utils"
)

// AuthMiddleware exige un bearer token válido y deja el usuario, su rol y
// su restaurante en el contexto.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			// El handshake de websocket no puede mandar headers propios.
			token = c.Query("token")
			if token != "" {
				token = "Bearer " + token
			}
		}

		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token no encontrado"))
			c.Abort()
			return
		}
		if !strings.HasPrefix(token, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("formato de token inválido"))
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(token, "Bearer "))
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token inválido o expirado"))
			c.Abort()
			return
		}
		if claims.UserID == 0 {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("token sin usuario"))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("restaurante_id", claims.RestauranteID)
		c.Set("rol", claims.Rol)

		c.Next()
	}
}

// RequireRol corta la cadena si el rol autenticado no está en la lista.
func RequireRol(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rol, _ := c.Get("rol")
		for _, r := range roles {
			if rol == r {
				c.Next()
				return
			}
		}
		utils.RespondError(c, http.StatusForbidden, errors.New("rol sin permisos para esta operación"))
		c.Abort()
	}
}

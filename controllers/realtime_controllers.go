package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/spoonapp/spoon/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// RealtimeHandler -> endpoint WebSocket del dashboard.
func RealtimeHandler(c *gin.Context) {
	rolInterface, exists := c.Get("rol")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	rol := rolInterface.(string)

	if rol != "admin" && rol != "cajero" && rol != "mesero" {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	realtime.RegisterClient(ws, rol)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	realtime.UnregisterClient(ws)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/palamattam/rubber_plant_app/internal/platform/config"
	"github.com/palamattam/rubber_plant_app/internal/websocket"
)

// registerWebsocketRoutes wires the live event stream. The upgrade request
// authenticates via a token query param instead of the Authorization header,
// so it sits outside the v1 middleware chain.
func registerWebsocketRoutes(r *gin.Engine, cfg *config.Config, hub *websocket.Hub) {
	r.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(hub, c, cfg.JWTSecret)
	})
}

package controllers

import (
	"ClassFeed/middlewares"
	"ClassFeed/models"
	"ClassFeed/websocket"
	"net/http"

	"github.com/gin-gonic/gin"
)

var WebSocketHub *websocket.Hub

func SetWebSocketHub(hub *websocket.Hub) {
	WebSocketHub = hub
}

// ServeWs subscribes the caller to the realtime channel of a class
func ServeWs(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if WebSocketHub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "realtime updates unavailable"})
		return
	}

	room := models.ChannelKey(middlewares.CurrentCourse(c), c.Param("class"))
	websocket.ServeWs(WebSocketHub, c.Writer, c.Request, userID, room)
}

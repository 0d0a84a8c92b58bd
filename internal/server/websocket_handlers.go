package server

import (
	"mural/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RequireWebSocketUpgrade rejects plain HTTP requests on websocket routes
// and stashes the caller's userID for the upgraded handler.
func (s *Server) RequireWebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	c.Locals("userID", c.Query("userID"))
	return c.Next()
}

// NotificationSocketHandler upgrades the connection and streams the user's
// notifications published through Redis until the client disconnects.
func (s *Server) NotificationSocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("userID").(string)
		if userID == "" {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"userID query parameter is required"}`))
			conn.Close()
			return
		}

		if s.hub == nil {
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"live notifications unavailable"}`))
			conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			middleware.Logger.Warn("websocket registration rejected",
				"user_id", userID, "error", err)
			conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"connection limit reached"}`))
			conn.Close()
			return
		}
		defer s.hub.Unregister(userID, client)

		// Read loop exists only to detect disconnects; inbound frames are
		// discarded.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}

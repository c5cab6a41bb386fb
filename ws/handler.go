package ws

import (
	"encoding/json"
	"log"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Upgrade authenticates the ?token= query parameter and lets the websocket
// upgrade through. Browsers cannot set an Authorization header on a socket
// handshake, so the bearer travels in the query string.
func Upgrade() fiber.Handler {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key"
	}

	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		tokenStr := c.Query("token")
		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing token",
			})
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token claims",
			})
		}

		id, ok := claims["sub"].(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid user ID in token",
			})
		}

		userID, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid user ID in token",
			})
		}

		c.Locals("wsUserID", uint(userID))
		return c.Next()
	}
}

// Handler keeps the connection open, echoes heartbeats, and cleans up on
// disconnect.
func Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("wsUserID").(uint)
		if !ok {
			conn.Close()
			return
		}

		socketID := uuid.NewString()
		h.register(userID, socketID, conn)
		log.Printf("ws: user %d connected with socket %s", userID, socketID)
		defer func() {
			h.unregister(userID, socketID)
			log.Printf("ws: user %d disconnected socket %s", userID, socketID)
		}()

		// connection confirmation, mirrored by the SDK's connect handler
		payload, _ := json.Marshal(Event{Type: "connection_established", Data: fiber.Map{"user_id": userID}})
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var incoming map[string]interface{}
			if err := json.Unmarshal(msg, &incoming); err != nil {
				log.Printf("ws: received invalid JSON: %s", msg)
				continue
			}
			if incoming["type"] == "heartbeat" {
				reply, _ := json.Marshal(Event{
					Type: "heartbeat_response",
					Data: fiber.Map{"timestamp": incoming["timestamp"]},
				})
				if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
					return
				}
			}
		}
	})
}

package websocket

import (
	"context"
	"encoding/json"
	"fmt"
)

// eventChannel namespaces room traffic so the events Redis can be shared
// with other keyspaces without collisions.
func eventChannel(roomID string) string {
	return "console.events." + roomID
}

// Publish fans a payload out to every server instance subscribed to the
// room's event channel.
func Publish(roomID string, payload interface{}) error {
	if roomID == "" {
		return fmt.Errorf("websocket publish: roomID required")
	}
	if redisClient == nil {
		return fmt.Errorf("websocket publish: redis client not initialised")
	}

	messageJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("websocket publish: marshal payload: %w", err)
	}

	if err := redisClient.Publish(context.Background(), eventChannel(roomID), string(messageJSON)).Err(); err != nil {
		return fmt.Errorf("websocket publish: redis publish: %w", err)
	}
	return nil
}

package main

import (
	"crm-console-backend/internal/api"
	"crm-console-backend/internal/api/router"
	"crm-console-backend/internal/database"
	"crm-console-backend/internal/env"
	"crm-console-backend/internal/queue"
	"crm-console-backend/internal/websocket"
	"log"
)

const apiPrefix = "/api/console/v1"

func main() {
	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	hub := websocket.NewHub()
	go hub.Run()
	handler := websocket.NewHandler(hub)

	server := api.NewAPIServer(
		env.GetOrDefault("LISTEN_ADDR", ":81"),
		queueManager,
		db,
		handler,
		router.UtilsRoutes(apiPrefix),
		router.StaffRoutes(apiPrefix),
		router.SubmissionRoutes(apiPrefix),
		router.InboxRoutes(apiPrefix),
		router.InboxWebsocketRoutes(apiPrefix),
	)

	handler.SubscribeToRedisChannels()

	server.Run()
}

package controller

import (
	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the REST and websocket endpoints on app.
func RegisterRoutes(app *fiber.App, gameController *GameController, wsController *WebSocketController, wsConfig websocket.Config) {
	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsureClientID())
	app.Use("/ws/game/:gameId", middleware.WebSocketUpgrade())
	app.Get("/ws/game/:gameId", websocket.New(wsController.HandleConnection, wsConfig))

	// Set up REST routes
	api := app.Group("/api")

	// Game routes
	gameRoutes := api.Group("/game")
	gameRoutes.Get("/", gameController.ListGames)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Get("/:gameId/moves/:square", gameController.GetPossibleMoves)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)

	// Finished games
	archiveRoutes := api.Group("/archive")
	archiveRoutes.Get("/", gameController.ListArchivedGames)
	archiveRoutes.Get("/:gameId", gameController.GetArchivedGame)
}

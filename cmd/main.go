// Package main is the entry point for the scoop-service application.
//
// @title           Scoop Service API
// @version         1.0.0
// @description     Control API for the ice-cream shop core: menu, cart, checkout and the shopping session simulator.
//
// @contact.name   API Support
// @contact.url    https://github.com/guttosm/scoop-service
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
// @description                 API key for authentication. Required if authentication is enabled.
//
// @tag.name        Menu
// @tag.description Flavor catalog
//
// @tag.name        Cart
// @tag.description Cart operations and live cart events
//
// @tag.name        Checkout
// @tag.description Order submission, promo codes and order status
//
// @tag.name        Simulator
// @tag.description Simulated shopping sessions
//
// @tag.name        Events
// @tag.description Event journal
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	_ "github.com/guttosm/scoop-service/docs" // swagger docs

	"github.com/rs/zerolog/log"

	"github.com/guttosm/scoop-service/config"
	"github.com/guttosm/scoop-service/internal/app"
)

func main() {
	cfg := config.Load()

	application := app.InitializeApp(cfg)
	server := application.NewServer(cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}

// filepath: cmd/forymusic/main.go
package main

import (
	"github.com/joho/godotenv"

	"github.com/Popap2/forymusic/internal/cli"
)

// @title ForyMusic-API
// @version 1.1.0
// @description REST API for a small music catalog: listener accounts with
// @description likes and playlists, direct audio uploads and admin-gated
// @description track management.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey AdminToken
// @in header
// @name X-Admin-Token

func main() {
	// A local .env file can provide the FORY_* variables during development.
	_ = godotenv.Load()

	// Delegate all execution to the CLI package
	cli.Execute()
}

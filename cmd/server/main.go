package main

import (
	"os"

	"mediadeck/backend/internal/app"
)

// @title           MediaDeck API
// @version         1.0
// @description     Media overview reconciliation and chat/prompt association resolver over a chat-platform API.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}

package main

import (
	"os"

	"askai/client/internal/app"
)

// @title           Ask AI Web Client API
// @version         1.0
// @description     Browser-facing API of the Ask AI client: login, landing and the dashboard with its event stream.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}

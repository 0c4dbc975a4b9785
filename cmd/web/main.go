package main

import "lexhub_backend/internal/app"

func main() {
	app.Run()
}

package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"daily-brief/internal/app"
)

func main() {
	// Load .env when running locally; ignored if file is absent.
	_ = godotenv.Load()

	os.Exit(app.Main(context.Background(), os.Stdout))
}

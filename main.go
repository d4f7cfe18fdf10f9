package main

import (
	"log"

	"autoeda/adapters/charts"
	"autoeda/ai"
	"autoeda/app"
	"autoeda/internal/config"
	"autoeda/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// One process-scoped oracle handle, shared by every request.
	oracle := ai.NewOracleClient(appConfig.AI)
	renderer := charts.NewRenderer()
	service := app.NewAnalysisService(oracle, renderer, appConfig.Analysis.SampleLimit)

	server := ui.NewServer(appConfig, service, oracle)
	log.Fatal(server.Start(":" + appConfig.Server.Port))
}

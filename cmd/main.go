package main

import (
	"log"
	"os"

	"github.com/vivek-java-dev/Calorie-Tracker/config"
	"github.com/vivek-java-dev/Calorie-Tracker/routes"
	"github.com/vivek-java-dev/Calorie-Tracker/services"
	"github.com/vivek-java-dev/Calorie-Tracker/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()

	hub := services.NewRealtimeHub()
	r := routes.SetupRouter(hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server is running on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

package main

import (
	"log"
	"os"

	"github.com/shan145/event-management-client/internal/app"
)

func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer application.Close()

	if err := application.Run(os.Args[1:]); err != nil {
		log.Fatalf("%v", err)
	}
}

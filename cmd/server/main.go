// Package main implements the entry point for the SIGA API server, a
// Postgres-backed academic records backend: academic periods, careers,
// curricula, subjects, schedules and grades.
package main

import (
	"context"
	"log"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

package main

import (
	"log"

	"github.com/corrida-app/identity/internal/identity/app"
)

//	@title			Identity Service API
//	@version		1.0
//	@description	User identity, authentication and role authorization for the ride platform.
//	@BasePath		/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartlocker/smartlocker/internal/database"
	"github.com/smartlocker/smartlocker/internal/locker/handler"
	"github.com/smartlocker/smartlocker/internal/locker/repository"
	"github.com/smartlocker/smartlocker/internal/locker/service"
	"github.com/smartlocker/smartlocker/internal/oidc"
	"github.com/smartlocker/smartlocker/pkg/middleware"
)

// Minimal standalone locker service: no metrics, no rate limiting, insecure
// token parsing. Intended for local development and integration tests only.
func main() {
	port := os.Getenv("LOCKER_SERVICE_PORT")
	if port == "" {
		port = "5021"
	}

	r := gin.New()
	r.Use(gin.Recovery())

	var store repository.Store
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI != "" {
		client, err := database.ConnectMongo(context.Background(), mongoURI, 10*time.Second)
		if err != nil {
			log.Printf("warning: cannot connect to MongoDB (%v) — using memory-backed store", err)
			store = repository.NewMemoryStore()
		} else {
			colName := os.Getenv("LOCKERS_COLLECTION")
			if colName == "" {
				colName = "lockers"
			}
			col := client.Database(os.Getenv("MONGODB_DATABASE")).Collection(colName)
			store = repository.NewMongoStore(col)
		}
	} else {
		store = repository.NewMemoryStore()
	}

	svc := service.New(store)
	authed := r.Group("/", middleware.AuthMiddleware(oidc.NewInsecureVerifier()))
	handler.RegisterLockerRoutes(authed, svc)

	log.Printf("locker service listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

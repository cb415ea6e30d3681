package main

import (
	"context"
	"log"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/Mohammad8002/THE-GRAM/internal/router"
	"github.com/Mohammad8002/THE-GRAM/pkg/config"
	"github.com/Mohammad8002/THE-GRAM/pkg/firebase"
	"github.com/Mohammad8002/THE-GRAM/pkg/storage"
	"github.com/Mohammad8002/THE-GRAM/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Firebase login is optional; without credentials the route answers 503.
	var firebaseAuthClient *firebaseauth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseAuthClient, err = firebase.NewAuthClient(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		log.Println("Firebase initialized.")
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, Firebase login disabled.")
	}

	// Media uploads are optional as well; without MinIO the upload routes
	// answer 503 but the rest of the API works.
	var media storage.ObjectStore
	if cfg.MinioEndpoint != "" {
		store, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO: %v", err)
		}
		media = store
		log.Println("MinIO object store initialized.")
	} else {
		log.Println("MINIO_ENDPOINT not set, media uploads disabled.")
	}

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	router.SetupRoutes(e, cfg, db, firebaseAuthClient, media)

	log.Printf("Server starting on port %s in %s mode", cfg.Port, cfg.Env)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

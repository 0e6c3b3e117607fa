package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/dcode-github/estate_listing_platform/backend/config"
	"github.com/dcode-github/estate_listing_platform/backend/controllers"
	"github.com/dcode-github/estate_listing_platform/backend/middleware"
	"github.com/dcode-github/estate_listing_platform/backend/models"
	"github.com/dcode-github/estate_listing_platform/backend/routes"
	"github.com/dcode-github/estate_listing_platform/backend/utils"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func loadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
}

func userLookup(users *mongo.Collection) middleware.UserLookup {
	return func(ctx context.Context, userID string) (*models.User, error) {
		objID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return nil, err
		}
		var user models.User
		if err := users.FindOne(ctx, bson.M{"_id": objID}).Decode(&user); err != nil {
			return nil, err
		}
		return &user, nil
	}
}

func main() {
	loadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	client, err := config.ConnectDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer config.CloseDBConnection(client)

	store, err := config.NewStore(client, cfg.DBName)
	if err != nil {
		log.Fatalf("Failed to set up the database: %v", err)
	}
	redisClient := config.InitRedis(cfg.RedisAddr, cfg.RedisPassword)
	tokens := utils.NewTokenManager([]byte(cfg.JWTSecret), cfg.TokenTTL)

	app := controllers.NewApp(store, tokens, redisClient)
	guard := middleware.AuthMiddleware(tokens, userLookup(store.Users))

	router := mux.NewRouter()
	router.Use(middleware.Recover)
	router.Use(middleware.RequestLogger)
	routes.Routes(router, app, guard)

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := corsOptions.Handler(router)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	<-sigCh

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Error during server shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

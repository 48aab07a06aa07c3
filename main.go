package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"places-server/database"
	"places-server/handlers"
	"places-server/middleware"
	"places-server/repositories"
	"places-server/services"
	"places-server/utils/errors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment configuration")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}
	uploadDir := envOr("UPLOAD_DIR", "uploads/images")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, mongoURI, envOr("MONGODB_DATABASE", "places_db"))
	if err != nil {
		log.Fatalf("MongoDB connection failed: %v", err)
	}
	log.Println("Connected to MongoDB")
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create unique index on users: %v", err)
	}

	userRepo := repositories.NewMongoUserRepository(db)
	placeRepo := repositories.NewMongoPlaceRepository(db)

	authService := services.NewAuthService(jwtSecret)
	userService := services.NewUserService(userRepo, authService)
	geoService := services.NewGeoService(os.Getenv("GEOCODER_BASE_URL"), os.Getenv("GOOGLE_API_KEY"))
	fileService := services.NewFileService(uploadDir)
	placeService := services.NewPlaceService(placeRepo, userRepo, geoService, fileService)

	authHandler := handlers.NewAuthHandler(userService, fileService)
	userHandler := handlers.NewUserHandler(userService)
	placeHandler := handlers.NewPlaceHandler(placeService, fileService)

	r := mux.NewRouter()

	// CORS middleware
	allowedOrigins := strings.Split(envOr("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"), ",")
	r.Use(middleware.CORSMiddleware(allowedOrigins))
	r.Use(middleware.ErrorMiddleware())

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		middleware.WriteError(w, errors.ErrRouteMissing)
	})

	// Stored images are served back by path
	r.PathPrefix("/uploads/images/").Handler(
		http.StripPrefix("/uploads/images/", http.FileServer(http.Dir(uploadDir))))

	// User routes
	userRouter := r.PathPrefix("/api/users").Subrouter()
	userRouter.HandleFunc("", userHandler.GetUsers).Methods("GET", "OPTIONS")
	userRouter.HandleFunc("/signup", authHandler.Signup).Methods("POST", "OPTIONS")
	userRouter.HandleFunc("/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Public place routes. The /user prefix is registered before /{pid} so
	// mux never parses "user" as a place id.
	placeRouter := r.PathPrefix("/api/places").Subrouter()
	placeRouter.HandleFunc("/user/{uid}", placeHandler.GetPlacesByUser).Methods("GET", "OPTIONS")
	placeRouter.HandleFunc("/{pid}", placeHandler.GetPlace).Methods("GET", "OPTIONS")

	// Protected place routes
	protectedRouter := r.PathPrefix("/api/places").Subrouter()
	protectedRouter.Use(middleware.JWTMiddleware(authService))
	protectedRouter.HandleFunc("", placeHandler.CreatePlace).Methods("POST", "OPTIONS")
	protectedRouter.HandleFunc("/{pid}", placeHandler.UpdatePlace).Methods("PATCH", "OPTIONS")
	protectedRouter.HandleFunc("/{pid}", placeHandler.DeletePlace).Methods("DELETE", "OPTIONS")

	port := envOr("PORT", "5000")
	log.Println("Server starting on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

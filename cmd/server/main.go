package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/krishisahay/backend/internal/auth"
	"github.com/krishisahay/backend/internal/chat"
	"github.com/krishisahay/backend/internal/config"
	"github.com/krishisahay/backend/internal/database"
	"github.com/krishisahay/backend/internal/diagnosis"
	"github.com/krishisahay/backend/internal/inference"
	"github.com/krishisahay/backend/internal/market"
	"github.com/krishisahay/backend/internal/middleware"
	"github.com/krishisahay/backend/internal/profile"
	"github.com/krishisahay/backend/internal/quiz"
	"github.com/krishisahay/backend/internal/upload"
	"github.com/rs/cors"
)

func main() {
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize inference client
	client, err := inference.New(context.Background(), cfg.Inference)
	if err != nil {
		log.Fatalf("Failed to initialize inference client: %v", err)
	}

	uploader := upload.NewHTTPUploader(cfg.UploadEndpoint)

	// Initialize stores and services
	diagnosisStore := diagnosis.NewStore(db)
	quizStore := quiz.NewStore(db)
	profileStore := profile.NewStore(db)

	diagnosisService := diagnosis.NewService(client, diagnosisStore)
	chatService := chat.NewService(client)
	quizService := quiz.NewService(client, quizStore, time.Duration(cfg.QuizAdvanceMs)*time.Millisecond)
	marketService := market.NewService(client)

	authHandler := auth.NewHandler(db)
	teardown := profile.NewTeardown(map[string]profile.Purger{
		"farm_profile":      profileStore,
		"chat_history":      profile.PurgerFunc(profileStore.PurgeChatHistory),
		"diagnosis_reports": diagnosisStore,
		"quiz_scores":       quizStore,
	}, authHandler.Logout)

	// Initialize handlers
	diagnosisHandler := diagnosis.NewHandler(diagnosisService, uploader)
	chatHandler := chat.NewHandler(chatService)
	quizHandler := quiz.NewHandler(quizService)
	marketHandler := market.NewHandler(marketService)
	profileHandler := profile.NewHandler(profileStore, teardown)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/diagnosis/analyze", diagnosisHandler.Analyze).Methods("POST")
	protected.HandleFunc("/diagnosis/state", diagnosisHandler.State).Methods("GET")
	protected.HandleFunc("/diagnosis/reset", diagnosisHandler.Reset).Methods("POST")
	protected.HandleFunc("/diagnosis/history", diagnosisHandler.History).Methods("GET")

	protected.HandleFunc("/chat/messages", chatHandler.SendMessage).Methods("POST")
	protected.HandleFunc("/chat/messages", chatHandler.GetTranscript).Methods("GET")
	protected.HandleFunc("/chat/reset", chatHandler.Reset).Methods("POST")

	protected.HandleFunc("/quiz/categories", quizHandler.Categories).Methods("GET")
	protected.HandleFunc("/quiz/start", quizHandler.Start).Methods("POST")
	protected.HandleFunc("/quiz/session", quizHandler.Session).Methods("GET")
	protected.HandleFunc("/quiz/select", quizHandler.SelectAnswer).Methods("POST")
	protected.HandleFunc("/quiz/reset", quizHandler.Reset).Methods("POST")
	protected.HandleFunc("/quiz/scores", quizHandler.Scores).Methods("GET")

	protected.HandleFunc("/market/prices", marketHandler.Prices).Methods("GET")

	protected.HandleFunc("/profile", profileHandler.Get).Methods("GET")
	protected.HandleFunc("/profile", profileHandler.Save).Methods("POST")
	protected.HandleFunc("/account", profileHandler.DeleteAccount).Methods("DELETE")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

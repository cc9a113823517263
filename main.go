package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"wayfare/admin"
	"wayfare/auth"
	"wayfare/db"
	"wayfare/documents"
	"wayfare/globals"
	"wayfare/itinerary"
	"wayfare/notify"
	"wayfare/ratelim"
	"wayfare/rdx"
	"wayfare/routes"
	"wayfare/utils"
)

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func setupRouter(store *db.Store) *httprouter.Router {
	router := httprouter.New()

	rateLimiter := ratelim.NewRateLimiter()

	itineraryHandler := itinerary.NewHandler(store)
	documentHandler := documents.NewHandler(store)
	authHandler := auth.NewHandler(store)
	adminHandler := admin.NewHandler(store)
	notifyHandler := notify.NewHandler(store, notify.NewSMTPSenderFromEnv())

	routes.AddStaticRoutes(router)
	routes.AddAuthRoutes(router, authHandler, rateLimiter)
	routes.AddItineraryRoutes(router, itineraryHandler, rateLimiter)
	routes.AddNotifyRoutes(router, notifyHandler, rateLimiter)
	routes.AddDocumentRoutes(router, documentHandler)
	routes.AddAdminRoutes(router, adminHandler)

	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "ok"})
	})

	return router
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	globals.LoadEnv()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := db.Connect(ctx, mongoURI)
	cancel()
	if err != nil {
		log.Fatalf("mongodb connection failed: %v", err)
	}

	rdx.Init()

	router := setupRouter(store)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{os.Getenv("FRONTEND_URL"), "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	handler := loggingMiddleware(securityHeaders(c.Handler(router)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("Server started on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Printf("mongodb disconnect failed: %v", err)
	}
	log.Println("Server stopped")
}

package handler

import (
	"net/http"

	"ocr-notes-server/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(artifactHandler *ArtifactHandler, logger domain.Logger, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.Use(RequestID, NewRecovery(logger), NewRequestLogger(logger))

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"ocr-notes-server"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/upload", artifactHandler.Upload).Methods(http.MethodPost)
	router.HandleFunc("/textinfo", artifactHandler.ListTexts).Methods(http.MethodGet)
	router.HandleFunc("/view", artifactHandler.ListNames).Methods(http.MethodGet)
	router.HandleFunc("/artifacts", artifactHandler.ListArtifacts).Methods(http.MethodGet)
	router.HandleFunc("/image/{fileName}", artifactHandler.GetImage).Methods(http.MethodGet)
	router.HandleFunc("/gallery", artifactHandler.Gallery).Methods(http.MethodGet)

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"*"},
		MaxAge:         3600,
	})

	return c.Handler(router)
}

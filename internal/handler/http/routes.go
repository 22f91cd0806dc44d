package http

import (
	"net/http"

	"github.com/MKhiriev/go-api-template/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withRecovery)

	router.Get("/", h.root)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.createUser)
			r.Get("/", h.listUsers)
			r.Post("/login", h.login)
			r.Get("/{userID}", h.getUser)
			r.Put("/{userID}", h.updateUser)
			r.Delete("/{userID}", h.deleteUser)
		})

		r.Route("/heroes", func(r chi.Router) {
			r.Post("/", h.createHero)
			r.Get("/", h.listHeroes)
			r.Get("/teams/list", h.listTeams)
			r.Get("/stats/power-distribution", h.powerDistribution)
			r.Get("/name/{heroName}", h.getHeroByName)
			r.Get("/{heroID}", h.getHero)
			r.Put("/{heroID}", h.updateHero)
			r.Delete("/{heroID}", h.deleteHero)
			r.Post("/{heroID}/activate", h.activateHero)
			r.Post("/{heroID}/deactivate", h.deactivateHero)
		})

		r.Route("/files", func(r chi.Router) {
			r.Post("/upload", h.uploadFile)
			r.Post("/upload/multiple", h.uploadFiles)
			r.Get("/download/{fileID}", h.downloadFile)
			r.Delete("/delete/{fileID}", h.deleteFile)
			r.Get("/list", h.listFiles)
			r.Get("/info/{fileID}", h.fileInfo)
			r.Get("/stats", h.uploadStats)
		})

		r.Get("/health", h.health)
		r.Get("/health/db", h.healthDatabase)
		r.Get("/health/detailed", h.healthDetailed)
	})

	// unknown routes and wrong methods still answer with the envelope shape
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "The requested resource was not found", models.ErrCodeNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
	})

	return router
}

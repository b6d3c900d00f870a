package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	analysishandler "github.com/DomRamond/feeling-whatsapp-app/internal/handler/analysis"
	middlewarePkg "github.com/DomRamond/feeling-whatsapp-app/internal/middleware"
	"github.com/DomRamond/feeling-whatsapp-app/internal/render"
	analysisservice "github.com/DomRamond/feeling-whatsapp-app/internal/service/analysis"
	"github.com/DomRamond/feeling-whatsapp-app/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(analysisSvc *analysisservice.Service, maxUploadBytes int64) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := render.UploadPage(w); err != nil {
			log.Printf("[handler] upload page render failed: %v", err)
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	analysisHandler := analysishandler.New(analysisSvc, maxUploadBytes)

	r.Route("/api", func(api chi.Router) {
		analysisHandler.RegisterRoutes(api)
		analysisHandler.RegisterProgressRoutes(api)
	})

	return r
}

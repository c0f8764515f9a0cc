package router

import (
	"net/http"

	"card-binder/internal/http-server/handler/card"
	"card-binder/internal/http-server/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/wb-go/wbf/zlog"
)

type Handler struct {
	CardHandler    *card.CardHandler
	AllowedOrigins []string
	Logger         *zlog.Zerolog
}

func SetupRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(h.Logger))
	r.Use(middleware.LoggingMiddleware(h.Logger))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"Content-Disposition", "X-Window-Features", "X-Binder-Entry-Id", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			render.JSON(w, r, map[string]string{"status": "ok"})
		})

		r.Route("/canvas", func(r chi.Router) {
			r.Get("/", h.CardHandler.GetCanvas)
			r.Post("/image", h.CardHandler.UploadCanvasImage)
			r.Put("/transform", h.CardHandler.SetTransform)
			r.Post("/zoom", h.CardHandler.Zoom)
			r.Get("/render", h.CardHandler.RenderCanvas)
			r.Post("/download", h.CardHandler.DownloadCard)
		})

		r.Route("/binder", func(r chi.Router) {
			r.Get("/", h.CardHandler.ListBinder)
			r.Post("/upload", h.CardHandler.UploadToBinder)
			r.Put("/order", h.CardHandler.ReorderBinder)
			r.Post("/collage", h.CardHandler.ExportCollage)
			r.Get("/{id}", h.CardHandler.OpenEntry)
			r.Delete("/{id}", h.CardHandler.RemoveEntry)
		})

		r.Route("/notices", func(r chi.Router) {
			r.Get("/", h.CardHandler.ListNotices)
			r.Delete("/{id}", h.CardHandler.DismissNotice)
		})
	})

	return r
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(s.requireRole(s.cfg.ReadRole))

			r.Get("/messages", s.handleListMessages)
			r.Get("/messages/{ip}/{id}", s.handleGetMessage)
			r.Get("/fonts", s.handleListFonts)
			r.Get("/fonts/{ip}/{id}", s.handleGetFont)
			r.Get("/graphics", s.handleListGraphics)
			r.Get("/graphics/{ip}/{id}", s.handleGetGraphic)
			r.Get("/schedules", s.handleListSchedules)
			r.Get("/schedules/{ip}/{id}", s.handleGetSchedule)
			r.Get("/status/{ip}", s.handleGetStatus)

			r.Group(func(r chi.Router) {
				r.Use(s.requireRole(s.cfg.WriteRole))

				r.Post("/messages/{ip}", s.handleWriteMessage)
				r.Put("/messages/{ip}", s.handleActivateMessage)
				r.Delete("/messages/{ip}/{id}", s.handleDeleteMessage)
				r.Post("/graphics/{ip}", s.handleSetGraphic)
				r.Post("/schedules/{ip}", s.handleAddSchedule)
				r.Put("/schedules/{ip}", s.handleUpdateSchedule)
				r.Delete("/schedules/{ip}/{id}", s.handleDeleteSchedule)
				r.Post("/status/{ip}", s.handleRestart)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}

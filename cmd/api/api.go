package main

import (
	"net/http"
	"time"

	"github.com/farxc/tuition_status/internal/logger"
	"github.com/farxc/tuition_status/internal/tuition"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type application struct {
	config config
	logger *logger.Logger
	opts   tuition.Options
}

type config struct {
	addr        string
	maxUploadMB int
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.Post("/periods", app.handleListPeriods)
		r.Route("/process", func(r chi.Router) {
			r.Post("/", app.handleProcessUpload)
			r.Post("/records", app.handleProcessRecords)
		})
		r.Route("/export", func(r chi.Router) {
			r.Post("/students", app.handleExportStudents)
			r.Post("/departments", app.handleExportDepartments)
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	const component = "Server"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 120,
		ReadTimeout:  time.Second * 40,
		IdleTimeout:  time.Minute,
	}

	app.logger.Info(component, "Server started: addr=%s maxUploadMB=%d", app.config.addr, app.config.maxUploadMB)
	return srv.ListenAndServe()
}

package app

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter exposes the on-demand trigger surface. POST /run executes a
// full report cycle synchronously and reports the outcome; the scheduled
// path never goes through HTTP.
func NewRouter(reporter *Reporter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	r.Post("/run", func(w http.ResponseWriter, req *http.Request) {
		log.Printf("Manual report generation requested from %s", req.RemoteAddr)
		result := reporter.Run()
		if !result.Success {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintf(w, "Error generating report: %s\n", result.Error)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Report generated successfully")
	})

	return r
}

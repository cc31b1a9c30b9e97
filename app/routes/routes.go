// Package routes wires middleware, route groups and the embedded frontend
// into the application's router.
package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"homebase/app/config"
	"homebase/app/controllers"
	"homebase/app/middleware"
	"homebase/app/services"
	"homebase/webapp"
)

// SetupRoutes composes the application's router. Ordering matters: the
// request logger applies everywhere, the health endpoint is unauthenticated,
// and every other /api route sits in exactly one of two groups: reads
// behind SameOriginOrBearer, writes behind RequireBearer.
func SetupRoutes(blog *services.BlogService, backups *services.BackupService, params config.Params) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Metrics)

	blogController := controllers.NewBlogController(blog)
	backupController := controllers.NewBackupController(backups)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	// Health check (no auth)
	api.HandleFunc("/health", controllers.Health).Methods("GET")

	// Read routes -- same-origin (frontend) or API key
	read := api.NewRoute().Subrouter()
	read.Use(middleware.SameOriginOrBearer(params))
	read.HandleFunc("/blog/posts", blogController.List).Methods("GET")
	read.HandleFunc("/blog/posts/{slug}", blogController.Show).Methods("GET")
	read.HandleFunc("/backups", backupController.List).Methods("GET")

	// Write routes -- always require API key
	write := api.NewRoute().Subrouter()
	write.Use(middleware.RequireBearer(params))
	write.HandleFunc("/blog/posts", blogController.Create).Methods("POST")
	write.HandleFunc("/blog/posts/{slug}", blogController.Update).Methods("PUT")
	write.HandleFunc("/blog/posts/{slug}", blogController.Delete).Methods("DELETE")
	write.HandleFunc("/backup", backupController.Trigger).Methods("POST")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Embedded frontend
	router.PathPrefix("/").Handler(webapp.Handler())

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}

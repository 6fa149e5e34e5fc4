// Package api exposes the IPH service over HTTP.
package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"iph/config"
	"iph/service"
	"iph/storage"
)

// rateLimiterEntry holds a rate limiter with last seen time
type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// API holds the HTTP server and its dependencies.
type API struct {
	router         *mux.Router
	server         *http.Server
	events         *service.EventService
	catalogs       *storage.SQLiteCatalogStorage
	seizures       *storage.SQLiteSeizureStorage
	db             *storage.SQLite
	config         *config.Config
	logger         *zap.SugaredLogger
	validate       *validator.Validate
	rateLimiters   map[string]*rateLimiterEntry
	rateLimitersMu sync.Mutex
	stopCh         chan struct{}
}

// NewAPI creates the API server and wires its routes.
func NewAPI(events *service.EventService, catalogs *storage.SQLiteCatalogStorage, seizures *storage.SQLiteSeizureStorage, db *storage.SQLite, cfg *config.Config, logger *zap.SugaredLogger) *API {
	api := &API{
		router:       mux.NewRouter(),
		events:       events,
		catalogs:     catalogs,
		seizures:     seizures,
		db:           db,
		config:       cfg,
		logger:       logger,
		validate:     validator.New(),
		rateLimiters: make(map[string]*rateLimiterEntry),
		stopCh:       make(chan struct{}),
	}
	api.setupRoutes()
	go api.cleanupRateLimiters()
	return api
}

// setupRoutes sets up the API routes
func (a *API) setupRoutes() {
	a.router.Use(a.requestIDMiddleware)
	a.router.Use(a.corsMiddleware)
	a.router.Use(a.rateLimitMiddleware)
	a.router.Use(a.metricsMiddleware)

	// Fixed event paths before the {id} route so mux never swallows them.
	a.router.HandleFunc("/api/events/search", a.searchEvents).Methods("GET")
	a.router.HandleFunc("/api/events/region/{id:[0-9]+}", a.listEventsByRegion).Methods("GET")
	a.router.HandleFunc("/api/events", a.createEvent).Methods("POST")
	a.router.HandleFunc("/api/events", a.listEvents).Methods("GET")
	a.router.HandleFunc("/api/events/{id:[0-9]+}", a.getEvent).Methods("GET")
	a.router.HandleFunc("/api/events/{id:[0-9]+}", a.updateEvent).Methods("PATCH")
	a.router.HandleFunc("/api/events/{id:[0-9]+}", a.deleteEvent).Methods("DELETE")

	a.router.HandleFunc("/api/event-types", a.listEventTypes).Methods("GET")
	a.router.HandleFunc("/api/event-types", a.createEventType).Methods("POST")
	a.router.HandleFunc("/api/regions", a.listRegions).Methods("GET")
	a.router.HandleFunc("/api/regions", a.createRegion).Methods("POST")
	a.router.HandleFunc("/api/vehicle-units", a.listVehicleUnits).Methods("GET")
	a.router.HandleFunc("/api/vehicle-units", a.createVehicleUnit).Methods("POST")
	a.router.HandleFunc("/api/officers", a.listOfficers).Methods("GET")
	a.router.HandleFunc("/api/officers", a.createOfficer).Methods("POST")
	a.router.HandleFunc("/api/detainees", a.listDetainees).Methods("GET")
	a.router.HandleFunc("/api/detainees", a.createDetainee).Methods("POST")
	a.router.HandleFunc("/api/motive-categories", a.listMotiveCategories).Methods("GET")
	a.router.HandleFunc("/api/motive-categories", a.createMotiveCategory).Methods("POST")
	a.router.HandleFunc("/api/motives", a.listMotives).Methods("GET")
	a.router.HandleFunc("/api/motives", a.createMotive).Methods("POST")
	a.router.HandleFunc("/api/drugs", a.listDrugs).Methods("GET")
	a.router.HandleFunc("/api/drugs", a.createDrug).Methods("POST")
	a.router.HandleFunc("/api/weapons", a.listWeapons).Methods("GET")
	a.router.HandleFunc("/api/weapons", a.createWeapon).Methods("POST")

	a.router.HandleFunc("/api/detentions/{id:[0-9]+}/drug-seizures", a.addDrugSeizure).Methods("POST")
	a.router.HandleFunc("/api/detentions/{id:[0-9]+}/drug-seizures", a.listDrugSeizures).Methods("GET")
	a.router.HandleFunc("/api/detentions/{id:[0-9]+}/weapon-seizures", a.addWeaponSeizure).Methods("POST")
	a.router.HandleFunc("/api/detentions/{id:[0-9]+}/weapon-seizures", a.listWeaponSeizures).Methods("GET")

	a.router.HandleFunc("/health", a.healthCheck).Methods("GET")
	a.router.Handle("/metrics", promhttp.Handler()).Methods("GET")
}

// Start begins serving on the given address. Blocks until the server stops.
func (a *API) Start(addr string) error {
	a.server = &http.Server{
		Addr:         addr,
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.API.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(a.config.API.WriteTimeoutSec) * time.Second,
	}
	return a.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (a *API) Stop(ctx context.Context) error {
	close(a.stopCh)
	if a.server != nil {
		return a.server.Shutdown(ctx)
	}
	return nil
}

// Router returns the underlying router, for tests.
func (a *API) Router() http.Handler {
	return a.router
}

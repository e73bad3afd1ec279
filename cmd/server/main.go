package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/config"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/geo"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/handler"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/i18n"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/model"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/store"
	"github.com/RayenCMillahual/AsistenciaGeolocalizada/internal/store/memory"
)

func main() {
	cfg := config.Load()
	i18n.Init(cfg.DefaultLocale)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	defaultFence := model.ValidLocation{
		Name:          cfg.DefaultLocationName,
		Latitude:      cfg.DefaultLatitude,
		Longitude:     cfg.DefaultLongitude,
		AllowedRadius: cfg.DefaultLocationRadius,
	}

	var (
		attendanceStore handler.AttendanceStore
		locationStore   handler.LocationStore
		readyCheck      = func(context.Context) error { return nil }
	)
	if cfg.MongoURI != "" {
		db, err := store.NewMongoDB(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer db.Close(context.Background())

		attendances, err := store.NewAttendanceStore(ctx, db)
		if err != nil {
			log.Fatalf("Failed to prepare attendance store: %v", err)
		}
		locations := store.NewLocationStore(db)
		if err := locations.SeedDefaultLocation(ctx, defaultFence); err != nil {
			log.Fatalf("Failed to seed default location: %v", err)
		}
		attendanceStore, locationStore = attendances, locations
		readyCheck = db.Ping
	} else {
		log.Print("MONGODB_URI not set, using in-memory store")
		attendances := memory.NewAttendanceStore()
		locations := memory.NewLocationStore()
		if err := locations.SeedDefaultLocation(ctx, defaultFence); err != nil {
			log.Fatalf("Failed to seed default location: %v", err)
		}
		attendanceStore, locationStore = attendances, locations
	}

	checker := geo.NewChecker(locationStore)
	fallback := model.Coordinates{Latitude: cfg.DefaultLatitude, Longitude: cfg.DefaultLongitude}

	// Routes
	mux := http.NewServeMux()
	handler.NewAttendanceHandler(attendanceStore, checker, fallback).RegisterRoutes(mux)
	handler.NewLocationHandler(locationStore).RegisterRoutes(mux)

	// Health checks
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		if err := readyCheck(r.Context()); err != nil {
			http.Error(w, "store unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.LoggingMiddleware(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Attendance service started on :%s (env: %s)", cfg.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/api"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/auth"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/config"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/ratelim"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/repository"
	"github.com/alfieprojectsdev/parkboard-sub005/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	database, err := repository.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	slotRepo := repository.NewSlotRepository(database)
	bookingRepo := repository.NewBookingRepository(database)
	profileRepo := repository.NewProfileRepository(database)
	sweepRepo := repository.NewSweepRepository(database)

	bookingSvc := service.NewBookingService(slotRepo, bookingRepo, cfg.Rules)
	slotSvc := service.NewSlotService(slotRepo)
	adminSvc := service.NewAdminService(slotRepo, bookingRepo, profileRepo)
	sweepSvc := service.NewSweepService(sweepRepo)

	bookingHandler := api.NewBookingHandler(bookingSvc)
	slotHandler := api.NewSlotHandler(slotSvc, bookingSvc)
	adminHandler := api.NewAdminHandler(adminSvc)

	limiter := ratelim.NewRateLimiter(5, 5)

	r := mux.NewRouter()

	// Resident endpoints (authenticated)
	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(auth.Authenticate([]byte(cfg.JWTSecret), profileRepo))
	apiRouter.HandleFunc("/me", api.Me).Methods("GET")
	apiRouter.HandleFunc("/slots", slotHandler.ListSlots).Methods("GET")
	apiRouter.HandleFunc("/slots/{id}", slotHandler.GetSlot).Methods("GET")
	apiRouter.HandleFunc("/slots/{id}/availability", slotHandler.CheckAvailability).Methods("GET")
	apiRouter.Handle("/bookings", limiter.Limit(http.HandlerFunc(bookingHandler.CreateBooking))).Methods("POST")
	apiRouter.HandleFunc("/bookings", bookingHandler.ListBookings).Methods("GET")
	apiRouter.HandleFunc("/bookings/{id}", bookingHandler.GetBooking).Methods("GET")
	apiRouter.HandleFunc("/bookings/{id}", bookingHandler.CancelBooking).Methods("DELETE")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/api/v1/admin").Subrouter()
	admin.Use(auth.Authenticate([]byte(cfg.JWTSecret), profileRepo))
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/slots", adminHandler.CreateSlot).Methods("POST")
	admin.HandleFunc("/slots/{id}", adminHandler.UpdateSlot).Methods("PUT")
	admin.HandleFunc("/slots/{id}", adminHandler.DeleteSlot).Methods("DELETE")
	admin.HandleFunc("/slots/{id}/owner", adminHandler.SetSlotOwner).Methods("PUT")
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods("GET")
	admin.HandleFunc("/bookings/{id}/status", adminHandler.SetBookingStatus).Methods("PUT")
	admin.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}/role", adminHandler.SetUserRole).Methods("PUT")

	c := cron.New()
	if _, err := c.AddFunc("@hourly", func() {
		if err := sweepSvc.CompleteFinishedBookings(context.Background()); err != nil {
			log.Printf("Sweep failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule sweep job: %v", err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins(strings.Split(cfg.AllowedOrigins, ",")),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handlers.LoggingHandler(os.Stdout, corsHandler(r))))
}

package routers

import (
	"time"

	"appointmed-service/internal/app/config"
	"appointmed-service/internal/app/delivery/http/controllers"
	"appointmed-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	availabilityController *controllers.AvailabilityController,
	appointmentController *controllers.AppointmentController,
	doctorController *controllers.DoctorController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	// Rate limiting middleware using httprate
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.RequestLogger)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Route("/availability", func(r chi.Router) {
			attachAvailabilityRoutes(r, middlewares, availabilityController)
		})

		r.Route("/doctors", func(r chi.Router) {
			attachDoctorRoutes(r, middlewares, doctorController, availabilityController)
		})

		r.Route("/appointments", func(r chi.Router) {
			attachAppointmentRoutes(r, middlewares, appointmentController)
		})
	})
}

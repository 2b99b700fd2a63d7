package routers

import (
	"appointmed-service/internal/app/delivery/http/controllers"
	"appointmed-service/internal/app/delivery/http/middlewares"
	"appointmed-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Use(middlewares.Authenticate)
	router.Post("/", appointmentController.Book)
	router.Get("/", appointmentController.FindAll)
	router.With(middlewares.RequireRole(constvars.RoleDoctor, constvars.RolePatient, constvars.RoleAdmin)).Patch("/{appointmentID}/status", appointmentController.UpdateStatus)
}

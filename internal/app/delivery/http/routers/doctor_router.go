package routers

import (
	"appointmed-service/internal/app/delivery/http/controllers"
	"appointmed-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, middlewares *middlewares.Middlewares, doctorController *controllers.DoctorController, availabilityController *controllers.AvailabilityController) {
	// the doctor directory and day view are public; booking requires auth
	router.Get("/", doctorController.FindAll)
	router.Get("/{doctorID}", doctorController.FindByID)
	router.Get("/{doctorID}/slots", availabilityController.FindDaySlots)
}

package routers

import (
	"appointmed-service/internal/app/delivery/http/controllers"
	"appointmed-service/internal/app/delivery/http/middlewares"
	"appointmed-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAvailabilityRoutes(router chi.Router, middlewares *middlewares.Middlewares, availabilityController *controllers.AvailabilityController) {
	router.Use(middlewares.Authenticate)
	router.With(middlewares.RequireRole(constvars.RoleDoctor, constvars.RoleAdmin)).Post("/", availabilityController.CreateSingle)
	router.With(middlewares.RequireRole(constvars.RoleDoctor, constvars.RoleAdmin)).Post("/bulk", availabilityController.CreateBulk)
	router.With(middlewares.RequireRole(constvars.RoleDoctor, constvars.RoleAdmin)).Delete("/doctor/{doctorID}", availabilityController.DeleteAllForDoctor)
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appointmed-service/internal/app/config"
	"appointmed-service/internal/app/delivery/http/controllers"
	"appointmed-service/internal/app/delivery/http/middlewares"
	"appointmed-service/internal/app/delivery/http/routers"
	"appointmed-service/internal/app/drivers/database"
	"appointmed-service/internal/app/drivers/logger"
	"appointmed-service/internal/app/drivers/messaging"
	"appointmed-service/internal/app/services/core/appointments"
	"appointmed-service/internal/app/services/core/availability"
	"appointmed-service/internal/app/services/core/doctors"
	"appointmed-service/internal/app/services/core/patients"
	"appointmed-service/internal/app/services/core/reminders"
	"appointmed-service/internal/app/services/core/roles"
	"appointmed-service/internal/app/services/shared/locker"
	"appointmed-service/internal/app/services/shared/ratelimiter"
	"appointmed-service/internal/app/services/shared/redis"
	"appointmed-service/internal/app/services/shared/whatsapp"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQConnection := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQConnection,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	bootstrapTheApp(bootstrap, location)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(bootstrap *config.Bootstrap, location *time.Location) {
	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, bootstrap.Logger)
	whatsAppService, err := whatsapp.NewWhatsAppService(
		bootstrap.RabbitMQ,
		resourceLimiter,
		bootstrap.InternalConfig.App.WhatsAppMaxPerMinute,
		bootstrap.Logger,
		bootstrap.InternalConfig.App.RabbitMQWhatsAppQueue,
	)
	if err != nil {
		log.Fatalf("Failed to initialize WhatsApp service: %v", err)
	}

	// Repositories
	availabilityRepository := availability.NewAvailabilityMongoRepository(bootstrap.MongoClient, dbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoClient, dbName)
	patientRepository := patients.NewPatientMongoRepository(bootstrap.MongoClient, dbName)
	doctorRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoClient, dbName)
	roleRepository := roles.NewRoleMongoRepository(bootstrap.MongoClient, dbName)
	reminderLedger := reminders.NewReminderLedgerMongoRepository(bootstrap.MongoClient, dbName)

	// Usecases
	availabilityUsecase := availability.NewAvailabilityUsecase(availabilityRepository, appointmentRepository, doctorRepository, bootstrap.Logger, location)
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentRepository, availabilityRepository, patientRepository, doctorRepository, whatsAppService, lockerService, bootstrap.Logger, location)
	doctorUsecase := doctors.NewDoctorUsecase(doctorRepository, bootstrap.Logger)
	reminderUsecase := reminders.NewReminderUsecase(
		appointmentRepository,
		patientRepository,
		doctorRepository,
		reminderLedger,
		whatsAppService,
		bootstrap.Logger,
		location,
		time.Duration(bootstrap.InternalConfig.App.ReminderWindowInMinute)*time.Minute,
	)

	// Reminder worker
	reminderWorker := reminders.NewWorker(bootstrap.Logger, bootstrap.InternalConfig, lockerService, reminderUsecase)
	reminderWorker.Start(context.Background())
	bootstrap.ReminderWorkerStop = reminderWorker.Stop

	// Delivery
	accessLog := logger.NewLogrusLogger(bootstrap.InternalConfig)
	appMiddlewares := middlewares.NewMiddlewares(bootstrap.Logger, accessLog, roleRepository, bootstrap.InternalConfig)
	availabilityController := controllers.NewAvailabilityController(bootstrap.Logger, availabilityUsecase, location)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase, location)
	doctorController := controllers.NewDoctorController(bootstrap.Logger, doctorUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, appMiddlewares, availabilityController, appointmentController, doctorController)
}

package config

import (
	"appointmed-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "appointmed"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                       utils.GetEnvString("APP_ENV", "development"),
			Port:                      utils.GetEnvString("APP_PORT", ":8080"),
			Version:                   utils.GetEnvString("APP_VERSION", "v1.0"),
			Address:                   utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                  utils.GetEnvString("APP_TIMEZONE", "Asia/Jakarta"),
			EndpointPrefix:            utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api/v1"),
			RabbitMQWhatsAppQueue:     utils.GetEnvString("APP_RABBITMQ_WHATSAPP_QUEUE", "whatsapp_notifications"),
			ReminderCronSpec:          utils.GetEnvString("APP_REMINDER_CRON_SPEC", "*/15 * * * *"),
			ReminderWindowInMinute:    utils.GetEnvInt("APP_REMINDER_WINDOW_IN_MINUTE", 30),
			MaxRequests:               utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout:           utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			MaxTimeRequestsPerSeconds: utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 10),
			WhatsAppMaxPerMinute:      utils.GetEnvInt("APP_WHATSAPP_MAX_PER_MINUTE", 60),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
	}
}

package middlewares

import (
	"appointmed-service/internal/app/config"
	"appointmed-service/internal/app/contracts"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	AccessLog      *logrus.Logger
	RoleRepository contracts.RoleRepository
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(logger *zap.Logger, accessLog *logrus.Logger, roleRepository contracts.RoleRepository, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            logger,
		AccessLog:      accessLog,
		RoleRepository: roleRepository,
		InternalConfig: internalConfig,
	}
}

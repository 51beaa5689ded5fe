package service

import (
	"github.com/ykarimov/authgate/internal/config"
	"github.com/ykarimov/authgate/internal/logger"
	"github.com/ykarimov/authgate/internal/store"
)

type Services struct {
	AuthService AuthService
	UserService UserService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, cfg.Auth, logger),
		UserService: NewUserService(storages.UserRepository, logger),
	}
}

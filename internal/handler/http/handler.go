package http

import (
	"github.com/ykarimov/authgate/internal/config"
	"github.com/ykarimov/authgate/internal/logger"
	"github.com/ykarimov/authgate/internal/service"
)

type Handler struct {
	services *service.Services

	// authCfg carries the cookie parameters and token lifetime used when
	// issuing and clearing the session cookie.
	authCfg config.Auth

	// clientURL is the single browser origin allowed by the credentialed
	// CORS policy.
	clientURL string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		authCfg:   cfg.Auth,
		clientURL: cfg.Server.ClientURL,
		logger:    logger,
	}
}

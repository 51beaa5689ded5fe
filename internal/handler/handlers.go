package handler

import (
	"github.com/ykarimov/authgate/internal/config"
	"github.com/ykarimov/authgate/internal/handler/http"
	"github.com/ykarimov/authgate/internal/logger"
	"github.com/ykarimov/authgate/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handlers {
	logger.Info().Msg("creating new handlers...")

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, logger),
	}
}

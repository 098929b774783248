package handlers

import (
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/domain/services"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/infrastructure/cache"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health     *HealthHandler
	Evaluation *EvaluationHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Evaluator *services.Evaluator
	Cache     *cache.RedisCache
	Logger    *logger.Logger
	Version   string
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(deps.Cache, deps.Version, deps.Logger),
		Evaluation: NewEvaluationHandler(deps.Evaluator, deps.Logger),
	}
}

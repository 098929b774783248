package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/domain/models"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/internal/domain/services"
	"github.com/MQMR-jbelcina/risk-rating-assistant-2.4/pkg/logger"
)

// maxNotesBytes bounds the request body; analyst narratives are short
// documents, not uploads.
const maxNotesBytes = 1 << 20

// EvaluationHandler handles risk evaluation endpoints
type EvaluationHandler struct {
	evaluator *services.Evaluator
	logger    *logger.Logger
}

// NewEvaluationHandler creates a new EvaluationHandler
func NewEvaluationHandler(evaluator *services.Evaluator, log *logger.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		evaluator: evaluator,
		logger:    log.WithComponent("evaluation-handler"),
	}
}

// EvaluateRequest is the request body for an evaluation
type EvaluateRequest struct {
	Notes string `json:"notes"`
}

// EvaluateResponse wraps the engine result with request metadata.
// Nothing is persisted; the id exists only to correlate logs.
type EvaluateResponse struct {
	EvaluationID uuid.UUID             `json:"evaluation_id"`
	EvaluatedAt  time.Time             `json:"evaluated_at"`
	Rating       models.Rating         `json:"rating"`
	Details      *models.RatingDetails `json:"details"`
	Context      models.Context        `json:"context"`
}

// Evaluate handles POST /api/v1/evaluations - rates analyst notes
func (h *EvaluationHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxNotesBytes)

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Empty notes are legal input: the engine reports
	// no_information_provided rather than an error.
	result := h.evaluator.Evaluate(req.Notes)

	evaluationID := uuid.New()
	h.logger.WithEvaluationID(evaluationID.String()).Info().
		Str("rating", string(result.Rating)).
		Bool("handles_pii", result.Context.HandlesPII).
		Bool("software_provider", result.Context.SoftwareProvider).
		Msg("notes evaluated")

	response := EvaluateResponse{
		EvaluationID: evaluationID,
		EvaluatedAt:  time.Now().UTC(),
		Rating:       result.Rating,
		Details:      result.Details,
		Context:      result.Context,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

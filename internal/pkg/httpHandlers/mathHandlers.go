package httpHandlers

import (
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"math-service/internal/pkg/mathOperations"
	"math-service/internal/pkg/metrics"
	"math-service/internal/pkg/web"
	"net/http"
)

type MathHandlers struct {
	operations     mathOperations.MathOperations
	metrics        *metrics.Metrics
	libraryVersion string
}

// New builds the handlers. A nil metrics disables operation counting.
func New(operations mathOperations.MathOperations, operationMetrics *metrics.Metrics, libraryVersion string) *MathHandlers {
	return &MathHandlers{
		operations:     operations,
		metrics:        operationMetrics,
		libraryVersion: libraryVersion,
	}
}

// Routes registers the health and math endpoints on router.
func (instance *MathHandlers) Routes(router chi.Router) {
	router.Method(http.MethodGet, "/health", web.Handler{Request: instance.Health})

	router.Route("/api/math", func(r chi.Router) {
		r.Method(http.MethodPost, "/add", web.Handler{Request: instance.Add})
		r.Method(http.MethodPost, "/subtract", web.Handler{Request: instance.Subtract})
		r.Method(http.MethodPost, "/divide", web.Handler{Request: instance.Divide})
	})
}

func (instance *MathHandlers) Health(_ *http.Request) *web.Response {
	return web.JsonResponse(http.StatusOK, HealthResponse{
		Status:         healthyStatus,
		LibraryVersion: instance.libraryVersion,
		Features:       instance.operations.Features(),
	}, nil)
}

func (instance *MathHandlers) Add(request *http.Request) *web.Response {
	a, b, err := parseOperands(request)
	if err != nil {
		return instance.failure(mathOperations.Addition, err)
	}

	result, err := instance.operations.Add(a, b)
	if err != nil {
		return instance.failure(mathOperations.Addition, err)
	}

	instance.metrics.RecordOperation(string(mathOperations.Addition), metrics.OutcomeSuccess)
	return web.JsonResponse(http.StatusOK, IntegerResult{Result: result}, nil)
}

func (instance *MathHandlers) Subtract(request *http.Request) *web.Response {
	a, b, err := parseOperands(request)
	if err != nil {
		return instance.failure(mathOperations.Subtraction, err)
	}

	result, err := instance.operations.Subtract(a, b)
	if err != nil {
		return instance.failure(mathOperations.Subtraction, err)
	}

	instance.metrics.RecordOperation(string(mathOperations.Subtraction), metrics.OutcomeSuccess)
	return web.JsonResponse(http.StatusOK, IntegerResult{Result: result}, nil)
}

func (instance *MathHandlers) Divide(request *http.Request) *web.Response {
	a, b, err := parseOperands(request)
	if err != nil {
		return instance.failure(mathOperations.Division, err)
	}

	result, err := instance.operations.Divide(a, b)
	if err != nil {
		return instance.failure(mathOperations.Division, err)
	}

	instance.metrics.RecordOperation(string(mathOperations.Division), metrics.OutcomeSuccess)
	return web.JsonResponse(http.StatusOK, FloatResult{Result: result}, nil)
}

// failure maps a validation or operation error to its response.
func (instance *MathHandlers) failure(operation mathOperations.Operation, err error) *web.Response {
	var validationError *ValidationError
	if errors.As(err, &validationError) {
		instance.metrics.RecordOperation(string(operation), metrics.OutcomeRejected)
		log.Debug().Err(err).Str("operation", string(operation)).Msg("request rejected")
		return web.ErrorResponse(http.StatusUnprocessableEntity, validationError.Issues)
	}

	var operationError *mathOperations.OperationError
	if errors.As(err, &operationError) {
		instance.metrics.RecordOperation(string(operation), operationError.Kind.String())
		log.Debug().Err(err).Str("operation", string(operation)).Msg("operation failed")

		switch operationError.Kind {
		case mathOperations.OperationDisabled:
			return web.ErrorResponse(http.StatusForbidden, operationError.Error())
		case mathOperations.DivisionByZero:
			return web.ErrorResponse(http.StatusBadRequest, operationError.Error())
		}
	}

	log.Error().Err(err).Str("operation", string(operation)).Msg("unexpected operation error")
	return web.ErrorResponse(http.StatusInternalServerError, "Internal Server Error")
}

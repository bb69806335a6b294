package httpHandlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"math-service/internal/pkg/mathOperations"
	"math-service/internal/pkg/metrics"
	"math-service/internal/pkg/web"
	"net/http"
	"net/http/httptest"
	"testing"
)

var defaultFeatures = mathOperations.Features{Addition: true}

var allFeatures = mathOperations.Features{Addition: true, Subtraction: true, Division: true}

func newRouter(features mathOperations.Features, operationMetrics *metrics.Metrics) *chi.Mux {
	router := chi.NewRouter()
	router.NotFound(web.NotFound)
	router.MethodNotAllowed(web.MethodNotAllowed)
	New(mathOperations.New(features), operationMetrics, "1.3.0").Routes(router)
	return router
}

func serve(router http.Handler, method string, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
	return recorder
}

func TestHealth(t *testing.T) {
	recorder := serve(newRouter(defaultFeatures, nil), http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"status": "healthy",
		"library_version": "1.3.0",
		"features": {"addition": true, "subtraction": false, "division": false}
	}`, recorder.Body.String())
}

func TestHealthReflectsFeatures(t *testing.T) {
	recorder := serve(newRouter(allFeatures, nil), http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{
		"status": "healthy",
		"library_version": "1.3.0",
		"features": {"addition": true, "subtraction": true, "division": true}
	}`, recorder.Body.String())
}

func TestAddPositive(t *testing.T) {
	router := newRouter(defaultFeatures, nil)

	recorder := serve(router, http.MethodPost, "/api/math/add?a=5&b=3")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"result":8}`, recorder.Body.String())

	recorder = serve(router, http.MethodPost, "/api/math/add?a=-5&b=3")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"result":-2}`, recorder.Body.String())
}

func TestAddNegativeDisabled(t *testing.T) {
	recorder := serve(newRouter(mathOperations.Features{}, nil), http.MethodPost, "/api/math/add?a=5&b=3")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.JSONEq(t, `{"detail":"Addition is disabled"}`, recorder.Body.String())
}

func TestSubtractNegativeDisabledByDefault(t *testing.T) {
	recorder := serve(newRouter(defaultFeatures, nil), http.MethodPost, "/api/math/subtract?a=5&b=3")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.JSONEq(t, `{"detail":"Subtraction is disabled"}`, recorder.Body.String())
}

func TestSubtractPositive(t *testing.T) {
	recorder := serve(newRouter(allFeatures, nil), http.MethodPost, "/api/math/subtract?a=5&b=8")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"result":-3}`, recorder.Body.String())
}

func TestDivideNegativeDisabledByDefault(t *testing.T) {
	recorder := serve(newRouter(defaultFeatures, nil), http.MethodPost, "/api/math/divide?a=5&b=0")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.JSONEq(t, `{"detail":"Division is disabled"}`, recorder.Body.String())
}

func TestDivideNegativeByZero(t *testing.T) {
	recorder := serve(newRouter(allFeatures, nil), http.MethodPost, "/api/math/divide?a=5&b=0")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"detail":"Division by zero"}`, recorder.Body.String())
}

func TestDividePositive(t *testing.T) {
	recorder := serve(newRouter(allFeatures, nil), http.MethodPost, "/api/math/divide?a=10&b=4")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"result":2.5}`, recorder.Body.String())
}

func TestValidationNegativeMissingParams(t *testing.T) {
	router := newRouter(allFeatures, nil)

	for _, path := range []string{"/api/math/add", "/api/math/subtract", "/api/math/divide"} {
		recorder := serve(router, http.MethodPost, path+"?a=5")
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code, path)
		assert.JSONEq(t, `{"detail":[{"loc":["query","b"],"msg":"Field required","type":"missing","input":null}]}`,
			recorder.Body.String(), path)
	}
}

func TestValidationNegativeNonIntegerParams(t *testing.T) {
	recorder := serve(newRouter(allFeatures, nil), http.MethodPost, "/api/math/add?a=five&b=2.5")
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.JSONEq(t, `{"detail":[
		{"loc":["query","a"],"msg":"Input should be a valid integer, unable to parse string as an integer","type":"int_parsing","input":"five"},
		{"loc":["query","b"],"msg":"Input should be a valid integer, unable to parse string as an integer","type":"int_parsing","input":"2.5"}
	]}`, recorder.Body.String())
}

func TestValidationRepeatedAndPaddedParams(t *testing.T) {
	router := newRouter(defaultFeatures, nil)

	recorder := serve(router, http.MethodPost, "/api/math/add?a=1&a=2&b=3")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"result":5}`, recorder.Body.String())

	recorder = serve(router, http.MethodPost, "/api/math/add?a=%205%20&b=3")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"result":8}`, recorder.Body.String())

	recorder = serve(router, http.MethodPost, "/api/math/add?a=&b=3")
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.JSONEq(t, `{"detail":[{"loc":["query","a"],"msg":"Input should be a valid integer, unable to parse string as an integer","type":"int_parsing","input":""}]}`,
		recorder.Body.String())
}

func TestValidationRunsBeforeFeatureGate(t *testing.T) {
	recorder := serve(newRouter(defaultFeatures, nil), http.MethodPost, "/api/math/divide?b=0")
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
}

func TestRoutingFallbacks(t *testing.T) {
	router := newRouter(defaultFeatures, nil)

	recorder := serve(router, http.MethodGet, "/api/math/add?a=1&b=2")
	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)

	recorder = serve(router, http.MethodPost, "/api/math/multiply?a=1&b=2")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.JSONEq(t, `{"detail":"Not Found"}`, recorder.Body.String())
}

func TestOperationMetrics(t *testing.T) {
	operationMetrics := metrics.New()
	router := newRouter(defaultFeatures, operationMetrics)

	serve(router, http.MethodPost, "/api/math/add?a=1&b=2")
	serve(router, http.MethodPost, "/api/math/subtract?a=1&b=2")
	serve(router, http.MethodPost, "/api/math/add?a=x&b=2")

	assert.Equal(t, 1.0, testutil.ToFloat64(operationMetrics.OperationsTotal.WithLabelValues("addition", metrics.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(operationMetrics.OperationsTotal.WithLabelValues("subtraction", "operation_disabled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(operationMetrics.OperationsTotal.WithLabelValues("addition", metrics.OutcomeRejected)))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Issues: []ValidationIssue{{Loc: []string{"query", "a"}, Msg: missingMsg, Type: missingType}}}
	assert.EqualError(t, err, "request validation failed: a: Field required")
	assert.EqualError(t, &ValidationError{}, "request validation failed")
}

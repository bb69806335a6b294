package mathClient

import (
	"context"
	"fmt"
	"github.com/bytedance/sonic"
	"io"
	"math-service/internal/pkg/httpHandlers"
	"math-service/internal/pkg/web"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 5 * time.Second

// ApiError is a non-2xx answer of the math service.
type ApiError struct {
	Status int
	Detail string
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("math service returned %d: %s", e.Status, e.Detail)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the service at baseURL. A zero timeout uses the
// default of five seconds.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (client *Client) Health(ctx context.Context) (*httpHandlers.HealthResponse, error) {
	var health httpHandlers.HealthResponse
	if err := client.call(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (client *Client) Add(ctx context.Context, a int64, b int64) (int64, error) {
	var result httpHandlers.IntegerResult
	err := client.call(ctx, http.MethodPost, "/api/math/add", operands(a, b), &result)
	return result.Result, err
}

func (client *Client) Subtract(ctx context.Context, a int64, b int64) (int64, error) {
	var result httpHandlers.IntegerResult
	err := client.call(ctx, http.MethodPost, "/api/math/subtract", operands(a, b), &result)
	return result.Result, err
}

func (client *Client) Divide(ctx context.Context, a int64, b int64) (float64, error) {
	var result httpHandlers.FloatResult
	err := client.call(ctx, http.MethodPost, "/api/math/divide", operands(a, b), &result)
	return result.Result, err
}

func operands(a int64, b int64) url.Values {
	return url.Values{
		"a": []string{strconv.FormatInt(a, 10)},
		"b": []string{strconv.FormatInt(b, 10)},
	}
}

func (client *Client) call(ctx context.Context, method string, path string, query url.Values, result any) error {
	target := client.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &ApiError{Status: response.StatusCode, Detail: errorDetail(body)}
	}

	if err := sonic.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func errorDetail(body []byte) string {
	var errorBody web.ErrorBody
	if err := sonic.Unmarshal(body, &errorBody); err != nil || errorBody.Detail == nil {
		return strings.TrimSpace(string(body))
	}
	if detail, ok := errorBody.Detail.(string); ok {
		return detail
	}
	encoded, err := sonic.MarshalString(errorBody.Detail)
	if err != nil {
		return strings.TrimSpace(string(body))
	}
	return encoded
}

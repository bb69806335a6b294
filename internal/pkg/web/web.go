package web

import (
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"net/http"
)

const jsonContentType = "application/json"

// ErrorBody is the body of every failure response.
type ErrorBody struct {
	Detail any `json:"detail"`
}

func JsonResponse(status int, data any, headers Headers) *Response {
	content, err := sonic.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("sonic.Marshal() failed")
		return GetEmptyResponse(http.StatusInternalServerError, nil)
	}

	return &Response{
		Status:      status,
		ContentType: jsonContentType,
		Content:     content,
		Headers:     headers,
	}
}

func ErrorResponse(status int, detail any) *Response {
	return JsonResponse(status, ErrorBody{Detail: detail}, nil)
}

func GetEmptyResponse(status int, headers Headers) *Response {
	return GetResponse(status, []byte(""), headers)
}

func GetResponse(status int, content []byte, headers Headers) *Response {
	return &Response{
		Status:  status,
		Content: content,
		Headers: headers,
	}
}

// NotFound and MethodNotAllowed keep chi's fallbacks in the JSON error shape.
func NotFound(responseWriter http.ResponseWriter, _ *http.Request) {
	ErrorResponse(http.StatusNotFound, "Not Found").Write(responseWriter)
}

func MethodNotAllowed(responseWriter http.ResponseWriter, _ *http.Request) {
	ErrorResponse(http.StatusMethodNotAllowed, "Method Not Allowed").Write(responseWriter)
}

package web

import (
	"github.com/rs/zerolog/log"
	"net/http"
)

type Headers map[string]string

type Response struct {
	Status      int
	ContentType string
	Content     []byte
	Headers     Headers
}

func (response *Response) Write(responseWriter http.ResponseWriter) {
	if response != nil {
		if response.ContentType != "" {
			responseWriter.Header().Set("Content-Type", response.ContentType)
		}
		for k, v := range response.Headers {
			responseWriter.Header().Set(k, v)
		}
		responseWriter.WriteHeader(response.Status)
		_, err := responseWriter.Write(response.Content)

		if err != nil {
			log.Error().Err(err).Msg("http.ResponseWriter.Write() failed")
		}
	} else {
		responseWriter.WriteHeader(http.StatusOK)
	}
}

// Handler adapts a function returning a *Response to http.Handler.
type Handler struct {
	Request func(request *http.Request) *Response
}

func (handler Handler) ServeHTTP(responseWriter http.ResponseWriter, request *http.Request) {
	handler.Request(request).Write(responseWriter)
}

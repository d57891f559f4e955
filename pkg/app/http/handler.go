// Package http provides HTTP utilities including chi-compatible error handling
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/chainsafe/ton-deeplink/pkg/app/errors"
)

// HandlerFunc defines a function that returns an error for clean error handling
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	ErrMsg     string `json:"error"`
	ErrMsgCode int    `json:"code"`
	// ErrorCode is the machine readable kind, e.g. USER_REJECTED.
	ErrorCode string `json:"error_code"`
	Recovery  string `json:"recovery,omitempty"`
}

// HandleError wraps an error-returning HandlerFunc into a standard http.HandlerFunc
// This allows using clean error-returning handlers with any router (chi, http.ServeMux, etc.)
//
// Usage with chi:
//
//	r.Post("/connect", http.HandleError(handler.connect, logger))
func HandleError(h HandlerFunc, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			WriteError(w, logger, err)
		}
	}
}

// WriteError writes err as a JSON error response. Errors that are not
// ServiceErrors are reported as internal and logged.
func WriteError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) {
		if apperrors.IsInternalError(err) && logger != nil {
			logger.Error("request failed", zap.String("error_code", string(svcErr.Code)), zap.Error(err))
		}
		WriteJSON(w, svcErr.StatusCode(), &ErrorResponse{
			ErrMsg:     svcErr.Message,
			ErrMsgCode: svcErr.StatusCode(),
			ErrorCode:  string(svcErr.Code),
			Recovery:   svcErr.Recovery,
		})
		return
	}

	if logger != nil {
		logger.Error("unexpected request failure", zap.Error(err))
	}
	WriteJSON(w, http.StatusInternalServerError, &ErrorResponse{
		ErrMsg:     "Unexpected Service Error",
		ErrMsgCode: http.StatusInternalServerError,
		ErrorCode:  string(apperrors.CodeInternal),
	})
}

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

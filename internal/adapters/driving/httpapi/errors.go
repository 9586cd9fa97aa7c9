package httpapi

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/custodia-labs/dealwatch/internal/core/domain"
)

// Error codes returned in the JSON body.
const (
	codeBadRequest      = "bad_request"
	codeEmptySubject    = "empty_subject"
	codeInvalidInput    = "invalid_input"
	codeNotFound        = "not_found"
	codeNotConfigured   = "not_configured"
	codeSuperseded      = "superseded"
	codeStoreUnavail    = "store_unavailable"
	codeRequestCanceled = "request_canceled"
	codeInternal        = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrEmptySubject, http.StatusBadRequest, codeEmptySubject),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeInvalidInput),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrNotConfigured, http.StatusServiceUnavailable, codeNotConfigured),
		sentinelHandler(domain.ErrSearchSuperseded, http.StatusConflict, codeSuperseded),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavail),
		// 499 is the de facto "client closed request" status.
		sentinelHandler(context.Canceled, 499, codeRequestCanceled),
		sentinelHandler(context.DeadlineExceeded, http.StatusGatewayTimeout, codeRequestCanceled),
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
}

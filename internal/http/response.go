package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type loggerKey struct{}

var discardLogger = func() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}()

// requestLogger returns the logger LoggingMiddleware attached to ctx.
func requestLogger(ctx context.Context) logrus.FieldLogger {
	if log, ok := ctx.Value(loggerKey{}).(logrus.FieldLogger); ok {
		return log
	}
	return discardLogger
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		requestLogger(r.Context()).WithError(err).Error("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// productIDParam reads {product_id} from the route; ok is false for anything but a positive integer.
func productIDParam(r *http.Request) (int64, bool) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		return 0, false
	}
	return productID, true
}

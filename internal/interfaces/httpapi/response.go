package httpapi

import (
	"context"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/goalserve-heatmap/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "goalserve-heatmap"
)

// errorEnvelope keeps the top level "detail" the front end reads next to the
// structured error body.
type errorEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Detail     string           `json:"detail"`
	Error      *googleErrorBody `json:"error"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	writeErrorBody(ctx, w, mapped, err.Error())
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeErrorBody(ctx, w, internalError, "internal server error")
}

func writeErrorBody(ctx context.Context, w http.ResponseWriter, mapped mappedError, msg string) {
	writeJSON(ctx, w, mapped.HTTPStatus, errorEnvelope{
		APIVersion: googleAPIVersion,
		Detail:     msg,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: msg,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: msg,
				},
			},
		},
	})
}

var errorKinds = map[usecase.Kind]mappedError{
	usecase.KindInvalidInput:        {HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
	usecase.KindNotFound:            {HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
	usecase.KindNotYetAvailable:     {HTTPStatus: http.StatusNotFound, Reason: "notYetAvailable", Status: "NOT_FOUND"},
	usecase.KindUpstreamUnavailable: {HTTPStatus: http.StatusInternalServerError, Reason: "upstreamUnavailable", Status: "INTERNAL"},
	usecase.KindDecodeFailure:       {HTTPStatus: http.StatusInternalServerError, Reason: "decodeFailure", Status: "INTERNAL"},
}

var internalError = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// mapError looks up the error kind, never the message text.
func mapError(err error) mappedError {
	if mapped, ok := errorKinds[usecase.KindOf(err)]; ok {
		return mapped
	}
	return internalError
}

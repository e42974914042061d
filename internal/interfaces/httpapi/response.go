package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/snapshot"
	"github.com/newnonsick/Football-APP-Backend/internal/usecase"
)

const internalErrorMessage = "Internal Server Error"

type errorBody struct {
	Error string `json:"error"`
}

// httpErrorBody is the shape of routing-level errors such as unknown paths.
type httpErrorBody struct {
	Code        int    `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

// writeSnapshot serves a cached resource with an ETag derived from the encoded
// body. Map keys are sorted so equal snapshots always hash the same.
func writeSnapshot(ctx context.Context, w http.ResponseWriter, r *http.Request, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeSnapshot")
	defer span.End()

	body, err := sonic.ConfigStd.Marshal(payload)
	if err != nil {
		writeInternalError(ctx, w)
		return
	}

	etag := snapshot.ETag(body)
	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	status := mapError(ctx, err)
	if status == http.StatusInternalServerError {
		writeInternalError(ctx, w)
		return
	}
	writeJSON(ctx, w, status, errorBody{Error: clientMessage(err)})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, errorBody{Error: internalErrorMessage})
}

func writeNotFound(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusNotFound, httpErrorBody{
		Code:        http.StatusNotFound,
		Name:        "Not Found",
		Description: "The requested URL was not found on the server. If you entered the URL manually please check your spelling and try again.",
	})
}

func clientMessage(err error) string {
	var validation *usecase.ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}
	return err.Error()
}

func mapError(ctx context.Context, err error) int {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"bookreviews/internal/httpx"

	"github.com/julienschmidt/httprouter"
)

// readIDParam extracts and validates the named URL parameter added by
// httprouter. Returns an error if the value is non-numeric or less than 1.
func readIDParam(r *http.Request, name string) (int64, error) {
	params := httprouter.ParamsFromContext(r.Context())
	id, err := strconv.ParseInt(params.ByName(name), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

// serverError logs the unexpected error with request context and sends a
// generic 500 body. Internal details never reach the client.
func serverError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
	)
	httpx.Error(w, http.StatusInternalServerError, "server error")
}

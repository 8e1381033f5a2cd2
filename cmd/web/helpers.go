package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jlaasonen/precinct/internal/errors"
	"github.com/jlaasonen/precinct/internal/workflow"
)

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.LogAttrs(r.Context(), slog.LevelError, "server error",
		slog.String("method", method), slog.String("uri", uri), errors.SlogError(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, r *http.Request, status int) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Debug(http.StatusText(status), "method", method, "uri", uri)
	http.Error(w, http.StatusText(status), status)
}

// workflowError translates the workflow error taxonomy to HTTP statuses:
// validation and rule violations map to 422, denials to 403, state conflicts
// to 409, and missing records to 404. Anything else is a server error.
func (app *application) workflowError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *workflow.ValidationError
		violation  *workflow.RuleViolation
		denied     *workflow.PermissionDenied
		conflict   *workflow.StateConflict
	)
	switch {
	case errors.As(err, &validation):
		app.writeJSON(w, r, http.StatusUnprocessableEntity, envelope{
			"error": "validation", "field": validation.Field, "reason": validation.Reason,
		})
	case errors.As(err, &violation):
		app.writeJSON(w, r, http.StatusUnprocessableEntity, envelope{
			"error": "rule_violation", "rule": violation.Rule, "reason": violation.Reason,
		})
	case errors.As(err, &denied):
		app.writeJSON(w, r, http.StatusForbidden, envelope{"error": "permission_denied"})
	case errors.As(err, &conflict):
		app.writeJSON(w, r, http.StatusConflict, envelope{"error": "state_conflict"})
	case errors.Is(err, workflow.ErrNotFound):
		app.writeJSON(w, r, http.StatusNotFound, envelope{"error": "not_found"})
	default:
		app.serverError(w, r, err)
	}
}

type envelope map[string]any

func (app *application) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelError, "encode response", errors.SlogError(err))
	}
}

// maxRequestBody bounds JSON request bodies at 1 MB.
const maxRequestBody = 1 << 20

func (app *application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return errors.Wrap(err, "decode request body")
	}
	return nil
}

// pathID parses the named path value as a positive integer ID.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, workflow.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

package calculator_application

import (
	"encoding/json"
	"errors"
	"net/http"

	locerr "github.com/ERRORIK404/Scientific_Calculator/pkg/local_errors"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, kind locerr.Kind) {
	writeJSON(w, status, errorResponse{Error: msg, Kind: string(kind)})
}

// Предел тела JSON запроса
const maxBodyBytes = 64 << 10

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large", "")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error(), "")
		return false
	}
	return true
}

// failure переводит ошибку предметной области в HTTP статус
func (a *Application) failure(w http.ResponseWriter, login string, err error) {
	var evalErr *locerr.EvalError
	switch {
	case errors.As(err, &evalErr):
		a.log.Info("session.evaluate.failed", "login", login, "kind", evalErr.Kind, "error", evalErr.Msg)
		writeError(w, http.StatusUnprocessableEntity, evalErr.Error(), evalErr.Kind)
	case errors.Is(err, locerr.ErrNoSessionOwner):
		writeError(w, http.StatusUnauthorized, err.Error(), "")
	case errors.Is(err, locerr.ErrNothingToExport), errors.Is(err, locerr.ErrExportNotFound):
		writeError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, locerr.ErrPrecisionOutOfRange),
		errors.Is(err, locerr.ErrInvalidPlotRange),
		errors.Is(err, locerr.ErrInsufficientData),
		errors.Is(err, locerr.ErrUnsupportedSymbolic):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), "")
	default:
		a.internalError(w, "request.failed", err)
	}
}

func (a *Application) internalError(w http.ResponseWriter, event string, err error) {
	a.log.Error(event, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error", "")
}

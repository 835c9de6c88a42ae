package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkarpova/slidedeck-server/internal/logger"
	"github.com/mkarpova/slidedeck-server/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		payload = struct{}{}
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps service errors onto the two client-visible failure kinds.
// Anything else is a system error: logged, reported generically.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	var inputErr *model.InputError
	if errors.As(err, &inputErr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": inputErr.Message})
		return
	}

	var accessErr *model.AccessError
	if errors.As(err, &accessErr) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": accessErr.Message})
		return
	}

	log.Error("handler: request failed", "error", err.Error())
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &model.InputError{Message: "Invalid request body"}
	}
	return nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/zatekoja/surgicalbooking/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an application error onto a status code and a
// typed error body. Internal causes are logged, never returned.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	logHandlerError(r, status, err)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Type == apperrors.ErrorTypeInternal {
		respondWithJSON(w, status, map[string]string{
			"error": "internal server error",
			"type":  string(apperrors.ErrorTypeInternal),
		})
		return
	}

	respondWithJSON(w, status, map[string]string{
		"error": appErr.Message,
		"type":  string(appErr.Type),
	})
}

func statusForError(err error) int {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation:
		return http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeConflict, apperrors.ErrorTypeStale:
		return http.StatusConflict
	case apperrors.ErrorTypeStepOutOfRange:
		return http.StatusUnprocessableEntity
	case apperrors.ErrorTypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

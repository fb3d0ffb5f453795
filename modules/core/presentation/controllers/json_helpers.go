package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/telemetryflow/telemetryflow-core-sub000/modules/core/presentation/controllers/dtos"
	"github.com/telemetryflow/telemetryflow-core-sub000/pkg/serrors"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		panic(err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, &dtos.APIError{Code: code, Message: message})
}

// writeServiceError maps the error taxonomy onto HTTP statuses: validation
// 400, not found 404, conflict 409, domain rule 422, anything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var serr *serrors.Error
	status := http.StatusInternalServerError
	code := "INTERNAL"
	message := "internal server error"
	if errors.As(err, &serr) {
		code = serr.Code
		message = serr.Message
		switch serr.Kind {
		case serrors.KindValidation:
			status = http.StatusBadRequest
		case serrors.KindNotFound:
			status = http.StatusNotFound
		case serrors.KindConflict:
			status = http.StatusConflict
		case serrors.KindDomain:
			status = http.StatusUnprocessableEntity
		}
	}
	writeJSONError(w, status, code, message)
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "BAD_JSON", "malformed request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return false
	}
	return true
}

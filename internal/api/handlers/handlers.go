package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const (
	msgInternalError  = "внутренняя ошибка сервера"
	maxRequestBodyLen = 1 << 20
)

// ErrEmptyBody возвращается, если тело запроса пустое
var ErrEmptyBody = errors.New("handlers: empty request body")

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON читает JSON тело запроса, отклоняя неизвестные поля
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodyLen))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

// RespondJSON пишет ответ в формате JSON
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict 409
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondUnprocessable 422
func RespondUnprocessable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, message)
}

// RespondInternalError 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

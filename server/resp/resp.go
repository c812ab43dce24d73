package resp

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the uniform failure envelope: every error the API
// returns is {"error": "<text>"} with a mapped status code.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteOK(w http.ResponseWriter, object any) {
	writeResp(w, http.StatusOK, object)
}

func WriteCreated(w http.ResponseWriter, object any) {
	writeResp(w, http.StatusCreated, object)
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, message)
}

func WriteForbidden(w http.ResponseWriter, message string) {
	writeError(w, http.StatusForbidden, message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, message)
}

func WritePayloadTooLarge(w http.ResponseWriter, message string) {
	writeError(w, http.StatusRequestEntityTooLarge, message)
}

func WriteUnsupportedMediaType(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnsupportedMediaType, message)
}

func WriteInternalServerError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeResp(w, status, ErrorResponse{Error: message})
}

func writeResp(w http.ResponseWriter, status int, object any) {
	haveObject := object != nil

	if haveObject {
		w.Header().Add("Content-Type", "application/json")
	}

	w.WriteHeader(status)

	if haveObject {
		err := json.NewEncoder(w).Encode(object)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to write standard HTTP response: %v", err), http.StatusInternalServerError)
		}
	}
}

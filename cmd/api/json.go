package main

import (
	"encoding/json"
	"net/http"

	"github.com/farxc/tuition_status/internal/response"
)

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(data)
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	return writeJSON(w, status, &response.ErrorResponse{Error: message})
}

func writeJSONErrorKind(w http.ResponseWriter, status int, kind, message string, details any) error {
	return writeJSON(w, status, &response.ErrorResponse{Error: message, Kind: kind, Details: details})
}

func readJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	return dec.Decode(data)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/disersoft-code/traductor-pmv/internal/panel"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // connection may already be gone
		json.NewEncoder(w).Encode(v)
	}
}

func writeOK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

// writeKind reports a failed operation. Callers match on the kind name.
func writeKind(w http.ResponseWriter, kind panel.Kind) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Message: kind.String()})
}

func writeFailure(w http.ResponseWriter, err error) {
	writeKind(w, panel.KindOf(err))
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, errorResponse{Message: message})
}

func writeForbidden(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusForbidden, errorResponse{Message: message})
}

func writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{Message: panel.Exception.String()})
}

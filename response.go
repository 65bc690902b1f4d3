package main

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

const (
	msgCreated = "Item created successfully"
	msgUpdated = "Item updated successfully"
	msgDeleted = "Item deleted successfully"
)

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, logger *zap.Logger, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("error encoding response", zap.Error(err))
	}
}

// writeSuccess writes a successful envelope. An empty message encodes as null.
func writeSuccess(w http.ResponseWriter, logger *zap.Logger, code int, data any, message string) {
	resp := Response{Success: true, Data: data}
	if message != "" {
		resp.Message = &message
	}
	writeJSON(w, logger, code, resp)
}

// writeFailure writes a failed envelope with null data.
func writeFailure(w http.ResponseWriter, logger *zap.Logger, code int, message string) {
	writeJSON(w, logger, code, Response{Success: false, Message: &message})
}

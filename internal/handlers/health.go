// Package handlers contém os handlers HTTP da aplicação
package handlers

import (
	"encoding/json"
	"net/http"
)

// HealthCheck endpoint para verificar se o servidor está funcionando
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "erede-api",
	})
}

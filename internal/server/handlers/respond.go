// Package handlers содержит HTTP-обработчики REST API сервера CineShelf.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// dataEnvelope - конверт ответов с данными: {"data": ...}.
type dataEnvelope struct {
	Data any `json:"data"`
}

// writeJSON кодирует payload в JSON с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Статус уже ушел клиенту, остается только залогировать
		log.Printf("[Handlers] Ошибка кодирования JSON-ответа: %v", err)
	}
}

// writeData заворачивает payload в конверт {"data": ...}.
func writeData(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, dataEnvelope{Data: payload})
}

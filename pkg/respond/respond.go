package respond

import (
	"encoding/json"
	"net/http"
)

// Message is the body of every error and confirmation response.
type Message struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	JSON(w, r, code, Message{Message: message})
}

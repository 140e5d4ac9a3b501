package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/alfieprojectsdev/parkboard-sub005/internal/reject"
)

func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondWithError writes a business rejection with its mapped status and
// machine code; anything else is a storage/internal failure and comes back
// as a plain 500 so clients know a retry may help.
func RespondWithError(w http.ResponseWriter, err error) {
	if rej, ok := reject.As(err); ok {
		RespondWithJSON(w, rej.HTTPStatus(), errorResponse{Error: rej.Message, Code: string(rej.Code)})
		return
	}
	log.Printf("internal error: %v", err)
	RespondWithJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
}

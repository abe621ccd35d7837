package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"naamd/pkg/types"
)

// errMultipleInputs rejects payloads setting more than one input shape.
var errMultipleInputs = errors.New("set exactly one of name, names or column")

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

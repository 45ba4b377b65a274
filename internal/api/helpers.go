// internal/api/helpers.go
package api

import (
	"encoding/json"
	"net/http"

	"susu-ledger/internal/api/types"
)

func writeErrorBody(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorBody{
		Error: types.ErrorDetail{Code: code, Message: message},
	})
}

package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// httpStatusError is implemented by both module's DomainError types.
type httpStatusError interface {
	error
	HTTPStatus() int
	Code() string
}

// writeJSON encodes v as the response body with the given status, matching
// the rest of the handler package's json.NewEncoder convention.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a domain error to its transport status and a small
// JSON envelope; anything not carrying a Kind is a 500.
func writeError(w http.ResponseWriter, err error) {
	if se, ok := err.(httpStatusError); ok {
		writeJSON(w, se.HTTPStatus(), map[string]string{
			"code":    se.Code(),
			"message": se.Error(),
		})
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// idParam parses the {name} mux path variable as an int64 id.
func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// idFromString parses a raw query-string value as an int64 id.
func idFromString(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func decodeJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// muxVar reads a string path variable.
func muxVar(r *http.Request, key string) string {
	return mux.Vars(r)[key]
}

// parseUintVar reads a numeric path variable.
func parseUintVar(r *http.Request, key string) (uint, error) {
	v, err := strconv.ParseUint(mux.Vars(r)[key], 10, 32)
	return uint(v), err
}

// parseUintQuery reads a numeric query parameter; missing or empty yields 0.
func parseUintQuery(r *http.Request, key string) (uint, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	return uint(v), err
}

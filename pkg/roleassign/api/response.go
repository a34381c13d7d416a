package api

import (
	"encoding/json"
	"net/http"
)

// Response captures a handler result to be rendered once routing returns
type Response struct {
	body        interface{}
	Code        int
	contentType string
}

// Render writes the response to the wire
func (resp *Response) Render(w http.ResponseWriter) {
	if resp.contentType == "" {
		resp.contentType = "application/json"
	}
	w.Header().Set("Content-Type", resp.contentType)
	w.WriteHeader(resp.Code)
	if resp.body != nil {
		json.NewEncoder(w).Encode(resp.body)
	}
}

func wrap(fn func(w http.ResponseWriter, r *http.Request) *Response) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resp := fn(w, r); resp != nil {
			resp.Render(w)
		}
	}
}

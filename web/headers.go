package web

import (
	"net/http"
	"time"
)

// HeaderHandler returns an http.Handler that sets the given headers before calling h.
// With no headers, h is returned unchanged.
func HeaderHandler(h http.Handler, headers map[string]string) http.Handler {
	if len(headers) == 0 {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hdr := w.Header()
		for k, v := range headers {
			hdr.Set(k, v)
		}
		h.ServeHTTP(w, r)
	})
}

// ExpiresHandler marks responses as fresh for the given duration.
// A zero or negative duration leaves h unchanged.
func ExpiresHandler(h http.Handler, expires time.Duration) http.Handler {
	if expires <= 0 {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Expires", time.Now().Add(expires).UTC().Format(http.TimeFormat))
		h.ServeHTTP(w, r)
	})
}

package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/ancientlore/postindex/content"
)

// PostsHandler serves the loader's listing as JSON. The query parameter
// "feed" set to a true value ("1", "true") selects the feed variant that
// includes front matter. A failed load is logged and reported as a 500.
func PostsHandler(l *content.Loader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		var (
			v   any
			err error
		)
		feed, _ := strconv.ParseBool(r.URL.Query().Get("feed"))
		if feed {
			v, err = l.LoadFeed()
		} else {
			v, err = l.Load()
		}
		if err != nil {
			log.Printf("PostsHandler: %s", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		b, err := json.Marshal(v)
		if err != nil {
			log.Printf("PostsHandler: %s", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(b)))
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(b)
	})
}

package api

import (
	_ "embed"
	"net/http"
)

//go:embed chat.html
var chatHTML []byte

// chatPage serves the embedded single-page chat client.
func chatPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(chatHTML)
}

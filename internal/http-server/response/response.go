// Package response holds the plain-text and HTML response helpers shared by
// the handlers. The service's wire contract is mostly plain text and
// redirects; only /events-data speaks JSON.
package response

import "net/http"

// LoginFailedAlert is the body returned on bad credentials: status 200 with
// a client-side alert, never a 401. Historical contract of the login page.
const LoginFailedAlert = "<script>alert('Invalid email or password'); window.location='/login';</script>"

// Text writes msg as a text/plain body with the given status.
func Text(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// HTML writes body as a text/html response with the given status.
func HTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// MethodNotAllowed is the router-wide handler for requests that hit a known
// path with the wrong verb.
func MethodNotAllowed() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		Text(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	}
}

// Package gateway wires the forward proxy and the local panel into one
// listener: proxy-form requests (CONNECT or absolute-URI) go upstream,
// origin-form requests go to the panel and control API.
package gateway

import (
	"net/http"

	"openpims-golang/gateway/internal/middleware"
	"openpims-golang/gateway/internal/panel"
	httppkg "openpims-golang/gateway/internal/pkg/http"
	"openpims-golang/gateway/internal/session"
)

func NewRouter(ctrl *session.Controller) http.Handler {
	h := panel.New(ctrl)

	mux := http.NewServeMux()
	mux.HandleFunc("/", allowMethods(requireRoot(h.HandleIndex), http.MethodGet, http.MethodHead))
	mux.HandleFunc("/login", allowMethods(h.HandleLogin, http.MethodPost))
	mux.HandleFunc("/logout", allowMethods(h.HandleLogout, http.MethodPost))

	mux.HandleFunc("/api/status", allowMethods(h.HandleAPIStatus, http.MethodGet, http.MethodHead))
	mux.HandleFunc("/api/login", allowMethods(h.HandleAPILogin, http.MethodPost))
	mux.HandleFunc("/api/logout", allowMethods(h.HandleAPILogout, http.MethodPost))

	mux.HandleFunc("/health", allowMethods(handleHealth, http.MethodGet, http.MethodHead))

	local := middleware.Recovery(mux)
	local = middleware.Logging(local)
	local = middleware.Auth(local)

	return &dispatcher{proxy: NewProxy(ctrl), local: local}
}

// dispatcher splits the two request shapes arriving on the shared port.
type dispatcher struct {
	proxy *Proxy
	local http.Handler
}

func (d *dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodConnect || r.URL.IsAbs() {
		d.proxy.ServeHTTP(w, r)
		return
	}
	d.local.ServeHTTP(w, r)
}

func allowMethods(h http.HandlerFunc, methods ...string) http.HandlerFunc {
	allowed := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		allowed[m] = struct{}{}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := allowed[r.Method]; ok {
			h(w, r)
			return
		}
		httppkg.WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func requireRoot(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

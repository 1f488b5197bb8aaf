package gateway

import (
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"openpims-golang/gateway/internal/logger"
	httppkg "openpims-golang/gateway/internal/pkg/http"
	"openpims-golang/gateway/internal/pkg/id"
	"openpims-golang/gateway/internal/rewrite"
	"openpims-golang/gateway/internal/session"
)

// Proxy forwards plain-HTTP requests upstream with the rewritten header set
// and tunnels CONNECT requests untouched. TLS payloads cannot be rewritten
// without interception, so HTTPS traffic passes through as-is.
type Proxy struct {
	ctrl      *session.Controller
	transport http.RoundTripper
	now       func() int64
}

func NewProxy(ctrl *session.Controller) *Proxy {
	return &Proxy{
		ctrl: ctrl,
		transport: &http.Transport{
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
		},
		now: func() int64 { return time.Now().Unix() },
	}
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodConnect {
		p.tunnel(w, r)
		return
	}
	if !r.URL.IsAbs() {
		httppkg.WriteError(w, http.StatusBadRequest, "proxy requests must use absolute-form URLs")
		return
	}

	reqID := id.RequestID()
	start := time.Now()

	out := r.Clone(r.Context())
	out.RequestURI = ""
	removeHopByHop(out.Header)

	// A rewrite failure must never block the request; Apply degrades to
	// stripping any stale identity header on its own.
	var identity *rewrite.Identity
	if cred := p.ctrl.Active(); cred != nil {
		identity = &rewrite.Identity{UserID: cred.UserID, Secret: cred.Secret, AppDomain: cred.AppDomain}
	}
	rewrite.Apply(out, identity, p.now())

	logger.Debug("[%s] %s %s identity=%t", reqID, r.Method, out.URL.Host, identity != nil)
	logger.UpstreamHeaders(out.URL.String(), out.Header)

	resp, err := p.transport.RoundTrip(out)
	if err != nil {
		logger.Debug("[%s] upstream error: %v", reqID, err)
		httppkg.WriteError(w, http.StatusBadGateway, "upstream request failed")
		return
	}
	defer resp.Body.Close()

	respHeader := w.Header()
	for k, vs := range resp.Header {
		for _, v := range vs {
			respHeader.Add(k, v)
		}
	}
	removeHopByHop(respHeader)
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)

	if logger.GetLevel() > logger.LogOff {
		logger.Request(r.Method, out.URL.String(), resp.StatusCode, time.Since(start))
	}
}

func (p *Proxy) tunnel(w http.ResponseWriter, r *http.Request) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		httppkg.WriteError(w, http.StatusInternalServerError, "connection hijacking not supported")
		return
	}

	upstream, err := net.DialTimeout("tcp", r.Host, 10*time.Second)
	if err != nil {
		httppkg.WriteError(w, http.StatusBadGateway, "could not reach upstream host")
		return
	}

	client, _, err := hj.Hijack()
	if err != nil {
		upstream.Close()
		return
	}

	_, _ = client.Write([]byte("HTTP/1.1 200 Connection Established\r\n\r\n"))

	go pipe(upstream, client)
	go pipe(client, upstream)
}

func pipe(dst, src net.Conn) {
	defer dst.Close()
	defer src.Close()
	_, _ = io.Copy(dst, src)
}

// Hop-by-hop headers per RFC 7230 §6.1; they describe the client↔proxy leg
// and must not travel upstream.
var hopByHop = []string{
	"Connection",
	"Proxy-Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

func removeHopByHop(h http.Header) {
	for _, token := range strings.Split(h.Get("Connection"), ",") {
		if token = strings.TrimSpace(token); token != "" {
			h.Del(token)
		}
	}
	for _, name := range hopByHop {
		h.Del(name)
	}
}

// Package rewrite decides the final outbound header set for one intercepted
// request. It is stateless per call; the active identity is passed in by the
// caller and read-only here.
package rewrite

import (
	"net/http"
	"net/url"
	"strings"

	"openpims-golang/gateway/internal/derive"
)

// HeaderName is the identity header, always emitted in this exact casing.
const HeaderName = "x-openpims"

// Header is one wire header entry. The rewrite preserves the relative order
// of all entries it does not remove.
type Header struct {
	Name  string
	Value string
}

// Identity is the read-only slice of the active credential the engine needs.
type Identity struct {
	UserID    string
	Secret    string
	AppDomain string
}

// Headers returns the header list to send for a request to targetURL.
//
// Any pre-existing identity header is dropped (case-insensitive match), even
// when id is nil, so a spoofed value can never travel upstream. With an
// active identity exactly one fresh header is appended. The input slice is
// never modified; failures to parse targetURL degrade to the stripped list
// rather than blocking the request.
func Headers(headers []Header, targetURL string, id *Identity, nowUnix int64) []Header {
	out := strip(headers)
	if id == nil {
		return out
	}

	host := hostOf(targetURL)
	if host == "" {
		return out
	}

	sub := derive.Subdomain(id.UserID, id.Secret, host, nowUnix)
	return append(out, Header{Name: HeaderName, Value: "https://" + sub + "." + id.AppDomain})
}

// Apply performs the same decision on an outbound *http.Request for the
// proxy pipeline. net/http canonicalizes header names, so Del covers every
// casing of the identity header.
func Apply(req *http.Request, id *Identity, nowUnix int64) {
	req.Header.Del(HeaderName)
	if id == nil {
		return
	}

	host := req.URL.Hostname()
	if host == "" {
		return
	}

	sub := derive.Subdomain(id.UserID, id.Secret, host, nowUnix)
	req.Header.Set(HeaderName, "https://"+sub+"."+id.AppDomain)
}

func strip(headers []Header) []Header {
	out := make([]Header, 0, len(headers)+1)
	for _, h := range headers {
		if strings.EqualFold(h.Name, HeaderName) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// hostOf extracts the bare host from a request URL: no scheme, no port.
func hostOf(targetURL string) string {
	u, err := url.Parse(targetURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

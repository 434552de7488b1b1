package session

import (
	"net/url"
	"strings"
)

// QueryParam reads a named parameter from the URL's standard query string,
// falling back to a query string embedded after the route fragment. Hash
// routers move parameters there, e.g. "/#/student-signup?loginEmail=a@b.com".
func QueryParam(rawURL, name string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if values := parsed.Query(); values.Has(name) {
		return values.Get(name)
	}
	qs, ok := fragmentQuery(parsed)
	if !ok {
		return ""
	}
	values, err := url.ParseQuery(qs)
	if err != nil {
		return ""
	}
	return values.Get(name)
}

func fragmentQuery(parsed *url.URL) (string, bool) {
	idx := strings.Index(parsed.Fragment, "?")
	if idx < 0 {
		return "", false
	}
	return parsed.Fragment[idx+1:], true
}

// reconstructLink rebuilds a provider sign-in link whose handshake parameters
// ended up inside the fragment. It returns "" unless the fragment query
// carries both oobCode and apiKey.
func reconstructLink(rawURL, origin string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	qs, ok := fragmentQuery(parsed)
	if !ok {
		return ""
	}
	values, err := url.ParseQuery(qs)
	if err != nil {
		return ""
	}
	if !values.Has("oobCode") || !values.Has("apiKey") {
		return ""
	}
	return origin + "/?" + qs
}

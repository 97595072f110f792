package wikicrawl

import (
	"net"
	"net/url"
	"path"
	"strings"
)

// CanonicalURL is the normalized form of a page URL. Two URLs that refer to
// the same page compare equal once canonicalized. Values should only be
// produced by Canonicalize, Resolve or an Extractor.
type CanonicalURL string

// String returns the URL as a string.
func (u CanonicalURL) String() string {
	return string(u)
}

// Host returns the host (with non-default port) of the URL.
func (u CanonicalURL) Host() string {
	parsed, err := url.Parse(string(u))
	if err != nil {
		return ""
	}
	return parsed.Host
}

// defaultPorts maps schemes to their default port strings.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// Canonicalize normalizes an absolute http(s) URL: scheme and host are
// lowercased, default ports are removed, the query and fragment are dropped,
// dot segments are resolved, and the path is re-escaped in a single form so
// that "%C4%9F" and "ğ" produce the same value.
func Canonicalize(rawURL string) (CanonicalURL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", Errorf(EINVALID, "empty URL")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	return canonicalize(u)
}

// Resolve resolves href relative to base and canonicalizes the result.
func Resolve(base CanonicalURL, href string) (CanonicalURL, error) {
	b, err := url.Parse(string(base))
	if err != nil {
		return "", Errorf(EINVALID, "invalid base URL %q: %v", base, err)
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", href, err)
	}
	return canonicalize(b.ResolveReference(ref))
}

func canonicalize(u *url.URL) (CanonicalURL, error) {
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}

	hostname := strings.ToLower(u.Hostname())
	if hostname == "" {
		return "", Errorf(EINVALID, "URL %q has no host", u.String())
	}

	host := hostname
	if port := u.Port(); port != "" && port != defaultPorts[scheme] {
		host = net.JoinHostPort(hostname, port)
	} else if strings.Contains(hostname, ":") {
		host = "[" + hostname + "]"
	}

	p := u.Path
	if p == "" {
		p = "/"
	} else {
		p = path.Clean("/" + p)
	}
	escaped := (&url.URL{Path: p}).EscapedPath()

	return CanonicalURL(scheme + "://" + host + escaped), nil
}

// LinkSet is an ordered set of canonical URLs. Insertion order is kept and
// later duplicates are ignored. The zero value is ready to use; a nil
// *LinkSet behaves as an empty set for reads.
type LinkSet struct {
	urls  []CanonicalURL
	index map[CanonicalURL]struct{}
}

// NewLinkSet returns a LinkSet containing urls in order.
func NewLinkSet(urls ...CanonicalURL) *LinkSet {
	s := &LinkSet{}
	for _, u := range urls {
		s.Add(u)
	}
	return s
}

// Add appends u unless it is already present. Reports whether u was added.
func (s *LinkSet) Add(u CanonicalURL) bool {
	if s.index == nil {
		s.index = make(map[CanonicalURL]struct{})
	}
	if _, ok := s.index[u]; ok {
		return false
	}
	s.index[u] = struct{}{}
	s.urls = append(s.urls, u)
	return true
}

// Contains reports whether u is in the set.
func (s *LinkSet) Contains(u CanonicalURL) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[u]
	return ok
}

// Len returns the number of URLs in the set.
func (s *LinkSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.urls)
}

// URLs returns a copy of the URLs in insertion order.
func (s *LinkSet) URLs() []CanonicalURL {
	if s == nil || len(s.urls) == 0 {
		return nil
	}
	out := make([]CanonicalURL, len(s.urls))
	copy(out, s.urls)
	return out
}

package frontier

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// Fingerprint maps a request to a stable hex digest. Two requests with the
// same method, canonicalized URL, and body always produce the same
// fingerprint, so independent workers agree on identity without talking to
// each other. Headers are deliberately excluded: proxies and per-worker
// user agents must not defeat deduplication.
func Fingerprint(r *Request) (string, error) {
	canonical, err := CanonicalURL(r.URL)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte(strings.ToUpper(r.Method)))
	h.Write([]byte{0})
	h.Write([]byte(canonical))
	h.Write([]byte{0})
	h.Write(r.Body)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// CanonicalURL standardizes a URL so trivially different spellings of the
// same resource fingerprint identically. It lowercases the scheme and host,
// removes default ports, drops the fragment, and sorts query parameters.
func CanonicalURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if u.Scheme == "http" && strings.HasSuffix(u.Host, ":80") {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	}
	if u.Scheme == "https" && strings.HasSuffix(u.Host, ":443") {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	u.Fragment = ""

	// url.Values.Encode sorts keys, giving a stable parameter order.
	q := u.Query()
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Package frontier defines the request value type shared by the queue,
// dupe filter, and scheduler, together with its wire codec and
// fingerprinting rules.
package frontier

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DefaultPriority is assigned to requests that do not set one explicitly.
// Priorities range over the full int domain; higher pops first in the
// priority queue strategy.
const DefaultPriority = 500

// ErrDecode wraps failures to decode a stored payload back into a Request.
// It is distinct from store connectivity errors so callers can choose to
// skip a corrupted entry instead of aborting.
var ErrDecode = errors.New("decode request payload")

// Request is one unit of crawl work. It is immutable after creation and
// only serialized/deserialized at the store boundary.
type Request struct {
	Method     string              `json:"method"`
	URL        string              `json:"url"`
	Body       []byte              `json:"body,omitempty"`
	Headers    map[string][]string `json:"headers,omitempty"`
	Priority   int                 `json:"priority"`
	DontFilter bool                `json:"dont_filter,omitempty"`
}

// NewRequest builds a GET request for url with the default priority.
func NewRequest(url string) *Request {
	return &Request{
		Method:   "GET",
		URL:      url,
		Priority: DefaultPriority,
	}
}

// Encode serializes the request for storage. The encoding is deterministic
// for a given Request value, which the priority queue relies on: pushing
// the same request twice produces byte-identical payloads.
func (r *Request) Encode() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return data, nil
}

// DecodeRequest deserializes a stored payload. Failures wrap ErrDecode.
func DecodeRequest(data []byte) (*Request, error) {
	var r Request
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if r.URL == "" {
		return nil, fmt.Errorf("%w: missing url", ErrDecode)
	}
	return &r, nil
}

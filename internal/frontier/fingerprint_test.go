package frontier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint_EquivalentRequestsAgree(t *testing.T) {
	t.Parallel()

	base := NewRequest("http://example.com/path?a=1&b=2")
	fp, err := Fingerprint(base)
	require.NoError(t, err)
	require.Len(t, fp, 64)

	equivalents := []*Request{
		NewRequest("http://example.com/path?b=2&a=1"),
		NewRequest("HTTP://EXAMPLE.COM/path?a=1&b=2"),
		NewRequest("http://example.com:80/path?a=1&b=2"),
		NewRequest("http://example.com/path?a=1&b=2#section"),
	}
	for _, req := range equivalents {
		got, err := Fingerprint(req)
		require.NoError(t, err)
		assert.Equal(t, fp, got, "url %s should fingerprint identically", req.URL)
	}
}

func TestFingerprint_DistinctRequestsDiffer(t *testing.T) {
	t.Parallel()

	base := NewRequest("http://example.com/path")
	fp, err := Fingerprint(base)
	require.NoError(t, err)

	otherURL := NewRequest("http://example.com/other")
	otherFP, err := Fingerprint(otherURL)
	require.NoError(t, err)
	assert.NotEqual(t, fp, otherFP)

	post := NewRequest("http://example.com/path")
	post.Method = "POST"
	postFP, err := Fingerprint(post)
	require.NoError(t, err)
	assert.NotEqual(t, fp, postFP)

	withBody := NewRequest("http://example.com/path")
	withBody.Method = "POST"
	withBody.Body = []byte(`{"page":1}`)
	bodyFP, err := Fingerprint(withBody)
	require.NoError(t, err)
	assert.NotEqual(t, postFP, bodyFP)
}

func TestFingerprint_IgnoresHeadersAndPriority(t *testing.T) {
	t.Parallel()

	plain := NewRequest("http://example.com/")
	fp, err := Fingerprint(plain)
	require.NoError(t, err)

	decorated := NewRequest("http://example.com/")
	decorated.Headers = map[string][]string{"User-Agent": {"worker-7"}}
	decorated.Priority = 900
	got, err := Fingerprint(decorated)
	require.NoError(t, err)
	assert.Equal(t, fp, got)
}

func TestFingerprint_Deterministic(t *testing.T) {
	t.Parallel()

	req := NewRequest("https://example.com/items?id=42")
	first, err := Fingerprint(req)
	require.NoError(t, err)
	for range 5 {
		again, err := Fingerprint(req)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestCanonicalURL_Invalid(t *testing.T) {
	t.Parallel()

	_, err := CanonicalURL("http://exa mple.com/%zz")
	assert.Error(t, err)
}

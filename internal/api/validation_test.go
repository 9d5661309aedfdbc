package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{name: "HTTPS", input: "https://example.com", expected: "https://example.com"},
		{name: "HTTP", input: "http://example.com/path", expected: "http://example.com/path"},
		{name: "NoSchemeDefaultsToHTTPS", input: "example.com", expected: "https://example.com"},
		{name: "TrimsWhitespace", input: "  https://example.com  ", expected: "https://example.com"},
		{name: "Empty", input: "", expectError: true},
		{name: "FTPScheme", input: "ftp://example.com", expectError: true},
		{name: "FileScheme", input: "file:///etc/passwd", expectError: true},
		{name: "Localhost", input: "http://localhost", expectError: true},
		{name: "LocalhostSubdomain", input: "http://app.localhost", expectError: true},
		{name: "Loopback", input: "http://127.0.0.1:8080", expectError: true},
		{name: "AllZeros", input: "http://0.0.0.0", expectError: true},
		{name: "PrivateTenRange", input: "http://10.1.2.3", expectError: true},
		{name: "PrivateOneSevenTwo", input: "http://172.16.0.1", expectError: true},
		{name: "PrivateOneNineTwo", input: "http://192.168.0.1", expectError: true},
		{name: "LinkLocal", input: "http://169.254.169.254", expectError: true},
		{name: "PublicIP", input: "http://93.184.216.34", expected: "http://93.184.216.34"},
		{name: "PathTraversal", input: "https://example.com/../../etc", expectError: true},
		{name: "TooLong", input: "https://example.com/" + strings.Repeat("a", 2048), expectError: true},
		{name: "MissingHost", input: "https://", expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := validateURL(tc.input)
			if tc.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateID()
		assert.Len(t, id, 26, "ULIDs are 26 characters")
		assert.False(t, seen[id], "IDs must be unique")
		seen[id] = true
	}
}

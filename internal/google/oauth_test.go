package google

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		access  string
		refresh string
		wantErr bool
	}{
		{name: "valid", data: "acc123 ref456", access: "acc123", refresh: "ref456"},
		{name: "trailing newline", data: "acc123 ref456\n", access: "acc123", refresh: "ref456"},
		{name: "empty", data: "", wantErr: true},
		{name: "single field", data: "acc123", wantErr: true},
		{name: "too many fields", data: "a b c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access, refresh, err := parseToken([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.access, access)
			assert.Equal(t, tt.refresh, refresh)
		})
	}
}

func TestUserCacheDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
	assert.Equal(t, "/tmp/custom-cache", userCacheDir())
	assert.Equal(t, filepath.Join("/tmp/custom-cache", "inboxpilot", "google.token"), tokenFilePath())
}

package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		info    BuildInfo
		want    string
		without string
	}{
		{
			name:    "local build",
			info:    BuildInfo{Version: "0.1.0", Commit: "unknown", Date: "unknown"},
			want:    "salesquery v0.1.0\nRead-only sales reports",
			without: "commit",
		},
		{
			name: "release build",
			info: BuildInfo{Version: "1.2.3", Commit: "4f2c9e1", Date: "2026-10-01"},
			want: "salesquery v1.2.3\ncommit 4f2c9e1, built 2026-10-01\n",
		},
		{
			name: "commit only",
			info: BuildInfo{Version: "dev", Commit: "4f2c9e1"},
			want: "commit 4f2c9e1, built unknown\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(tt.info)
			var buf bytes.Buffer
			cmd.SetOut(&buf)
			cmd.SetArgs([]string{})

			require.NoError(t, cmd.Execute())
			assert.Contains(t, buf.String(), tt.want)
			if tt.without != "" {
				assert.NotContains(t, buf.String(), tt.without)
			}
		})
	}
}

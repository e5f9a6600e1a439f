package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	tests := []struct {
		name         string
		setup        func(t *testing.T, tmpDir string)
		args         []string
		expectedExit int
	}{
		{
			name: "Declined event with valid config",
			setup: func(t *testing.T, tmpDir string) {
				content := "github.com/org/repo:\n  type: none\n"
				require.NoError(t, os.WriteFile(tmpDir+"/repositories.yaml", []byte(content), 0o600))
			},
			args:         []string{"cid", "dispatch", "github.com/org/repo", "main"},
			expectedExit: 0,
		},
		{
			name:         "Error with missing config",
			setup:        func(*testing.T, string) {},
			args:         []string{"cid", "dispatch", "github.com/org/repo", "main"},
			expectedExit: 1,
		},
		{
			name: "Error with malformed event",
			setup: func(t *testing.T, tmpDir string) {
				require.NoError(t, os.WriteFile(tmpDir+"/repositories.yaml", []byte("{}\n"), 0o600))
			},
			args:         []string{"cid", "dispatch", "github.com/org/repo", "main", "dangling"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			tt.setup(t, tmpDir)
			t.Chdir(tmpDir)

			os.Args = tt.args
			assert.Equal(t, tt.expectedExit, run())
		})
	}
}

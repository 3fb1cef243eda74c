package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		errContains string
		wantErr     bool
	}{
		{name: "yaml extension", path: "screenings/sarah.yaml"},
		{name: "yml extension", path: "screenings/sarah.yml"},
		{name: "uppercase extension", path: "screenings/SARAH.YAML"},
		{name: "wrong extension", path: "screenings/sarah.json", wantErr: true, errContains: "must have .yaml or .yml extension"},
		{name: "traversal", path: "../secrets.yaml", wantErr: true, errContains: "directory traversal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateConfigPath(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(got))
		})
	}
}

func TestPrepareOutputPath(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "nested", "deeper", "report.json")

	got, err := PrepareOutputPath(target)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = PrepareOutputPath("../report.json")
	assert.Error(t, err)
}

func TestJoinAndValidate(t *testing.T) {
	tmpDir := t.TempDir()

	got, err := JoinAndValidate(tmpDir, "sarah", "report.html")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "sarah", "report.html"), got)

	_, err = JoinAndValidate(tmpDir, "..", "etc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory traversal")

	_, err = JoinAndValidate(tmpDir, "/etc/passwd")
	require.NoError(t, err, "absolute elements are joined beneath the base")
}

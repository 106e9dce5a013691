package version

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersionInfo(t *testing.T) {
	prev := Version
	Version = "1.2.3"
	t.Cleanup(func() { Version = prev })

	info := GetVersionInfo()
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Contains(t, info.String(), "Version: 1.2.3")

	raw, err := info.JSON()
	require.NoError(t, err)
	var decoded Info
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, info, decoded)
}

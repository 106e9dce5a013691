package version

import (
	"encoding/json"
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/ncobase/taskapi/version.Version=..." at build time.
var (
	// Version is the release of the binary.
	Version = "0.0.0"

	// Branch is the branch the binary was built from.
	Branch = "unknown"

	// Revision is the short commit hash of the source tree.
	Revision = "unknown"

	// BuiltAt is the build time.
	BuiltAt = "unknown"
)

// Info contains version information
type Info struct {
	Version   string `json:"version"`
	Branch    string `json:"branch"`
	Revision  string `json:"revision"`
	BuiltAt   string `json:"builtAt"`
	GoVersion string `json:"goVersion"`
}

// GetVersionInfo returns the build information of the running binary.
func GetVersionInfo() Info {
	return Info{
		Version:   Version,
		Branch:    Branch,
		Revision:  Revision,
		BuiltAt:   BuiltAt,
		GoVersion: runtime.Version(),
	}
}

// String returns a string representation of version information
func (i Info) String() string {
	return fmt.Sprintf("Version: %s\nBranch: %s\nRevision: %s\nBuilt At: %s\nGo Version: %s",
		i.Version, i.Branch, i.Revision, i.BuiltAt, i.GoVersion)
}

// JSON returns a JSON representation of version information
func (i Info) JSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Package version exposes the build information of the taskapi binary.
//
// The variables are set at build time:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/taskapi/version.Version=1.2.3 \
//	  -X github.com/ncobase/taskapi/version.Branch=main \
//	  -X github.com/ncobase/taskapi/version.Revision=abc123 \
//	  -X 'github.com/ncobase/taskapi/version.BuiltAt=$(date)'" ./cmd/taskapi
//
// The values are printed by "taskapi version" and reported by GET /health.
package version

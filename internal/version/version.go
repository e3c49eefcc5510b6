package version

import (
	"fmt"
	"runtime"
)

// Version is overridden at build time with -ldflags "-X bookcanvas/internal/version.Version=...".
var Version = "0.1.0-dev"

// String returns the version with the Go toolchain and platform.
func String() string {
	return fmt.Sprintf("%s (%s %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Package version exposes the build version of the sg binary.
package version

// value is overridden at build time via
// -ldflags "-X github.com/skillguard/skillguard/internal/version.value=v1.2.3".
var value = "v0.1.0-dev"

// Value returns the version string stamped into the binary.
func Value() string {
	return value
}

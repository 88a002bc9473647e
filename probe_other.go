//go:build !linux

package dtoverlay

// kernelRelease is only available on Linux.
func kernelRelease() (string, error) {
	return "", ErrUnsupportedPlatform
}

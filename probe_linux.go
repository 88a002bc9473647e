//go:build linux

package dtoverlay

import "golang.org/x/sys/unix"

// kernelRelease returns the kernel release string (e.g., "6.1.55-6.4.0-devel").
func kernelRelease() (string, error) {
	var uname unix.Utsname
	if err := unix.Uname(&uname); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(uname.Release[:]), nil
}

//go:build !linux

package file

import "os"

// adviseSequential is a no-op where posix_fadvise is unavailable.
func adviseSequential(*os.File) {}

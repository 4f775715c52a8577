//go:build !linux && !darwin

package cache

import "os"

const metaTimeLayout = "2006-01-02 15:04:05"

// Without a portable stat for ctime/atime, fall back to mtime for all
// three timestamps.
func fileTimes(fi os.FileInfo) (ctime, mtime, atime string) {
	mtime = fi.ModTime().Format(metaTimeLayout)
	return mtime, mtime, mtime
}

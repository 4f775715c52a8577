//go:build darwin

package cache

import (
	"os"
	"syscall"
	"time"
)

const metaTimeLayout = "2006-01-02 15:04:05"

func fileTimes(fi os.FileInfo) (ctime, mtime, atime string) {
	mtime = fi.ModTime().Format(metaTimeLayout)
	ctime, atime = mtime, mtime
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		ctime = time.Unix(st.Ctimespec.Sec, st.Ctimespec.Nsec).Format(metaTimeLayout)
		atime = time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec).Format(metaTimeLayout)
	}
	return ctime, mtime, atime
}

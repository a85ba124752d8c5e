//go:build linux || darwin || freebsd

package logging

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

const openNonBlock = unix.O_NONBLOCK

func lockFile(fd *os.File) error { return fcntlLock(fd, unix.F_WRLCK) }

func unlockFile(fd *os.File) error { return fcntlLock(fd, unix.F_UNLCK) }

// fcntlLock takes or drops a whole-file advisory lock, waiting for it.
func fcntlLock(fd *os.File, typ int16) error {
	rc, err := fd.SyscallConn()
	if err != nil {
		return err
	}
	lk := unix.Flock_t{Type: typ, Whence: io.SeekStart}
	var lockErr error
	if err := rc.Control(func(d uintptr) {
		lockErr = unix.FcntlFlock(d, unix.F_SETLKW, &lk)
	}); err != nil {
		return err
	}
	return lockErr
}

func checkWritableDir(dir string) error {
	return unix.Access(dir, unix.W_OK)
}

func openFileLimits() (cur, maximum uint64) {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return 0, 0
	}
	return uint64(rl.Cur), uint64(rl.Max)
}

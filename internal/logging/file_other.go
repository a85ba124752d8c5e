//go:build !linux && !darwin && !freebsd

package logging

import (
	"fmt"
	"os"
	"syscall"
)

const openNonBlock = 0

func lockFile(*os.File) error { return nil }

func unlockFile(*os.File) error { return nil }

func checkWritableDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s: %w", dir, syscall.ENOTDIR)
	}
	return nil
}

func openFileLimits() (cur, maximum uint64) { return 0, 0 }

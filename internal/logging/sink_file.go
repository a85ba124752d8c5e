package logging

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"syscall"

	"github.com/smazurov/complog/internal/metrics"
)

// fileSink appends full records to a file, opened and closed per record.
type fileSink struct {
	path string
}

func (s fileSink) write(r *record) {
	r.renderBody(r.renderPrefix())
	if s.path == "" {
		return
	}
	if r.f.lockFiles {
		r.f.appendLocked(s.path, r)
	} else {
		r.f.appendUnlocked(s.path, r)
	}
}

// fileLock returns the in-process lock of path. The advisory file lock only
// excludes other processes.
func (f *Facility) fileLock(path string) *sync.Mutex {
	mu, _ := f.fileLocks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (f *Facility) appendLocked(path string, r *record) {
	line := r.line()

	mu := f.fileLock(path)
	mu.Lock()
	defer mu.Unlock()

	fd, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE|os.O_SYNC, 0o644)
	if err != nil {
		f.fileAccessError(path, err, line)
		return
	}
	f.openFiles.Add(1)
	defer func() {
		_ = fd.Close()
		f.openFiles.Add(-1)
	}()

	if err := lockFile(fd); err != nil {
		f.fileAccessError(path, err, line)
		return
	}
	defer func() { _ = unlockFile(fd) }()

	if n, err := fd.Write(line); err != nil || n < len(line) {
		f.shortWrite()
	}
	if r.enrich {
		_, _ = fd.WriteString(f.DebugInfo())
	}
}

func (f *Facility) appendUnlocked(path string, r *record) {
	line := r.line()

	fd, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE|openNonBlock, 0o644)
	if err != nil {
		f.fileAccessError(path, err, line)
		return
	}
	f.openFiles.Add(1)
	defer func() {
		_ = fd.Close()
		f.openFiles.Add(-1)
	}()

	if n, err := fd.Write(line); err != nil || n < len(line) {
		f.shortWrite()
	}
	if r.enrich {
		_, _ = fd.WriteString(f.DebugInfo())
	}
}

func (f *Facility) shortWrite() {
	metrics.SinkError("file")
	f.writeStderr([]byte("Error: couldn't complete write to the log file, ensure disk has not filled up\n"))
}

// fileAccessError reports a log file that could not be opened or locked,
// along with the record that was lost.
func (f *Facility) fileAccessError(path string, err error, line []byte) {
	metrics.SinkError("file")
	e, _ := f.systemError(ErrCodeFileLog)
	f.writeStderr(fmt.Appendf(nil, "Error %s : %s : status %d on file %s message was:\n%s",
		e.Label, e.Message, errnoOf(err), path, line))
}

func (f *Facility) systemError(code int) (ErrorEntry, bool) {
	fam, ok := f.families.resolve(FamilySystem)
	if !ok {
		return ErrorEntry{}, false
	}
	return fam.Lookup(code)
}

// errnoOf extracts the OS error number wrapped in err, or -1.
func errnoOf(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return -1
}

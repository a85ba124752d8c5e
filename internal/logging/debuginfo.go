package logging

import (
	"runtime"
	"strconv"

	"github.com/prometheus/procfs"
)

const maxBacktraceFrames = 256

// DebugInfo renders a backtrace of the calling goroutine followed by the
// process file descriptor usage.
func (f *Facility) DebugInfo() string {
	pcs := make([]uintptr, maxBacktraceFrames)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var lines []string
	size := 0
	for {
		fr, more := frames.Next()
		line := fr.Function + " " + fr.File + ":" + strconv.Itoa(fr.Line)
		lines = append(lines, line)
		size += len(line) + 1
		if !more {
			break
		}
	}

	cur, maximum := openFileLimits()
	buf := NewBuffer(size + 256)
	buf.Cat("\nDEBUG INFO -->\nbacktrace:\n")
	for _, line := range lines {
		buf.Cat(line)
		buf.Cat("\n")
	}
	buf.Printf("\nopen_fd_count   = %-6d\n", f.openFDCount())
	buf.Printf("rlimit_cur      = %-6d\n", cur)
	buf.Printf("rlimit_max      = %-6d\n", maximum)
	buf.Cat("<--DEBUG INFO\n\n")
	return buf.String()
}

// openFDCount returns the number of descriptors the process has open, or
// the number of log files the facility has open when /proc is unavailable.
func (f *Facility) openFDCount() int64 {
	p, err := procfs.Self()
	if err == nil {
		if n, err := p.FileDescriptorsLen(); err == nil {
			return int64(n)
		}
	}
	return f.openFiles.Load()
}

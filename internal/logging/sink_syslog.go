package logging

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/coreos/go-systemd/v22/journal"

	"github.com/smazurov/complog/internal/metrics"
)

// SystemLogger delivers one line to the system log at a priority.
type SystemLogger interface {
	Log(priority journal.Priority, msg string) error
}

// syslogSink writes records to the system log, opened on first use.
type syslogSink struct {
	f      *Facility
	once   sync.Once
	logger SystemLogger
}

func newSyslogSink(f *Facility, logger SystemLogger) *syslogSink {
	s := &syslogSink{f: f, logger: logger}
	if logger != nil {
		s.once.Do(func() {})
	}
	return s
}

func (s *syslogSink) open() SystemLogger {
	s.once.Do(func() {
		s.logger = openSystemLog(s.f.ProgramName(), s.f.pid, writerLogger{f: s.f})
	})
	return s.logger
}

func (s *syslogSink) write(r *record) {
	logger := s.open()
	r.renderBody(r.renderShortPrefix())

	pri := r.level.Priority()
	if err := logger.Log(pri, r.tc.buf.String()); err != nil {
		metrics.SinkError("syslog")
	}
	if !r.enrich {
		return
	}
	for _, line := range strings.Split(r.f.DebugInfo(), "\n") {
		if line == "" {
			continue
		}
		_ = logger.Log(pri, line)
	}
}

// openSystemLog prefers the systemd journal, then the syslog daemon, then
// the fallback.
func openSystemLog(tag string, pid int, fallback SystemLogger) SystemLogger {
	if journal.Enabled() {
		return journalLogger{tag: tag, pid: strconv.Itoa(pid)}
	}
	if l, err := dialSyslog(tag); err == nil {
		return l
	}
	return fallback
}

type journalLogger struct {
	tag string
	pid string
}

func (l journalLogger) Log(priority journal.Priority, msg string) error {
	return journal.Send(msg, priority, map[string]string{
		"SYSLOG_IDENTIFIER": l.tag,
		"SYSLOG_PID":        l.pid,
	})
}

// writerLogger writes system log lines to the facility's stderr.
type writerLogger struct {
	f *Facility
}

func (l writerLogger) Log(priority journal.Priority, msg string) error {
	l.f.streamMu.Lock()
	defer l.f.streamMu.Unlock()
	_, err := fmt.Fprintf(l.f.stderr, "<%d>%s\n", priority, msg)
	return err
}

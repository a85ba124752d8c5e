//go:build !windows && !plan9

package logging

import (
	"log/syslog"

	"github.com/coreos/go-systemd/v22/journal"
)

type syslogLogger struct {
	w *syslog.Writer
}

func dialSyslog(tag string) (SystemLogger, error) {
	w, err := syslog.New(syslog.LOG_USER|syslog.LOG_NOTICE, tag)
	if err != nil {
		return nil, err
	}
	return syslogLogger{w: w}, nil
}

func (l syslogLogger) Log(priority journal.Priority, msg string) error {
	switch priority {
	case journal.PriEmerg:
		return l.w.Emerg(msg)
	case journal.PriAlert:
		return l.w.Alert(msg)
	case journal.PriCrit:
		return l.w.Crit(msg)
	case journal.PriErr:
		return l.w.Err(msg)
	case journal.PriWarning:
		return l.w.Warning(msg)
	case journal.PriNotice:
		return l.w.Notice(msg)
	case journal.PriInfo:
		return l.w.Info(msg)
	default:
		return l.w.Debug(msg)
	}
}

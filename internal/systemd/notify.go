package systemd

import (
	"context"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
)

// Notifier sends sd_notify state changes. Outside systemd every call is a
// no-op.
type Notifier struct {
	notify func(unsetEnv bool, state string) (bool, error)
	// watchdog reports the interval systemd expects pings at, zero when
	// the watchdog is disabled.
	watchdog func() (time.Duration, error)
}

// NewNotifier returns a notifier bound to $NOTIFY_SOCKET.
func NewNotifier() *Notifier {
	return &Notifier{
		notify: daemon.SdNotify,
		watchdog: func() (time.Duration, error) {
			return daemon.SdWatchdogEnabled(false)
		},
	}
}

// Ready tells systemd startup finished. It reports whether the
// notification was delivered.
func (n *Notifier) Ready() (bool, error) {
	return n.notify(false, daemon.SdNotifyReady)
}

// Stopping tells systemd shutdown began.
func (n *Notifier) Stopping() (bool, error) {
	return n.notify(false, daemon.SdNotifyStopping)
}

// Reloading tells systemd the configuration is being re-read. Ready must
// follow once it is applied.
func (n *Notifier) Reloading() (bool, error) {
	return n.notify(false, daemon.SdNotifyReloading)
}

// Status sets the free-form status line shown by systemctl status.
func (n *Notifier) Status(status string) (bool, error) {
	return n.notify(false, "STATUS="+status)
}

// RunWatchdog pings the watchdog at half the configured interval until ctx
// ends. It returns at once when the watchdog is disabled.
func (n *Notifier) RunWatchdog(ctx context.Context) error {
	interval, err := n.watchdog()
	if err != nil || interval <= 0 {
		return err
	}

	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := n.notify(false, daemon.SdNotifyWatchdog); err != nil {
				return err
			}
		}
	}
}

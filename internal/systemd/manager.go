package systemd

import (
	"context"
	"fmt"

	"github.com/coreos/go-systemd/v22/dbus"
)

// Manager reads unit state over D-Bus.
type Manager struct {
	conn *dbus.Conn
}

// NewManager connects to the user bus when user is set, otherwise to the
// system bus.
func NewManager(ctx context.Context, user bool) (*Manager, error) {
	connect := dbus.NewSystemConnectionContext
	if user {
		connect = dbus.NewUserConnectionContext
	}
	conn, err := connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect to systemd: %w", err)
	}
	return &Manager{conn: conn}, nil
}

// GetServiceStatus retrieves the ActiveState property of a systemd unit.
func (m *Manager) GetServiceStatus(ctx context.Context, unit string) (string, error) {
	prop, err := m.conn.GetUnitPropertyContext(ctx, unit, "ActiveState")
	if err != nil {
		return "", err
	}
	// ActiveState is a D-Bus string; Value.String() would quote it
	if s, ok := prop.Value.Value().(string); ok {
		return s, nil
	}
	return prop.Value.String(), nil
}

// Close cleanly closes the D-Bus connection.
func (m *Manager) Close() {
	if m.conn != nil {
		m.conn.Close()
	}
}

//go:build windows || plan9

package logging

import "errors"

func dialSyslog(string) (SystemLogger, error) {
	return nil, errors.New("syslog is not available on this platform")
}

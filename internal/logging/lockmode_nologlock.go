//go:build nologlock

package logging

const defaultLockFiles = false

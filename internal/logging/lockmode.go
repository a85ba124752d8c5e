//go:build !nologlock

package logging

const defaultLockFiles = true

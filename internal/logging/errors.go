package logging

import "errors"

var (
	// ErrFamilyReserved is returned when a caller asks for the system family number.
	ErrFamilyReserved = errors.New("error family 0 is reserved for system errors")
	// ErrFamilyRange is returned for family numbers outside [-1, MaxFamilies).
	ErrFamilyRange = errors.New("error family number out of range")
	// ErrFamilyInUse is returned when the requested family number is already registered.
	ErrFamilyInUse = errors.New("error family number already registered")
	// ErrFamilyTableFull is returned when every family slot is taken.
	ErrFamilyTableFull = errors.New("error family table is full")
	// ErrNameTooLong is returned when a name does not fit its fixed field.
	ErrNameTooLong = errors.New("name too long")
	// ErrInvalidLogPath is returned when the directory of a log file is not writable.
	ErrInvalidLogPath = errors.New("invalid log path")
	// ErrPathTooLong is returned when a log file path exceeds MaxPathLen.
	ErrPathTooLong = errors.New("log path too long")
	// ErrUnknownComponent is returned when a component name cannot be resolved.
	ErrUnknownComponent = errors.New("unknown log component")
	// ErrUnknownLevel is returned when a level name cannot be resolved.
	ErrUnknownLevel = errors.New("unknown log level")
	// ErrLevelPinned is returned when a level set from the environment is
	// changed through a management request.
	ErrLevelPinned = errors.New("log level pinned by environment")
)

// Package logging provides a component-leveled diagnostic logging facility.
//
// # Overview
//
// Every message is logged on behalf of a component (COMPONENT_FSAL,
// COMPONENT_NLM, ...) at a level from the level table. Each component has its
// own threshold and destination; a message passes when its level is at or
// below the component threshold. Filtered messages cost one atomic load.
//
// Levels, most severe first:
//
//	NIV_NULL       facility notices, always delivered
//	NIV_FATAL      delivered, then cleanup functions run and the process exits
//	NIV_MAJ
//	NIV_CRIT
//	NIV_WARN
//	NIV_EVENT      default threshold
//	NIV_INFO
//	NIV_DEBUG
//	NIV_MID_DEBUG
//	NIV_FULL_DEBUG
//
// # Usage
//
// Name the execution context once, then log through it:
//
//	ctx = logging.WithThreadName(ctx, "worker-1")
//	logging.Warn(ctx, logging.ComponentFSAL, "disk=%d", 42)
//
// A file destination produces lines like:
//
//	09/03/2025 14:02:07 epoch=1741528927 : host : prog-123[worker-1] :main.run :disk=42
//
// # Destinations
//
//	SYSLOG   systemd journal when available, else the syslog daemon
//	STDOUT   standard output
//	STDERR   standard error
//	TEST     message body only on standard output
//	<path>   appended to a file, opened per record
//
// File destinations take a whole-file write lock around each record unless
// the binary is built with the nologlock tag.
//
// # Configuration
//
// Environment variables named after components pin their level:
//
//	COMPONENT_FSAL=NIV_DEBUG ./complog serve
//
// The [log] block of the configuration file sets the remaining levels:
//
//	[log]
//	destination = "/var/log/complog.log"
//	COMPONENT_ALL = "NIV_EVENT"
//	COMPONENT_NLM = "NIV_FULL_DEBUG"
//
// The binary's own modules log through GetLogger, which returns a
// *slog.Logger bound to a component.
package logging

package logging

import (
	"strings"
)

// MaxPathLen bounds the path of a file destination.
const MaxPathLen = 4096

// DestinationKind selects the sink a component's records go to.
type DestinationKind int

const (
	DestSyslog DestinationKind = iota
	DestFile
	DestStdout
	DestStderr
	DestTest
	DestBuffer
)

var destinationNames = map[DestinationKind]string{
	DestSyslog: "SYSLOG",
	DestFile:   "FILE",
	DestStdout: "STDOUT",
	DestStderr: "STDERR",
	DestTest:   "TEST",
	DestBuffer: "BUFFER",
}

// String implements fmt.Stringer.
func (k DestinationKind) String() string {
	if name, ok := destinationNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Destination is where a component's records are delivered. Path is only
// meaningful for DestFile and Buffer only for DestBuffer.
type Destination struct {
	Kind   DestinationKind
	Path   string
	Buffer *Buffer
}

// String renders the destination the way it is written in configuration.
func (d Destination) String() string {
	if d.Kind == DestFile {
		return d.Path
	}
	return d.Kind.String()
}

// sameAs reports whether switching from d to other is a no-op.
func (d Destination) sameAs(other Destination) bool {
	if d.Kind != other.Kind {
		return false
	}
	switch d.Kind {
	case DestFile:
		return strings.EqualFold(d.Path, other.Path)
	case DestBuffer:
		return d.Buffer == other.Buffer
	default:
		return true
	}
}

// parseDestinationKind maps the destination keywords. Anything else is a path.
func parseDestinationKind(target string) (DestinationKind, bool) {
	switch strings.ToUpper(target) {
	case "SYSLOG":
		return DestSyslog, true
	case "STDERR":
		return DestStderr, true
	case "STDOUT":
		return DestStdout, true
	case "TEST":
		return DestTest, true
	default:
		return DestFile, false
	}
}

package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/smazurov/complog/internal/events"
)

const (
	// MaxProgramNameLen bounds the program name rendered in every prefix.
	MaxProgramNameLen = 1023
	// MaxHostNameLen bounds the host name rendered in every prefix.
	MaxHostNameLen = 255

	defaultMaxContexts = 4096
	defaultHistorySize = 1000
)

// Options configures a Facility.
type Options struct {
	ProgramName string
	HostName    string

	// Stdout and Stderr back the STDOUT, STDERR and TEST destinations.
	// Stderr also receives sink failure reports.
	Stdout io.Writer
	Stderr io.Writer

	// LockFiles serializes file destinations with a whole-file write lock.
	LockFiles bool

	// MaxContexts bounds the number of live thread contexts. Zero means
	// unlimited.
	MaxContexts int
	// HistorySize is the capacity of the record history. Zero disables it.
	HistorySize int
	// BufferSize is the capacity of each rendering buffer.
	BufferSize int

	// SystemLog replaces the lazily opened system log.
	SystemLog SystemLogger

	Exit   func(code int)
	Getenv func(key string) (string, bool)
	Now    func() time.Time
	Bus    *events.Bus
}

// DefaultOptions returns the options of the process-wide facility.
func DefaultOptions() Options {
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	return Options{
		ProgramName: filepath.Base(os.Args[0]),
		HostName:    host,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		LockFiles:   defaultLockFiles,
		MaxContexts: defaultMaxContexts,
		HistorySize: defaultHistorySize,
		BufferSize:  LogBufferLen,
	}
}

// Facility is an independent logging facility: a component table, an error
// family registry and the sinks records are delivered to.
type Facility struct {
	components *[NumComponents]componentState
	families   *familyRegistry
	threads    *threadManager
	cleanups   cleanupList
	history    *RingBuffer

	programName atomic.Pointer[string]
	hostName    atomic.Pointer[string]
	pid         int

	stdout    io.Writer
	stderr    io.Writer
	streamMu  sync.Mutex
	lockFiles bool
	fileLocks sync.Map // path -> *sync.Mutex
	openFiles atomic.Int64

	syslog *syslogSink

	exit   func(int)
	getenv func(string) (string, bool)
	now    func() time.Time
	bus    *events.Bus
	seq    atomic.Uint64
}

// New creates a facility. Zero-valued writers and hooks fall back to the
// process defaults.
func New(opts Options) *Facility {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = LogBufferLen
	}
	if opts.MaxContexts < 0 {
		opts.MaxContexts = 0
	}
	if opts.Exit == nil {
		opts.Exit = os.Exit
	}
	if opts.Getenv == nil {
		opts.Getenv = os.LookupEnv
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	f := &Facility{
		components: newComponentTable(),
		families:   newFamilyRegistry(),
		threads:    newThreadManager(opts.MaxContexts, opts.BufferSize),
		pid:        os.Getpid(),
		stdout:     opts.Stdout,
		stderr:     opts.Stderr,
		lockFiles:  opts.LockFiles,
		exit:       opts.Exit,
		getenv:     opts.Getenv,
		now:        opts.Now,
		bus:        opts.Bus,
	}
	if opts.HistorySize > 0 {
		f.history = NewRingBuffer(opts.HistorySize)
	}
	f.syslog = newSyslogSink(f, opts.SystemLog)

	program, host := opts.ProgramName, opts.HostName
	if len(program) > MaxProgramNameLen {
		program = program[:MaxProgramNameLen]
	}
	if len(host) > MaxHostNameLen {
		host = host[:MaxHostNameLen]
	}
	f.programName.Store(&program)
	f.hostName.Store(&host)
	return f
}

var defaultFacility atomic.Pointer[Facility]

func init() {
	defaultFacility.Store(New(DefaultOptions()))
}

// Default returns the process-wide facility.
func Default() *Facility { return defaultFacility.Load() }

// SetDefault replaces the process-wide facility.
func SetDefault(f *Facility) {
	if f != nil {
		defaultFacility.Store(f)
	}
}

// ProgramName returns the program name rendered in record prefixes.
func (f *Facility) ProgramName() string { return *f.programName.Load() }

// HostName returns the host name rendered in record prefixes.
func (f *Facility) HostName() string { return *f.hostName.Load() }

// Bus returns the event bus change notifications are published on.
func (f *Facility) Bus() *events.Bus { return f.bus }

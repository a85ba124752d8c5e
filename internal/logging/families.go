package logging

import (
	"fmt"
	"sync"
	"syscall"
)

const (
	// MaxFamilies bounds the number of registered error families.
	MaxFamilies = 50
	// MaxFamilyNameLen bounds an error family name.
	MaxFamilyNameLen = 255

	// FamilyAuto asks RegisterFamily to pick the first free number.
	FamilyAuto = -1
	// FamilySystem is the reserved family of system errors.
	FamilySystem = 0

	// ErrNull is the code of the entry returned for unknown codes.
	ErrNull = -1
)

// System error codes of family 0.
const (
	ErrCodeSuccess = iota
	ErrCodeFailure
	ErrCodeEvent
	ErrCodePthreadKeyCreate
	ErrCodeMalloc
	ErrCodeSigaction
	ErrCodePthreadOnce
	ErrCodeFileLog
	ErrCodeGetHostByName
	ErrCodeMmap
	ErrCodeSocket
	ErrCodeBind
	ErrCodeConnect
	ErrCodeListen
	ErrCodeAccept
	ErrCodeRresvport
	ErrCodeGetHostName
	ErrCodeGetSockName
	ErrCodeIoctl
	ErrCodeUtime
	ErrCodeXDR
	ErrCodeChmod
	ErrCodeSend
	ErrCodeGetHostByAddr
	ErrCodePread
	ErrCodePwrite
	ErrCodeStat
	ErrCodeGetPeerName
	ErrCodeFork
	ErrCodeGetServByName
	ErrCodeMunmap
	ErrCodeStatvfs
	ErrCodeOpendir
	ErrCodeReaddir
	ErrCodeClosedir
	ErrCodeLstat
	ErrCodeGetwd
	ErrCodeChdir
	ErrCodeChown
	ErrCodeMkdir
	ErrCodeOpen
	ErrCodeRead
	ErrCodeWrite
	ErrCodeUtimes
	ErrCodeReadlink
	ErrCodeSymlink
	ErrCodeSystem
	ErrCodePopen
	ErrCodeLseek
	ErrCodePthreadCreate
	ErrCodeRecv
	ErrCodeFopen
	ErrCodeGetcwd
	ErrCodeSetuid
	ErrCodeRename
	ErrCodeUnlink
	ErrCodeSelect
	ErrCodeWait
	ErrCodeSetsid
	ErrCodeSetgid
	ErrCodeGetgroups
	ErrCodeSetgroups
	ErrCodeUmask
	ErrCodeCreat
	ErrCodeSetsockopt
	ErrCodeDirectIO
	ErrCodeGetrlimit
	ErrCodeSetrlimit
	ErrCodeTruncate
	ErrCodePthreadMutexInit
	ErrCodePthreadCondInit
	ErrCodeFcntl
)

// ErrorEntry describes one code of an error family.
type ErrorEntry struct {
	Code    int
	Label   string
	Message string
}

// ErrorFamily is a named table of error codes.
type ErrorFamily struct {
	Number  int
	Name    string
	entries map[int]ErrorEntry
	unknown ErrorEntry
}

// NewErrorFamily builds a family from its entries. The entry with code ErrNull,
// if present, is what Lookup answers for codes the table does not hold.
func NewErrorFamily(name string, entries []ErrorEntry) *ErrorFamily {
	fam := &ErrorFamily{
		Name:    name,
		entries: make(map[int]ErrorEntry, len(entries)),
		unknown: ErrorEntry{Code: ErrNull, Label: "ERR_NULL"},
	}
	for _, e := range entries {
		if e.Code == ErrNull {
			fam.unknown = e
			continue
		}
		if _, dup := fam.entries[e.Code]; dup {
			// first definition wins, as with a linear scan
			continue
		}
		fam.entries[e.Code] = e
	}
	return fam
}

// Lookup returns the entry for code. For unknown codes it returns the
// family's null entry and false.
func (f *ErrorFamily) Lookup(code int) (ErrorEntry, bool) {
	if e, ok := f.entries[code]; ok {
		return e, true
	}
	return f.unknown, false
}

// Len returns the number of codes in the family, the null entry excluded.
func (f *ErrorFamily) Len() int { return len(f.entries) }

// familyRegistry holds the registered error families indexed by number.
type familyRegistry struct {
	mu       sync.RWMutex
	families [MaxFamilies]*ErrorFamily
}

func newFamilyRegistry() *familyRegistry {
	r := &familyRegistry{}
	sys := NewErrorFamily("Errors Systeme UNIX", systemErrors)
	sys.Number = FamilySystem
	r.families[FamilySystem] = sys
	return r
}

func (r *familyRegistry) register(requested int, name string, entries []ErrorEntry) (int, error) {
	if requested < FamilyAuto || requested >= MaxFamilies {
		return -1, fmt.Errorf("%w: %d", ErrFamilyRange, requested)
	}
	if requested == FamilySystem {
		return -1, ErrFamilyReserved
	}
	if len(name) > MaxFamilyNameLen {
		return -1, fmt.Errorf("family %q: %w", name, ErrNameTooLong)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	num := requested
	if num == FamilyAuto {
		num = -1
		for i := FamilySystem + 1; i < MaxFamilies; i++ {
			if r.families[i] == nil {
				num = i
				break
			}
		}
		if num == -1 {
			return -1, ErrFamilyTableFull
		}
	} else if r.families[num] != nil {
		return -1, fmt.Errorf("%w: %d", ErrFamilyInUse, num)
	}

	fam := NewErrorFamily(name, entries)
	fam.Number = num
	r.families[num] = fam
	return num, nil
}

func (r *familyRegistry) resolve(number int) (*ErrorFamily, bool) {
	if number < 0 || number >= MaxFamilies {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fam := r.families[number]
	return fam, fam != nil
}

// RegisterFamily registers an error family under the requested number, or
// under the first free number when requested is FamilyAuto, and returns the
// number assigned.
func (f *Facility) RegisterFamily(requested int, name string, entries []ErrorEntry) (int, error) {
	num, err := f.families.register(requested, name, entries)
	if err != nil {
		return -1, fmt.Errorf("register error family: %w", err)
	}
	return num, nil
}

// ResolveFamily returns the family registered under number.
func (f *Facility) ResolveFamily(number int) (*ErrorFamily, bool) {
	return f.families.resolve(number)
}

// FamilyName returns the name of the family registered under number.
func (f *Facility) FamilyName(number int) (string, bool) {
	fam, ok := f.families.resolve(number)
	if !ok {
		return "", false
	}
	return fam.Name, true
}

// FormatError renders the description of code within family into buf and
// returns the remaining capacity. A non-zero status adds the matching OS
// error string.
func (f *Facility) FormatError(buf *Buffer, family, code, status, line int) int {
	fam, ok := f.families.resolve(family)
	if !ok {
		return buf.Printf("Could not find family %d", family)
	}

	e, _ := fam.Lookup(code)
	if status == 0 {
		return buf.Printf("Error %s : %s : status %d : Line %d",
			e.Label, e.Message, status, line)
	}
	return buf.Printf("Error %s : %s : status %d : %s : Line %d",
		e.Label, e.Message, status, syscall.Errno(status).Error(), line)
}

var systemErrors = []ErrorEntry{
	{ErrCodeSuccess, "SUCCES", "No Error"},
	{ErrCodeFailure, "FAILURE", "Error occurred"},
	{ErrCodeEvent, "EVNT", "Event occurred"},
	{ErrCodePthreadKeyCreate, "ERR_PTHREAD_KEY_CREATE", "Error in creation of pthread_keys"},
	{ErrCodeMalloc, "ERR_MALLOC", "malloc failed"},
	{ErrCodeSigaction, "ERR_SIGACTION", "sigaction failed"},
	{ErrCodePthreadOnce, "ERR_PTHREAD_ONCE", "pthread_once failed"},
	{ErrCodeFileLog, "ERR_FILE_LOG", "failed to access the log"},
	{ErrCodeGetHostByName, "ERR_GETHOSTBYNAME", "gethostbyname failed"},
	{ErrCodeMmap, "ERR_MMAP", "mmap failed"},
	{ErrCodeSocket, "ERR_SOCKET", "socket failed"},
	{ErrCodeBind, "ERR_BIND", "bind failed"},
	{ErrCodeConnect, "ERR_CONNECT", "connect failed"},
	{ErrCodeListen, "ERR_LISTEN", "listen failed"},
	{ErrCodeAccept, "ERR_ACCEPT", "accept failed"},
	{ErrCodeRresvport, "ERR_RRESVPORT", "rresvport failed"},
	{ErrCodeGetHostName, "ERR_GETHOSTNAME", "gethostname failed"},
	{ErrCodeGetSockName, "ERR_GETSOCKNAME", "getsockname failed"},
	{ErrCodeIoctl, "ERR_IOCTL", "ioctl failed"},
	{ErrCodeUtime, "ERR_UTIME", "utime failed"},
	{ErrCodeXDR, "ERR_XDR", "An XDR call failed"},
	{ErrCodeChmod, "ERR_CHMOD", "chmod failed"},
	{ErrCodeSend, "ERR_SEND", "send failed"},
	{ErrCodeGetHostByAddr, "ERR_GETHOSTBYADDR", "gethostbyaddr failed"},
	{ErrCodePread, "ERR_PREAD", "pread failed"},
	{ErrCodePwrite, "ERR_PWRITE", "pwrite failed"},
	{ErrCodeStat, "ERR_STAT", "stat failed"},
	{ErrCodeGetPeerName, "ERR_GETPEERNAME", "getpeername failed"},
	{ErrCodeFork, "ERR_FORK", "fork failed"},
	{ErrCodeGetServByName, "ERR_GETSERVBYNAME", "getservbyname failed"},
	{ErrCodeMunmap, "ERR_MUNMAP", "munmap failed"},
	{ErrCodeStatvfs, "ERR_STATVFS", "statvfs failed"},
	{ErrCodeOpendir, "ERR_OPENDIR", "opendir failed"},
	{ErrCodeReaddir, "ERR_READDIR", "readdir failed"},
	{ErrCodeClosedir, "ERR_CLOSEDIR", "closedir failed"},
	{ErrCodeLstat, "ERR_LSTAT", "lstat failed"},
	{ErrCodeGetwd, "ERR_GETWD", "getwd failed"},
	{ErrCodeChdir, "ERR_CHDIR", "chdir failed"},
	{ErrCodeChown, "ERR_CHOWN", "chown failed"},
	{ErrCodeMkdir, "ERR_MKDIR", "mkdir failed"},
	{ErrCodeOpen, "ERR_OPEN", "open failed"},
	{ErrCodeRead, "ERR_READ", "read failed"},
	{ErrCodeWrite, "ERR_WRITE", "write failed"},
	{ErrCodeUtimes, "ERR_UTIMES", "utimes failed"},
	{ErrCodeReadlink, "ERR_READLINK", "readlink failed"},
	{ErrCodeSymlink, "ERR_SYMLINK", "symlink failed"},
	{ErrCodeSystem, "ERR_SYSTEM", "system failed"},
	{ErrCodePopen, "ERR_POPEN", "popen failed"},
	{ErrCodeLseek, "ERR_LSEEK", "lseek failed"},
	{ErrCodePthreadCreate, "ERR_PTHREAD_CREATE", "pthread_create failed"},
	{ErrCodeRecv, "ERR_RECV", "recv failed"},
	{ErrCodeFopen, "ERR_FOPEN", "fopen failed"},
	{ErrCodeGetcwd, "ERR_GETCWD", "getcwd failed"},
	{ErrCodeSetuid, "ERR_SETUID", "setuid failed"},
	{ErrCodeRename, "ERR_RENAME", "rename failed"},
	{ErrCodeUnlink, "ERR_UNLINK", "unlink failed"},
	{ErrCodeSelect, "ERR_SELECT", "select failed"},
	{ErrCodeWait, "ERR_WAIT", "wait failed"},
	{ErrCodeSetsid, "ERR_SETSID", "setsid failed"},
	{ErrCodeSetgid, "ERR_SETGID", "setgid failed"},
	{ErrCodeGetgroups, "ERR_GETGROUPS", "getgroups failed"},
	{ErrCodeSetgroups, "ERR_SETGROUPS", "setgroups failed"},
	{ErrCodeUmask, "ERR_UMASK", "umask failed"},
	{ErrCodeCreat, "ERR_CREAT", "creat failed"},
	{ErrCodeSetsockopt, "ERR_SETSOCKOPT", "setsockopt failed"},
	{ErrCodeDirectIO, "ERR_DIRECTIO", "directio failed"},
	{ErrCodeGetrlimit, "ERR_GETRLIMIT", "getrlimit failed"},
	{ErrCodeSetrlimit, "ERR_SETRLIMIT", "setrlimit"},
	{ErrCodeTruncate, "ERR_TRUNCATE", "truncate failed"},
	{ErrCodePthreadMutexInit, "ERR_PTHREAD_MUTEX_INIT", "pthread mutex initialization failed."},
	{ErrCodePthreadCondInit, "ERR_PTHREAD_COND_INIT", "pthread condition initialization failed."},
	{ErrCodeFcntl, "ERR_FCNTL", "call to fcntl is failed"},
	{ErrNull, "ERR_NULL", ""},
}

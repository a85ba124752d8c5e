package logging

import (
	"strings"
	"sync/atomic"
)

// Component identifies a logical subsystem with its own threshold and
// destination.
type Component int

const (
	ComponentAll Component = iota
	ComponentLog
	ComponentLogEmerg
	ComponentMemAlloc
	ComponentMemLeaks
	ComponentFSAL
	ComponentNFSProto
	ComponentNFSv4
	ComponentNFSv4Pseudo
	ComponentFileHandle
	ComponentNFSShell
	ComponentDispatch
	ComponentCacheContent
	ComponentCacheInode
	ComponentCacheInodeGC
	ComponentCacheInodeLRU
	ComponentHashTable
	ComponentHashTableCache
	ComponentLRU
	ComponentDupReq
	ComponentRPCSecGSS
	ComponentInit
	ComponentMain
	ComponentIDMapper
	ComponentNFSReaddir
	ComponentNFSv4Lock
	ComponentNFSv4Xattr
	ComponentNFSv4Referral
	ComponentMemCorrupt
	ComponentConfig
	ComponentClientID
	ComponentStdout
	ComponentSessions
	ComponentPNFS
	ComponentRPCCache
	ComponentRWLock
	ComponentNLM
	ComponentRPC
	ComponentNFSCB
	ComponentThread
	ComponentNFSv4ACL
	ComponentState
	Component9P
	Component9PDispatch
	ComponentFSALUp
	ComponentDBus
	ComponentFake

	// ComponentDebugInfo holds the threshold at or above which records get
	// a backtrace and resource counters appended.
	ComponentDebugInfo
	// ComponentVerbosity holds the threshold at or below which records carry
	// the calling function name.
	ComponentVerbosity

	// NumComponents is the size of the component table.
	NumComponents
)

const componentPrefix = "COMPONENT_"

type componentInfo struct {
	name    string
	display string
	level   Level
}

var componentTable = [NumComponents]componentInfo{
	ComponentAll:            {"COMPONENT_ALL", "", LevelEvent},
	ComponentLog:            {"COMPONENT_LOG", "LOG", LevelEvent},
	ComponentLogEmerg:       {"COMPONENT_LOG_EMERG", "LOG", LevelEvent},
	ComponentMemAlloc:       {"COMPONENT_MEMALLOC", "MEM ALLOC", LevelEvent},
	ComponentMemLeaks:       {"COMPONENT_MEMLEAKS", "MEM LEAKS", LevelEvent},
	ComponentFSAL:           {"COMPONENT_FSAL", "FSAL", LevelEvent},
	ComponentNFSProto:       {"COMPONENT_NFSPROTO", "NFS PROTO", LevelEvent},
	ComponentNFSv4:          {"COMPONENT_NFS_V4", "NFS V4", LevelEvent},
	ComponentNFSv4Pseudo:    {"COMPONENT_NFS_V4_PSEUDO", "NFS V4 PSEUDO", LevelEvent},
	ComponentFileHandle:     {"COMPONENT_FILEHANDLE", "FILE HANDLE", LevelEvent},
	ComponentNFSShell:       {"COMPONENT_NFS_SHELL", "NFS SHELL", LevelEvent},
	ComponentDispatch:       {"COMPONENT_DISPATCH", "DISPATCH", LevelEvent},
	ComponentCacheContent:   {"COMPONENT_CACHE_CONTENT", "CACHE CONTENT", LevelEvent},
	ComponentCacheInode:     {"COMPONENT_CACHE_INODE", "CACHE INODE", LevelEvent},
	ComponentCacheInodeGC:   {"COMPONENT_CACHE_INODE_GC", "CACHE INODE GC", LevelEvent},
	ComponentCacheInodeLRU:  {"COMPONENT_CACHE_INODE_LRU", "CACHE INODE LRU", LevelEvent},
	ComponentHashTable:      {"COMPONENT_HASHTABLE", "HASH TABLE", LevelEvent},
	ComponentHashTableCache: {"COMPONENT_HASHTABLE_CACHE", "HASH TABLE CACHE", LevelEvent},
	ComponentLRU:            {"COMPONENT_LRU", "LRU", LevelEvent},
	ComponentDupReq:         {"COMPONENT_DUPREQ", "DUPREQ", LevelEvent},
	ComponentRPCSecGSS:      {"COMPONENT_RPCSEC_GSS", "RPCSEC GSS", LevelEvent},
	ComponentInit:           {"COMPONENT_INIT", "NFS STARTUP", LevelEvent},
	ComponentMain:           {"COMPONENT_MAIN", "MAIN", LevelEvent},
	ComponentIDMapper:       {"COMPONENT_IDMAPPER", "ID MAPPER", LevelEvent},
	ComponentNFSReaddir:     {"COMPONENT_NFS_READDIR", "NFS READDIR", LevelEvent},
	ComponentNFSv4Lock:      {"COMPONENT_NFS_V4_LOCK", "NFS V4 LOCK", LevelEvent},
	ComponentNFSv4Xattr:     {"COMPONENT_NFS_V4_XATTR", "NFS V4 XATTR", LevelEvent},
	ComponentNFSv4Referral:  {"COMPONENT_NFS_V4_REFERRAL", "NFS V4 REFERRAL", LevelEvent},
	ComponentMemCorrupt:     {"COMPONENT_MEMCORRUPT", "MEM CORRUPT", LevelEvent},
	ComponentConfig:         {"COMPONENT_CONFIG", "CONFIG", LevelEvent},
	ComponentClientID:       {"COMPONENT_CLIENTID", "CLIENT ID", LevelEvent},
	ComponentStdout:         {"COMPONENT_STDOUT", "STDOUT", LevelEvent},
	ComponentSessions:       {"COMPONENT_SESSIONS", "SESSIONS", LevelEvent},
	ComponentPNFS:           {"COMPONENT_PNFS", "PNFS", LevelEvent},
	ComponentRPCCache:       {"COMPONENT_RPC_CACHE", "RPC CACHE", LevelEvent},
	ComponentRWLock:         {"COMPONENT_RW_LOCK", "RW LOCK", LevelEvent},
	ComponentNLM:            {"COMPONENT_NLM", "NLM", LevelEvent},
	ComponentRPC:            {"COMPONENT_RPC", "RPC", LevelEvent},
	ComponentNFSCB:          {"COMPONENT_NFS_CB", "NFS CB", LevelEvent},
	ComponentThread:         {"COMPONENT_THREAD", "THREAD", LevelEvent},
	ComponentNFSv4ACL:       {"COMPONENT_NFS_V4_ACL", "NFS V4 ACL", LevelEvent},
	ComponentState:          {"COMPONENT_STATE", "STATE", LevelEvent},
	Component9P:             {"COMPONENT_9P", "9P", LevelEvent},
	Component9PDispatch:     {"COMPONENT_9P_DISPATCH", "9P DISPATCH", LevelEvent},
	ComponentFSALUp:         {"COMPONENT_FSAL_UP", "FSAL_UP", LevelEvent},
	ComponentDBus:           {"COMPONENT_DBUS", "DBUS", LevelEvent},
	ComponentFake:           {"COMPONENT_FAKE", "FAKE", LevelNull},
	ComponentDebugInfo:      {"LOG_MESSAGE_DEBUGINFO", "LOG MESSAGE DEBUGINFO", LevelNull},
	ComponentVerbosity:      {"LOG_MESSAGE_VERBOSITY", "LOG MESSAGE VERBOSITY", LevelNull},
}

func (c Component) valid() bool { return c >= ComponentAll && c < NumComponents }

// Name returns the canonical symbolic name, which is also the name of the
// environment variable that pins the component's level.
func (c Component) Name() string {
	if !c.valid() {
		return "COMPONENT_UNKNOWN"
	}
	return componentTable[c].name
}

// Alias returns the canonical name without its COMPONENT_ prefix.
func (c Component) Alias() string {
	return strings.TrimPrefix(c.Name(), componentPrefix)
}

// Display returns the human readable component label.
func (c Component) Display() string {
	if !c.valid() {
		return ""
	}
	return componentTable[c].display
}

// String implements fmt.Stringer.
func (c Component) String() string { return c.Name() }

// ComponentByName resolves a component from its canonical name or its alias,
// ignoring case.
func ComponentByName(name string) (Component, bool) {
	for c := ComponentAll; c < NumComponents; c++ {
		if strings.EqualFold(componentTable[c].name, name) || strings.EqualFold(c.Alias(), name) {
			return c, true
		}
	}
	return 0, false
}

// Components returns every component in table order.
func Components() []Component {
	comps := make([]Component, 0, NumComponents)
	for c := ComponentAll; c < NumComponents; c++ {
		comps = append(comps, c)
	}
	return comps
}

// componentState is the mutable half of a component descriptor. Fields are
// updated independently, so a reader may see a level from one update and a
// destination from another.
type componentState struct {
	level       atomic.Int32
	pinned      atomic.Bool
	destination atomic.Pointer[Destination]
}

func newComponentTable() *[NumComponents]componentState {
	var table [NumComponents]componentState
	syslogDest := &Destination{Kind: DestSyslog}
	for c := ComponentAll; c < NumComponents; c++ {
		table[c].level.Store(int32(componentTable[c].level))
		table[c].destination.Store(syslogDest)
	}
	return &table
}

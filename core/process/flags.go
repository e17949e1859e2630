package process

// Flags are behavioral options fixed at construction. They are visible to
// downstream code through the call context.
type Flags uint32

const (
	// FlagPersistState writes every state emission through to the configured
	// store and restores the last snapshot on startup.
	FlagPersistState Flags = 1 << iota
	// FlagRemotePublish marks published events for forwarding beyond the
	// local node. The core records the flag; forwarding itself belongs to
	// the surrounding runtime.
	FlagRemotePublish
)

// Has reports whether all bits of f are set.
func (fl Flags) Has(f Flags) bool { return fl&f == f }

package transcode

import (
	"context"
	"sort"
	"sync"
)

var (
	registry   = make(map[Format]Factory)
	registryMu sync.RWMutex
)

// Register makes a codec factory available for the given format.
// Format packages call it from init. Registering a nil factory, an unknown
// format, or the same format twice panics.
func Register(f Format, factory Factory) {
	if !f.Valid() {
		panic("transcode: Register of unknown format")
	}
	if factory == nil {
		panic("transcode: Register factory is nil for " + f.String())
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, dup := registry[f]; dup {
		panic("transcode: Register called twice for " + f.String())
	}
	registry[f] = factory
}

// Registered returns the formats with a registered factory, sorted.
func Registered() []Format {
	registryMu.RLock()
	defer registryMu.RUnlock()

	formats := make([]Format, 0, len(registry))
	for f := range registry {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// New builds a codec for the given format. The returned codec emits
// signals around each operation.
//
// It fails with ErrUnknownFormat when the format package was never imported.
func New(f Format, opts any) (Codec, error) {
	registryMu.RLock()
	factory, ok := registry[f]
	registryMu.RUnlock()

	if !ok {
		return nil, &ConfigError{Err: ErrUnknownFormat, Value: f.String()}
	}

	c, err := factory(opts)
	if err != nil {
		return nil, err
	}

	emitCodecCreated(context.Background(), f)
	return Instrument(c), nil
}

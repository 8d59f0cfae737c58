package levels

import (
	"github.com/google/uuid"

	"github.com/younwookim/levelkeeper/internal/application/coordinator"
	"github.com/younwookim/levelkeeper/internal/infrastructure/config"
)

// Kind tells loads and unloads apart
type Kind int

const (
	KindLoad Kind = iota
	KindUnload
)

func (k Kind) String() string {
	switch k {
	case KindLoad:
		return "load"
	case KindUnload:
		return "unload"
	default:
		return "unknown"
	}
}

// Operation is an asynchronous load or unload of one level.
// It is completed by Loader.Pump on the game loop goroutine.
type Operation struct {
	id    string
	kind  Kind
	level string

	cfg *config.LevelConfig
	err error

	done      bool
	callbacks []func(coordinator.Operation)
}

var _ coordinator.Operation = (*Operation)(nil)

func newOperation(kind Kind, level string) *Operation {
	return &Operation{
		id:    uuid.NewString(),
		kind:  kind,
		level: level,
	}
}

// ID returns the operation id
func (o *Operation) ID() string { return o.id }

// Kind returns whether this is a load or an unload
func (o *Operation) Kind() Kind { return o.kind }

// Level returns the level name
func (o *Operation) Level() string { return o.level }

// Done reports whether the operation has completed
func (o *Operation) Done() bool { return o.done }

// Err returns the error a completed load ran into, if any.
// The operation still completes when loading fails.
func (o *Operation) Err() error { return o.err }

// OnComplete registers fn. If the operation already completed fn runs at once.
func (o *Operation) OnComplete(fn func(coordinator.Operation)) {
	if o.done {
		fn(o)
		return
	}
	o.callbacks = append(o.callbacks, fn)
}

func (o *Operation) complete() {
	o.done = true
	callbacks := o.callbacks
	o.callbacks = nil
	for _, fn := range callbacks {
		fn(o)
	}
}

package log

import (
	"time"

	"github.com/monado-tools/libmonado-go/pkg/mnd"
)

// Event is one trace record emitted by a connection.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the connection (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// LibraryPath is the shared object the connection was loaded from.
	LibraryPath string `cbor:"4,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Call      *CallEvent      `cbor:"10,keyasint,omitempty"`
	Lifecycle *LifecycleEvent `cbor:"11,keyasint,omitempty"`
	Error     *ErrorEventData `cbor:"12,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryCall indicates a foreign function call.
	CategoryCall Category = 0
	// CategoryLifecycle indicates a load/version/root lifecycle step.
	CategoryLifecycle Category = 1
	// CategoryError indicates a failure outside a single call.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryCall:
		return "CALL"
	case CategoryLifecycle:
		return "LIFECYCLE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory returns the category for a name as printed by String.
func ParseCategory(s string) (Category, bool) {
	for _, c := range []Category{CategoryCall, CategoryLifecycle, CategoryError} {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// CallEvent captures one call into libmonado.
type CallEvent struct {
	// Function is the C symbol that was called.
	Function string `cbor:"1,keyasint"`

	// Target names the entity the call addressed ("client 3", "device 0").
	Target string `cbor:"2,keyasint,omitempty"`

	// Status is the value returned by the call.
	Status mnd.Result `cbor:"3,keyasint"`

	// Duration of the call. Stored as nanoseconds.
	Duration time.Duration `cbor:"4,keyasint"`
}

// Failed reports whether the call returned a non-success status.
func (c *CallEvent) Failed() bool {
	return !c.Status.IsSuccess()
}

// LifecycleEvent captures connection setup and teardown.
type LifecycleEvent struct {
	// Stage reached.
	Stage LifecycleStage `cbor:"1,keyasint"`

	// Version is the runtime API version, once known.
	Version string `cbor:"2,keyasint,omitempty"`

	// Reason for the transition (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// LifecycleStage identifies a step in a connection's life.
type LifecycleStage uint8

const (
	// StageLoaded indicates the library was loaded and bound.
	StageLoaded LifecycleStage = 0
	// StageVersionChecked indicates the API version was accepted.
	StageVersionChecked LifecycleStage = 1
	// StageRootCreated indicates the root handle was created.
	StageRootCreated LifecycleStage = 2
	// StageRootDestroyed indicates the root handle was destroyed.
	StageRootDestroyed LifecycleStage = 3
	// StageUnloaded indicates the library was released.
	StageUnloaded LifecycleStage = 4
)

// String returns the stage name.
func (s LifecycleStage) String() string {
	switch s {
	case StageLoaded:
		return "LOADED"
	case StageVersionChecked:
		return "VERSION_CHECKED"
	case StageRootCreated:
		return "ROOT_CREATED"
	case StageRootDestroyed:
		return "ROOT_DESTROYED"
	case StageUnloaded:
		return "UNLOADED"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures failures that are not a single call status,
// such as a failed load or a rejected version.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Code is the libmonado status (if applicable).
	Code *mnd.Result `cbor:"2,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}

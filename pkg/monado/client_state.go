package monado

import (
	"strings"

	"github.com/monado-tools/libmonado-go/pkg/mnd"
)

// ClientState is the session state of a client. Values only come from the
// runtime; there is no way to build one from raw bits.
type ClientState struct {
	bits uint32
}

// decodeClientState keeps the bits this binding understands. unknown holds
// the rest.
func decodeClientState(raw uint32) (state ClientState, unknown uint32) {
	return ClientState{bits: raw & mnd.ClientStateMask}, raw &^ mnd.ClientStateMask
}

func (s ClientState) has(bit uint32) bool { return s.bits&bit != 0 }

// PrimaryApp reports whether the client is the primary application.
func (s ClientState) PrimaryApp() bool { return s.has(mnd.ClientPrimaryApp) }

// SessionActive reports whether the client has an active session.
func (s ClientState) SessionActive() bool { return s.has(mnd.ClientSessionActive) }

// SessionVisible reports whether the session is visible.
func (s ClientState) SessionVisible() bool { return s.has(mnd.ClientSessionVisible) }

// SessionFocused reports whether the session has input focus.
func (s ClientState) SessionFocused() bool { return s.has(mnd.ClientSessionFocused) }

// SessionOverlay reports whether the session is an overlay.
func (s ClientState) SessionOverlay() bool { return s.has(mnd.ClientSessionOverlay) }

// IOActive reports whether input and output are enabled for the client.
func (s ClientState) IOActive() bool { return s.has(mnd.ClientIOActive) }

// IsEmpty reports whether no flag is set.
func (s ClientState) IsEmpty() bool { return s.bits == 0 }

var clientFlagNames = []struct {
	bit  uint32
	name string
}{
	{mnd.ClientPrimaryApp, "primary"},
	{mnd.ClientSessionActive, "active"},
	{mnd.ClientSessionVisible, "visible"},
	{mnd.ClientSessionFocused, "focused"},
	{mnd.ClientSessionOverlay, "overlay"},
	{mnd.ClientIOActive, "io-active"},
}

// Flags returns the names of the set flags in bit order.
func (s ClientState) Flags() []string {
	flags := []string{}
	for _, f := range clientFlagNames {
		if s.has(f.bit) {
			flags = append(flags, f.name)
		}
	}
	return flags
}

// String returns the set flags joined by "|", or "none".
func (s ClientState) String() string {
	if s.IsEmpty() {
		return "none"
	}
	return strings.Join(s.Flags(), "|")
}

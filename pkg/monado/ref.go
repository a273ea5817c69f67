package monado

import (
	"sync/atomic"
)

// Ref is how clients, devices and tracking origins reach their connection.
type Ref interface {
	// Monado returns the connection. The result is never nil.
	Monado() *Monado
}

var (
	_ Ref = (*Monado)(nil)
	_ Ref = (*Shared)(nil)
	_ Ref = (*AtomicShared)(nil)
)

// Shared is a reference-counted handle on a Monado for use within a single
// goroutine. Each handle, including the first, is released once with
// Release; the connection closes when the last handle is released.
type Shared struct {
	state    *sharedState
	released bool
}

type sharedState struct {
	m    *Monado
	refs int
}

// NewShared takes ownership of m and returns its first shared handle.
func NewShared(m *Monado) *Shared {
	return &Shared{state: &sharedState{m: m, refs: 1}}
}

// Monado returns the shared connection.
func (s *Shared) Monado() *Monado {
	return s.state.m
}

// Clone returns a new handle on the same connection. Cloning a released
// handle panics.
func (s *Shared) Clone() *Shared {
	if s.released {
		panic("monado: Clone of released Shared")
	}
	s.state.refs++
	return &Shared{state: s.state}
}

// Refs returns the number of live handles.
func (s *Shared) Refs() int {
	return s.state.refs
}

// Release drops this handle and closes the connection if it was the last.
func (s *Shared) Release() error {
	if s.released {
		return ErrReleased
	}
	s.released = true
	s.state.refs--
	if s.state.refs == 0 {
		return s.state.m.Close()
	}
	return nil
}

// Clients refreshes the client list and returns it.
func (s *Shared) Clients() ([]Client[*Shared], error) {
	return ClientsOf(s)
}

// Devices returns all devices.
func (s *Shared) Devices() ([]Device[*Shared], error) {
	return DevicesOf(s)
}

// DeviceFromRole returns the device bound to role.
func (s *Shared) DeviceFromRole(role DeviceRole) (Device[*Shared], error) {
	return DeviceFromRoleOf(s, role)
}

// TrackingOrigins returns all tracking origins.
func (s *Shared) TrackingOrigins() ([]TrackingOrigin[*Shared], error) {
	return TrackingOriginsOf(s)
}

// AtomicShared is like Shared but its reference count may be changed from
// several goroutines. It does not serialize calls into libmonado.
type AtomicShared struct {
	state    *atomicState
	released atomic.Bool
}

type atomicState struct {
	m    *Monado
	refs atomic.Int64
}

// NewAtomicShared takes ownership of m and returns its first handle.
func NewAtomicShared(m *Monado) *AtomicShared {
	st := &atomicState{m: m}
	st.refs.Store(1)
	return &AtomicShared{state: st}
}

// Monado returns the shared connection.
func (s *AtomicShared) Monado() *Monado {
	return s.state.m
}

// Clone returns a new handle on the same connection. Cloning a released
// handle panics.
func (s *AtomicShared) Clone() *AtomicShared {
	if s.released.Load() {
		panic("monado: Clone of released AtomicShared")
	}
	s.state.refs.Add(1)
	return &AtomicShared{state: s.state}
}

// Refs returns the number of live handles.
func (s *AtomicShared) Refs() int {
	return int(s.state.refs.Load())
}

// Release drops this handle and closes the connection if it was the last.
func (s *AtomicShared) Release() error {
	if s.released.Swap(true) {
		return ErrReleased
	}
	if s.state.refs.Add(-1) == 0 {
		return s.state.m.Close()
	}
	return nil
}

// Clients refreshes the client list and returns it.
func (s *AtomicShared) Clients() ([]Client[*AtomicShared], error) {
	return ClientsOf(s)
}

// Devices returns all devices.
func (s *AtomicShared) Devices() ([]Device[*AtomicShared], error) {
	return DevicesOf(s)
}

// DeviceFromRole returns the device bound to role.
func (s *AtomicShared) DeviceFromRole(role DeviceRole) (Device[*AtomicShared], error) {
	return DeviceFromRoleOf(s, role)
}

// TrackingOrigins returns all tracking origins.
func (s *AtomicShared) TrackingOrigins() ([]TrackingOrigin[*AtomicShared], error) {
	return TrackingOriginsOf(s)
}

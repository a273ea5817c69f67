package monado

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/monado-tools/libmonado-go/pkg/discovery"
	"github.com/monado-tools/libmonado-go/pkg/log"
	"github.com/monado-tools/libmonado-go/pkg/mnd"
	"github.com/monado-tools/libmonado-go/pkg/version"
)

// Monado is a connection to the runtime through libmonado.
//
// It owns one root handle and the library it was loaded from. Close
// destroys the root and unloads the library; if Close is never called the
// same happens once the Monado is garbage collected.
type Monado struct {
	h       *handle
	version version.APIVersion
	trace   *tracer
	logger  *slog.Logger
	closed  atomic.Bool
	cleanup runtime.Cleanup
}

// handle is the native state released on Close or by the GC cleanup.
// It must not reference the Monado.
type handle struct {
	lib    *mnd.Library
	root   mnd.Root
	trace  *tracer
	logger *slog.Logger
	once   sync.Once
	err    error
}

// release destroys the root (if one was created) and unloads the library.
// Only the first call has any effect.
func (h *handle) release() error {
	h.once.Do(func() {
		if h.root != 0 {
			start := time.Now()
			h.lib.RootDestroy(&h.root)
			h.trace.call("mnd_root_destroy", "", mnd.Success, time.Since(start))
			h.trace.lifecycle(log.StageRootDestroyed, "", "")
			h.root = 0
		}
		h.err = h.lib.Close()
		h.trace.lifecycle(log.StageUnloaded, "", "")
		h.logger.Debug("libmonado released", "path", h.lib.Path())
	})
	return h.err
}

// Create loads libmonado from path and connects to the runtime using the
// default configuration.
func Create(path string) (*Monado, error) {
	return CreateWithConfig(path, DefaultConfig())
}

// CreateWithConfig loads libmonado from path, checks its API version and
// creates a root handle.
//
// A load failure is reported as mnd.ErrorConnectingFailed and an
// incompatible version as mnd.ErrorInvalidVersion; in the latter case no
// root is created. A failing mnd_root_create status is returned unchanged.
// The library is released on every failure path.
func CreateWithConfig(path string, cfg Config) (*Monado, error) {
	cfg = cfg.withDefaults()

	req, err := version.ParseRequirement(cfg.Requirement)
	if err != nil {
		return nil, err
	}

	trace := newTracer(path, cfg.TraceLogger)

	lib, err := cfg.Loader(path)
	if err != nil {
		trace.failure("load", mnd.ErrorConnectingFailed, err)
		return nil, fmt.Errorf("%w: %w", mnd.ErrorConnectingFailed, err)
	}
	trace.lifecycle(log.StageLoaded, "", "")
	cfg.Logger.Debug("libmonado loaded", "path", path)

	h := &handle{lib: lib, trace: trace, logger: cfg.Logger}

	var v version.APIVersion
	start := time.Now()
	lib.GetVersion(&v.Major, &v.Minor, &v.Patch)
	trace.call("mnd_api_get_version", "", mnd.Success, time.Since(start))

	if !req.Matches(v) {
		err := fmt.Errorf("%w: runtime API %s does not satisfy %s", mnd.ErrorInvalidVersion, v, req)
		trace.failure("version check", mnd.ErrorInvalidVersion, err)
		_ = h.release()
		return nil, err
	}
	trace.lifecycle(log.StageVersionChecked, v.String(), "")

	start = time.Now()
	res := lib.RootCreate(&h.root)
	trace.call("mnd_root_create", "", res, time.Since(start))
	if res != mnd.Success {
		cfg.Logger.Debug("mnd_root_create failed", "status", res)
		_ = h.release()
		return nil, res
	}
	if h.root == 0 {
		_ = h.release()
		return nil, mnd.ErrorOperationFailed
	}
	trace.lifecycle(log.StageRootCreated, v.String(), "")
	cfg.Logger.Debug("connected to runtime", "path", path, "version", v.String(), "conn_id", trace.connID)

	m := &Monado{
		h:       h,
		version: v,
		trace:   trace,
		logger:  cfg.Logger,
	}
	m.cleanup = runtime.AddCleanup(m, func(h *handle) { _ = h.release() }, h)
	return m, nil
}

// AutoConnect finds libmonado through the active OpenXR runtime and
// connects to it using the default configuration.
func AutoConnect() (*Monado, error) {
	return AutoConnectWithConfig(DefaultConfig())
}

// AutoConnectWithConfig resolves the library path from cfg.Environment
// (see discovery.Resolver) and calls CreateWithConfig.
func AutoConnectWithConfig(cfg Config) (*Monado, error) {
	cfg = cfg.withDefaults()

	env := cfg.Environment
	if env == nil {
		env = discovery.OSEnvironment()
	}

	resolver := discovery.NewResolver(env, cfg.Prober)
	resolver.SetLogger(cfg.Logger)

	path, err := resolver.Resolve()
	if err != nil {
		return nil, err
	}
	return CreateWithConfig(path, cfg)
}

// Monado returns m itself, making *Monado the borrowed Ref.
func (m *Monado) Monado() *Monado {
	return m
}

// APIVersion returns the version reported by the library at connect time.
func (m *Monado) APIVersion() version.APIVersion {
	return m.version
}

// Path returns the path libmonado was loaded from.
func (m *Monado) Path() string {
	return m.h.lib.Path()
}

// ConnectionID returns the identifier used in trace events.
func (m *Monado) ConnectionID() string {
	return m.trace.connID
}

// Closed reports whether Close has been called.
func (m *Monado) Closed() bool {
	return m.closed.Load()
}

// Close destroys the root handle and unloads the library. Further calls on
// m or on values derived from it return ErrClosed. Close is idempotent.
func (m *Monado) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	m.cleanup.Stop()
	return m.h.release()
}

// invoke runs one libmonado call against the root and traces it.
func (m *Monado) invoke(function, target string, call func(api *mnd.API, root mnd.Root) mnd.Result) error {
	if m.closed.Load() {
		return ErrClosed
	}
	start := time.Now()
	res := call(&m.h.lib.API, m.h.root)
	m.trace.call(function, target, res, time.Since(start))
	runtime.KeepAlive(m)
	return res.Err()
}

// invokeString runs a call that returns a runtime-owned string and copies
// it before returning.
func (m *Monado) invokeString(function, target string, call func(api *mnd.API, root mnd.Root, out **byte) mnd.Result) (string, error) {
	var p *byte
	err := m.invoke(function, target, func(api *mnd.API, root mnd.Root) mnd.Result {
		return call(api, root, &p)
	})
	if err != nil {
		return "", err
	}
	return mnd.GoString(p)
}

// RecenterLocalSpaces recenters the local spaces.
func (m *Monado) RecenterLocalSpaces() error {
	return m.invoke("mnd_root_recenter_local_spaces", "", func(api *mnd.API, root mnd.Root) mnd.Result {
		return api.RecenterLocalSpaces(root)
	})
}

// ReferenceSpaceOffset returns the offset of a reference space.
func (m *Monado) ReferenceSpaceOffset(space mnd.ReferenceSpaceType) (Pose, error) {
	if !space.Valid() {
		return Pose{}, mnd.ErrorInvalidValue
	}
	var out mnd.Pose
	err := m.invoke("mnd_root_get_reference_space_offset", space.String(), func(api *mnd.API, root mnd.Root) mnd.Result {
		return api.GetReferenceSpaceOffset(root, space, &out)
	})
	if err != nil {
		return Pose{}, err
	}
	return poseFromWire(out), nil
}

// SetReferenceSpaceOffset sets the offset of a reference space.
func (m *Monado) SetReferenceSpaceOffset(space mnd.ReferenceSpaceType, offset Pose) error {
	if !space.Valid() {
		return mnd.ErrorInvalidValue
	}
	in := offset.wire()
	return m.invoke("mnd_root_set_reference_space_offset", space.String(), func(api *mnd.API, root mnd.Root) mnd.Result {
		return api.SetReferenceSpaceOffset(root, space, &in)
	})
}

// Clients refreshes the client list and returns it.
func (m *Monado) Clients() ([]Client[*Monado], error) {
	return ClientsOf(m)
}

// Devices returns all devices.
func (m *Monado) Devices() ([]Device[*Monado], error) {
	return DevicesOf(m)
}

// DeviceFromRole returns the device bound to role.
func (m *Monado) DeviceFromRole(role DeviceRole) (Device[*Monado], error) {
	return DeviceFromRoleOf(m, role)
}

// TrackingOrigins returns all tracking origins.
func (m *Monado) TrackingOrigins() ([]TrackingOrigin[*Monado], error) {
	return TrackingOriginsOf(m)
}

// DeviceIndexFromRole returns the index of the device bound to role.
// Roles with no device report mnd.ErrorInvalidValue.
func (m *Monado) DeviceIndexFromRole(role DeviceRole) (uint32, error) {
	name, ok := role.wireName()
	if !ok {
		return 0, mnd.ErrorInvalidValue
	}
	var idx int32
	err := m.invoke("mnd_root_get_device_from_role", name, func(api *mnd.API, root mnd.Root) mnd.Result {
		return api.GetDeviceFromRole(root, name, &idx)
	})
	if err != nil {
		return 0, err
	}
	if idx < 0 {
		return 0, mnd.ErrorInvalidValue
	}
	return uint32(idx), nil
}

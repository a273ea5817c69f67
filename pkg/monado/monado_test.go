package monado_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/monado-tools/libmonado-go/internal/mndtest"
	"github.com/monado-tools/libmonado-go/pkg/discovery"
	"github.com/monado-tools/libmonado-go/pkg/log"
	"github.com/monado-tools/libmonado-go/pkg/mnd"
	"github.com/monado-tools/libmonado-go/pkg/monado"
	"github.com/monado-tools/libmonado-go/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReportsVersion(t *testing.T) {
	tests := []version.APIVersion{
		{Major: 1, Minor: 3, Patch: 0},
		{Major: 1, Minor: 3, Patch: 7},
		{Major: 1, Minor: 4, Patch: 0},
		{Major: 1, Minor: 99, Patch: 2},
	}

	for _, v := range tests {
		t.Run(v.String(), func(t *testing.T) {
			rt := mndtest.New()
			rt.Major, rt.Minor, rt.Patch = v.Major, v.Minor, v.Patch

			m := connect(t, rt)
			assert.Equal(t, v, m.APIVersion())
			assert.Equal(t, fakePath, m.Path())
			assert.Equal(t, 1, rt.RootsCreated())

			// APIVersion is cached.
			calls := rt.Calls("mnd_api_get_version")
			_ = m.APIVersion()
			assert.Equal(t, calls, rt.Calls("mnd_api_get_version"))
		})
	}
}

func TestCreateRejectsIncompatibleVersion(t *testing.T) {
	tests := []version.APIVersion{
		{Major: 0, Minor: 9, Patch: 9},
		{Major: 1, Minor: 2, Patch: 9},
		{Major: 1, Minor: 2, Patch: 99},
		{Major: 2, Minor: 0, Patch: 0},
		{Major: 2, Minor: 3, Patch: 0},
	}

	for _, v := range tests {
		t.Run(v.String(), func(t *testing.T) {
			rt := mndtest.New()
			rt.Major, rt.Minor, rt.Patch = v.Major, v.Minor, v.Patch

			m, err := monado.CreateWithConfig(fakePath, testConfig(rt))
			require.Error(t, err)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, mnd.ErrorInvalidVersion)
			assert.Equal(t, 0, rt.Calls("mnd_root_create"))
			assert.Equal(t, 1, rt.Unloads())
		})
	}
}

func TestCreateLoadFailure(t *testing.T) {
	loadErr := errors.New("cannot open shared object file")
	cfg := monado.Config{
		Logger: quietLogger(),
		Loader: func(string) (*mnd.Library, error) { return nil, loadErr },
	}

	m, err := monado.CreateWithConfig(fakePath, cfg)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, mnd.ErrorConnectingFailed)
	assert.ErrorIs(t, err, loadErr)
}

func TestCreateRootFailurePropagated(t *testing.T) {
	rt := mndtest.New()
	rt.CreateStatus = mnd.ErrorConnectingFailed

	m, err := monado.CreateWithConfig(fakePath, testConfig(rt))
	assert.Nil(t, m)
	assert.Equal(t, mnd.ErrorConnectingFailed, err)
	assert.Equal(t, 0, rt.RootsDestroyed())
	assert.Equal(t, 1, rt.Unloads())
}

func TestCreateRootFailureReleasesWrittenHandle(t *testing.T) {
	rt := mndtest.New()
	rt.CreateRoot = 0x4200
	rt.CreateStatus = mnd.ErrorOperationFailed

	_, err := monado.CreateWithConfig(fakePath, testConfig(rt))
	assert.Equal(t, mnd.ErrorOperationFailed, err)
	assert.Equal(t, 1, rt.RootsDestroyed())
	assert.Equal(t, 0, rt.LiveRoots())
	assert.Equal(t, 1, rt.Calls("mnd_root_destroy"))
}

func TestCreateNullRoot(t *testing.T) {
	rt := mndtest.New()
	rt.CreateNull = true

	_, err := monado.CreateWithConfig(fakePath, testConfig(rt))
	assert.ErrorIs(t, err, mnd.ErrorOperationFailed)
	assert.Equal(t, 0, rt.Calls("mnd_root_destroy"))
	assert.Equal(t, 1, rt.Unloads())
}

func TestCreateInvalidRequirement(t *testing.T) {
	rt := mndtest.New()
	cfg := testConfig(rt)
	cfg.Requirement = "not-a-version"

	_, err := monado.CreateWithConfig(fakePath, cfg)
	assert.Error(t, err)
	assert.Equal(t, 0, rt.Calls("mnd_api_get_version"))
}

func TestCreateCustomRequirement(t *testing.T) {
	rt := mndtest.New()
	rt.Major, rt.Minor, rt.Patch = 2, 3, 0
	cfg := testConfig(rt)
	cfg.Requirement = "^2.1.0"

	m, err := monado.CreateWithConfig(fakePath, cfg)
	require.NoError(t, err)
	defer m.Close()
	assert.Equal(t, version.APIVersion{Major: 2, Minor: 3, Patch: 0}, m.APIVersion())
}

func TestCloseDestroysRootOnce(t *testing.T) {
	rt := mndtest.New()
	m, err := monado.CreateWithConfig(fakePath, testConfig(rt))
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.True(t, m.Closed())
	assert.Equal(t, 1, rt.RootsDestroyed())
	assert.Equal(t, 1, rt.Calls("mnd_root_destroy"))
	assert.Equal(t, 1, rt.Unloads())
	assert.Equal(t, 0, rt.LiveRoots())
}

func TestCallsAfterClose(t *testing.T) {
	rt := mndtest.New()
	rt.Clients = []mndtest.Client{{ID: 1, Name: "app"}}
	rt.Devices = []mndtest.Device{{Name: "HMD"}}

	m, err := monado.CreateWithConfig(fakePath, testConfig(rt))
	require.NoError(t, err)

	clients, err := m.Clients()
	require.NoError(t, err)
	devices, err := m.Devices()
	require.NoError(t, err)
	require.NoError(t, m.Close())

	assert.ErrorIs(t, m.RecenterLocalSpaces(), monado.ErrClosed)
	_, err = m.Clients()
	assert.ErrorIs(t, err, monado.ErrClosed)
	_, err = clients[0].Name()
	assert.ErrorIs(t, err, monado.ErrClosed)
	_, err = devices[0].BatteryStatus()
	assert.ErrorIs(t, err, monado.ErrClosed)
	_, err = m.ReferenceSpaceOffset(mnd.ReferenceSpaceStage)
	assert.ErrorIs(t, err, monado.ErrClosed)

	assert.Equal(t, 0, rt.Calls("mnd_root_recenter_local_spaces"))
	assert.Equal(t, 1, rt.Calls("mnd_root_update_client_list"))
}

func TestRecenterLocalSpaces(t *testing.T) {
	rt := mndtest.New()
	m := connect(t, rt)

	require.NoError(t, m.RecenterLocalSpaces())
	assert.Equal(t, 1, rt.Calls("mnd_root_recenter_local_spaces"))

	rt.Fail("mnd_root_recenter_local_spaces", mnd.ErrorRecenteringNotSupported)
	err := m.RecenterLocalSpaces()
	assert.ErrorIs(t, err, mnd.ErrorRecenteringNotSupported)
}

func TestReferenceSpaceOffsetRoundTrip(t *testing.T) {
	rt := mndtest.New()
	m := connect(t, rt)

	pose := monado.Pose{
		Position:    monado.Vector3{X: 0.25, Y: 1.6, Z: -0.5},
		Orientation: monado.Quaternion{X: 0.1, Y: 0.7, Z: 0, W: 0.7}.Normalized(),
	}

	for _, space := range mnd.ReferenceSpaceTypes {
		t.Run(space.String(), func(t *testing.T) {
			require.NoError(t, m.SetReferenceSpaceOffset(space, pose))

			got, err := m.ReferenceSpaceOffset(space)
			require.NoError(t, err)
			require.NoError(t, m.SetReferenceSpaceOffset(space, got))

			again, err := m.ReferenceSpaceOffset(space)
			require.NoError(t, err)
			assertPoseInDelta(t, pose, again)
		})
	}
}

func TestReferenceSpaceDefaultIsIdentity(t *testing.T) {
	m := connect(t, mndtest.New())

	got, err := m.ReferenceSpaceOffset(mnd.ReferenceSpaceLocalFloor)
	require.NoError(t, err)
	assert.Equal(t, monado.IdentityPose(), got)
}

func TestReferenceSpaceInvalidType(t *testing.T) {
	rt := mndtest.New()
	m := connect(t, rt)

	_, err := m.ReferenceSpaceOffset(mnd.ReferenceSpaceType(9))
	assert.ErrorIs(t, err, mnd.ErrorInvalidValue)
	assert.ErrorIs(t, m.SetReferenceSpaceOffset(mnd.ReferenceSpaceType(-1), monado.IdentityPose()), mnd.ErrorInvalidValue)
	assert.Equal(t, 0, rt.Calls("mnd_root_get_reference_space_offset"))
	assert.Equal(t, 0, rt.Calls("mnd_root_set_reference_space_offset"))
}

func TestReferenceSpaceOffsetFailure(t *testing.T) {
	rt := mndtest.New()
	m := connect(t, rt)
	rt.Fail("mnd_root_get_reference_space_offset", mnd.ErrorOperationFailed)

	got, err := m.ReferenceSpaceOffset(mnd.ReferenceSpaceStage)
	assert.ErrorIs(t, err, mnd.ErrorOperationFailed)
	assert.Equal(t, monado.Pose{}, got)
}

func writeRuntimeManifest(t *testing.T, dir, libmonado string) string {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"file_format_version": "1.0.0",
		"runtime": map[string]any{
			"library_path":       "libopenxr_monado.so",
			"MND_libmonado_path": libmonado,
		},
	})
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "active_runtime.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestAutoConnect(t *testing.T) {
	root := t.TempDir()
	manifest := writeRuntimeManifest(t, filepath.Join(root, "share", "openxr", "1"), "../../../lib/libmonado.so")

	rt := mndtest.New()
	var loaded string
	cfg := testConfig(rt)
	cfg.Environment = discovery.Environment{discovery.EnvRuntimeJSON: manifest}
	cfg.Prober = discovery.NoProber{}
	cfg.Loader = func(path string) (*mnd.Library, error) {
		loaded = path
		return rt.Library(path), nil
	}

	m, err := monado.AutoConnectWithConfig(cfg)
	require.NoError(t, err)
	defer m.Close()

	realRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	want := filepath.Join(realRoot, "lib", "libmonado.so")
	assert.Equal(t, want, loaded)
	assert.Equal(t, want, m.Path())
}

func TestAutoConnectOverride(t *testing.T) {
	lib := filepath.Join(t.TempDir(), "libmonado.so")
	require.NoError(t, os.WriteFile(lib, []byte("ELF"), 0o644))

	rt := mndtest.New()
	cfg := testConfig(rt)
	cfg.Environment = discovery.Environment{discovery.EnvLibmonadoPath: lib}

	m, err := monado.AutoConnectWithConfig(cfg)
	require.NoError(t, err)
	defer m.Close()
	assert.Equal(t, lib, m.Path())
}

func TestAutoConnectResolutionFailure(t *testing.T) {
	root := t.TempDir()
	rt := mndtest.New()
	cfg := testConfig(rt)
	cfg.Environment = discovery.Environment{
		discovery.EnvConfigHome: filepath.Join(root, "home"),
		discovery.EnvConfigDirs: filepath.Join(root, "etc"),
	}

	_, err := monado.AutoConnectWithConfig(cfg)
	assert.ErrorIs(t, err, discovery.ErrNoRuntimeManifest)
	assert.Equal(t, 0, rt.Calls("mnd_api_get_version"))
}

func TestTraceLifecycle(t *testing.T) {
	rt := mndtest.New()
	rec := &recordingLogger{}
	cfg := testConfig(rt)
	cfg.TraceLogger = rec

	m, err := monado.CreateWithConfig(fakePath, cfg)
	require.NoError(t, err)
	require.NoError(t, m.RecenterLocalSpaces())
	require.NoError(t, m.Close())

	assert.Equal(t, []log.LifecycleStage{
		log.StageLoaded,
		log.StageVersionChecked,
		log.StageRootCreated,
		log.StageRootDestroyed,
		log.StageUnloaded,
	}, rec.stages())

	var recenter *log.CallEvent
	for _, e := range rec.Events() {
		assert.Equal(t, m.ConnectionID(), e.ConnectionID)
		assert.Equal(t, fakePath, e.LibraryPath)
		if e.Call != nil && e.Call.Function == "mnd_root_recenter_local_spaces" {
			recenter = e.Call
		}
	}
	require.NotNil(t, recenter)
	assert.Equal(t, mnd.Success, recenter.Status)
}

func TestTraceFailedCall(t *testing.T) {
	rt := mndtest.New()
	rt.Clients = []mndtest.Client{{ID: 7, Name: "app"}}
	rec := &recordingLogger{}
	cfg := testConfig(rt)
	cfg.TraceLogger = rec

	m, err := monado.CreateWithConfig(fakePath, cfg)
	require.NoError(t, err)
	defer m.Close()

	rt.Fail("mnd_root_get_client_state", mnd.ErrorInvalidValue)
	clients, err := m.Clients()
	require.NoError(t, err)
	_, err = clients[0].State()
	require.Error(t, err)

	var found bool
	for _, e := range rec.Events() {
		if e.Call != nil && e.Call.Function == "mnd_root_get_client_state" {
			found = true
			assert.Equal(t, "client 7", e.Call.Target)
			assert.Equal(t, mnd.ErrorInvalidValue, e.Call.Status)
		}
	}
	assert.True(t, found)
}

func TestTraceVersionRejected(t *testing.T) {
	rt := mndtest.New()
	rt.Major = 2
	rec := &recordingLogger{}
	cfg := testConfig(rt)
	cfg.TraceLogger = rec

	_, err := monado.CreateWithConfig(fakePath, cfg)
	require.Error(t, err)

	var errEvent *log.ErrorEventData
	for _, e := range rec.Events() {
		if e.Error != nil {
			errEvent = e.Error
		}
	}
	require.NotNil(t, errEvent)
	require.NotNil(t, errEvent.Code)
	assert.Equal(t, mnd.ErrorInvalidVersion, *errEvent.Code)
	assert.Equal(t, []log.LifecycleStage{log.StageLoaded, log.StageUnloaded}, rec.stages())
}

func assertPoseInDelta(t *testing.T, want, got monado.Pose) {
	t.Helper()
	const delta = 1e-6
	assert.InDelta(t, want.Position.X, got.Position.X, delta)
	assert.InDelta(t, want.Position.Y, got.Position.Y, delta)
	assert.InDelta(t, want.Position.Z, got.Position.Z, delta)
	assert.InDelta(t, want.Orientation.X, got.Orientation.X, delta)
	assert.InDelta(t, want.Orientation.Y, got.Orientation.Y, delta)
	assert.InDelta(t, want.Orientation.Z, got.Orientation.Z, delta)
	assert.InDelta(t, want.Orientation.W, got.Orientation.W, delta)
}

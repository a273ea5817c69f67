package monado_test

import (
	"testing"

	"github.com/monado-tools/libmonado-go/internal/mndtest"
	"github.com/monado-tools/libmonado-go/pkg/mnd"
	"github.com/monado-tools/libmonado-go/pkg/monado"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeClients() []mndtest.Client {
	return []mndtest.Client{
		{ID: 4, Name: "hello_xr", State: mnd.ClientSessionActive | mnd.ClientSessionVisible},
		{ID: 9, Name: "overlay", State: mnd.ClientSessionOverlay},
		{ID: 12, Name: "game", State: mnd.ClientPrimaryApp | mnd.ClientSessionFocused | mnd.ClientIOActive},
	}
}

func TestClientsEnumeration(t *testing.T) {
	rt := mndtest.New()
	rt.Clients = threeClients()
	m := connect(t, rt)

	clients, err := m.Clients()
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, uint32(4), clients[0].ID)
	assert.Equal(t, uint32(9), clients[1].ID)
	assert.Equal(t, uint32(12), clients[2].ID)
	assert.Same(t, m, clients[0].Ref())

	assert.Equal(t, 1, rt.Calls("mnd_root_update_client_list"))
	assert.Equal(t, 1, rt.Calls("mnd_root_get_number_clients"))
	assert.Equal(t, 3, rt.Calls("mnd_root_get_client_id_at_index"))
}

func TestClientsEmpty(t *testing.T) {
	m := connect(t, mndtest.New())

	clients, err := m.Clients()
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestClientsSnapshotAtRefresh(t *testing.T) {
	rt := mndtest.New()
	rt.Clients = threeClients()
	rt.OnCall = func(symbol string) {
		if symbol == "mnd_root_get_client_id_at_index" {
			rt.Clients = append(rt.Clients, mndtest.Client{ID: 100, Name: "late"})
		}
	}
	m := connect(t, rt)

	clients, err := m.Clients()
	require.NoError(t, err)
	assert.Len(t, clients, 3)
}

func TestClientsAbortOnFailure(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		after  int
	}{
		{"refresh", "mnd_root_update_client_list", 0},
		{"count", "mnd_root_get_number_clients", 0},
		{"second id", "mnd_root_get_client_id_at_index", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := mndtest.New()
			rt.Clients = threeClients()
			m := connect(t, rt)
			rt.FailAfter(tt.symbol, mnd.ErrorOperationFailed, tt.after)

			clients, err := m.Clients()
			assert.ErrorIs(t, err, mnd.ErrorOperationFailed)
			assert.Nil(t, clients)
		})
	}
}

func TestClientName(t *testing.T) {
	rt := mndtest.New()
	rt.Clients = threeClients()
	m := connect(t, rt)

	clients, err := m.Clients()
	require.NoError(t, err)

	name, err := clients[0].Name()
	require.NoError(t, err)
	assert.Equal(t, "hello_xr", name)

	// Fetched fresh every time.
	rt.Clients[0].Name = "renamed"
	name, err = clients[0].Name()
	require.NoError(t, err)
	assert.Equal(t, "renamed", name)
}

func TestClientNameDecodingErrors(t *testing.T) {
	rt := mndtest.New()
	rt.Clients = []mndtest.Client{{ID: 1, Name: "bad\xffname"}}
	m := connect(t, rt)

	clients, err := m.Clients()
	require.NoError(t, err)

	_, err = clients[0].Name()
	assert.ErrorIs(t, err, mnd.ErrorInvalidValue)

	rt.NullString("mnd_root_get_client_name")
	_, err = clients[0].Name()
	assert.ErrorIs(t, err, mnd.ErrorInvalidValue)
}

func TestClientState(t *testing.T) {
	rt := mndtest.New()
	rt.Clients = threeClients()
	m := connect(t, rt)

	clients, err := m.Clients()
	require.NoError(t, err)

	state, err := clients[2].State()
	require.NoError(t, err)
	assert.True(t, state.PrimaryApp())
	assert.False(t, state.SessionActive())
	assert.False(t, state.SessionVisible())
	assert.True(t, state.SessionFocused())
	assert.False(t, state.SessionOverlay())
	assert.True(t, state.IOActive())
	assert.Equal(t, "primary|focused|io-active", state.String())

	state, err = clients[1].State()
	require.NoError(t, err)
	assert.Equal(t, []string{"overlay"}, state.Flags())
}

func TestClientStateMasksUnknownBits(t *testing.T) {
	rt := mndtest.New()
	rt.Clients = []mndtest.Client{{ID: 1, State: mnd.ClientIOActive | 1<<10 | 1<<31}}
	m := connect(t, rt)

	clients, err := m.Clients()
	require.NoError(t, err)

	state, err := clients[0].State()
	require.NoError(t, err)
	assert.True(t, state.IOActive())
	assert.Equal(t, "io-active", state.String())
}

func TestClientStateEmpty(t *testing.T) {
	rt := mndtest.New()
	rt.Clients = []mndtest.Client{{ID: 1}}
	m := connect(t, rt)

	clients, err := m.Clients()
	require.NoError(t, err)

	state, err := clients[0].State()
	require.NoError(t, err)
	assert.True(t, state.IsEmpty())
	assert.Equal(t, "none", state.String())
	assert.Empty(t, state.Flags())
	assert.Equal(t, monado.ClientState{}, state)
}

func TestSetIOActive(t *testing.T) {
	tests := []struct {
		name        string
		initial     uint32
		active      bool
		wantToggles int
	}{
		{"already active", mnd.ClientIOActive, true, 0},
		{"enable", 0, true, 1},
		{"disable", mnd.ClientIOActive | mnd.ClientSessionActive, false, 1},
		{"already inactive", mnd.ClientSessionActive, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := mndtest.New()
			rt.Clients = []mndtest.Client{{ID: 3, State: tt.initial}}
			m := connect(t, rt)

			clients, err := m.Clients()
			require.NoError(t, err)

			require.NoError(t, clients[0].SetIOActive(tt.active))
			assert.Equal(t, tt.wantToggles, rt.Calls("mnd_root_toggle_client_io_active"))
			assert.Equal(t, 1, rt.Calls("mnd_root_get_client_state"))

			state, err := clients[0].State()
			require.NoError(t, err)
			assert.Equal(t, tt.active, state.IOActive())
		})
	}
}

func TestSetIOActiveStateFailure(t *testing.T) {
	rt := mndtest.New()
	rt.Clients = []mndtest.Client{{ID: 3}}
	m := connect(t, rt)

	clients, err := m.Clients()
	require.NoError(t, err)

	rt.Fail("mnd_root_get_client_state", mnd.ErrorOperationFailed)
	assert.ErrorIs(t, clients[0].SetIOActive(true), mnd.ErrorOperationFailed)
	assert.Equal(t, 0, rt.Calls("mnd_root_toggle_client_io_active"))
}

func TestToggleIOActive(t *testing.T) {
	rt := mndtest.New()
	rt.Clients = []mndtest.Client{{ID: 3}}
	m := connect(t, rt)

	clients, err := m.Clients()
	require.NoError(t, err)

	require.NoError(t, clients[0].ToggleIOActive())
	require.NoError(t, clients[0].ToggleIOActive())
	assert.Equal(t, 2, rt.Calls("mnd_root_toggle_client_io_active"))

	state, err := clients[0].State()
	require.NoError(t, err)
	assert.False(t, state.IOActive())
}

func TestSetPrimaryAndFocusedAlwaysCall(t *testing.T) {
	rt := mndtest.New()
	rt.Clients = threeClients()
	m := connect(t, rt)

	clients, err := m.Clients()
	require.NoError(t, err)

	require.NoError(t, clients[0].SetPrimary())
	require.NoError(t, clients[0].SetPrimary())
	assert.Equal(t, 2, rt.Calls("mnd_root_set_client_primary"))

	require.NoError(t, clients[1].SetFocused())
	require.NoError(t, clients[1].SetFocused())
	assert.Equal(t, 2, rt.Calls("mnd_root_set_client_focused"))

	state, err := clients[0].State()
	require.NoError(t, err)
	assert.True(t, state.PrimaryApp())

	state, err = clients[2].State()
	require.NoError(t, err)
	assert.False(t, state.PrimaryApp())
	assert.False(t, state.SessionFocused())
}

func TestClientOperationOnVanishedClient(t *testing.T) {
	rt := mndtest.New()
	rt.Clients = threeClients()
	m := connect(t, rt)

	clients, err := m.Clients()
	require.NoError(t, err)

	rt.Clients = rt.Clients[:1]
	_, err = clients[2].State()
	assert.ErrorIs(t, err, mnd.ErrorInvalidValue)
	assert.ErrorIs(t, clients[2].SetPrimary(), mnd.ErrorInvalidValue)
}

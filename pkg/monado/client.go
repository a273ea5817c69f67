package monado

import (
	"github.com/monado-tools/libmonado-go/pkg/mnd"
)

// Client is a connected application. Name and state are queried fresh on
// every call; the ID is valid as of the list refresh that produced it.
type Client[R Ref] struct {
	ID  uint32
	ref R
}

// ClientsOf refreshes the runtime's client list and returns one Client per
// entry. The result has exactly the count reported after the refresh. Any
// failure aborts the whole enumeration.
func ClientsOf[R Ref](r R) ([]Client[R], error) {
	m := r.Monado()

	err := m.invoke("mnd_root_update_client_list", "", func(api *mnd.API, root mnd.Root) mnd.Result {
		return api.UpdateClientList(root)
	})
	if err != nil {
		return nil, err
	}

	var count uint32
	err = m.invoke("mnd_root_get_number_clients", "", func(api *mnd.API, root mnd.Root) mnd.Result {
		return api.GetNumberClients(root, &count)
	})
	if err != nil {
		return nil, err
	}

	clients := make([]Client[R], 0, count)
	for i := range count {
		var id uint32
		err := m.invoke("mnd_root_get_client_id_at_index", "", func(api *mnd.API, root mnd.Root) mnd.Result {
			return api.GetClientIDAtIndex(root, i, &id)
		})
		if err != nil {
			return nil, err
		}
		clients = append(clients, Client[R]{ID: id, ref: r})
	}
	return clients, nil
}

// Ref returns the reference the client reaches its connection through.
func (c Client[R]) Ref() R {
	return c.ref
}

// Name returns the application name.
func (c Client[R]) Name() (string, error) {
	return c.ref.Monado().invokeString("mnd_root_get_client_name", clientTarget(c.ID),
		func(api *mnd.API, root mnd.Root, out **byte) mnd.Result {
			return api.GetClientName(root, c.ID, out)
		})
}

// State returns the client's current session state.
func (c Client[R]) State() (ClientState, error) {
	m := c.ref.Monado()
	var raw uint32
	err := m.invoke("mnd_root_get_client_state", clientTarget(c.ID), func(api *mnd.API, root mnd.Root) mnd.Result {
		return api.GetClientState(root, c.ID, &raw)
	})
	if err != nil {
		return ClientState{}, err
	}
	state, unknown := decodeClientState(raw)
	if unknown != 0 {
		m.logger.Debug("ignoring unknown client state bits", "client", c.ID, "bits", unknown)
	}
	return state, nil
}

// SetPrimary makes the client the primary application.
func (c Client[R]) SetPrimary() error {
	return c.ref.Monado().invoke("mnd_root_set_client_primary", clientTarget(c.ID), func(api *mnd.API, root mnd.Root) mnd.Result {
		return api.SetClientPrimary(root, c.ID)
	})
}

// SetFocused gives the client input focus.
func (c Client[R]) SetFocused() error {
	return c.ref.Monado().invoke("mnd_root_set_client_focused", clientTarget(c.ID), func(api *mnd.API, root mnd.Root) mnd.Result {
		return api.SetClientFocused(root, c.ID)
	})
}

// ToggleIOActive flips the client's IO-active flag.
func (c Client[R]) ToggleIOActive() error {
	return c.ref.Monado().invoke("mnd_root_toggle_client_io_active", clientTarget(c.ID), func(api *mnd.API, root mnd.Root) mnd.Result {
		return api.ToggleClientIOActive(root, c.ID)
	})
}

// SetIOActive enables or disables input and output for the client.
//
// libmonado only offers a toggle, so this reads the state and toggles when
// it differs from active. The read and the toggle are separate calls: a
// change made by someone else in between is not detected.
func (c Client[R]) SetIOActive(active bool) error {
	state, err := c.State()
	if err != nil {
		return err
	}
	if state.IOActive() == active {
		return nil
	}
	return c.ToggleIOActive()
}

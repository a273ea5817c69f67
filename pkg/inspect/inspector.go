package inspect

import (
	"errors"
	"fmt"

	"github.com/monado-tools/libmonado-go/pkg/mnd"
	"github.com/monado-tools/libmonado-go/pkg/monado"
)

// Lookup errors.
var (
	ErrClientNotFound = errors.New("client not found")
	ErrDeviceNotFound = errors.New("device not found")
	ErrOriginNotFound = errors.New("tracking origin not found")
)

// Inspector reads and modifies runtime state through a connection.
type Inspector struct {
	ref monado.Ref
}

// NewInspector creates an inspector over the given connection reference.
func NewInspector(ref monado.Ref) *Inspector {
	return &Inspector{ref: ref}
}

// Monado returns the underlying connection.
func (i *Inspector) Monado() *monado.Monado {
	return i.ref.Monado()
}

// Client returns the client with the given ID after refreshing the list.
func (i *Inspector) Client(id uint32) (monado.Client[monado.Ref], error) {
	clients, err := monado.ClientsOf(i.ref)
	if err != nil {
		return monado.Client[monado.Ref]{}, err
	}
	for _, c := range clients {
		if c.ID == id {
			return c, nil
		}
	}
	return monado.Client[monado.Ref]{}, fmt.Errorf("%w: %d", ErrClientNotFound, id)
}

// Device returns the device at the given index.
func (i *Inspector) Device(index uint32) (monado.Device[monado.Ref], error) {
	devices, err := monado.DevicesOf(i.ref)
	if err != nil {
		return monado.Device[monado.Ref]{}, err
	}
	if int(index) >= len(devices) {
		return monado.Device[monado.Ref]{}, fmt.Errorf("%w: %d", ErrDeviceNotFound, index)
	}
	return devices[index], nil
}

// Origin returns the tracking origin with the given ID.
func (i *Inspector) Origin(id uint32) (monado.TrackingOrigin[monado.Ref], error) {
	origins, err := monado.TrackingOriginsOf(i.ref)
	if err != nil {
		return monado.TrackingOrigin[monado.Ref]{}, err
	}
	for _, o := range origins {
		if o.ID == id {
			return o, nil
		}
	}
	return monado.TrackingOrigin[monado.Ref]{}, fmt.Errorf("%w: %d", ErrOriginNotFound, id)
}

// Snapshot captures everything the connection can report.
//
// Enumeration failures abort the snapshot. Per-item queries that fail
// (a client leaving between refresh and query, a device without battery
// support) are recorded on the item instead.
func (i *Inspector) Snapshot() (*Snapshot, error) {
	m := i.ref.Monado()
	snap := &Snapshot{
		Library: m.Path(),
		Version: m.APIVersion().String(),
	}

	clients, err := monado.ClientsOf(i.ref)
	if err != nil {
		return nil, fmt.Errorf("clients: %w", err)
	}
	for _, c := range clients {
		snap.Clients = append(snap.Clients, describeClient(c))
	}

	devices, err := monado.DevicesOf(i.ref)
	if err != nil {
		return nil, fmt.Errorf("devices: %w", err)
	}
	for _, d := range devices {
		snap.Devices = append(snap.Devices, describeDevice(d))
	}

	for _, role := range monado.DeviceRoles {
		info := RoleInfo{Role: role.String()}
		idx, err := m.DeviceIndexFromRole(role)
		switch {
		case err == nil:
			info.Device = &idx
		case errors.Is(err, mnd.ErrorInvalidValue):
			// Unbound role.
		default:
			return nil, fmt.Errorf("role %s: %w", role, err)
		}
		snap.Roles = append(snap.Roles, info)
	}

	origins, err := monado.TrackingOriginsOf(i.ref)
	if err != nil {
		return nil, fmt.Errorf("tracking origins: %w", err)
	}
	for _, o := range origins {
		info := OriginInfo{ID: o.ID, Name: o.Name}
		if offset, err := o.Offset(); err != nil {
			info.Error = err.Error()
		} else {
			info.Offset = &offset
		}
		snap.TrackingOrigins = append(snap.TrackingOrigins, info)
	}

	for _, space := range mnd.ReferenceSpaceTypes {
		info := SpaceInfo{Space: space.String()}
		if offset, err := m.ReferenceSpaceOffset(space); err != nil {
			info.Error = err.Error()
		} else {
			info.Offset = &offset
		}
		snap.ReferenceSpaces = append(snap.ReferenceSpaces, info)
	}

	return snap, nil
}

// Describe returns a snapshot fragment for a single target.
func (i *Inspector) Describe(t *Target) (any, error) {
	m := i.ref.Monado()
	switch t.Kind {
	case TargetClient:
		c, err := i.Client(t.ID)
		if err != nil {
			return nil, err
		}
		return describeClient(c), nil

	case TargetDevice:
		d, err := i.Device(t.ID)
		if err != nil {
			return nil, err
		}
		return describeDevice(d), nil

	case TargetRole:
		d, err := monado.DeviceFromRoleOf(i.ref, t.Role)
		if err != nil {
			return nil, err
		}
		return describeDevice(d), nil

	case TargetOrigin:
		o, err := i.Origin(t.ID)
		if err != nil {
			return nil, err
		}
		offset, err := o.Offset()
		if err != nil {
			return nil, err
		}
		return OriginInfo{ID: o.ID, Name: o.Name, Offset: &offset}, nil

	case TargetSpace:
		offset, err := m.ReferenceSpaceOffset(t.Space)
		if err != nil {
			return nil, err
		}
		return SpaceInfo{Space: t.Space.String(), Offset: &offset}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidTarget, t.Raw)
}

func describeClient(c monado.Client[monado.Ref]) ClientInfo {
	info := ClientInfo{ID: c.ID}
	name, err := c.Name()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Name = name

	state, err := c.State()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.State = state.String()
	info.Flags = state.Flags()
	return info
}

func describeDevice(d monado.Device[monado.Ref]) DeviceInfo {
	info := DeviceInfo{Index: d.Index, NameID: d.NameID, Name: d.Name}
	if serial, err := d.Serial(); err == nil {
		info.Serial = serial
	}
	if battery, err := d.BatteryStatus(); err == nil {
		info.Battery = &battery
	}
	if brightness, err := d.Brightness(); err == nil {
		info.Brightness = &brightness
	}
	return info
}

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/monado-tools/libmonado-go/pkg/inspect"
	"github.com/monado-tools/libmonado-go/pkg/monado"
)

// clientFlag records a client ID flag that may be absent.
type clientFlag struct {
	id  uint32
	set bool
}

func (f *clientFlag) String() string {
	if !f.set {
		return ""
	}
	return strconv.FormatUint(uint64(f.id), 10)
}

func (f *clientFlag) Set(s string) error {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid client id %q", s)
	}
	f.id, f.set = uint32(v), true
	return nil
}

// Actions are the operations requested on the command line, applied in
// field order.
type Actions struct {
	Primary    clientFlag
	Focused    clientFlag
	IOToggle   clientFlag
	Recenter   bool
	Role       string
	Brightness string
	Space      string
	Origin     string
}

func (a *Actions) empty() bool {
	return !a.Primary.set && !a.Focused.set && !a.IOToggle.set && !a.Recenter &&
		a.Role == "" && a.Brightness == "" && a.Space == "" && a.Origin == ""
}

// splitAssign splits "key=value".
func splitAssign(s, what string) (string, string, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" || value == "" {
		return "", "", fmt.Errorf("invalid %s %q (want key=value)", what, s)
	}
	return key, value, nil
}

// parseBrightness parses "device=value". A leading sign makes the change
// relative.
func parseBrightness(s string) (index uint32, value float32, relative bool, err error) {
	key, val, err := splitAssign(s, "brightness")
	if err != nil {
		return 0, 0, false, err
	}
	target, err := inspect.ParseTarget("device/" + key)
	if err != nil {
		return 0, 0, false, err
	}
	relative = strings.HasPrefix(val, "+") || strings.HasPrefix(val, "-")
	v, err := strconv.ParseFloat(val, 32)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid brightness %q", val)
	}
	return target.ID, float32(v), relative, nil
}

// listClients prints the client list.
func listClients(m *monado.Monado, w io.Writer, f *inspect.Formatter) error {
	clients, err := m.Clients()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Clients: %d\n", len(clients))
	for _, c := range clients {
		name, err := c.Name()
		if err != nil {
			return err
		}
		state, err := c.State()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, f.Indent(1, f.FormatClient(inspect.ClientInfo{ID: c.ID, Name: name, State: state.String()})))
	}
	return nil
}

func findClient(m *monado.Monado, id uint32) (monado.Client[monado.Ref], error) {
	return inspect.NewInspector(m).Client(id)
}

// applyActions runs every requested action against m and reports what it
// did on w. It stops at the first failure.
func applyActions(m *monado.Monado, a *Actions, w io.Writer) error {
	if a.Primary.set {
		c, err := findClient(m, a.Primary.id)
		if err != nil {
			return err
		}
		if err := c.SetPrimary(); err != nil {
			return fmt.Errorf("set primary: %w", err)
		}
		fmt.Fprintf(w, "Client %d is now primary\n", c.ID)
	}

	if a.Focused.set {
		c, err := findClient(m, a.Focused.id)
		if err != nil {
			return err
		}
		if err := c.SetFocused(); err != nil {
			return fmt.Errorf("set focused: %w", err)
		}
		fmt.Fprintf(w, "Client %d is now focused\n", c.ID)
	}

	if a.IOToggle.set {
		c, err := findClient(m, a.IOToggle.id)
		if err != nil {
			return err
		}
		if err := c.ToggleIOActive(); err != nil {
			return fmt.Errorf("toggle io: %w", err)
		}
		fmt.Fprintf(w, "Toggled IO for client %d\n", c.ID)
	}

	if a.Recenter {
		if err := m.RecenterLocalSpaces(); err != nil {
			return fmt.Errorf("recenter: %w", err)
		}
		fmt.Fprintln(w, "Recentered local spaces")
	}

	if a.Role != "" {
		role, ok := inspect.ResolveRoleName(a.Role)
		if !ok {
			return fmt.Errorf("unknown role %q (use: %s)", a.Role, strings.Join(inspect.RoleNames(), ", "))
		}
		d, err := m.DeviceFromRole(role)
		if err != nil {
			return fmt.Errorf("role %s: %w", role, err)
		}
		fmt.Fprintf(w, "%s: device %d %q\n", role, d.Index, d.Name)
	}

	if a.Brightness != "" {
		index, value, relative, err := parseBrightness(a.Brightness)
		if err != nil {
			return err
		}
		d, err := inspect.NewInspector(m).Device(index)
		if err != nil {
			return err
		}
		if err := d.SetBrightness(value, relative); err != nil {
			return fmt.Errorf("set brightness: %w", err)
		}
		now, err := d.Brightness()
		if err != nil {
			return fmt.Errorf("get brightness: %w", err)
		}
		fmt.Fprintf(w, "Device %d brightness: %.2f\n", d.Index, now)
	}

	if a.Space != "" {
		key, val, err := splitAssign(a.Space, "space offset")
		if err != nil {
			return err
		}
		space, ok := inspect.ResolveSpaceName(key)
		if !ok {
			return fmt.Errorf("unknown space %q (use: %s)", key, strings.Join(inspect.SpaceNames(), ", "))
		}
		pose, err := inspect.ParsePose(val)
		if err != nil {
			return err
		}
		if err := m.SetReferenceSpaceOffset(space, pose); err != nil {
			return fmt.Errorf("set %s offset: %w", space, err)
		}
		fmt.Fprintf(w, "Set %s offset\n", space)
	}

	if a.Origin != "" {
		key, val, err := splitAssign(a.Origin, "origin offset")
		if err != nil {
			return err
		}
		target, err := inspect.ParseTarget("origin/" + key)
		if err != nil {
			return err
		}
		pose, err := inspect.ParsePose(val)
		if err != nil {
			return err
		}
		o, err := inspect.NewInspector(m).Origin(target.ID)
		if err != nil {
			return err
		}
		if err := o.SetOffset(pose); err != nil {
			return fmt.Errorf("set origin offset: %w", err)
		}
		fmt.Fprintf(w, "Set offset of origin %d %q\n", o.ID, o.Name)
	}

	return nil
}

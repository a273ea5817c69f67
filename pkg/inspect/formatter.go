package inspect

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/monado-tools/libmonado-go/pkg/monado"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for unsupported output formats.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat parses a format name (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
}

// Formatter formats inspection output.
type Formatter struct {
	// ShowIDs includes name enumeration IDs alongside device names
	ShowIDs bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowIDs:     false,
		IndentWidth: 2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	indent := strings.Repeat(" ", depth*width)
	return indent + content
}

// FormatPose formats a pose as position and orientation tuples.
func (f *Formatter) FormatPose(p monado.Pose) string {
	return fmt.Sprintf("pos(%s, %s, %s) rot(%s, %s, %s, %s)",
		formatFloat(p.Position.X), formatFloat(p.Position.Y), formatFloat(p.Position.Z),
		formatFloat(p.Orientation.X), formatFloat(p.Orientation.Y), formatFloat(p.Orientation.Z), formatFloat(p.Orientation.W))
}

// FormatBattery formats a battery status.
func (f *Formatter) FormatBattery(b monado.BatteryStatus) string {
	if !b.Present {
		return "no battery"
	}
	s := strconv.Itoa(int(b.Charge*100+0.5)) + "%"
	if b.Charging {
		s += " (charging)"
	}
	return s
}

// FormatClient formats a client line.
func (f *Formatter) FormatClient(c ClientInfo) string {
	if c.Error != "" {
		return fmt.Sprintf("[%d] <%s>", c.ID, c.Error)
	}
	return fmt.Sprintf("[%d] %q %s", c.ID, c.Name, c.State)
}

// FormatDevice formats a device line.
func (f *Formatter) FormatDevice(d DeviceInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %q", d.Index, d.Name)
	if f.ShowIDs {
		fmt.Fprintf(&b, " (name_id %d)", d.NameID)
	}
	if d.Serial != "" {
		fmt.Fprintf(&b, " serial=%s", d.Serial)
	}
	if d.Battery != nil {
		fmt.Fprintf(&b, " battery=%s", f.FormatBattery(*d.Battery))
	}
	if d.Brightness != nil {
		fmt.Fprintf(&b, " brightness=%s", formatFloat(*d.Brightness))
	}
	return b.String()
}

// FormatSnapshot renders a snapshot as indented text.
func (f *Formatter) FormatSnapshot(s *Snapshot) string {
	var b strings.Builder
	line := func(depth int, content string) {
		b.WriteString(f.Indent(depth, content))
		b.WriteByte('\n')
	}

	line(0, fmt.Sprintf("libmonado %s (%s)", s.Version, s.Library))

	line(0, fmt.Sprintf("Clients (%d):", len(s.Clients)))
	for _, c := range s.Clients {
		line(1, f.FormatClient(c))
	}

	line(0, fmt.Sprintf("Devices (%d):", len(s.Devices)))
	for _, d := range s.Devices {
		line(1, f.FormatDevice(d))
	}

	line(0, "Roles:")
	for _, r := range s.Roles {
		if r.Device == nil {
			line(1, r.Role+": -")
		} else {
			line(1, fmt.Sprintf("%s: %d", r.Role, *r.Device))
		}
	}

	line(0, fmt.Sprintf("Tracking origins (%d):", len(s.TrackingOrigins)))
	for _, o := range s.TrackingOrigins {
		line(1, fmt.Sprintf("[%d] %q %s", o.ID, o.Name, f.offsetOrError(o.Offset, o.Error)))
	}

	line(0, "Reference spaces:")
	for _, sp := range s.ReferenceSpaces {
		line(1, fmt.Sprintf("%s: %s", sp.Space, f.offsetOrError(sp.Offset, sp.Error)))
	}

	return b.String()
}

func (f *Formatter) offsetOrError(p *monado.Pose, errMsg string) string {
	if p == nil {
		if errMsg == "" {
			return "-"
		}
		return "<" + errMsg + ">"
	}
	return f.FormatPose(*p)
}

// Write encodes v in the given format. Text output of a *Snapshot uses
// FormatSnapshot; other values are rendered as YAML.
func (f *Formatter) Write(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", strings.Repeat(" ", max(f.IndentWidth, 1)))
		return enc.Encode(v)

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(max(f.IndentWidth, 2))
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()

	case FormatText, "":
		switch x := v.(type) {
		case *Snapshot:
			_, err := io.WriteString(w, f.FormatSnapshot(x))
			return err
		case ClientInfo:
			_, err := fmt.Fprintln(w, f.FormatClient(x))
			return err
		case DeviceInfo:
			_, err := fmt.Fprintln(w, f.FormatDevice(x))
			return err
		case OriginInfo:
			_, err := fmt.Fprintf(w, "[%d] %q %s\n", x.ID, x.Name, f.offsetOrError(x.Offset, x.Error))
			return err
		case SpaceInfo:
			_, err := fmt.Fprintf(w, "%s: %s\n", x.Space, f.offsetOrError(x.Offset, x.Error))
			return err
		}
		return f.Write(w, v, FormatYAML)
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// ParsePose parses "x,y,z" or "x,y,z,qx,qy,qz,qw". A position-only pose has
// identity orientation; a given orientation is normalized.
func ParsePose(s string) (monado.Pose, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 7 {
		return monado.Pose{}, fmt.Errorf("%w: pose needs 3 or 7 components, got %d", ErrInvalidNumber, len(parts))
	}

	vals := make([]float32, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return monado.Pose{}, fmt.Errorf("%w: %s", ErrInvalidNumber, p)
		}
		vals[i] = float32(v)
	}

	pose := monado.IdentityPose()
	pose.Position = monado.Vector3{X: vals[0], Y: vals[1], Z: vals[2]}
	if len(vals) == 7 {
		pose.Orientation = monado.Quaternion{X: vals[3], Y: vals[4], Z: vals[5], W: vals[6]}.Normalized()
	}
	return pose, nil
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 3, 32)
}

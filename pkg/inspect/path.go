// Package inspect provides connection inspection utilities.
//
// The inspect package offers a unified interface for:
//   - Parsing target expressions (e.g., "device/0", "space/local-floor")
//   - Resolving names for reference spaces, roles and target kinds
//   - Capturing a snapshot of everything a connection can report
//   - Formatting output for display as text, JSON or YAML
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/monado-tools/libmonado-go/pkg/mnd"
	"github.com/monado-tools/libmonado-go/pkg/monado"
)

// Target errors.
var (
	ErrEmptyTarget   = errors.New("empty target")
	ErrInvalidTarget = errors.New("invalid target format")
	ErrInvalidNumber = errors.New("invalid numeric value in target")
	ErrUnknownName   = errors.New("unknown name in target")
)

// TargetKind is the kind of entity a target addresses.
type TargetKind uint8

const (
	TargetClient TargetKind = iota
	TargetDevice
	TargetOrigin
	TargetSpace
	TargetRole
)

// String returns the canonical kind name.
func (k TargetKind) String() string {
	switch k {
	case TargetClient:
		return "client"
	case TargetDevice:
		return "device"
	case TargetOrigin:
		return "origin"
	case TargetSpace:
		return "space"
	case TargetRole:
		return "role"
	default:
		return "unknown"
	}
}

// Target is a parsed target expression.
// Format: kind/selector, where the selector is a number for clients,
// devices and origins and a name for spaces and roles.
type Target struct {
	Kind TargetKind

	// ID is the client ID, device index or origin ID.
	ID uint32

	// Space is set for TargetSpace.
	Space mnd.ReferenceSpaceType

	// Role is set for TargetRole.
	Role monado.DeviceRole

	// Raw stores the original input string.
	Raw string
}

// ParseTarget parses a target string.
//
// Supported formats:
//   - "client/3"
//   - "device/0" (hex selectors such as "device/0x1" are accepted)
//   - "origin/1"
//   - "space/local-floor"
//   - "role/head"
//
// Kind names are case-insensitive and accept short aliases (c, d, o, s, r).
func ParseTarget(input string) (*Target, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyTarget
	}

	kindName, selector, ok := strings.Cut(input, "/")
	if !ok || kindName == "" || selector == "" || strings.Contains(selector, "/") {
		return nil, ErrInvalidTarget
	}

	kind, ok := ResolveKindName(kindName)
	if !ok {
		return nil, fmt.Errorf("%w: kind %s", ErrUnknownName, kindName)
	}

	t := &Target{Kind: kind, Raw: input}
	switch kind {
	case TargetSpace:
		space, ok := ResolveSpaceName(selector)
		if !ok {
			return nil, fmt.Errorf("%w: space %s", ErrUnknownName, selector)
		}
		t.Space = space
	case TargetRole:
		role, ok := ResolveRoleName(selector)
		if !ok {
			return nil, fmt.Errorf("%w: role %s", ErrUnknownName, selector)
		}
		t.Role = role
	default:
		id, err := parseUint32(selector)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidNumber, selector)
		}
		t.ID = id
	}
	return t, nil
}

// String returns the target in canonical form.
func (t *Target) String() string {
	switch t.Kind {
	case TargetSpace:
		return t.Kind.String() + "/" + t.Space.String()
	case TargetRole:
		return t.Kind.String() + "/" + t.Role.String()
	default:
		return t.Kind.String() + "/" + strconv.FormatUint(uint64(t.ID), 10)
	}
}

// parseUint32 parses a uint32 from a decimal or hex string.
func parseUint32(s string) (uint32, error) {
	var v uint64
	var err error

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 32)
	} else {
		v, err = strconv.ParseUint(s, 10, 32)
	}
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

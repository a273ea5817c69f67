package mnd

// Root is the opaque libmonado state handle (mnd_root_t*).
type Root uintptr

// Property selects a device property for the typed info getters.
type Property int32

const (
	// PropertyNameString is the device name.
	PropertyNameString Property = 1

	// PropertySerialString is the device serial number.
	PropertySerialString Property = 2
)

// String returns the property name.
func (p Property) String() string {
	switch p {
	case PropertyNameString:
		return "NAME_STRING"
	case PropertySerialString:
		return "SERIAL_STRING"
	default:
		return "UNKNOWN"
	}
}

// ReferenceSpaceType identifies a well-known spatial frame.
type ReferenceSpaceType int32

const (
	ReferenceSpaceView       ReferenceSpaceType = 0
	ReferenceSpaceLocal      ReferenceSpaceType = 1
	ReferenceSpaceLocalFloor ReferenceSpaceType = 2
	ReferenceSpaceStage      ReferenceSpaceType = 3
	ReferenceSpaceUnbounded  ReferenceSpaceType = 4
)

// ReferenceSpaceTypes lists every reference space type in wire order.
var ReferenceSpaceTypes = []ReferenceSpaceType{
	ReferenceSpaceView,
	ReferenceSpaceLocal,
	ReferenceSpaceLocalFloor,
	ReferenceSpaceStage,
	ReferenceSpaceUnbounded,
}

// String returns the reference space name.
func (t ReferenceSpaceType) String() string {
	switch t {
	case ReferenceSpaceView:
		return "view"
	case ReferenceSpaceLocal:
		return "local"
	case ReferenceSpaceLocalFloor:
		return "local-floor"
	case ReferenceSpaceStage:
		return "stage"
	case ReferenceSpaceUnbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the defined reference space types.
func (t ReferenceSpaceType) Valid() bool {
	return t >= ReferenceSpaceView && t <= ReferenceSpaceUnbounded
}

// Client state bits as reported by mnd_root_get_client_state.
const (
	ClientPrimaryApp     uint32 = 1 << 0
	ClientSessionActive  uint32 = 1 << 1
	ClientSessionVisible uint32 = 1 << 2
	ClientSessionFocused uint32 = 1 << 3
	ClientSessionOverlay uint32 = 1 << 4
	ClientIOActive       uint32 = 1 << 5

	// ClientStateMask covers every bit this binding understands.
	ClientStateMask = ClientPrimaryApp | ClientSessionActive | ClientSessionVisible |
		ClientSessionFocused | ClientSessionOverlay | ClientIOActive
)

// Quaternion is the wire layout of mnd_quaternion_t.
type Quaternion struct {
	X, Y, Z, W float32
}

// Vector3 is the wire layout of mnd_vector3_t.
type Vector3 struct {
	X, Y, Z float32
}

// Pose is the wire layout of mnd_pose_t: orientation first, then position.
type Pose struct {
	Orientation Quaternion
	Position    Vector3
}

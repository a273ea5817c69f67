package mnd

// Result is a libmonado status code. Zero is success, negative values are
// errors.
//
// Result implements error so that foreign statuses can be returned and
// matched directly: errors.Is(err, mnd.ErrorInvalidValue).
type Result int32

const (
	// Success indicates the call completed.
	Success Result = 0

	// ErrorInvalidVersion indicates an incompatible API version.
	ErrorInvalidVersion Result = -1

	// ErrorInvalidValue indicates an invalid argument or an undecodable result.
	ErrorInvalidValue Result = -2

	// ErrorConnectingFailed indicates the library or the runtime could not be reached.
	ErrorConnectingFailed Result = -3

	// ErrorOperationFailed indicates the runtime rejected or failed the operation.
	ErrorOperationFailed Result = -4

	// ErrorRecenteringNotSupported indicates the runtime cannot recenter local spaces.
	ErrorRecenteringNotSupported Result = -5

	// ErrorInvalidProperty indicates the property is unknown for the device.
	ErrorInvalidProperty Result = -6

	// ErrorInvalidOperation indicates the operation is not available.
	ErrorInvalidOperation Result = -7
)

// String returns the status name.
func (r Result) String() string {
	switch r {
	case Success:
		return "SUCCESS"
	case ErrorInvalidVersion:
		return "INVALID_VERSION"
	case ErrorInvalidValue:
		return "INVALID_VALUE"
	case ErrorConnectingFailed:
		return "CONNECTING_FAILED"
	case ErrorOperationFailed:
		return "OPERATION_FAILED"
	case ErrorRecenteringNotSupported:
		return "RECENTERING_NOT_SUPPORTED"
	case ErrorInvalidProperty:
		return "INVALID_PROPERTY"
	case ErrorInvalidOperation:
		return "INVALID_OPERATION"
	default:
		return "UNKNOWN"
	}
}

// Error implements the error interface.
func (r Result) Error() string {
	return "libmonado: " + r.String()
}

// IsSuccess returns true if the status indicates success.
func (r Result) IsSuccess() bool {
	return r == Success
}

// Err returns nil for Success and the status itself otherwise.
func (r Result) Err() error {
	if r == Success {
		return nil
	}
	return r
}

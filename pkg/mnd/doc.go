// Package mnd is the raw foreign surface of libmonado.
//
// It defines the call table (API) whose function slots are bound by C symbol
// name to a libmonado shared object loaded at runtime, together with the
// fixed-layout types that cross the boundary: status codes (Result), device
// properties, reference space types, client state bits and the pose wire
// structure.
//
// # Binding
//
// Each slot of API carries an `mnd:"symbol[,optional]"` struct tag. Open loads
// a library with purego (no cgo required) and binds every tagged slot. A
// missing required symbol fails the load; a missing optional symbol leaves
// the slot nil.
//
//	lib, err := mnd.Open("/usr/lib/libmonado.so")
//	if err != nil {
//	    return err
//	}
//	defer lib.Close()
//
//	var major, minor, patch uint32
//	lib.GetVersion(&major, &minor, &patch)
//
// # Strings
//
// Strings returned through out-parameters point into memory owned by the
// runtime. They must be copied with GoString right after the call and never
// retained as pointers.
//
// Nothing in this package manages the root handle's lifetime; see package
// monado for the safe layer.
package mnd

// Package monado is a safe binding to libmonado, the introspection library
// of the Monado XR runtime.
//
// A Monado owns one connection (a libmonado root handle) and the library it
// was loaded from. Clients, devices and tracking origins are small values
// that reach the connection through a Ref:
//
//   - *Monado: borrowed. Valid while the caller keeps the Monado open.
//   - *Shared: reference counted for fan-out within one goroutine.
//   - *AtomicShared: reference counted with atomic operations, so handles
//     may be passed between goroutines.
//
// All three expose the same operations through ClientsOf, DevicesOf,
// DeviceFromRoleOf and TrackingOriginsOf, and through methods on the
// generic Client, Device and TrackingOrigin types.
//
// # Concurrency
//
// Every operation is a synchronous call into libmonado. The binding applies
// no locking around those calls. Callers that use a connection from several
// goroutines must serialize the calls themselves unless the runtime library
// is known to be thread-safe. AtomicShared only makes the reference count
// safe to share.
//
// Enumerations return snapshots. Client IDs are valid as of the last list
// refresh and device indices for one enumeration pass; the runtime may
// change either at any time.
package monado

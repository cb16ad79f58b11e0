// Package core provides the host collaborator interfaces and shared types
// for the fsutil portable filesystem utility layer.
//
// The utility layer itself (path canonicalization, directory listing and
// walking, encoding-aware text I/O, scoped temporary resources) contains no
// OS calls. Everything that touches the operating system is expressed as a
// narrow interface in this package and supplied by a host implementation.
//
// # Interface Hierarchy
//
// The main Host interface is composed of five sub-interfaces:
//
//   - ByteIO: Raw byte read/write of a file at a path
//   - Permissions: Query and mutate the OS write-permission flag
//   - Enumerator: Enumerate immediate directory entries for a wildcard
//   - Manager: Create and remove directories and files
//   - TempHost: Unique-name generation and FIFO creation
//
// Not every host supports every operation; a host reports a capability gap
// by returning ErrUnsupported.
//
// # Host Implementations
//
// Concrete hosts live in separate packages:
//
//   - github.com/jmgilman/go/fsutil/osfs - package os backed host
//   - github.com/jmgilman/go/fsutil/billyfs - go-billy backed host
//
// The conformance suite in github.com/jmgilman/go/fsutil/hosttest validates
// a host implementation against the contracts described here.
package core

// Package source provides built-in process source implementations.
//
// Process sources tell the monitor which processes to watch. The package
// includes:
//
//   - Static: Fixed list of process names
//
// Custom sources can be implemented by satisfying the types.ProcessSource
// interface, for example one backed by a service registry.
package source

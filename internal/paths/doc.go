// Package paths maintains the application's registry of named filesystem
// paths. Every stored path is absolute: relative paths are resolved against
// another named entry (the "upon" path, "root" by default) at write time.
package paths

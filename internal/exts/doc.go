// Package exts maintains the mapping from artifact type names (such as
// "route") to the file extensions recognized for that type. Extension lists
// keep insertion order, since the first entry is treated as the canonical
// extension, and never hold duplicates.
package exts

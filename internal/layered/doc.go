// Package layered implements the set / default / set-with-default policy
// shared by the application's named configuration stores. A store is a plain
// key-value map whose writes go through a Policy that validates and resolves
// raw input before anything is stored, so a rejected call never mutates the
// store.
//
// Stores are not safe for concurrent mutation. They are written during
// application setup and read afterwards.
package layered

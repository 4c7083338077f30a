// Package app composes an overlook application: a set of plugins registered
// in an explicit composition step, sharing a path registry, a type-extension
// registry and the route tree loaded from the routes directory.
//
// The core plugins are registered by New in this order: paths, routes,
// start, stop. Extra plugins passed in Options run after them and reach the
// core capabilities through the *App they are initialized with.
package app

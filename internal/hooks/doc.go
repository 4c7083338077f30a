// Package hooks provides named series hooks that plugins tap into around
// application lifecycle steps such as start and stop.
package hooks

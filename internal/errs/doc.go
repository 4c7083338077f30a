// Package errs defines the error kinds shared by the path and type-extension
// registries. Callers match them with errors.Is.
package errs

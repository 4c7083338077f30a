// Package manifest parses overlook.yaml project files and validates them
// against the embedded JSON schema in schema/overlook.schema.json.
package manifest

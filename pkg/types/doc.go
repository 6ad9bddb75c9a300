// Package types defines the Backend and Store interfaces, entity types,
// options, and standard error types for the Satchel profile store.
package types

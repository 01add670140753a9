// Package registry exposes build metadata for the registry CLI.
package registry

// Version is the registry release version.
const Version = "0.3.0"

// Shared password gate for the registry CLI. Mirrors the portal's
// protected-workspace behavior: when APP_PASSWORD is configured, every
// data command requires a matching password before the store is
// touched.
package main

import (
	"crypto/subtle"
	"errors"

	"github.com/NSC-Rick/stjregistry/internal/secrets"
)

// Gate errors.
var (
	errPasswordRequired  = errors.New("this workspace is protected; pass --password or set REGISTRY_PASSWORD")
	errPasswordIncorrect = errors.New("incorrect password")
)

// checkGate compares the operator-supplied password against the shared
// workspace password. An unset APP_PASSWORD leaves the workspace
// unguarded.
func checkGate() error {
	want := secrets.AppPassword()
	if want == "" {
		return nil
	}
	got := flagPassword
	if got == "" {
		got = secrets.ProvidedPassword()
	}
	if got == "" {
		return errPasswordRequired
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
		return errPasswordIncorrect
	}
	return nil
}

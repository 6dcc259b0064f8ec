//go:build !streamdebug

package invariant

// Enabled reports whether assertions panic.
const Enabled = false

// Check is a no-op in release builds.
func Check(bool, string) {}

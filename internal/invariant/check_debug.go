//go:build streamdebug

package invariant

// Enabled reports whether assertions panic.
const Enabled = true

// Check panics with msg when cond is false.
func Check(cond bool, msg string) {
	if !cond {
		panic("renderstream: invariant violated: " + msg)
	}
}

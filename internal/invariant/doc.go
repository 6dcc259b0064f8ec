// Package invariant holds structural assertions that are fatal only in debug
// builds. Build with -tags streamdebug to turn violations into panics; release
// builds ignore them and callers fall back to a safe no-op path.
package invariant

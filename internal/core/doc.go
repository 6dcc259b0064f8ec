// Package core defines identity types and the collaborator contracts shared by
// every layer of the tracker.
package core

// Package arena provides a generation-checked slot arena.
//
// Slots are addressed by a Ref (index + generation). Freed slots are pushed on
// a free stack and reused before the arena grows, and every free bumps the
// slot generation so that stale refs stop resolving instead of silently
// aliasing the slot's next occupant.
//
// # Concurrency Model
//
// Arena is not safe for concurrent mutation. Alloc and Free must be
// serialized by the owner.
package arena

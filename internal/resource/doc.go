// Package resource implements the Controller for limits shared by trackers.
//
// The Controller provides centralized management of three resource types:
//
//   - Memory: Track and limit bounds table memory (non-blocking, fail-fast)
//   - Concurrency: Limit parallel compile batches
//   - Trim cadence: Token bucket gating periodic trims
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                        Controller                           │
//	├─────────────────┬─────────────────┬─────────────────────────┤
//	│  Memory Limit   │  Background     │  Trim Rate Limiter      │
//	│  (fail-fast)    │  Workers (sem)  │  (token bucket)         │
//	├─────────────────┼─────────────────┼─────────────────────────┤
//	│  AcquireMemory  │  AcquireBack-   │  AllowTrim              │
//	│  ReleaseMemory  │  ground         │                         │
//	│  MemoryUsage    │  TryAcquire     │                         │
//	│                 │  Release        │                         │
//	└─────────────────┴─────────────────┴─────────────────────────┘
//
// # Memory Management
//
// The bounds table reserves memory one lane at a time. AcquireMemory is
// non-blocking and returns ErrMemoryLimitExceeded immediately when the limit
// would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20,
//	})
//
//	if err := rc.AcquireMemory(laneBytes); err != nil {
//	    // ErrMemoryLimitExceeded - the add fails
//	}
//	defer rc.ReleaseMemory(laneBytes)
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource

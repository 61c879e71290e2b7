// Package sim ties the particle store, input tracker, physics, cursor follower
// and render bridge into one simulation context.
//
// Per tick the order is fixed: drop a drag whose target vanished, resolve
// collisions, integrate, smooth the cursor, compose the frame, then feed
// metrics and observers. Pointer handlers may run between ticks and write
// into the same context; nothing here is safe for concurrent use.
//
// Run drives the same loop headlessly for a fixed number of ticks and
// records a per-tick series for storage and plotting. Ensemble fans several
// seeds out over goroutines, one simulation each.
package sim

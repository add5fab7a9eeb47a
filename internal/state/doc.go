// Package state provides thread-safe state management for crewdeck.
//
// # Overview
//
// This package implements a small store for sharing the crew dataset between
// the background refresher and the UI. It is the coordination point where
// repository reloads meet UI rendering.
//
// # Architecture
//
// The package follows a producer-consumer pattern:
//
//	Producer (refresher):          Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ crew.Load()    │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  repeat...     │            │  rebuild screens│
//	└────────────────┘            └─────────────────┘
//
// Update and Snapshot both copy the dataset, so neither side can observe
// the other's later mutations.
//
// # Failure Tracking
//
// A failed refresh keeps the previous dataset and increments
// ConsecutiveFailures. IsStale reports true from the second consecutive
// failure on, which the UI surfaces in its header. Any successful update
// resets the counter.
package state

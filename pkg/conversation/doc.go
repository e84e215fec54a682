// Package conversation implements the cross-tool continuation store
//: threads of turns, addressed by a collision-resistant id,
// backed by a generic TTL-aware key-value interface. Two backends ship
// here (an in-memory map for tests and single-process deployments, and
// a SQLite-backed one for durability across restarts) plus a periodic
// sweeper that evicts expired threads.
package conversation

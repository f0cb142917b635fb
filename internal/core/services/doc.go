// Package services implements the driving port interfaces.
// Services own the client's interaction state and orchestrate
// calls to driven ports (adapters).
//
// Each service guards its own state; presentation layers read
// snapshots and never mutate it directly.
package services

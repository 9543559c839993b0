// Package control implements the deterministic character-movement core:
// ground and wall sensing, horizontal/dash movement, jump resolution, and
// presentation-state derivation, composed into a fixed per-tick pipeline.
//
// The package owns no physics and no rendering. It reads and writes a single
// physics body through the Body interface, queries level geometry through the
// World interface, and emits one PresentationState per tick to a Sink.
package control

// Package analysis extracts the ringing frequency and decay of recorded
// lattice traces.
package analysis

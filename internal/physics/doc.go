// Package physics advances a [lattice.Lattice] in time.
//
// Both lattice kinds use the same force model: Hookean springs along every
// live neighbour slot, a spring pulling each point back to its anchor, and a
// pointer force with polynomial falloff. Integration is semi-implicit Euler
// with exponential velocity damping, run at a fixed substep by [Clock]:
//
//	clk := physics.NewClock()
//	for n := clk.Advance(now); n > 0; n-- {
//	    physics.StepPlanar(l, params, cursor, physics.FixedDt)
//	}
//
// Positions are updated in place while iterating, so later points in a
// substep see the already-moved earlier ones.
package physics

// Package viz is the terminal preview of a lattice.
//
// The lattice is drawn through a render.Surface adapter onto a braille
// [Canvas] (2x4 sub-pixels per cell); a sub-pixel is lit where composited
// brightness exceeds [Surface.Threshold].
//
// # Key Bindings
//
//	Arrows/hjkl - Move the pointer
//	Space       - Toggle the pointer
//	W           - Send a wave
//	R           - Rebuild the lattice
//	T           - Cycle colour themes
//	?           - Full help
//	Q           - Quit
package viz

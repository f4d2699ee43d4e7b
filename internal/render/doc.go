// Package render projects lattice points to screen space and draws them
// onto a host [Surface].
//
// Planar lattices map 1:1 to pixels and are drawn by blitting one
// pre-rasterised dot sprite per point. Spherical lattices are rotated by the
// inertial [Rotation], perspective-projected through a [Camera] and drawn as
// shaded circles with an optional additive specular pass. A static vignette
// image, rebuilt only when the surface is resized, is composited last.
package render

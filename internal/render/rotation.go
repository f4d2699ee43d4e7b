package render

import (
	"math"

	"github.com/san-kum/lattice/internal/vmath"
)

// RotationParams configure the two-axis rotational inertia of a sphere.
// Zero max speeds select defaults derived from the auto-rotation speeds.
type RotationParams struct {
	AutoRotate    bool
	YawSpeed      float64
	PitchSpeed    float64
	BasePitch     float64
	Spring        float64
	Friction      float64
	DragGain      float64
	MaxYawSpeed   float64
	MaxPitchSpeed float64
}

// Rotation integrates yaw and pitch velocities toward the auto-rotation
// targets, with exponential friction and a speed cap per axis.
type Rotation struct {
	RotationParams
	Yaw, Pitch       float64
	YawVel, PitchVel float64
}

func DefaultMaxSpeeds(yawSpeed, pitchSpeed float64) (maxYaw, maxPitch float64) {
	return math.Max(1.2, 3*math.Abs(yawSpeed)), math.Max(0.6, 3*math.Abs(pitchSpeed))
}

func NewRotation(p RotationParams) *Rotation {
	defYaw, defPitch := DefaultMaxSpeeds(p.YawSpeed, p.PitchSpeed)
	if p.MaxYawSpeed > 0 {
		p.MaxYawSpeed = math.Max(0.05, p.MaxYawSpeed)
	} else {
		p.MaxYawSpeed = defYaw
	}
	if p.MaxPitchSpeed > 0 {
		p.MaxPitchSpeed = math.Max(0.05, p.MaxPitchSpeed)
	} else {
		p.MaxPitchSpeed = defPitch
	}
	return &Rotation{RotationParams: p}
}

func (r *Rotation) targets() (yaw, pitch float64) {
	if !r.AutoRotate {
		return 0, 0
	}
	return r.YawSpeed, r.PitchSpeed
}

func (r *Rotation) clamp() {
	r.YawVel = vmath.Clamp(r.YawVel, -r.MaxYawSpeed, r.MaxYawSpeed)
	r.PitchVel = vmath.Clamp(r.PitchVel, -r.MaxPitchSpeed, r.MaxPitchSpeed)
}

// Advance moves the rotation forward by dt seconds.
func (r *Rotation) Advance(dt float64) {
	ty, tp := r.targets()
	r.YawVel += (ty - r.YawVel) * r.Spring * dt
	r.PitchVel += (tp - r.PitchVel) * r.Spring * dt
	fr := math.Exp(-r.Friction * dt)
	r.YawVel *= fr
	r.PitchVel *= fr
	r.clamp()
	r.Yaw += r.YawVel * dt
	r.Pitch += r.PitchVel * dt
}

// Drag applies a pointer swipe. dx and dy are pixel deltas divided by the
// smaller surface dimension; moving up tilts the pitch negative.
func (r *Rotation) Drag(dx, dy float64) {
	r.YawVel += dx * r.DragGain
	r.PitchVel -= dy * r.DragGain
	r.clamp()
}

// Matrix is the object-to-camera rotation for the current angles.
func (r *Rotation) Matrix() vmath.Mat3 {
	return vmath.RotationYawPitch(r.Yaw, r.BasePitch+r.Pitch)
}

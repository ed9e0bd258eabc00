package core

import (
	"math"
	"testing"
)

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, 1))

	if got := ray.At(2.5); got != NewVec3(1, 2, 5.5) {
		t.Errorf("Expected (1, 2, 5.5), got %v", got)
	}
	if got := ray.At(0); got != ray.Origin {
		t.Errorf("Expected origin at t=0, got %v", got)
	}
}

func TestNewRay_InvDirection(t *testing.T) {
	ray := NewRay(Vec3{}, NewVec3(2, -4, 0))

	if ray.InvDirection.X != 0.5 || ray.InvDirection.Y != -0.25 {
		t.Errorf("Expected (0.5, -0.25, ...), got %v", ray.InvDirection)
	}
	if !math.IsInf(ray.InvDirection.Z, 1) {
		t.Errorf("Expected +Inf for a zero component, got %v", ray.InvDirection.Z)
	}

	negZero := NewRay(Vec3{}, NewVec3(1, 1, math.Copysign(0, -1)))
	if !math.IsInf(negZero.InvDirection.Z, -1) {
		t.Errorf("Expected -Inf for negative zero, got %v", negZero.InvDirection.Z)
	}
}

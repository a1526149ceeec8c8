package lights

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

const tolerance = 1e-9

func TestPointLight_Sample(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 4, 0), core.NewColour(1, 0.5, 0.25), 2.0)

	sample := light.Sample(core.NewVec3(0, 0, 0), 0)
	if sample.Direction.Subtract(core.NewVec3(0, 1, 0)).Length() > tolerance {
		t.Errorf("expected direction (0,1,0), got %v", sample.Direction)
	}
	if math.Abs(sample.Distance-4) > tolerance {
		t.Errorf("expected distance 4, got %f", sample.Distance)
	}
	if sample.Radiance != core.NewColour(2, 1, 0.5) {
		t.Errorf("expected unattenuated radiance, got %v", sample.Radiance)
	}
	if light.SampleCount() != 1 {
		t.Errorf("expected 1 sample, got %d", light.SampleCount())
	}
}

func TestPointLight_Attenuation(t *testing.T) {
	tests := []struct {
		name        string
		attenuation Attenuation
		expected    float64
	}{
		{"none", NoAttenuation(), 1.0},
		{"inverse square", InverseSquare(), 1.0 / 16.0},
		{"linear", Attenuation{Constant: 1, Linear: 1}, 1.0 / 5.0},
		{"non-positive denominator", Attenuation{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			light := NewPointLight(core.NewVec3(4, 0, 0), core.NewColour(1, 1, 1), 1.0)
			light.Attenuation = tt.attenuation
			sample := light.Sample(core.NewVec3(0, 0, 0), 0)
			if math.Abs(sample.Radiance.R-tt.expected) > tolerance {
				t.Errorf("expected radiance %f, got %f", tt.expected, sample.Radiance.R)
			}
		})
	}
}

func TestPointLight_AtShadingPoint(t *testing.T) {
	light := NewPointLight(core.NewVec3(1, 2, 3), core.NewColour(1, 1, 1), 1.0)
	if sample := light.Sample(core.NewVec3(1, 2, 3), 0); !sample.IsZero() {
		t.Errorf("light at the shading point should contribute nothing, got %+v", sample)
	}
}

func TestDirectionalLight_Sample(t *testing.T) {
	light := NewDirectionalLight(core.NewVec3(0, -2, 0), core.NewColour(1, 1, 1), 0.5)
	sample := light.Sample(core.NewVec3(10, 10, 10), 0)

	if sample.Direction.Subtract(core.NewVec3(0, 1, 0)).Length() > tolerance {
		t.Errorf("expected direction towards the light (0,1,0), got %v", sample.Direction)
	}
	if !math.IsInf(sample.Distance, 1) {
		t.Errorf("expected infinite distance, got %f", sample.Distance)
	}
	if sample.Radiance != core.Grey(0.5) {
		t.Errorf("expected radiance 0.5, got %v", sample.Radiance)
	}

	zero := NewDirectionalLight(core.Vec3{}, core.NewColour(1, 1, 1), 1)
	if !zero.Sample(core.Vec3{}, 0).IsZero() {
		t.Error("zero-direction light should contribute nothing")
	}
}

func TestSpotLight_Cone(t *testing.T) {
	light := NewSpotLight(core.NewVec3(0, 10, 0), core.NewVec3(0, 0, 0), core.NewColour(1, 1, 1), 1.0, 30, 10)

	tests := []struct {
		name  string
		point core.Vec3
		check func(r float64) bool
	}{
		{"on axis", core.NewVec3(0, 0, 0), func(r float64) bool { return math.Abs(r-1) < tolerance }},
		{"outside cone", core.NewVec3(10, 0, 0), func(r float64) bool { return r == 0 }},
		// tan(25°)*10 ≈ 4.66 sits inside the soft edge between 20° and 30°
		{"soft edge", core.NewVec3(4.66, 0, 0), func(r float64) bool { return r > 0 && r < 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := light.Sample(tt.point, 0).Radiance.R
			if !tt.check(r) {
				t.Errorf("unexpected radiance %f", r)
			}
		})
	}
}

func TestAreaLight_Grid(t *testing.T) {
	// 2x2 light centred above the origin, facing down
	light := NewAreaLight(core.NewVec3(-1, 5, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), core.NewColour(1, 1, 1), 1.0, 3)

	if light.SampleCount() != 9 {
		t.Fatalf("expected 9 samples, got %d", light.SampleCount())
	}

	// The centre cell of an odd grid sits directly above the origin
	centre := light.Sample(core.NewVec3(0, 0, 0), 4)
	if centre.Direction.Subtract(core.NewVec3(0, 1, 0)).Length() > tolerance {
		t.Errorf("expected centre sample straight up, got %v", centre.Direction)
	}
	if math.Abs(centre.Distance-5) > tolerance {
		t.Errorf("expected distance 5, got %f", centre.Distance)
	}
	expected := (4.0 / 9.0) / 25.0
	if math.Abs(centre.Radiance.R-expected) > tolerance {
		t.Errorf("expected radiance %f, got %f", expected, centre.Radiance.R)
	}

	// Deterministic: repeated sampling gives identical results
	for i := 0; i < light.SampleCount(); i++ {
		if light.Sample(core.NewVec3(0.3, 0, 0.1), i) != light.Sample(core.NewVec3(0.3, 0, 0.1), i) {
			t.Errorf("sample %d is not deterministic", i)
		}
	}

	if !light.Sample(core.Vec3{}, 9).IsZero() {
		t.Error("out of range index should contribute nothing")
	}
}

func TestAreaLight_TotalApproachesSolidAngle(t *testing.T) {
	// Far from a small light the summed samples approach area/d²
	light := NewAreaLight(core.NewVec3(-0.05, 10, -0.05), core.NewVec3(0.1, 0, 0), core.NewVec3(0, 0, 0.1), core.NewColour(1, 1, 1), 1.0, 4)

	total := 0.0
	for i := 0; i < light.SampleCount(); i++ {
		total += light.Sample(core.Vec3{}, i).Radiance.R
	}
	expected := 0.01 / 100.0
	if math.Abs(total-expected) > expected*1e-3 {
		t.Errorf("expected total %g, got %g", expected, total)
	}
}

package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

func TestNewTriangleMesh_Errors(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	}

	tests := []struct {
		name    string
		faces   []int
		options *TriangleMeshOptions
	}{
		{"partial face", []int{0, 1}, nil},
		{"index out of range", []int{0, 1, 3}, nil},
		{"negative index", []int{0, -1, 2}, nil},
		{"normal count mismatch", []int{0, 1, 2}, &TriangleMeshOptions{Normals: []core.Vec3{{}, {}}}},
		{"material count mismatch", []int{0, 1, 2}, &TriangleMeshOptions{Materials: []material.Material{nil, nil}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTriangleMesh(vertices, tt.faces, nil, tt.options); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestTriangleMesh_Quad(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(-1, 1, 0),
	}
	faces := []int{0, 1, 2, 0, 2, 3}

	mesh, err := NewTriangleMesh(vertices, faces, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mesh.GetTriangleCount() != 2 {
		t.Errorf("expected 2 triangles, got %d", mesh.GetTriangleCount())
	}

	for _, origin := range []core.Vec3{core.NewVec3(0.5, -0.5, 3), core.NewVec3(-0.5, 0.5, 3)} {
		hit, ok := mesh.Hit(core.NewRay(origin, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1))
		if !ok {
			t.Fatalf("expected hit from %v", origin)
		}
		if math.Abs(hit.T-3) > tolerance {
			t.Errorf("expected t=3, got %f", hit.T)
		}
	}

	if _, ok := mesh.Hit(core.NewRay(core.NewVec3(2, 0, 3), core.NewVec3(0, 0, -1)), 0.001, math.Inf(1)); ok {
		t.Error("expected miss outside the mesh")
	}
}

func TestTriangleMesh_Transform(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	}
	mesh, err := NewTriangleMesh(vertices, []int{0, 1, 2}, nil, &TriangleMeshOptions{
		Scale:  2,
		Offset: core.NewVec3(0, 0, -4),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bbox := mesh.BoundingBox()
	if math.Abs(bbox.Min.X+2) > 1e-4 || math.Abs(bbox.Max.Y-2) > 1e-4 || math.Abs(bbox.Center().Z+4) > 1e-4 {
		t.Errorf("unexpected bounds after transform: %v", bbox)
	}
}

func TestBVH_MatchesLinearScan(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	var shapes []Shape
	for i := 0; i < 200; i++ {
		center := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		shapes = append(shapes, NewSphere(center, 0.2+random.Float64()*0.5, nil))
	}
	bvh := NewBVH(shapes)

	stats := bvh.getStats()
	if stats.totalShapes != len(shapes) {
		t.Errorf("expected %d shapes in leaves, got %d", len(shapes), stats.totalShapes)
	}
	if stats.leafNodes < len(shapes)/leafThreshold {
		t.Errorf("expected at least %d leaves, got %d", len(shapes)/leafThreshold, stats.leafNodes)
	}
	if stats.maxDepth > 20 {
		t.Errorf("tree too deep: %d", stats.maxDepth)
	}

	for i := 0; i < 500; i++ {
		origin := core.NewVec3(random.Float64()*30-15, random.Float64()*30-15, 20)
		target := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
		ray := core.NewRay(origin, target.Subtract(origin))

		var linear *Shape
		closest := math.Inf(1)
		for j := range shapes {
			if hit, ok := shapes[j].Hit(ray, 0.001, closest); ok {
				closest = hit.T
				linear = &shapes[j]
			}
		}

		hit, ok := bvh.Hit(ray, 0.001, math.Inf(1))
		if ok != (linear != nil) {
			t.Fatalf("ray %d: bvh hit=%v, linear hit=%v", i, ok, linear != nil)
		}
		if ok && math.Abs(hit.T-closest) > 1e-9 {
			t.Errorf("ray %d: bvh t=%f, linear t=%f", i, hit.T, closest)
		}
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	if _, ok := bvh.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0.001, math.Inf(1)); ok {
		t.Error("empty BVH should never be hit")
	}
}

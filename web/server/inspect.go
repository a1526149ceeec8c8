package server

import (
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strings"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	U            float64                `json:"u"`
	V            float64                `json:"v"`
	Colour       string                 `json:"colour"` // Final pixel colour as #rrggbb
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	ShapeIndex   int                    `json:"shapeIndex"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// handleInspect reports what the primary ray through one pixel hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	name := query.Get("scene")
	if name == "" {
		name = defaultScene
	}

	width, err := parseIntParam(query, "width", 0, minSize, maxSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	height, err := parseIntParam(query, "height", 0, minSize, maxSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sceneObj, err := loadScene(name, width, height)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	width, height = sceneObj.Size()
	x, err := parseIntParam(query, "x", -1, 0, width-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseIntParam(query, "y", -1, 0, height-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if x < 0 || y < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("x and y are required"))
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, x, y))
}

// inspectPixel casts the primary ray through the centre of pixel (x, y)
func inspectPixel(sceneObj *scene.Scene, x, y int) InspectResponse {
	width, height := sceneObj.Size()
	u, v := renderer.PixelToCamera(x, y, width, height)
	c := sceneObj.Trace(u, v).ToRGBA()
	response := InspectResponse{
		U:          u,
		V:          v,
		Colour:     fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B),
		ShapeIndex: -1,
	}

	// Same nearest-hit rule as Scene.Hit, keeping track of which shape won
	ray := sceneObj.Camera.GetRay(u, v)
	var closest *material.HitRecord
	tMax := math.Inf(1)
	for i, shape := range sceneObj.Shapes {
		hit, ok := shape.Hit(ray, core.MinHitDistance, tMax)
		if !ok {
			continue
		}
		if closest == nil || hit.T < tMax {
			closest = hit
			tMax = hit.T
			response.ShapeIndex = i
			response.GeometryType = shapeType(shape)
		}
	}
	if closest == nil {
		return response
	}

	response.Hit = true
	response.Point = [3]float64{closest.Point.X, closest.Point.Y, closest.Point.Z}
	response.Normal = [3]float64{closest.Normal.X, closest.Normal.Y, closest.Normal.Z}
	response.Distance = closest.T
	response.FrontFace = closest.FrontFace
	response.MaterialType, response.Properties = extractMaterialInfo(closest.Material, closest)
	return response
}

func shapeType(shape geometry.Shape) string {
	t := reflect.TypeOf(shape)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}

// extractMaterialInfo describes a material evaluated at the hit
func extractMaterialInfo(mat material.Material, hit *material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = colourHex(m.Albedo.Evaluate(hit.UV, hit.Point))
		return "lambertian", properties

	case *material.Phong:
		properties["diffuse"] = colourHex(m.Diffuse.Evaluate(hit.UV, hit.Point))
		properties["specular"] = colourHex(m.Specular)
		properties["shininess"] = m.Shininess
		if !m.Reflectivity.IsBlack() {
			properties["reflectivity"] = colourHex(m.Reflectivity)
		}
		return "phong", properties

	case *material.Metal:
		properties["albedo"] = colourHex(m.Albedo)
		return "metal", properties

	case *material.Emissive:
		properties["emission"] = [3]float64{m.Color.R, m.Color.G, m.Color.B}
		return "emissive", properties

	default:
		return "unknown", properties
	}
}

// colourHex formats a linear colour the way it would appear in the output image
func colourHex(c core.Colour) string {
	rgba := c.ToRGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

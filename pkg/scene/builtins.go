package scene

import (
	"fmt"
	"sort"
)

// BuiltinInfo describes a scene that is constructed in code rather than loaded from a script
type BuiltinInfo struct {
	Name        string
	Description string
	build       func() *Scene
}

var builtins = map[string]BuiltinInfo{
	"default": {
		Name:        "default",
		Description: "Three spheres on a checkered ground with a point light and a mirror",
		build:       NewDefaultScene,
	},
	"cornell": {
		Name:        "cornell",
		Description: "Cornell box with an area light, a mirror sphere and a box",
		build:       NewCornellScene,
	},
	"spheregrid": {
		Name:        "spheregrid",
		Description: "Grid of colourful Phong spheres under a sun",
		build:       NewSphereGridScene,
	},
	"meshes": {
		Name:        "meshes",
		Description: "Triangle mesh box, pyramid and icosahedron",
		build:       NewTriangleMeshScene,
	},
	"single-sphere": {
		Name:        "single-sphere",
		Description: "Unit sphere at the origin lit by one point light",
		build:       NewSingleSphereScene,
	},
}

// Builtins returns every builtin scene sorted by name
func Builtins() []BuiltinInfo {
	list := make([]BuiltinInfo, 0, len(builtins))
	for _, info := range builtins {
		list = append(list, info)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// NewBuiltin constructs the named builtin scene. The scene is not yet preprocessed.
func NewBuiltin(name string) (*Scene, error) {
	info, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown builtin scene %q", name)
	}
	return info.build(), nil
}

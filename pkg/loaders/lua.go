package loaders

import (
	"fmt"
	"math"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/lights"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/scene"
)

// LoadScript runs a Lua scene script and returns the prepared scene and its render options.
// Any script error or invalid value is reported as an error; nothing is rendered from a
// partially loaded script.
func LoadScript(path string) (*scene.Scene, *Options, error) {
	s, opts, err := loadScript(filepath.Dir(path), func(L *lua.LState) error {
		return L.DoFile(path)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scene script %s: %w", path, err)
	}
	return s, opts, nil
}

// LoadScriptString runs Lua source held in memory. Relative file names resolve against dir.
func LoadScriptString(source, dir string) (*scene.Scene, *Options, error) {
	s, opts, err := loadScript(dir, func(L *lua.LState) error {
		return L.DoString(source)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scene script: %w", err)
	}
	return s, opts, nil
}

// scriptLoader collects shapes and lights as the script calls the registered constructors
type scriptLoader struct {
	L     *lua.LState
	dir   string
	scene *scene.Scene
}

func loadScript(dir string, run func(L *lua.LState) error) (*scene.Scene, *Options, error) {
	L := lua.NewState()
	defer L.Close()

	ld := &scriptLoader{L: L, dir: dir, scene: scene.New()}
	ld.register()

	if err := run(L); err != nil {
		return nil, nil, err
	}

	opts, err := ld.applyGlobals()
	if err != nil {
		return nil, nil, err
	}

	integ, err := integrator.NewIntegrator(opts.Integrator, opts.Shadows, opts.MaxDepth)
	if err != nil {
		return nil, nil, err
	}
	ld.scene.Integrator = integ

	if err := ld.scene.Preprocess(); err != nil {
		return nil, nil, err
	}
	return ld.scene, opts, nil
}

// register installs the constructor functions as Lua globals
func (ld *scriptLoader) register() {
	constructors := map[string]func(tbl *lua.LTable) (interface{}, error){
		// Materials and textures return userdata for use in shape tables
		"lambert":       ld.lambert,
		"phong":         ld.phong,
		"mirror":        ld.mirror,
		"emissive":      ld.emissive,
		"checker":       ld.checker,
		"image_texture": ld.imageTexture,

		// Shapes and lights add themselves to the scene
		"sphere":            ld.sphere,
		"plane":             ld.plane,
		"quad":              ld.quad,
		"disc":              ld.disc,
		"triangle":          ld.triangle,
		"box":               ld.box,
		"mesh":              ld.mesh,
		"point_light":       ld.pointLight,
		"directional_light": ld.directionalLight,
		"spot_light":        ld.spotLight,
		"area_light":        ld.areaLight,
	}

	for name, construct := range constructors {
		ld.L.SetGlobal(name, ld.L.NewFunction(ld.wrap(name, construct)))
	}
}

// wrap adapts a constructor to the Lua calling convention, raising Lua errors on failure
func (ld *scriptLoader) wrap(name string, construct func(tbl *lua.LTable) (interface{}, error)) lua.LGFunction {
	return func(L *lua.LState) int {
		tbl := L.OptTable(1, L.NewTable())
		value, err := construct(tbl)
		if err != nil {
			L.RaiseError("%s: %v", name, err)
			return 0
		}
		ud := L.NewUserData()
		ud.Value = value
		L.Push(ud)
		return 1
	}
}

// applyGlobals reads the configuration tables the script left behind
func (ld *scriptLoader) applyGlobals() (*Options, error) {
	s := ld.scene

	if tbl, ok := ld.globalTable("window"); ok {
		width, err := intField(tbl, "width", s.Width)
		if err != nil {
			return nil, fmt.Errorf("window: %w", err)
		}
		height, err := intField(tbl, "height", s.Height)
		if err != nil {
			return nil, fmt.Errorf("window: %w", err)
		}
		s.Width, s.Height = width, height
	}

	if tbl, ok := ld.globalTable("camera"); ok {
		config := s.CameraConfig
		var err error
		if config.Position, err = vec3Field(tbl, "position", config.Position); err != nil {
			return nil, fmt.Errorf("camera: %w", err)
		}
		if config.LookAt, err = vec3Field(tbl, "look_at", config.LookAt); err != nil {
			return nil, fmt.Errorf("camera: %w", err)
		}
		if config.Up, err = vec3Field(tbl, "up", config.Up); err != nil {
			return nil, fmt.Errorf("camera: %w", err)
		}
		if config.FieldOfView, err = numberField(tbl, "fov", config.FieldOfView); err != nil {
			return nil, fmt.Errorf("camera: %w", err)
		}
		s.CameraConfig = config
	}

	for name, target := range map[string]*core.Colour{"background": &s.Background, "ambient": &s.Ambient} {
		value := ld.L.GetGlobal(name)
		if value == lua.LNil {
			continue
		}
		c, err := toColour(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		*target = c
	}

	opts := DefaultOptions()
	if tbl, ok := ld.globalTable("render"); ok {
		var err error
		if opts.Integrator, err = stringField(tbl, "integrator", opts.Integrator); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		if opts.Shadows, err = boolField(tbl, "shadows", opts.Shadows); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		if opts.MaxDepth, err = intField(tbl, "max_depth", opts.MaxDepth); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		if opts.Threads, err = intField(tbl, "threads", opts.Threads); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		if opts.Bands, err = intField(tbl, "bands", opts.Bands); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		if opts.Remainder, err = stringField(tbl, "remainder", opts.Remainder); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		if opts.Progressive, err = boolField(tbl, "progressive", opts.Progressive); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		if opts.ProgressiveRows, err = intField(tbl, "progressive_rows", opts.ProgressiveRows); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		if opts.Display, err = boolField(tbl, "display", opts.Display); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		if opts.Output, err = stringField(tbl, "output", opts.Output); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return &opts, nil
}

func (ld *scriptLoader) globalTable(name string) (*lua.LTable, bool) {
	tbl, ok := ld.L.GetGlobal(name).(*lua.LTable)
	return tbl, ok
}

// resolve makes a script-relative path usable from the working directory
func (ld *scriptLoader) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(ld.dir, name)
}

// Materials

func (ld *scriptLoader) lambert(tbl *lua.LTable) (interface{}, error) {
	albedo, err := colorSourceField(tbl, core.Grey(0.8))
	if err != nil {
		return nil, err
	}
	return material.NewTexturedLambertian(albedo), nil
}

func (ld *scriptLoader) phong(tbl *lua.LTable) (interface{}, error) {
	diffuse, err := colorSourceField(tbl, core.Grey(0.8))
	if err != nil {
		return nil, err
	}
	p := &material.Phong{Diffuse: diffuse}
	if p.Specular, err = colourField(tbl, "specular", core.Grey(0.5)); err != nil {
		return nil, err
	}
	if p.Shininess, err = numberField(tbl, "shininess", 32); err != nil {
		return nil, err
	}
	if p.AmbientColor, err = colourField(tbl, "ambient", core.Black); err != nil {
		return nil, err
	}
	if p.Reflectivity, err = colourField(tbl, "reflectivity", core.Black); err != nil {
		return nil, err
	}
	if p.Shininess < 0 {
		return nil, fmt.Errorf("shininess must not be negative, got %g", p.Shininess)
	}
	return p, nil
}

func (ld *scriptLoader) mirror(tbl *lua.LTable) (interface{}, error) {
	tint, err := colourField(tbl, "colour", core.Grey(0.9))
	if err != nil {
		return nil, err
	}
	return material.NewMetal(tint), nil
}

func (ld *scriptLoader) emissive(tbl *lua.LTable) (interface{}, error) {
	c, err := colourField(tbl, "colour", core.Grey(1))
	if err != nil {
		return nil, err
	}
	intensity, err := numberField(tbl, "intensity", 1)
	if err != nil {
		return nil, err
	}
	return material.NewEmissive(c.Multiply(intensity)), nil
}

func (ld *scriptLoader) checker(tbl *lua.LTable) (interface{}, error) {
	even, err := colourField(tbl, "even", core.Grey(0.9))
	if err != nil {
		return nil, err
	}
	odd, err := colourField(tbl, "odd", core.Grey(0.1))
	if err != nil {
		return nil, err
	}
	scale, err := numberField(tbl, "scale", 1)
	if err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %g", scale)
	}
	return material.NewChecker(even, odd, scale), nil
}

func (ld *scriptLoader) imageTexture(tbl *lua.LTable) (interface{}, error) {
	file, err := stringField(tbl, "file", "")
	if err != nil {
		return nil, err
	}
	if file == "" {
		return nil, fmt.Errorf("file is required")
	}
	return LoadImageTexture(ld.resolve(file))
}

// Shapes

func (ld *scriptLoader) addShape(shape geometry.Shape) (interface{}, error) {
	if err := ld.scene.AddShape(shape); err != nil {
		return nil, err
	}
	return shape, nil
}

func (ld *scriptLoader) sphere(tbl *lua.LTable) (interface{}, error) {
	center, err := vec3Field(tbl, "center", core.Vec3{})
	if err != nil {
		return nil, err
	}
	radius, err := numberField(tbl, "radius", 1)
	if err != nil {
		return nil, err
	}
	mat, err := materialField(tbl)
	if err != nil {
		return nil, err
	}
	return ld.addShape(geometry.NewSphere(center, radius, mat))
}

func (ld *scriptLoader) plane(tbl *lua.LTable) (interface{}, error) {
	point, err := vec3Field(tbl, "point", core.Vec3{})
	if err != nil {
		return nil, err
	}
	normal, err := vec3Field(tbl, "normal", core.NewVec3(0, 1, 0))
	if err != nil {
		return nil, err
	}
	mat, err := materialField(tbl)
	if err != nil {
		return nil, err
	}
	return ld.addShape(geometry.NewPlane(point, normal, mat))
}

func (ld *scriptLoader) quad(tbl *lua.LTable) (interface{}, error) {
	corner, err := vec3Field(tbl, "corner", core.Vec3{})
	if err != nil {
		return nil, err
	}
	u, err := vec3Field(tbl, "u", core.NewVec3(1, 0, 0))
	if err != nil {
		return nil, err
	}
	v, err := vec3Field(tbl, "v", core.NewVec3(0, 1, 0))
	if err != nil {
		return nil, err
	}
	mat, err := materialField(tbl)
	if err != nil {
		return nil, err
	}
	return ld.addShape(geometry.NewQuad(corner, u, v, mat))
}

func (ld *scriptLoader) disc(tbl *lua.LTable) (interface{}, error) {
	center, err := vec3Field(tbl, "center", core.Vec3{})
	if err != nil {
		return nil, err
	}
	normal, err := vec3Field(tbl, "normal", core.NewVec3(0, 1, 0))
	if err != nil {
		return nil, err
	}
	radius, err := numberField(tbl, "radius", 1)
	if err != nil {
		return nil, err
	}
	mat, err := materialField(tbl)
	if err != nil {
		return nil, err
	}
	return ld.addShape(geometry.NewDisc(center, normal, radius, mat))
}

func (ld *scriptLoader) triangle(tbl *lua.LTable) (interface{}, error) {
	var vertices [3]core.Vec3
	for i, key := range []string{"v0", "v1", "v2"} {
		v, err := requiredVec3(tbl, key)
		if err != nil {
			return nil, err
		}
		vertices[i] = v
	}
	mat, err := materialField(tbl)
	if err != nil {
		return nil, err
	}
	return ld.addShape(geometry.NewTriangle(vertices[0], vertices[1], vertices[2], mat))
}

func (ld *scriptLoader) box(tbl *lua.LTable) (interface{}, error) {
	center, err := vec3Field(tbl, "center", core.Vec3{})
	if err != nil {
		return nil, err
	}
	size, err := vec3Field(tbl, "size", core.NewVec3(0.5, 0.5, 0.5))
	if err != nil {
		return nil, err
	}
	rotation, err := vec3Field(tbl, "rotation", core.Vec3{})
	if err != nil {
		return nil, err
	}
	mat, err := materialField(tbl)
	if err != nil {
		return nil, err
	}
	return ld.addShape(geometry.NewBox(center, size, degreesToRadians(rotation), mat))
}

func (ld *scriptLoader) mesh(tbl *lua.LTable) (interface{}, error) {
	file, err := stringField(tbl, "file", "")
	if err != nil {
		return nil, err
	}
	if file == "" {
		return nil, fmt.Errorf("file is required")
	}
	mat, err := materialField(tbl)
	if err != nil {
		return nil, err
	}

	options := &geometry.TriangleMeshOptions{}
	if options.Scale, err = numberField(tbl, "scale", 1); err != nil {
		return nil, err
	}
	if options.Offset, err = vec3Field(tbl, "offset", core.Vec3{}); err != nil {
		return nil, err
	}
	if rotation := tbl.RawGetString("rotation"); rotation != lua.LNil {
		r, err := toVec3(rotation)
		if err != nil {
			return nil, fmt.Errorf("rotation: %w", err)
		}
		r = degreesToRadians(r)
		options.Rotation = &r
	}

	data, err := LoadPLY(ld.resolve(file))
	if err != nil {
		return nil, err
	}
	mesh, err := geometry.NewTriangleMesh(data.Vertices, data.Faces, mat, options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return ld.addShape(mesh)
}

// Lights

func (ld *scriptLoader) addLight(light lights.Light) (interface{}, error) {
	if err := ld.scene.AddLight(light); err != nil {
		return nil, err
	}
	return light, nil
}

func (ld *scriptLoader) pointLight(tbl *lua.LTable) (interface{}, error) {
	position, err := requiredVec3(tbl, "position")
	if err != nil {
		return nil, err
	}
	c, intensity, err := lightColour(tbl)
	if err != nil {
		return nil, err
	}
	light := lights.NewPointLight(position, c, intensity)
	if light.Attenuation, err = attenuationField(tbl, light.Attenuation); err != nil {
		return nil, err
	}
	return ld.addLight(light)
}

func (ld *scriptLoader) directionalLight(tbl *lua.LTable) (interface{}, error) {
	direction, err := requiredVec3(tbl, "direction")
	if err != nil {
		return nil, err
	}
	c, intensity, err := lightColour(tbl)
	if err != nil {
		return nil, err
	}
	return ld.addLight(lights.NewDirectionalLight(direction, c, intensity))
}

func (ld *scriptLoader) spotLight(tbl *lua.LTable) (interface{}, error) {
	position, err := requiredVec3(tbl, "position")
	if err != nil {
		return nil, err
	}
	lookAt, err := requiredVec3(tbl, "look_at")
	if err != nil {
		return nil, err
	}
	c, intensity, err := lightColour(tbl)
	if err != nil {
		return nil, err
	}
	angle, err := numberField(tbl, "angle", 30)
	if err != nil {
		return nil, err
	}
	falloff, err := numberField(tbl, "falloff", 5)
	if err != nil {
		return nil, err
	}
	if angle <= 0 || angle >= 180 {
		return nil, fmt.Errorf("angle must be in (0, 180) degrees, got %g", angle)
	}
	light := lights.NewSpotLight(position, lookAt, c, intensity, angle, falloff)
	if light.Attenuation, err = attenuationField(tbl, light.Attenuation); err != nil {
		return nil, err
	}
	return ld.addLight(light)
}

func (ld *scriptLoader) areaLight(tbl *lua.LTable) (interface{}, error) {
	corner, err := requiredVec3(tbl, "corner")
	if err != nil {
		return nil, err
	}
	u, err := requiredVec3(tbl, "u")
	if err != nil {
		return nil, err
	}
	v, err := requiredVec3(tbl, "v")
	if err != nil {
		return nil, err
	}
	c, intensity, err := lightColour(tbl)
	if err != nil {
		return nil, err
	}
	samples, err := intField(tbl, "samples", 4)
	if err != nil {
		return nil, err
	}
	visible, err := boolField(tbl, "visible", true)
	if err != nil {
		return nil, err
	}

	light := lights.NewAreaLight(corner, u, v, c, intensity, samples)
	if visible {
		if err := ld.scene.AddAreaLight(light); err != nil {
			return nil, err
		}
		return light, nil
	}
	return ld.addLight(light)
}

// Field helpers

func lightColour(tbl *lua.LTable) (core.Colour, float64, error) {
	c, err := colourField(tbl, "colour", core.Grey(1))
	if err != nil {
		return core.Colour{}, 0, err
	}
	intensity, err := numberField(tbl, "intensity", 1)
	if err != nil {
		return core.Colour{}, 0, err
	}
	if intensity < 0 {
		return core.Colour{}, 0, fmt.Errorf("intensity must not be negative, got %g", intensity)
	}
	return c, intensity, nil
}

func attenuationField(tbl *lua.LTable, def lights.Attenuation) (lights.Attenuation, error) {
	value := tbl.RawGetString("attenuation")
	if value == lua.LNil {
		return def, nil
	}
	v, err := toVec3(value)
	if err != nil {
		return def, fmt.Errorf("attenuation: %w", err)
	}
	if v.X < 0 || v.Y < 0 || v.Z < 0 || v.X+v.Y+v.Z == 0 {
		return def, fmt.Errorf("attenuation coefficients must be non-negative and not all zero")
	}
	return lights.Attenuation{Constant: v.X, Linear: v.Y, Quadratic: v.Z}, nil
}

// materialField returns the material userdata under "material", or grey Lambertian when absent
func materialField(tbl *lua.LTable) (material.Material, error) {
	value := tbl.RawGetString("material")
	if value == lua.LNil {
		return material.NewLambertian(core.Grey(0.8)), nil
	}
	if ud, ok := value.(*lua.LUserData); ok {
		if mat, ok := ud.Value.(material.Material); ok {
			return mat, nil
		}
	}
	return nil, fmt.Errorf("material must be created with lambert, phong, mirror or emissive")
}

// colorSourceField reads "texture" when present, otherwise the solid "colour"
func colorSourceField(tbl *lua.LTable, def core.Colour) (material.ColorSource, error) {
	if value := tbl.RawGetString("texture"); value != lua.LNil {
		if ud, ok := value.(*lua.LUserData); ok {
			if src, ok := ud.Value.(material.ColorSource); ok {
				return src, nil
			}
		}
		return nil, fmt.Errorf("texture must be created with checker or image_texture")
	}
	c, err := colourField(tbl, "colour", def)
	if err != nil {
		return nil, err
	}
	return material.NewSolidColor(c), nil
}

func numberField(tbl *lua.LTable, key string, def float64) (float64, error) {
	value := tbl.RawGetString(key)
	if value == lua.LNil {
		return def, nil
	}
	n, ok := value.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%s must be a number, got %s", key, value.Type())
	}
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s must be finite", key)
	}
	return f, nil
}

func intField(tbl *lua.LTable, key string, def int) (int, error) {
	f, err := numberField(tbl, key, float64(def))
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%s must be an integer, got %g", key, f)
	}
	return int(f), nil
}

func boolField(tbl *lua.LTable, key string, def bool) (bool, error) {
	value := tbl.RawGetString(key)
	if value == lua.LNil {
		return def, nil
	}
	b, ok := value.(lua.LBool)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean, got %s", key, value.Type())
	}
	return bool(b), nil
}

func stringField(tbl *lua.LTable, key string, def string) (string, error) {
	value := tbl.RawGetString(key)
	if value == lua.LNil {
		return def, nil
	}
	s, ok := value.(lua.LString)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %s", key, value.Type())
	}
	return string(s), nil
}

func vec3Field(tbl *lua.LTable, key string, def core.Vec3) (core.Vec3, error) {
	value := tbl.RawGetString(key)
	if value == lua.LNil {
		return def, nil
	}
	v, err := toVec3(value)
	if err != nil {
		return core.Vec3{}, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func requiredVec3(tbl *lua.LTable, key string) (core.Vec3, error) {
	if tbl.RawGetString(key) == lua.LNil {
		return core.Vec3{}, fmt.Errorf("%s is required", key)
	}
	return vec3Field(tbl, key, core.Vec3{})
}

// colourField accepts both the "colour" and "color" spellings
func colourField(tbl *lua.LTable, key string, def core.Colour) (core.Colour, error) {
	value := tbl.RawGetString(key)
	if value == lua.LNil && key == "colour" {
		value = tbl.RawGetString("color")
	}
	if value == lua.LNil {
		return def, nil
	}
	c, err := toColour(value)
	if err != nil {
		return core.Colour{}, fmt.Errorf("%s: %w", key, err)
	}
	return c, nil
}

// toVec3 accepts {x, y, z} or {x = .., y = .., z = ..}
func toVec3(value lua.LValue) (core.Vec3, error) {
	a, b, c, err := toTriple(value, "x", "y", "z")
	return core.NewVec3(a, b, c), err
}

// toColour accepts {r, g, b}, {r = .., g = .., b = ..} or a single grey number
func toColour(value lua.LValue) (core.Colour, error) {
	if n, ok := value.(lua.LNumber); ok {
		return core.Grey(float64(n)), nil
	}
	r, g, b, err := toTriple(value, "r", "g", "b")
	return core.NewColour(r, g, b), err
}

func toTriple(value lua.LValue, k0, k1, k2 string) (float64, float64, float64, error) {
	tbl, ok := value.(*lua.LTable)
	if !ok {
		return 0, 0, 0, fmt.Errorf("expected a table of 3 numbers, got %s", value.Type())
	}

	var out [3]float64
	keys := [3]string{k0, k1, k2}
	positional := tbl.Len() >= 3
	for i := range out {
		var v lua.LValue
		if positional {
			v = tbl.RawGetInt(i + 1)
		} else {
			v = tbl.RawGetString(keys[i])
		}
		n, ok := v.(lua.LNumber)
		if !ok {
			return 0, 0, 0, fmt.Errorf("component %s must be a number, got %s", keys[i], v.Type())
		}
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, 0, 0, fmt.Errorf("component %s must be finite", keys[i])
		}
		out[i] = f
	}
	return out[0], out[1], out[2], nil
}

func degreesToRadians(v core.Vec3) core.Vec3 {
	return v.Multiply(math.Pi / 180.0)
}

package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-raytracer/pkg/core"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version     string // Usually "1.0"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty
	Extra       []PLYElement // Elements other than vertex and face, skipped when reading
}

// PLYElement is an element block in declaration order
type PLYElement struct {
	Name  string
	Count int
	Props []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the geometry loaded from a PLY file
type PLYData struct {
	Vertices []core.Vec3 // Vertex positions (x, y, z)
	Faces    []int       // Triangle indices (3 per triangle); polygons are fan-triangulated
}

// LoadPLY loads an ASCII or binary PLY file and returns its vertices and triangles
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := ReadPLY(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// ReadPLY parses PLY data from r
func ReadPLY(r *bufio.Reader) (*PLYData, error) {
	header, elements, err := parsePLYHeader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var reader plyValueReader
	switch header.Format {
	case "ascii":
		reader = &asciiValueReader{r: r}
	case "binary_little_endian":
		reader = &binaryValueReader{r: r, order: binary.LittleEndian}
	case "binary_big_endian":
		reader = &binaryValueReader{r: r, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %q", header.Format)
	}

	data := &PLYData{
		Vertices: make([]core.Vec3, 0, header.VertexCount),
		Faces:    make([]int, 0, header.FaceCount*3),
	}

	// Elements must be read in declaration order
	for _, element := range elements {
		for i := 0; i < element.Count; i++ {
			var err error
			switch element.Name {
			case "vertex":
				err = readVertex(reader, element.Props, data)
			case "face":
				err = readFace(reader, element.Props, header.VertexCount, data)
			default:
				err = skipElement(reader, element.Props)
			}
			if err != nil {
				return nil, fmt.Errorf("%s %d: %w", element.Name, i, err)
			}
		}
	}

	return data, nil
}

// parsePLYHeader reads the header up to and including end_header
func parsePLYHeader(r *bufio.Reader) (*PLYHeader, []PLYElement, error) {
	header := &PLYHeader{}
	var elements []PLYElement

	first := true
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, nil, fmt.Errorf("unexpected end of header: %w", err)
		}
		line = strings.TrimSpace(line)

		if first {
			if line != "ply" {
				return nil, nil, fmt.Errorf("missing ply magic, got %q", line)
			}
			first = false
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, nil, fmt.Errorf("invalid format line %q", line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, nil, fmt.Errorf("invalid element line %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			elements = append(elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(elements) == 0 {
				return nil, nil, fmt.Errorf("property before any element: %q", line)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, nil, err
			}
			last := &elements[len(elements)-1]
			last.Props = append(last.Props, prop)
		default:
			return nil, nil, fmt.Errorf("unknown header keyword %q", parts[0])
		}
	}

	for _, element := range elements {
		switch element.Name {
		case "vertex":
			header.VertexCount = element.Count
			header.VertexProps = element.Props
		case "face":
			header.FaceCount = element.Count
			header.FaceProps = element.Props
		default:
			header.Extra = append(header.Extra, element)
		}
	}

	if !hasProps(header.VertexProps, "x", "y", "z") {
		return nil, nil, fmt.Errorf("vertex element must declare x, y and z")
	}

	return header, elements, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition %v", parts)
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition %v", parts)
		}
		if plyTypeSize(parts[1]) == 0 || plyTypeSize(parts[2]) == 0 {
			return PLYProperty{}, fmt.Errorf("unknown list property types %s %s", parts[1], parts[2])
		}
		return PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}, nil
	}

	if plyTypeSize(parts[0]) == 0 {
		return PLYProperty{}, fmt.Errorf("unknown property type %s", parts[0])
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

func hasProps(props []PLYProperty, names ...string) bool {
	for _, name := range names {
		found := false
		for _, p := range props {
			if p.Name == name && !p.IsList {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// plyTypeSize returns the byte size of a scalar PLY type, or 0 if unknown
func plyTypeSize(typ string) int {
	switch typ {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

func readVertex(reader plyValueReader, props []PLYProperty, data *PLYData) error {
	var v core.Vec3
	for _, prop := range props {
		if prop.IsList {
			if err := skipList(reader, prop); err != nil {
				return err
			}
			continue
		}
		value, err := reader.read(prop.Type)
		if err != nil {
			return fmt.Errorf("property %s: %w", prop.Name, err)
		}
		switch prop.Name {
		case "x":
			v.X = value
		case "y":
			v.Y = value
		case "z":
			v.Z = value
		}
	}
	data.Vertices = append(data.Vertices, v)
	return nil
}

func readFace(reader plyValueReader, props []PLYProperty, vertexCount int, data *PLYData) error {
	for _, prop := range props {
		if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
			if err := skipProperty(reader, prop); err != nil {
				return err
			}
			continue
		}

		count, err := reader.read(prop.ListType)
		if err != nil {
			return fmt.Errorf("face vertex count: %w", err)
		}
		n := int(count)
		if n < 3 {
			return fmt.Errorf("face has %d vertices, need at least 3", n)
		}

		indices := make([]int, n)
		for k := range indices {
			value, err := reader.read(prop.DataType)
			if err != nil {
				return fmt.Errorf("face index %d: %w", k, err)
			}
			idx := int(value)
			if idx < 0 || idx >= vertexCount {
				return fmt.Errorf("face index %d out of range [0,%d)", idx, vertexCount)
			}
			indices[k] = idx
		}

		// Fan triangulation around the first vertex
		for k := 1; k+1 < n; k++ {
			data.Faces = append(data.Faces, indices[0], indices[k], indices[k+1])
		}
	}
	return nil
}

func skipElement(reader plyValueReader, props []PLYProperty) error {
	for _, prop := range props {
		if err := skipProperty(reader, prop); err != nil {
			return err
		}
	}
	return nil
}

func skipProperty(reader plyValueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipList(reader, prop)
	}
	_, err := reader.read(prop.Type)
	return err
}

func skipList(reader plyValueReader, prop PLYProperty) error {
	count, err := reader.read(prop.ListType)
	if err != nil {
		return err
	}
	for k := 0; k < int(count); k++ {
		if _, err := reader.read(prop.DataType); err != nil {
			return err
		}
	}
	return nil
}

// plyValueReader reads one scalar of the given PLY type as float64
type plyValueReader interface {
	read(typ string) (float64, error)
}

// asciiValueReader reads whitespace-separated tokens
type asciiValueReader struct {
	r *bufio.Reader
}

func (a *asciiValueReader) read(typ string) (float64, error) {
	var token []byte
	for {
		b, err := a.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(token) > 0 {
				break
			}
			return 0, err
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			if len(token) > 0 {
				break
			}
			continue
		}
		token = append(token, b)
	}

	value, err := strconv.ParseFloat(string(token), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", typ, token)
	}
	return value, nil
}

// binaryValueReader decodes fixed-size values with the file's byte order
type binaryValueReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryValueReader) read(typ string) (float64, error) {
	size := plyTypeSize(typ)
	if size == 0 {
		return 0, fmt.Errorf("unknown PLY type %s", typ)
	}
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return 0, err
	}

	switch typ {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default:
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}

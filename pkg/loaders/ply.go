package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/df07/go-recursive-raytracer/pkg/geometry"
)

// ErrPLYFormat is returned for a malformed or unsupported PLY file
var ErrPLYFormat = errors.New("invalid PLY file")

const (
	// maxPLYListLength bounds the corner count of a single face
	maxPLYListLength = 1 << 16
	// maxPLYPrealloc bounds slice capacity taken from header counts
	maxPLYPrealloc = 1 << 16
)

// plyHeader lists the file's elements in the order their data appears
type plyHeader struct {
	format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	elements []plyElement
}

type plyElement struct {
	name  string
	count int
	props []plyProperty
}

// plyProperty is a scalar property, or a list when countType is set
type plyProperty struct {
	name      string
	valueType string
	countType string
}

func (p plyProperty) isList() bool {
	return p.countType != ""
}

// LoadPLY loads a Stanford PLY file as a triangle mesh
func LoadPLY(filename string) (*geometry.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ParsePLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}

// ParsePLY reads ASCII or binary PLY data. Vertex positions come from x, y and z;
// when nx, ny and nz are all present the triangles are smooth shaded.
// Faces are read from vertex_indices (or vertex_index) and split into triangle fans.
// Every other element and property is skipped.
func ParsePLY(r io.Reader) (*geometry.Mesh, error) {
	br := bufio.NewReader(r)

	header, err := parsePLYHeader(br)
	if err != nil {
		return nil, err
	}

	var values plyValueReader
	switch header.format {
	case "ascii":
		scanner := bufio.NewScanner(br)
		scanner.Split(bufio.ScanWords)
		values = &plyASCIIReader{scanner: scanner}
	case "binary_little_endian":
		values = &plyBinaryReader{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &plyBinaryReader{r: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrPLYFormat, header.format)
	}

	var vertices, normals []core.Vec3
	var triangles []geometry.Triangle
	hasNormals := false

	for _, element := range header.elements {
		switch element.name {
		case "vertex":
			vertices, normals, err = readPLYVertices(values, element)
			hasNormals = normals != nil
		case "face":
			triangles, err = readPLYFaces(values, element, vertices, normals, hasNormals)
		default:
			err = skipPLYElement(values, element)
		}
		if err != nil {
			return nil, fmt.Errorf("element %s: %w", element.name, err)
		}
	}

	return geometry.NewMesh(triangles), nil
}

func parsePLYHeader(r *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}
	lineNum := 0

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: header ended before end_header: %v", ErrPLYFormat, err)
		}
		lineNum++
		fields := strings.Fields(line)

		if lineNum == 1 {
			if len(fields) != 1 || fields[0] != "ply" {
				return nil, fmt.Errorf("%w: missing ply magic", ErrPLYFormat)
			}
			continue
		}
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "end_header":
			if header.format == "" {
				return nil, fmt.Errorf("%w: no format line", ErrPLYFormat)
			}
			return header, nil

		case "format":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: line %d: bad format line", ErrPLYFormat, lineNum)
			}
			header.format = fields[1]

		case "element":
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: line %d: bad element line", ErrPLYFormat, lineNum)
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: line %d: invalid element count %q", ErrPLYFormat, lineNum, fields[2])
			}
			header.elements = append(header.elements, plyElement{name: fields[1], count: count})

		case "property":
			if len(header.elements) == 0 {
				return nil, fmt.Errorf("%w: line %d: property before any element", ErrPLYFormat, lineNum)
			}
			prop, err := parsePLYProperty(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrPLYFormat, lineNum, err)
			}
			last := &header.elements[len(header.elements)-1]
			last.props = append(last.props, prop)
		}
		// comment and obj_info lines are ignored
	}
}

func parsePLYProperty(fields []string) (plyProperty, error) {
	if len(fields) >= 1 && fields[0] == "list" {
		if len(fields) < 4 {
			return plyProperty{}, errors.New("invalid list property")
		}
		if plyTypeSize(fields[1]) == 0 || plyTypeSize(fields[2]) == 0 {
			return plyProperty{}, fmt.Errorf("unknown list types %s %s", fields[1], fields[2])
		}
		return plyProperty{countType: fields[1], valueType: fields[2], name: fields[3]}, nil
	}

	if len(fields) < 2 {
		return plyProperty{}, errors.New("invalid property")
	}
	if plyTypeSize(fields[0]) == 0 {
		return plyProperty{}, fmt.Errorf("unknown property type %s", fields[0])
	}
	return plyProperty{valueType: fields[0], name: fields[1]}, nil
}

// readPLYVertices returns nil normals unless nx, ny and nz are all present
func readPLYVertices(values plyValueReader, element plyElement) ([]core.Vec3, []core.Vec3, error) {
	index := map[string]int{}
	for i, prop := range element.props {
		if !prop.isList() {
			index[prop.name] = i
		}
	}
	for _, name := range []string{"x", "y", "z"} {
		if _, ok := index[name]; !ok {
			return nil, nil, fmt.Errorf("%w: vertex has no %s property", ErrPLYFormat, name)
		}
	}
	_, hasNX := index["nx"]
	_, hasNY := index["ny"]
	_, hasNZ := index["nz"]
	hasNormals := hasNX && hasNY && hasNZ

	// The header count is untrusted until the data is read
	capacity := min(element.count, maxPLYPrealloc)
	vertices := make([]core.Vec3, 0, capacity)
	var normals []core.Vec3
	if hasNormals {
		normals = make([]core.Vec3, 0, capacity)
	}

	row := make([]float64, len(element.props))
	for i := 0; i < element.count; i++ {
		for j, prop := range element.props {
			if prop.isList() {
				if err := skipPLYList(values, prop); err != nil {
					return nil, nil, err
				}
				continue
			}
			v, err := values.read(prop.valueType)
			if err != nil {
				return nil, nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			row[j] = v
		}

		vertices = append(vertices, core.NewVec3(row[index["x"]], row[index["y"]], row[index["z"]]))
		if hasNormals {
			normals = append(normals, core.NewVec3(row[index["nx"]], row[index["ny"]], row[index["nz"]]))
		}
	}
	return vertices, normals, nil
}

func readPLYFaces(values plyValueReader, element plyElement, vertices, normals []core.Vec3, hasNormals bool) ([]geometry.Triangle, error) {
	var triangles []geometry.Triangle

	for i := 0; i < element.count; i++ {
		var corners []faceCorner
		for _, prop := range element.props {
			if !prop.isList() || (prop.name != "vertex_indices" && prop.name != "vertex_index") {
				if err := skipPLYProperty(values, prop); err != nil {
					return nil, err
				}
				continue
			}

			indices, err := readPLYList(values, prop)
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			if len(indices) < 3 {
				return nil, fmt.Errorf("face %d needs at least 3 vertices, got %d", i, len(indices))
			}
			corners = make([]faceCorner, len(indices))
			for k, idx := range indices {
				if idx < 0 || idx >= len(vertices) {
					return nil, fmt.Errorf("face %d: %w: %d of %d", i, ErrFaceIndex, idx, len(vertices))
				}
				corners[k] = faceCorner{vertex: idx, normal: -1}
				if hasNormals {
					corners[k].normal = idx
				}
			}
		}

		for k := 1; k+1 < len(corners); k++ {
			triangles = append(triangles, buildTriangle(vertices, normals, corners[0], corners[k], corners[k+1]))
		}
	}
	return triangles, nil
}

func readPLYList(values plyValueReader, prop plyProperty) ([]int, error) {
	v, err := values.read(prop.countType)
	if err != nil {
		return nil, err
	}
	n, ok := plyInt(v)
	if !ok || n < 0 || n > maxPLYListLength {
		return nil, fmt.Errorf("%w: invalid list length %v", ErrPLYFormat, v)
	}

	list := make([]int, n)
	for i := range list {
		v, err := values.read(prop.valueType)
		if err != nil {
			return nil, err
		}
		idx, ok := plyInt(v)
		if !ok {
			return nil, fmt.Errorf("%w: invalid list entry %v", ErrPLYFormat, v)
		}
		list[i] = idx
	}
	return list, nil
}

// plyInt converts a value that must be integral, such as a count or an index
func plyInt(v float64) (int, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}

func skipPLYElement(values plyValueReader, element plyElement) error {
	for i := 0; i < element.count; i++ {
		for _, prop := range element.props {
			if err := skipPLYProperty(values, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipPLYProperty(values plyValueReader, prop plyProperty) error {
	if prop.isList() {
		return skipPLYList(values, prop)
	}
	_, err := values.read(prop.valueType)
	return err
}

func skipPLYList(values plyValueReader, prop plyProperty) error {
	v, err := values.read(prop.countType)
	if err != nil {
		return err
	}
	n, ok := plyInt(v)
	if !ok || n < 0 || n > maxPLYListLength {
		return fmt.Errorf("%w: invalid list length %v", ErrPLYFormat, v)
	}
	for i := 0; i < n; i++ {
		if _, err := values.read(prop.valueType); err != nil {
			return err
		}
	}
	return nil
}

// plyTypeSize returns the byte size of a PLY scalar type, or 0 if unknown
func plyTypeSize(t string) int {
	switch t {
	case "char", "uchar", "int8", "uint8":
		return 1
	case "short", "ushort", "int16", "uint16":
		return 2
	case "int", "uint", "int32", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	}
	return 0
}

// plyValueReader reads one scalar of the given PLY type as a float64
type plyValueReader interface {
	read(valueType string) (float64, error)
}

type plyASCIIReader struct {
	scanner *bufio.Scanner
}

func (r *plyASCIIReader) read(valueType string) (float64, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(r.scanner.Text(), 64)
}

type plyBinaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (r *plyBinaryReader) read(valueType string) (float64, error) {
	size := plyTypeSize(valueType)
	b := r.buf[:size]
	if _, err := io.ReadFull(r.r, b); err != nil {
		return 0, err
	}

	switch valueType {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(r.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(r.order.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(r.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(r.order.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(r.order.Uint32(b))), nil
	default:
		return math.Float64frombits(r.order.Uint64(b)), nil
	}
}

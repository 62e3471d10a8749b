package loaders

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/g3n/engine/loader/obj"

	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/geometry"
	"github.com/spaghettifunk/sculpt/engine/math"
	"github.com/spaghettifunk/sculpt/engine/resources"
)

// ModelLoader reads and writes Wavefront OBJ meshes. Each material used by
// the faces becomes one section, in order of first use.
type ModelLoader struct{}

func (ml *ModelLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	forceNormals := false
	if p, ok := params.(*resources.ModelResourceParams); ok && p != nil {
		forceNormals = p.ForceNormals
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mesh, err := ParseOBJ(file, name, forceNormals)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	mesh.FullPath = path

	return &resources.Resource{
		ResourceType: resources.ResourceTypeModel,
		Name:         name,
		FullPath:     path,
		DataSize:     uint64(info.Size()),
		Data:         mesh,
	}, nil
}

func (ml *ModelLoader) Unload(*resources.Resource) error {
	return nil
}

// Save writes resource data as OBJ. It accepts a *resources.ProceduralMesh
// or any geometry.MeshSource, in which case LOD 0 is written.
func (ml *ModelLoader) Save(path string, resource *resources.Resource) error {
	var source geometry.MeshSource
	switch data := resource.Data.(type) {
	case *resources.ProceduralMesh:
		source = data.ToStaticMesh()
	case geometry.MeshSource:
		source = data
	default:
		return errUnsupportedData(resource)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(file)
	if err := WriteOBJ(w, source, 0); err != nil {
		file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

type objCorner struct {
	v, vt, vn int
}

type objSection struct {
	geometry.SectionGeometry
	lookup map[objCorner]uint32
	hasUV  bool
	hasVN  bool
	missVN bool
}

// objData is the decoded stream with the flat g3n arrays lifted into
// vectors. Texture V is flipped so 0 is the top of the image.
type objData struct {
	positions []math.Vec3
	colours   []math.Vec4
	uvs       []math.Vec2
	normals   []math.Vec3
}

// ParseOBJ reads an OBJ stream into a single-LOD StaticMesh. Faces are
// grouped into one section per material in order of first use and fan
// triangulated. Missing normals are generated, and tangents are always
// generated.
func ParseOBJ(r io.Reader, name string, forceNormals bool) (*resources.StaticMesh, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	dec, err := obj.DecodeReader(bytes.NewReader(raw), strings.NewReader(""))
	if err != nil {
		return nil, err
	}
	for _, w := range dec.Warnings {
		core.LogWarn("model '%s': %s", name, w)
	}

	data := objData{
		positions: make([]math.Vec3, 0, len(dec.Vertices)/3),
		uvs:       make([]math.Vec2, 0, len(dec.Uvs)/2),
		normals:   make([]math.Vec3, 0, len(dec.Normals)/3),
	}
	for i := 0; i+2 < len(dec.Vertices); i += 3 {
		data.positions = append(data.positions, math.NewVec3(dec.Vertices[i], dec.Vertices[i+1], dec.Vertices[i+2]))
	}
	for i := 0; i+1 < len(dec.Uvs); i += 2 {
		data.uvs = append(data.uvs, math.NewVec2(dec.Uvs[i], 1-dec.Uvs[i+1]))
	}
	for i := 0; i+2 < len(dec.Normals); i += 3 {
		data.normals = append(data.normals, math.NewVec3(dec.Normals[i], dec.Normals[i+1], dec.Normals[i+2]))
	}
	colours, hasColour := vertexColours(raw, len(data.positions))
	data.colours = colours

	var (
		sections []*objSection
		byName   = map[string]*objSection{}
	)
	for _, object := range dec.Objects {
		for f, face := range object.Faces {
			if len(face.Vertices) < 3 {
				return nil, fmt.Errorf("object '%s' face %d: a face needs at least 3 vertices", object.Name, f)
			}
			section, ok := byName[face.Material]
			if !ok {
				section = &objSection{lookup: map[objCorner]uint32{}}
				byName[face.Material] = section
				sections = append(sections, section)
			}
			indices := make([]uint32, 0, len(face.Vertices))
			for i, v := range face.Vertices {
				if v < 0 || v >= len(data.positions) {
					return nil, fmt.Errorf("object '%s' face %d: position index %d out of range (%d)", object.Name, f, v, len(data.positions))
				}
				corner := objCorner{
					v:  v,
					vt: optionalIndex(face.Uvs, i, len(data.uvs)),
					vn: optionalIndex(face.Normals, i, len(data.normals)),
				}
				indices = append(indices, section.vertex(corner, &data))
			}
			for i := 1; i+1 < len(indices); i++ {
				section.Triangles = append(section.Triangles, indices[0], indices[i], indices[i+1])
			}
		}
	}
	if len(sections) == 0 {
		return nil, errors.New("no faces found")
	}

	out := make([]geometry.SectionGeometry, len(sections))
	for i, s := range sections {
		if !hasColour {
			s.VertexColors = nil
		}
		if !s.hasUV {
			s.UVs = nil
		}
		if forceNormals || !s.hasVN || s.missVN {
			s.Normals = geometry.GenerateNormals(s.Vertices, s.Triangles)
		}
		s.Tangents = geometry.GenerateTangents(s.Vertices, s.UVs, s.Normals, s.Triangles)
		out[i] = s.SectionGeometry
	}

	mesh := resources.NewStaticMesh(name, out)
	core.LogDebug("parsed model '%s': %d sections, %d positions", name, len(out), len(data.positions))
	return mesh, nil
}

// optionalIndex returns the i-th texture or normal index of a face, or -1
// when the corner has none.
func optionalIndex(indices []int, i, count int) int {
	if i >= len(indices) {
		return -1
	}
	if idx := indices[i]; idx >= 0 && idx < count {
		return idx
	}
	return -1
}

// vertexColours picks up the "v x y z r g b" extension, which the decoder
// drops. Positions without a colour get the default.
func vertexColours(raw []byte, count int) ([]math.Vec4, bool) {
	colours := make([]math.Vec4, count)
	for i := range colours {
		colours[i] = geometry.DefaultVertexColor
	}
	found := false
	next := 0
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	for scanner.Scan() && next < count {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || fields[0] != "v" {
			continue
		}
		if len(fields) >= 7 {
			var rgb [3]float32
			ok := true
			for c := range rgb {
				v, err := strconv.ParseFloat(fields[4+c], 32)
				if err != nil {
					ok = false
					break
				}
				rgb[c] = float32(v)
			}
			if ok {
				colours[next] = math.NewVec4(rgb[0], rgb[1], rgb[2], 1)
				found = true
			}
		}
		next++
	}
	return colours, found
}

// vertex returns the local index for corner, adding it on first use.
func (s *objSection) vertex(c objCorner, data *objData) uint32 {
	if idx, ok := s.lookup[c]; ok {
		return idx
	}
	idx := uint32(len(s.Vertices))
	s.lookup[c] = idx

	s.Vertices = append(s.Vertices, data.positions[c.v])
	s.VertexColors = append(s.VertexColors, data.colours[c.v])

	var uv math.Vec2
	if c.vt >= 0 {
		uv = data.uvs[c.vt]
		s.hasUV = true
	}
	s.UVs = append(s.UVs, uv)

	var n math.Vec3
	if c.vn >= 0 {
		n = data.normals[c.vn]
		s.hasVN = true
	} else {
		s.missVN = true
	}
	s.Normals = append(s.Normals, n)
	return idx
}

// WriteOBJ writes every section of lod as its own material group. Vertices
// that no triangle references are written but will not survive a reload.
func WriteOBJ(w io.Writer, source geometry.MeshSource, lod int) error {
	count, err := source.NumSections(lod)
	if err != nil {
		return err
	}

	bw := &objWriter{w: w}
	bw.printf("# %s\n", source.Name())
	bw.printf("o %s\n", objName(source.Name()))

	var vOffset, vtOffset, vnOffset int
	for s := 0; s < count; s++ {
		section, err := source.Section(lod, s)
		if err != nil {
			return err
		}
		withColour := len(section.VertexColors) == len(section.Vertices)
		withUV := len(section.UVs) == len(section.Vertices)
		withNormal := len(section.Normals) == len(section.Vertices)

		for i, v := range section.Vertices {
			if withColour {
				c := section.VertexColors[i]
				bw.printf("v %s %s %s %s %s %s\n", ff(v.X), ff(v.Y), ff(v.Z), ff(c.X), ff(c.Y), ff(c.Z))
			} else {
				bw.printf("v %s %s %s\n", ff(v.X), ff(v.Y), ff(v.Z))
			}
		}
		if withUV {
			for _, uv := range section.UVs {
				bw.printf("vt %s %s\n", ff(uv.X), ff(1-uv.Y))
			}
		}
		if withNormal {
			for _, n := range section.Normals {
				bw.printf("vn %s %s %s\n", ff(n.X), ff(n.Y), ff(n.Z))
			}
		}

		bw.printf("usemtl section_%d\n", s)
		for t := 0; t+2 < len(section.Triangles); t += 3 {
			bw.printf("f")
			for _, idx := range section.Triangles[t : t+3] {
				i := int(idx)
				switch {
				case withUV && withNormal:
					bw.printf(" %d/%d/%d", vOffset+i+1, vtOffset+i+1, vnOffset+i+1)
				case withUV:
					bw.printf(" %d/%d", vOffset+i+1, vtOffset+i+1)
				case withNormal:
					bw.printf(" %d//%d", vOffset+i+1, vnOffset+i+1)
				default:
					bw.printf(" %d", vOffset+i+1)
				}
			}
			bw.printf("\n")
		}

		vOffset += len(section.Vertices)
		if withUV {
			vtOffset += len(section.UVs)
		}
		if withNormal {
			vnOffset += len(section.Normals)
		}
	}
	return bw.err
}

type objWriter struct {
	w   io.Writer
	err error
}

func (ow *objWriter) printf(format string, args ...interface{}) {
	if ow.err != nil {
		return
	}
	_, ow.err = fmt.Fprintf(ow.w, format, args...)
}

func ff(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func objName(name string) string {
	if name == "" {
		return "mesh"
	}
	return strings.ReplaceAll(name, " ", "_")
}

func errUnsupportedData(resource *resources.Resource) error {
	return fmt.Errorf("cannot write %T as a %s asset", resource.Data, resource.ResourceType)
}

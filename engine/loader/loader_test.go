package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/lighthouse/engine/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// triangleBuffer returns one triangle in 68 bytes: 3 positions, 3 tex coords and 3 uint16 indices plus padding.
func triangleBuffer() []byte {
	var buf bytes.Buffer
	for _, f := range []float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		0, 0,
		1, 0,
		0, 1,
	} {
		binary.Write(&buf, binary.LittleEndian, f)
	}
	binary.Write(&buf, binary.LittleEndian, []uint16{0, 1, 2, 0})
	return buf.Bytes()
}

// triangleDocument describes triangleBuffer. uri "" leaves the buffer for a GLB binary chunk.
func triangleDocument(uri string, node map[string]any) map[string]any {
	if node == nil {
		node = map[string]any{}
	}
	node["mesh"] = 0
	buffer := map[string]any{"byteLength": 68}
	if uri != "" {
		buffer["uri"] = uri
	}
	return map[string]any{
		"asset":  map[string]any{"version": "2.0"},
		"scene":  0,
		"scenes": []any{map[string]any{"nodes": []int{0}}},
		"nodes":  []any{node},
		"meshes": []any{map[string]any{
			"primitives": []any{map[string]any{
				"attributes": map[string]int{"POSITION": 0, "TEXCOORD_0": 1},
				"indices":    2,
			}},
		}},
		"accessors": []any{
			map[string]any{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"},
			map[string]any{"bufferView": 1, "componentType": 5126, "count": 3, "type": "VEC2"},
			map[string]any{"bufferView": 2, "componentType": 5123, "count": 3, "type": "SCALAR"},
		},
		"bufferViews": []any{
			map[string]any{"buffer": 0, "byteOffset": 0, "byteLength": 36},
			map[string]any{"buffer": 0, "byteOffset": 36, "byteLength": 24},
			map[string]any{"buffer": 0, "byteOffset": 60, "byteLength": 6},
		},
		"buffers": []any{buffer},
	}
}

func dataURI(data []byte) string {
	return "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(data)
}

func marshal(t *testing.T, doc map[string]any) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func glb(jsonData, bin []byte) []byte {
	pad := func(b []byte, fill byte) []byte {
		for len(b)%4 != 0 {
			b = append(b, fill)
		}
		return b
	}
	jsonData = pad(append([]byte(nil), jsonData...), ' ')
	bin = pad(append([]byte(nil), bin...), 0)

	var out bytes.Buffer
	total := 12 + 8 + len(jsonData) + 8 + len(bin)
	binary.Write(&out, binary.LittleEndian, gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(total)})
	binary.Write(&out, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(jsonData)), ChunkType: gltfGLBChunkJSON})
	out.Write(jsonData)
	binary.Write(&out, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(bin)), ChunkType: gltfGLBChunkBIN})
	out.Write(bin)
	return out.Bytes()
}

func approx(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, 1e-5)
}

func checkTriangle(t *testing.T, m *Model, offset mgl32.Vec3) {
	t.Helper()
	if len(m.Vertices) != 3 || len(m.Indices) != 3 {
		t.Fatalf("got %d vertices, %d indices; want 3, 3", len(m.Vertices), len(m.Indices))
	}
	want := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	for i, v := range m.Vertices {
		if !approx(v.Position, want[i].Add(offset)) {
			t.Errorf("vertex %d position = %v, want %v", i, v.Position, want[i].Add(offset))
		}
	}
	if m.Vertices[1].TexCoord != (mgl32.Vec2{1, 0}) {
		t.Errorf("vertex 1 tex coord = %v", m.Vertices[1].TexCoord)
	}
	if m.Indices[0] != 0 || m.Indices[1] != 1 || m.Indices[2] != 2 {
		t.Errorf("indices = %v", m.Indices)
	}
}

func TestLoadReaderEmbeddedBuffer(t *testing.T) {
	doc := triangleDocument(dataURI(triangleBuffer()), map[string]any{"translation": []float32{1, 0, 0}})
	l := NewLoader(BackendTypeGLTF)

	m, err := l.LoadReader("triangle", bytes.NewReader(marshal(t, doc)), false)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	checkTriangle(t, m, mgl32.Vec3{1, 0, 0})
	if l.Get("triangle") != m {
		t.Error("model not cached under its name")
	}
}

func TestLoadReaderGLB(t *testing.T) {
	data := glb(marshal(t, triangleDocument("", nil)), triangleBuffer())
	m, err := NewLoader(BackendTypeGLTF).LoadReader("triangle.glb", bytes.NewReader(data), true)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	checkTriangle(t, m, mgl32.Vec3{})
}

func TestLoadFileWithExternalBufferIsCached(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "triangle.bin"), triangleBuffer(), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "triangle.gltf")
	if err := os.WriteFile(path, marshal(t, triangleDocument("triangle.bin", nil)), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(BackendTypeGLTF)
	first, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	checkTriangle(t, first, mgl32.Vec3{})

	second, err := l.Load(path)
	if err != nil || second != first {
		t.Errorf("second Load = %p, %v; want cached %p", second, err, first)
	}
	if len(l.Models()) != 1 {
		t.Errorf("Models() has %d entries, want 1", len(l.Models()))
	}
}

func TestLoadGLBFileDetectedByMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.gltf")
	data := glb(marshal(t, triangleDocument("", nil)), triangleBuffer())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := NewLoader(BackendTypeGLTF).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	checkTriangle(t, m, mgl32.Vec3{})
}

func TestNewMeshFromModel(t *testing.T) {
	doc := triangleDocument(dataURI(triangleBuffer()), nil)
	m, err := NewLoader(BackendTypeGLTF).LoadReader("triangle", bytes.NewReader(marshal(t, doc)), false)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	msh := m.NewMesh(mesh.WithPosition(mgl32.Vec3{0, 0, 5}))
	if got := msh.Vertices()[2].Position; !approx(got, mgl32.Vec3{0, 1, 5}) {
		t.Errorf("mesh vertex 2 = %v, want (0,1,5)", got)
	}
}

func TestExtractWithoutScenesOrIndices(t *testing.T) {
	doc := triangleDocument(dataURI(triangleBuffer()), nil)
	delete(doc, "scene")
	delete(doc, "scenes")
	prim := doc["meshes"].([]any)[0].(map[string]any)["primitives"].([]any)[0].(map[string]any)
	delete(prim, "indices")

	m, err := NewLoader(BackendTypeGLTF).LoadReader("bare", bytes.NewReader(marshal(t, doc)), false)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	checkTriangle(t, m, mgl32.Vec3{})
}

func TestNodeMatrix(t *testing.T) {
	s := float32(math.Sqrt2 / 2)
	tests := []struct {
		name string
		node gltfNode
		in   mgl32.Vec3
		want mgl32.Vec3
	}{
		{"identity", gltfNode{}, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 2, 3}},
		{"translation", gltfNode{Translation: &[3]float32{0, 0, -4}}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 0, -4}},
		{"rotation y 90", gltfNode{Rotation: &[4]float32{0, s, 0, s}}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{"scale then translate", gltfNode{Translation: &[3]float32{1, 0, 0}, Scale: &[3]float32{2, 2, 2}}, mgl32.Vec3{1, 1, 0}, mgl32.Vec3{3, 2, 0}},
		{"matrix wins", gltfNode{
			Matrix:      &[16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 5, 0, 0, 1},
			Translation: &[3]float32{0, 9, 0},
		}, mgl32.Vec3{}, mgl32.Vec3{5, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mgl32.TransformCoordinate(tt.in, gltfNodeMatrix(&tt.node))
			if !approx(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	uri := dataURI(triangleBuffer())
	tests := []struct {
		name   string
		mutate func(doc map[string]any)
		want   string
	}{
		{"version", func(doc map[string]any) {
			doc["asset"] = map[string]any{"version": "1.0"}
		}, "version"},
		{"mode", func(doc map[string]any) {
			prim := doc["meshes"].([]any)[0].(map[string]any)["primitives"].([]any)[0].(map[string]any)
			prim["mode"] = 1
		}, "primitive mode"},
		{"no position", func(doc map[string]any) {
			prim := doc["meshes"].([]any)[0].(map[string]any)["primitives"].([]any)[0].(map[string]any)
			prim["attributes"] = map[string]int{"TEXCOORD_0": 1}
		}, "POSITION"},
		{"accessor overrun", func(doc map[string]any) {
			doc["accessors"].([]any)[0].(map[string]any)["count"] = 30
		}, "past the end"},
		{"wrong accessor type", func(doc map[string]any) {
			doc["accessors"].([]any)[0].(map[string]any)["type"] = "VEC2"
		}, "want VEC3"},
		{"missing node", func(doc map[string]any) {
			doc["scenes"] = []any{map[string]any{"nodes": []int{7}}}
		}, "node index 7"},
		{"bad data uri", func(doc map[string]any) {
			doc["buffers"] = []any{map[string]any{"byteLength": 68, "uri": "data:application/octet-stream,raw"}}
		}, "encoding"},
		{"short buffer", func(doc map[string]any) {
			doc["buffers"] = []any{map[string]any{"byteLength": 640, "uri": uri}}
		}, "size mismatch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := triangleDocument(uri, nil)
			tt.mutate(doc)
			_, err := NewLoader(BackendTypeGLTF).LoadReader(tt.name, bytes.NewReader(marshal(t, doc)), false)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	_, err := NewLoader(BackendTypeGLTF).Load("model.obj")
	if err == nil || !strings.Contains(err.Error(), "unsupported model format") {
		t.Errorf("Load(model.obj) error = %v", err)
	}
}

func TestNewLoaderPanicsOnUnknownBackend(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	NewLoader(LoaderBackendType(9))
}

func TestWithModelPrepopulatesCache(t *testing.T) {
	vertices, indices := mesh.Pyramid()
	pyramid := &Model{Name: "pyramid", Vertices: vertices, Indices: indices}
	l := NewLoader(BackendTypeGLTF, WithModel("pyramid.glb", pyramid))
	got, err := l.Load("pyramid.glb")
	if err != nil || got != pyramid {
		t.Errorf("Load cached = %v, %v", got, err)
	}
}

package loader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-obj/engine/model"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/bind_group_provider"
)

type fakeUploader struct {
	mu         sync.Mutex
	calls      int
	vertexLen  int
	indexCount int
	err        error
}

func (f *fakeUploader) InitMeshBuffers(p bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.vertexLen = len(vertexData)
	f.indexCount = indexCount
	if f.err != nil {
		return f.err
	}
	p.SetIndexCount(indexCount)
	return nil
}

func floatAt(data []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func quietLoader(opts ...LoaderBuilderOption) Loader {
	var logs bytes.Buffer
	return NewLoader(append([]LoaderBuilderOption{WithParseOptions(quietLogger(&logs))}, opts...)...)
}

func TestFormatFromPath(t *testing.T) {
	tcs := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "a/model.obj", want: FormatOBJ},
		{path: "MODEL.OBJ", want: FormatOBJ},
		{path: "scene.gltf", want: FormatGLTF},
		{path: "scene.glb", want: FormatGLTF},
		{path: "model.fbx", wantErr: true},
		{path: "noext", wantErr: true},
	}

	for _, tc := range tcs {
		t.Run(tc.path, func(t *testing.T) {
			got, err := FormatFromPath(tc.path)
			if tc.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("err=%v; want ErrUnsupportedFormat", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("FormatFromPath=%v, %v; want %v", got, err, tc.want)
			}
		})
	}
}

func TestLoader_LoadUsesMTLLibAndCaches(t *testing.T) {
	dir := t.TempDir()
	objPath := writeFile(t, dir, "tri.obj", triangleOBJ)
	writeFile(t, dir, "tri.mtl", triangleMTL)

	l := quietLoader()
	m, err := l.Load(objPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Name() != "tri" {
		t.Fatalf("Name=%q; want tri", m.Name())
	}
	if m.VertexCount() != 3 || m.IndexCount() != 3 {
		t.Fatalf("VertexCount=%d IndexCount=%d; want 3 and 3", m.VertexCount(), m.IndexCount())
	}
	if m.PipelineKey() != model.LayoutColor.PipelineKey() {
		t.Fatalf("PipelineKey=%q", m.PipelineKey())
	}

	data := m.VertexData()
	if uint64(len(data)) != 3*model.LayoutColor.StrideBytes() {
		t.Fatalf("len(VertexData)=%d", len(data))
	}
	for v := 0; v < 3; v++ {
		base := v * model.LayoutColor.Stride()
		if floatAt(data, base+3) != 1 || floatAt(data, base+4) != 0 || floatAt(data, base+5) != 0 {
			t.Fatalf("vertex %d is not red", v)
		}
	}
	if m.MeshProvider() != nil {
		t.Fatal("MeshProvider set without a renderer")
	}

	again, err := l.Load(objPath)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if again != m {
		t.Fatal("second Load did not return the cached model")
	}
	if l.Get(objPath) != m || len(l.Models()) != 1 {
		t.Fatalf("cache=%v", l.Models())
	}
}

func TestLoader_LoadWithoutMTLLib(t *testing.T) {
	dir := t.TempDir()
	objPath := writeFile(t, dir, "bare.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl red\nf 1/1/1 2/1/1 3/1/1\n")

	m, err := quietLoader().Load(objPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.ImportedMaterials()) != 0 {
		t.Fatalf("ImportedMaterials=%v; want none", m.ImportedMaterials())
	}
	if floatAt(m.VertexData(), 3) != 0 {
		t.Fatal("unmatched material should leave the color at zero")
	}
}

func TestLoader_LoadWithMaterials(t *testing.T) {
	dir := t.TempDir()
	objPath := writeFile(t, dir, "tri.obj", triangleOBJ)
	mtlPath := writeFile(t, dir, "other.mtl", "newmtl red\nKd 0 0 1\n")

	m, err := quietLoader(WithLayout(model.LayoutColorNormal)).LoadWithMaterials(objPath, mtlPath)
	if err != nil {
		t.Fatalf("LoadWithMaterials: %v", err)
	}
	stride := model.LayoutColorNormal.Stride()
	if len(m.VertexData()) != 3*stride*4 {
		t.Fatalf("len(VertexData)=%d", len(m.VertexData()))
	}
	if floatAt(m.VertexData(), 5) != 1 {
		t.Fatal("explicit material library was not used")
	}
	// per-axis normal: x from corner 0, y from corner 1, z from corner 2; all share vn 0 0 1
	if floatAt(m.VertexData(), 8) != 1 {
		t.Fatalf("normal z=%v; want 1", floatAt(m.VertexData(), 8))
	}
	if len(m.RenderMaterials()) != 1 || m.RenderMaterials()[0].PipelineKey() != model.LayoutColorNormal.PipelineKey() {
		t.Fatalf("RenderMaterials=%v", m.RenderMaterials())
	}
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	l := quietLoader()

	if _, err := l.Load(filepath.Join(dir, "model.fbx")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err=%v; want ErrUnsupportedFormat", err)
	}
	if _, err := l.Load(filepath.Join(dir, "missing.obj")); !errors.Is(err, ErrOpenFile) {
		t.Fatalf("err=%v; want ErrOpenFile", err)
	}

	objPath := writeFile(t, dir, "tri.obj", triangleOBJ)
	if _, err := l.Load(objPath); !errors.Is(err, ErrOpenFile) {
		t.Fatalf("missing mtllib target: err=%v; want ErrOpenFile", err)
	}
	if _, err := l.LoadReader("x", strings.NewReader(""), Format(42)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err=%v; want ErrUnsupportedFormat", err)
	}
	if len(l.Models()) != 0 {
		t.Fatalf("failed loads were cached: %v", l.Models())
	}
}

func TestLoader_Readers(t *testing.T) {
	l := quietLoader(WithFaceLookup(model.FaceLookupIndexed))

	m, err := l.LoadWavefrontReaders("tri", strings.NewReader(triangleOBJ), strings.NewReader(triangleMTL))
	if err != nil {
		t.Fatalf("LoadWavefrontReaders: %v", err)
	}
	if floatAt(m.VertexData(), 3) != 1 {
		t.Fatal("material stream was not applied")
	}

	plain, err := l.LoadReader("plain", strings.NewReader(triangleOBJ), FormatOBJ)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if plain.VertexCount() != 3 || floatAt(plain.VertexData(), 3) != 0 {
		t.Fatal("LoadReader should assemble without materials")
	}
	if l.Get("tri") != m || l.Get("plain") != plain {
		t.Fatal("reader models were not cached by name")
	}
}

func TestLoader_UploadsThroughRenderer(t *testing.T) {
	up := &fakeUploader{}
	l := quietLoader(WithRenderer(up))

	m, err := l.LoadWavefrontReaders("tri", strings.NewReader(triangleOBJ), strings.NewReader(triangleMTL))
	if err != nil {
		t.Fatalf("LoadWavefrontReaders: %v", err)
	}
	if up.calls != 1 || uint64(up.vertexLen) != 3*model.LayoutColor.StrideBytes() || up.indexCount != 3 {
		t.Fatalf("uploader=%+v", up)
	}
	p := m.MeshProvider()
	if p == nil || p.Label() != "tri_mesh" || p.IndexCount() != 3 {
		t.Fatalf("MeshProvider=%v", p)
	}
	if m.VertexData() != nil || m.IndexData() != nil {
		t.Fatal("CPU data should be released after upload")
	}
	if m.IndexCount() != 3 {
		t.Fatalf("IndexCount=%d; want 3 after release", m.IndexCount())
	}
}

func TestLoader_UploadError(t *testing.T) {
	up := &fakeUploader{err: errors.New("device lost")}
	l := quietLoader(WithRenderer(up))

	_, err := l.LoadReader("tri", strings.NewReader(triangleOBJ), FormatOBJ)
	if err == nil || !strings.Contains(err.Error(), "device lost") {
		t.Fatalf("err=%v; want upload error", err)
	}
	if l.Get("tri") != nil {
		t.Fatal("model cached after a failed upload")
	}
}

func TestLoader_LoadBatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tri.mtl", triangleMTL)
	paths := make([]string, 5)
	for i := range paths {
		paths[i] = writeFile(t, dir, "tri"+string(rune('a'+i))+".obj", triangleOBJ)
	}

	up := &fakeUploader{}
	l := quietLoader(WithRenderer(up), WithWorkers(3))

	reqs := make([]LoadRequest, len(paths))
	for i, p := range paths {
		reqs[i] = LoadRequest{Path: p}
	}
	models, err := l.LoadBatch(reqs)
	if err != nil {
		t.Fatalf("LoadBatch: %v", err)
	}
	if len(models) != len(paths) || up.calls != len(paths) {
		t.Fatalf("models=%d uploads=%d; want %d", len(models), up.calls, len(paths))
	}
	for i, m := range models {
		want := strings.TrimSuffix(filepath.Base(paths[i]), ".obj")
		if m.Name() != want {
			t.Fatalf("models[%d]=%q; want %q (request order)", i, m.Name(), want)
		}
	}

	// cached entries are not re-uploaded
	if _, err := l.LoadBatch(reqs[:2]); err != nil {
		t.Fatalf("second LoadBatch: %v", err)
	}
	if up.calls != len(paths) {
		t.Fatalf("uploads=%d after cached batch; want %d", up.calls, len(paths))
	}
}

func TestLoader_LoadBatchError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tri.mtl", triangleMTL)
	good := writeFile(t, dir, "good.obj", triangleOBJ)

	_, err := quietLoader().LoadBatch([]LoadRequest{
		{Path: good},
		{Path: filepath.Join(dir, "missing.obj")},
	})
	if !errors.Is(err, ErrOpenFile) {
		t.Fatalf("err=%v; want ErrOpenFile", err)
	}
}

func TestLoader_WithModel(t *testing.T) {
	pre := model.NewModel(model.WithName("pre"))
	l := NewLoader(WithModel("pre.obj", pre))

	m, err := l.Load("pre.obj")
	if err != nil || m != pre {
		t.Fatalf("Load=%v, %v; want the pre-populated model", m, err)
	}
}

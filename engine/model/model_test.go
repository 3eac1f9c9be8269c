package model

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-obj/common"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

func TestNewModel_FromAttributes(t *testing.T) {
	g := newTestGeometry(
		[]Position{{-1, 0, 2}, {1, 3, 0}, {0, -2, 1}},
		nil,
		[]Face{tri("red", 1, 2, 3)},
	)
	mats := common.MaterialTable{{Name: "red", Diffuse: [3]float32{1, 0, 0}}}
	attrs := Assemble(g, mats, LayoutColorNormal, FaceLookupIndexed)

	m := NewModel(
		WithName("tri"),
		WithAttributes(attrs),
		WithBounds(g),
		WithImportedMaterials(mats),
		WithRenderMaterials(material.NewMaterials(mats, LayoutColorNormal.PipelineKey())...),
	)

	if m.Name() != "tri" || m.Layout() != LayoutColorNormal {
		t.Fatalf("Name=%q Layout=%v", m.Name(), m.Layout())
	}
	if m.PipelineKey() != "obj_color-normal" {
		t.Fatalf("PipelineKey=%q", m.PipelineKey())
	}
	if m.VertexCount() != 3 || m.IndexCount() != 3 {
		t.Fatalf("VertexCount=%d IndexCount=%d", m.VertexCount(), m.IndexCount())
	}
	if len(m.VertexData()) != 3*36 || len(m.IndexData()) != 12 {
		t.Fatalf("len(VertexData)=%d len(IndexData)=%d", len(m.VertexData()), len(m.IndexData()))
	}
	lo, hi := m.Bounds()
	if lo != (mgl32.Vec3{-1, -2, 0}) || hi != (mgl32.Vec3{1, 3, 2}) {
		t.Fatalf("Bounds=%v %v", lo, hi)
	}
	if len(m.RenderMaterials()) != 1 || m.RenderMaterials()[0].Name() != "red" {
		t.Fatal("render materials not set")
	}

	m.ReleaseCPUData()
	if m.VertexData() != nil || m.IndexData() != nil || m.IndexCount() != 3 {
		t.Fatal("ReleaseCPUData must drop data but keep counts")
	}

	m.SetMeshProvider(bind_group_provider.NewBindGroupProvider("tri_mesh"))
	m.Release()
	if m.MeshProvider() != nil {
		t.Fatal("Release must drop the mesh provider")
	}
}

func TestGeometry_CapacitiesAndRelease(t *testing.T) {
	g := NewGeometry(2)
	for i := 0; i < 5; i++ {
		g.Positions.Append(Position{float32(i), 0, 0})
	}
	g.Faces.Append(tri("", 1, 2, 3))

	c := g.Capacities()
	if c.Positions != 5 || c.PositionsCap != 8 || c.Faces != 1 || c.FacesCap != 2 || c.Normals != 0 || c.NormalsCap != 2 {
		t.Fatalf("Capacities=%+v", c)
	}

	g.Release()
	if g.Positions.Len() != 0 || g.Faces.Len() != 0 {
		t.Fatal("Release must empty all sequences")
	}
	lo, hi := g.Bounds()
	if lo != (mgl32.Vec3{}) || hi != (mgl32.Vec3{}) {
		t.Fatal("empty geometry bounds must be zero")
	}
}

package bind_group_provider

import "testing"

type fakeResource struct {
	name     string
	released *[]string
}

func (f *fakeResource) Release() {
	*f.released = append(*f.released, f.name)
}

func TestBindGroupProvider_Release(t *testing.T) {
	var released []string
	res := func(name string) Resource { return &fakeResource{name: name, released: &released} }

	p := NewBindGroupProvider("frame_params",
		WithBindGroup(res("bind_group")),
		WithBuffer(0, res("uniform")),
		WithIndexCount(3),
	)
	p.SetVertexBuffer(res("vertex"))
	p.SetIndexBuffer(res("index"))
	p.SetVertexArray(res("vao"))

	if p.Label() != "frame_params" {
		t.Fatalf("Label()=%q", p.Label())
	}
	if p.IndexCount() != 3 {
		t.Fatalf("IndexCount()=%d; want 3", p.IndexCount())
	}
	if p.Buffer(0) == nil || p.Buffer(1) != nil {
		t.Fatal("Buffer lookup by binding is wrong")
	}

	p.Release()

	want := []string{"bind_group", "uniform", "vao", "vertex", "index"}
	if len(released) != len(want) {
		t.Fatalf("released=%v; want %v", released, want)
	}
	for i := range want {
		if released[i] != want[i] {
			t.Fatalf("released=%v; want %v", released, want)
		}
	}
	if p.BindGroup() != nil || p.VertexBuffer() != nil || p.IndexBuffer() != nil || len(p.Buffers()) != 0 || p.IndexCount() != 0 {
		t.Fatal("provider still holds resources after Release")
	}

	// a second release is a no-op
	p.Release()
	if len(released) != len(want) {
		t.Fatalf("second Release released again: %v", released)
	}
}

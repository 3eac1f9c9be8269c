package common

import "testing"

func TestMaterialTable_Lookup(t *testing.T) {
	table := MaterialTable{
		{Name: "red", Diffuse: [3]float32{1, 0, 0}},
		{Name: "Blue", Diffuse: [3]float32{0, 0, 1}},
		{Name: "red", Diffuse: [3]float32{0.5, 0, 0}},
	}

	m, ok := table.Lookup("red")
	if !ok {
		t.Fatal("Lookup(red) not found")
	}
	if m.Diffuse != [3]float32{0.5, 0, 0} {
		t.Fatalf("Lookup(red) Diffuse=%v; want last declaration [0.5 0 0]", m.Diffuse)
	}

	for _, name := range []string{"blue", "red ", " red", ""} {
		if _, ok := table.Lookup(name); ok {
			t.Fatalf("Lookup(%q) matched; want exact comparison only", name)
		}
	}

	names := table.Names()
	if len(names) != 3 || names[1] != "Blue" {
		t.Fatalf("Names()=%v", names)
	}
}

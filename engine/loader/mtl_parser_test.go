package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-obj/common"
)

func TestParseMTL_AllDirectives(t *testing.T) {
	src := `# exported
Kd 9 9 9
newmtl Body
Ka 0.1 0.2 0.3
Kd 0.4 0.5 0.6
Ks 0.7 0.8 0.9
Ns 96.078431
Ni 1.5
d 0.75
illum 2
map_Kd body diffuse.png

newmtl Eyes
Kd 1 1 1
`
	var logs bytes.Buffer
	table, err := ParseMTL(strings.NewReader(src), quietLogger(&logs))
	if err != nil {
		t.Fatalf("ParseMTL: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("len=%d; want 2", len(table))
	}

	body := table[0]
	want := common.ImportedMaterial{
		Name:             "Body",
		Ambient:          [3]float32{0.1, 0.2, 0.3},
		Diffuse:          [3]float32{0.4, 0.5, 0.6},
		Specular:         [3]float32{0.7, 0.8, 0.9},
		SpecularExponent: 96.078431,
		OpticalDensity:   1.5,
		Dissolve:         0.75,
		Illumination:     2,
		DiffuseMap:       "body",
	}
	if body != want {
		t.Fatalf("Body=%+v\nwant %+v", body, want)
	}

	eyes := table[1]
	if eyes.Name != "Eyes" || eyes.Diffuse != [3]float32{1, 1, 1} || eyes.Dissolve != 0 {
		t.Fatalf("Eyes=%+v", eyes)
	}
}

func TestParseMTL_PartialNumericKeepsPreviousValues(t *testing.T) {
	src := `newmtl m
Kd 0.1 0.2 0.3
Kd 0.5 x 0.7
Ks 0.9
illum two
`
	var logs bytes.Buffer
	table, err := ParseMTL(strings.NewReader(src), quietLogger(&logs))
	if err != nil {
		t.Fatalf("ParseMTL: %v", err)
	}
	m := table[0]
	if m.Diffuse != [3]float32{0.5, 0.2, 0.3} {
		t.Fatalf("Diffuse=%v; want [0.5 0.2 0.3]", m.Diffuse)
	}
	if m.Specular != [3]float32{0.9, 0, 0} {
		t.Fatalf("Specular=%v; want [0.9 0 0]", m.Specular)
	}
	if m.Illumination != 0 {
		t.Fatalf("Illumination=%d; want 0", m.Illumination)
	}
}

func TestParseMTL_DirectivesNeedExactPrefix(t *testing.T) {
	src := "newmtl m\n  Kd 1 1 1\nKd\t1 1 1\nkd 1 1 1\nKd 0.25 0.25 0.25\r\n"
	var logs bytes.Buffer
	table, err := ParseMTL(strings.NewReader(src), quietLogger(&logs))
	if err != nil {
		t.Fatalf("ParseMTL: %v", err)
	}
	if table[0].Diffuse != [3]float32{0.25, 0.25, 0.25} {
		t.Fatalf("Diffuse=%v; want only the exact 'Kd ' line applied", table[0].Diffuse)
	}
}

func TestParseMTL_Cap(t *testing.T) {
	var src strings.Builder
	for i := 0; i < common.MaxMaterials+3; i++ {
		fmt.Fprintf(&src, "newmtl m%d\nKd %d 0 0\n", i, i)
	}
	var logs bytes.Buffer
	table, err := ParseMTL(strings.NewReader(src.String()), quietLogger(&logs))
	if err != nil {
		t.Fatalf("ParseMTL: %v", err)
	}
	if len(table) != common.MaxMaterials {
		t.Fatalf("len=%d; want %d", len(table), common.MaxMaterials)
	}
	last := table[len(table)-1]
	if last.Name != "m99" || last.Diffuse[0] != 99 {
		t.Fatalf("last kept material=%+v", last)
	}
	if n := strings.Count(logs.String(), "material limit"); n != 3 {
		t.Fatalf("diagnostics=%d; want 3\n%s", n, logs.String())
	}
}

func TestParseMTL_DuplicateNamesLastWins(t *testing.T) {
	var logs bytes.Buffer
	table, err := ParseMTL(strings.NewReader("newmtl a\nKd 1 0 0\nnewmtl a\nKd 0 1 0\n"), quietLogger(&logs))
	if err != nil {
		t.Fatalf("ParseMTL: %v", err)
	}
	m, ok := table.Lookup("a")
	if !ok || m.Diffuse != [3]float32{0, 1, 0} {
		t.Fatalf("Lookup(a)=%+v, %v; want the second declaration", m, ok)
	}
}

func TestLoadMTL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tri.mtl")
	if err := os.WriteFile(path, []byte(triangleMTL), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadMTL(path)
	if err != nil {
		t.Fatalf("LoadMTL: %v", err)
	}
	if len(table) != 1 || table[0].Name != "red" || table[0].Diffuse != [3]float32{1, 0, 0} {
		t.Fatalf("table=%+v", table)
	}

	_, err = LoadMTL(filepath.Join(dir, "missing.mtl"))
	if !errors.Is(err, ErrOpenFile) {
		t.Fatalf("err=%v; want ErrOpenFile", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v; want the os error to stay wrapped", err)
	}
}

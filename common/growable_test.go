package common

import "testing"

func TestGrowable_DoublesOnlyWhenFull(t *testing.T) {
	g := NewGrowable[int](2)

	var grows [][2]int
	g.SetGrowCallback(func(oldCap, newCap int) {
		grows = append(grows, [2]int{oldCap, newCap})
	})

	g.Append(1)
	g.Append(2)
	if g.Cap() != 2 || len(grows) != 0 {
		t.Fatalf("after 2 appends cap=%d grows=%v; want cap=2 and no growth", g.Cap(), grows)
	}

	g.Append(3)
	if g.Cap() != 4 {
		t.Fatalf("after 3 appends cap=%d; want 4", g.Cap())
	}
	if len(grows) != 1 || grows[0] != [2]int{2, 4} {
		t.Fatalf("grows=%v; want [[2 4]]", grows)
	}

	for i := 0; i < g.Len(); i++ {
		if g.At(i) != i+1 {
			t.Fatalf("At(%d)=%d; want %d", i, g.At(i), i+1)
		}
	}
}

func TestGrowable_FinalCapacity(t *testing.T) {
	tcs := []struct {
		initial int
		n       int
		want    int
	}{
		{initial: 1, n: 0, want: 1},
		{initial: 1, n: 1, want: 1},
		{initial: 1, n: 5, want: 8},
		{initial: 4, n: 4, want: 4},
		{initial: 4, n: 5, want: 8},
		{initial: 3, n: 13, want: 24},
		{initial: 1000, n: 2500, want: 4000},
		{initial: 0, n: 3, want: 4},
	}

	for _, tc := range tcs {
		g := NewGrowable[float32](tc.initial)
		for i := 0; i < tc.n; i++ {
			g.Append(float32(i))
		}
		if g.Len() != tc.n {
			t.Fatalf("initial=%d n=%d: Len=%d", tc.initial, tc.n, g.Len())
		}
		if g.Cap() != tc.want {
			t.Fatalf("initial=%d n=%d: Cap=%d; want %d", tc.initial, tc.n, g.Cap(), tc.want)
		}
		if got := NextCapacity(tc.initial, tc.n); got != tc.want {
			t.Fatalf("NextCapacity(%d, %d)=%d; want %d", tc.initial, tc.n, got, tc.want)
		}
	}
}

func TestGrowable_Release(t *testing.T) {
	g := NewGrowable[string](4)
	g.Append("a")
	g.Release()
	if g.Len() != 0 || g.Cap() != 0 {
		t.Fatalf("after Release Len=%d Cap=%d; want 0 0", g.Len(), g.Cap())
	}
	g.Append("b")
	if g.Len() != 1 || g.At(0) != "b" {
		t.Fatalf("append after Release: Len=%d", g.Len())
	}
}

func TestGrowable_Reserve(t *testing.T) {
	tcs := []struct {
		name     string
		initial  int
		existing int
		reserve  int
		wantCap  int
		wantGrow int
	}{
		{name: "fits", initial: 8, existing: 2, reserve: 6, wantCap: 8, wantGrow: 0},
		{name: "doubles once", initial: 4, existing: 4, reserve: 1, wantCap: 8, wantGrow: 1},
		{name: "several doublings", initial: 3, existing: 2, reserve: 11, wantCap: 24, wantGrow: 1},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGrowable[int](tc.initial)
			for i := 0; i < tc.existing; i++ {
				g.Append(i)
			}
			var grows int
			g.SetGrowCallback(func(oldCapacity, newCapacity int) { grows++ })

			g.Reserve(tc.reserve)
			if g.Cap() != tc.wantCap || grows != tc.wantGrow {
				t.Fatalf("Cap=%d grows=%d; want %d %d", g.Cap(), grows, tc.wantCap, tc.wantGrow)
			}
			for i := 0; i < tc.reserve; i++ {
				g.Append(i)
			}
			if g.Cap() != tc.wantCap || grows != tc.wantGrow {
				t.Fatalf("after appends Cap=%d grows=%d; want %d %d", g.Cap(), grows, tc.wantCap, tc.wantGrow)
			}
			if g.At(tc.existing-1) != tc.existing-1 {
				t.Fatalf("existing elements not preserved")
			}
		})
	}
}

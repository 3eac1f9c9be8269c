package engine

import (
	"bytes"
	"encoding/binary"
	"errors"
	"log"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-obj/engine/model"
	"github.com/Carmen-Shannon/oxy-obj/engine/profiler"
	"github.com/Carmen-Shannon/oxy-obj/engine/renderer/bind_group_provider"
)

type fakeWindow struct {
	time     float64
	polls    int
	closeAt  int
	onResize func(width, height int)
}

func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *fakeWindow) Time() float64 {
	return w.time
}

func (w *fakeWindow) PollEvents() bool {
	w.polls++
	w.time += 0.5
	return w.IsRunning()
}

func (w *fakeWindow) IsRunning() bool {
	return w.closeAt == 0 || w.polls < w.closeAt
}

type fakeRenderer struct {
	calls     []string
	times     []float32
	resized   [2]int
	beginErr  error
	drawErr   error
	drawnKeys []string
}

func (r *fakeRenderer) Resize(width, height int) {
	r.resized = [2]int{width, height}
}

func (r *fakeRenderer) InitFrameParams(provider bind_group_provider.BindGroupProvider) error {
	r.calls = append(r.calls, "init")
	return nil
}

func (r *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.calls = append(r.calls, "write")
	for _, w := range writes {
		r.times = append(r.times, math.Float32frombits(binary.LittleEndian.Uint32(w.Data[0:4])))
	}
}

func (r *fakeRenderer) BeginFrame() error {
	r.calls = append(r.calls, "begin")
	return r.beginErr
}

func (r *fakeRenderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.calls = append(r.calls, "draw")
	r.drawnKeys = append(r.drawnKeys, pipelineKey)
	return r.drawErr
}

func (r *fakeRenderer) EndFrame() {
	r.calls = append(r.calls, "end")
}

func (r *fakeRenderer) Present() {
	r.calls = append(r.calls, "present")
}

func withFrameWindow(w frameWindow) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

func withFrameRenderer(r frameRenderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

func uploadedModel() model.Model {
	return model.NewModel(
		model.WithName("cube"),
		model.WithMeshProvider(bind_group_provider.NewBindGroupProvider("cube")),
	)
}

func TestNewEngine_RequiresParts(t *testing.T) {
	tcs := []struct {
		name string
		opts []EngineBuilderOption
	}{
		{name: "nothing"},
		{name: "no model", opts: []EngineBuilderOption{withFrameWindow(&fakeWindow{}), withFrameRenderer(&fakeRenderer{})}},
		{name: "no renderer", opts: []EngineBuilderOption{withFrameWindow(&fakeWindow{}), WithModel(uploadedModel())}},
		{name: "model not uploaded", opts: []EngineBuilderOption{withFrameWindow(&fakeWindow{}), withFrameRenderer(&fakeRenderer{}), WithModel(model.NewModel())}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewEngine(tc.opts...); !errors.Is(err, ErrNotReady) {
				t.Fatalf("err=%v; want ErrNotReady", err)
			}
		})
	}
}

func TestEngine_RunFrameOrder(t *testing.T) {
	win := &fakeWindow{time: 1, closeAt: 2}
	r := &fakeRenderer{}
	e, err := NewEngine(withFrameWindow(win), withFrameRenderer(r), WithModel(uploadedModel()))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if e.State() != StateWindowed {
		t.Fatalf("State=%v; want windowed", e.State())
	}

	var frames []uint64
	e.SetFrameCallback(func(stats profiler.FrameStats) {
		frames = append(frames, stats.Frame)
	})

	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"init", "write", "begin", "draw", "end", "present", "write", "begin", "draw", "end", "present"}
	if !reflect.DeepEqual(r.calls, want) {
		t.Fatalf("calls=%v; want %v", r.calls, want)
	}
	if !reflect.DeepEqual(r.times, []float32{1, 1.5}) {
		t.Fatalf("time uniform=%v; want [1 1.5]", r.times)
	}
	if !reflect.DeepEqual(r.drawnKeys, []string{"obj_color", "obj_color"}) {
		t.Fatalf("drawn keys=%v", r.drawnKeys)
	}
	if !reflect.DeepEqual(frames, []uint64{1, 2}) {
		t.Fatalf("frames=%v; want [1 2]", frames)
	}
	if e.State() != StateTerminated {
		t.Fatalf("State=%v; want terminated", e.State())
	}
	if err := e.Run(); !errors.Is(err, ErrTerminated) {
		t.Fatalf("second Run err=%v; want ErrTerminated", err)
	}
}

func TestEngine_FrameLimitAndQuit(t *testing.T) {
	r := &fakeRenderer{}
	e, err := NewEngine(withFrameWindow(&fakeWindow{}), withFrameRenderer(r), WithModel(uploadedModel()), WithFrameLimit(3))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := len(r.times); got != 3 {
		t.Fatalf("rendered %d frames; want 3", got)
	}

	r = &fakeRenderer{}
	e, err = NewEngine(withFrameWindow(&fakeWindow{}), withFrameRenderer(r), WithModel(uploadedModel()))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	e.SetFrameCallback(func(stats profiler.FrameStats) {
		e.Quit()
		e.Quit()
	})
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := len(r.times); got != 1 {
		t.Fatalf("rendered %d frames after Quit; want 1", got)
	}
}

func TestEngine_FrameErrors(t *testing.T) {
	r := &fakeRenderer{beginErr: errors.New("surface lost")}
	e, err := NewEngine(withFrameWindow(&fakeWindow{}), withFrameRenderer(r), WithModel(uploadedModel()), WithFrameLimit(2))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("Run with begin errors: %v", err)
	}
	for _, c := range r.calls {
		if c == "draw" || c == "present" {
			t.Fatalf("drew after a failed BeginFrame: %v", r.calls)
		}
	}

	drawErr := errors.New("pipeline missing")
	r = &fakeRenderer{drawErr: drawErr}
	e, err = NewEngine(withFrameWindow(&fakeWindow{}), withFrameRenderer(r), WithModel(uploadedModel()))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if err := e.Run(); !errors.Is(err, drawErr) {
		t.Fatalf("err=%v; want wrapped draw error", err)
	}
	if r.calls[len(r.calls)-1] != "end" {
		t.Fatalf("frame not ended after draw error: %v", r.calls)
	}
}

func TestEngine_WithProfiler(t *testing.T) {
	var buf bytes.Buffer
	clock := 3.0
	p := profiler.NewProfiler(
		profiler.WithTimeSource(func() float64 {
			clock += 0.5
			return clock
		}),
		profiler.WithUpdateInterval(time.Second),
		profiler.WithLogger(log.New(&buf, "", 0)),
	)

	r := &fakeRenderer{}
	e, err := NewEngine(
		withFrameWindow(&fakeWindow{time: 100}),
		withFrameRenderer(r),
		WithModel(uploadedModel()),
		WithProfiler(p),
		WithProfiling(true),
		WithFrameLimit(3),
	)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if !p.Enabled() {
		t.Fatal("WithProfiling(true) did not enable the supplied profiler")
	}
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The uniform time follows the supplied clock, not the window timer.
	if !reflect.DeepEqual(r.times, []float32{4, 4.5, 5}) {
		t.Fatalf("time uniform=%v; want [4 4.5 5]", r.times)
	}
	if !strings.Contains(buf.String(), "[Profiler] FPS:") {
		t.Fatalf("profiler log %q; want an FPS line", buf.String())
	}
}

func TestEngine_ResizeForwarded(t *testing.T) {
	win := &fakeWindow{}
	r := &fakeRenderer{}
	if _, err := NewEngine(withFrameWindow(win), withFrameRenderer(r), WithModel(uploadedModel())); err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	win.onResize(800, 600)
	if r.resized != [2]int{800, 600} {
		t.Fatalf("resized=%v; want [800 600]", r.resized)
	}
}

func TestState_String(t *testing.T) {
	if StateRunning.String() != "running" || State(9).String() != "State(9)" {
		t.Fatalf("unexpected State strings %q %q", StateRunning, State(9))
	}
}

package window

import "testing"

func TestWindowBuilderOptions(t *testing.T) {
	defaults := func() *engineWindow {
		return &engineWindow{title: "OpenGL Triangle", width: 640, height: 480, resizable: true}
	}

	tcs := []struct {
		name string
		opts []WindowBuilderOption
		want engineWindow
	}{
		{
			name: "defaults kept for zero values",
			opts: []WindowBuilderOption{WithTitle(""), WithWidth(0), WithHeight(0)},
			want: engineWindow{title: "OpenGL Triangle", width: 640, height: 480, resizable: true},
		},
		{
			name: "overrides",
			opts: []WindowBuilderOption{WithTitle("cube"), WithWidth(1024), WithHeight(768), WithClientAPI(ClientAPIOpenGL)},
			want: engineWindow{title: "cube", width: 1024, height: 768, resizable: true, clientAPI: ClientAPIOpenGL},
		},
		{
			name: "fixed size",
			opts: []WindowBuilderOption{WithResizable(false)},
			want: engineWindow{title: "OpenGL Triangle", width: 640, height: 480},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			w := defaults()
			for _, opt := range tc.opts {
				opt(w)
			}
			if w.title != tc.want.title || w.width != tc.want.width || w.height != tc.want.height ||
				w.resizable != tc.want.resizable || w.clientAPI != tc.want.clientAPI {
				t.Fatalf("window=%+v; want %+v", *w, tc.want)
			}
		})
	}
}

func TestClientAPI_String(t *testing.T) {
	if ClientAPIOpenGL.String() != "opengl" || ClientAPINone.String() != "none" {
		t.Fatalf("unexpected ClientAPI strings %q %q", ClientAPIOpenGL, ClientAPINone)
	}
}

package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type fakeBackend struct {
	calls     *[]string
	cleared   []mgl32.Vec4
	viewports [][2]int
}

func (b *fakeBackend) Clear(color mgl32.Vec4) {
	*b.calls = append(*b.calls, "clear")
	b.cleared = append(b.cleared, color)
}

func (b *fakeBackend) Viewport(width, height int) {
	b.viewports = append(b.viewports, [2]int{width, height})
}

type named struct {
	name  string
	calls *[]string
}

func (n named) Draw() { *n.calls = append(*n.calls, "draw "+n.name) }
func (n named) Bind() { *n.calls = append(*n.calls, "bind "+n.name) }

func TestNewRendererPanicsWithoutBackend(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected NewRenderer to panic")
		}
	}()
	NewRenderer(nil)
}

func TestDrawClearsThenDrawsInOrder(t *testing.T) {
	var calls []string
	backend := &fakeBackend{calls: &calls}
	r := NewRenderer(backend, WithDrawables(named{"a", &calls}))
	r.AddDrawables(named{"b", &calls})

	r.Draw()

	want := []string{"clear", "draw a", "draw b"}
	if len(calls) != len(want) {
		t.Fatalf("expected %v, got %v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("call %d: expected %q, got %q", i, want[i], calls[i])
		}
	}
	if backend.cleared[0] != DefaultClearColor {
		t.Errorf("expected default clear color, got %v", backend.cleared[0])
	}
}

func TestClearColor(t *testing.T) {
	var calls []string
	backend := &fakeBackend{calls: &calls}
	r := NewRenderer(backend, WithClearColor(mgl32.Vec4{1, 0, 0, 1}))
	r.Draw()
	r.SetClearColor(mgl32.Vec4{0, 1, 0, 1})
	r.Draw()

	if backend.cleared[0] != (mgl32.Vec4{1, 0, 0, 1}) || backend.cleared[1] != (mgl32.Vec4{0, 1, 0, 1}) {
		t.Errorf("unexpected clear colors %v", backend.cleared)
	}
}

func TestBindTextures(t *testing.T) {
	var calls []string
	r := NewRenderer(&fakeBackend{calls: &calls}, WithTextures(named{"diffuse", &calls}))
	r.AddTextures(named{"detail", &calls})
	r.BindTextures()

	if len(calls) != 2 || calls[0] != "bind diffuse" || calls[1] != "bind detail" {
		t.Errorf("unexpected bind order %v", calls)
	}
}

func TestResizeIgnoresEmptySize(t *testing.T) {
	var calls []string
	backend := &fakeBackend{calls: &calls}
	r := NewRenderer(backend)
	r.Resize(0, 600)
	r.Resize(800, 600)

	if len(backend.viewports) != 1 || backend.viewports[0] != [2]int{800, 600} {
		t.Errorf("expected one viewport of 800x600, got %v", backend.viewports)
	}
}

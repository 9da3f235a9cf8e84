package workers

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kujo-fm/kujo/internal/scheduler"
)

func TestPrecache_CachePath_IsStableAndContentAddressed(t *testing.T) {
	a := CachePath("/tmp/cache", "/home/x/photo.png")
	b := CachePath("/tmp/cache", "/home/x/photo.png")
	c := CachePath("/tmp/cache", "/home/x/other.png")
	if a != b {
		t.Fatalf("expected CachePath to be deterministic for the same input")
	}
	if a == c {
		t.Fatalf("expected different paths to hash to different cache entries")
	}
}

func TestPrecache_Size_SumsFileBytesRecursively(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("12345"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("12"), 0o644); err != nil {
		t.Fatal(err)
	}

	running := scheduler.NewRunning()
	p := NewPrecache(running, t.TempDir(), 256, 256, nil)
	id := running.Add("size")
	size, err := p.Size(id, dir)
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != 7 {
		t.Fatalf("expected total size 7, got %d", size)
	}
}

func TestPrecache_Size_BreaksSymlinkCycle(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(b, 0o755); err != nil {
		t.Fatal(err)
	}
	loop := filepath.Join(b, "loop")
	if err := os.Symlink(a, loop); err != nil {
		t.Skipf("symlinks unavailable in this environment: %v", err)
	}

	running := scheduler.NewRunning()
	p := NewPrecache(running, t.TempDir(), 256, 256, nil)
	id := running.Add("size loop")

	done := make(chan struct{})
	go func() {
		p.Size(id, a)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Size did not return — symlink cycle was not broken")
	}
}

func TestPrecache_Mime_MapsPathsToDetectedTypes(t *testing.T) {
	running := scheduler.NewRunning()
	p := NewPrecache(running, t.TempDir(), 256, 256, func(paths []string) ([]string, error) {
		out := make([]string, len(paths))
		for i := range paths {
			out[i] = "text/plain"
		}
		return out, nil
	})
	id := running.Add("mime")
	out, err := p.Mime(id, []string{"a.txt", "b.txt"})
	if err != nil {
		t.Fatalf("Mime: %v", err)
	}
	if out["a.txt"] != "text/plain" || out["b.txt"] != "text/plain" {
		t.Fatalf("unexpected mime map: %+v", out)
	}
}

func TestPrecache_Mime_PropagatesDetectorError(t *testing.T) {
	running := scheduler.NewRunning()
	boom := errors.New("boom")
	p := NewPrecache(running, t.TempDir(), 256, 256, func([]string) ([]string, error) {
		return nil, boom
	})
	id := running.Add("mime")
	if _, err := p.Mime(id, []string{"a.txt"}); !errors.Is(err, boom) {
		t.Fatalf("expected detector error propagated, got %v", err)
	}
}

func TestPrecache_Image_CachesDownsizedCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	writeTestPNG(t, src, 300, 300)

	cacheDir := t.TempDir()
	running := scheduler.NewRunning()
	p := NewPrecache(running, cacheDir, 100, 100, nil)
	id := running.Add("image")
	if err := p.Image(id, src); err != nil {
		t.Fatalf("Image: %v", err)
	}
	cache := CachePath(cacheDir, src)
	if _, err := os.Stat(cache); err != nil {
		t.Fatalf("expected cache file written, got %v", err)
	}
}

func TestPrecache_Image_SkipsWorkWhenAlreadyCached(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.png")
	writeTestPNG(t, src, 10, 10)

	cacheDir := t.TempDir()
	cache := CachePath(cacheDir, src)
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cache, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	running := scheduler.NewRunning()
	p := NewPrecache(running, cacheDir, 100, 100, nil)
	id := running.Add("image")
	if err := p.Image(id, src); err != nil {
		t.Fatalf("Image: %v", err)
	}
	got, err := os.ReadFile(cache)
	if err != nil || string(got) != "stale" {
		t.Fatalf("expected cached file left untouched, got %q err=%v", got, err)
	}
}

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 255), G: uint8(y % 255), B: 0, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

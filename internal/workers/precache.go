package workers

import (
	"crypto/md5"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/nfnt/resize"

	"github.com/kujo-fm/kujo/internal/scheduler"
)

// maxSymlinkDepth bounds recursive size/precache walks against symlink
// cycles (§9 Supplemented features "Symlink-loop cycle breaking"),
// matching the original's 64-deep cap.
const maxSymlinkDepth = 64

// Precache is the size/mime/image/video precaching worker (§4.7).
// mimeDetect is injected rather than shelling out directly so this
// package doesn't need to depend on internal/external; it's expected
// to run `file -bL --mime-type` (or equivalent) and return one mime
// string per input path, in order, empty for anything it couldn't
// classify.
type Precache struct {
	running             *scheduler.Running
	cacheDir            string
	maxWidth, maxHeight uint
	mimeDetect          func(paths []string) ([]string, error)
}

// NewPrecache constructs a Precache worker.
func NewPrecache(running *scheduler.Running, cacheDir string, maxWidth, maxHeight uint, mimeDetect func([]string) ([]string, error)) *Precache {
	return &Precache{running: running, cacheDir: cacheDir, maxWidth: maxWidth, maxHeight: maxHeight, mimeDetect: mimeDetect}
}

// CachePath returns the on-disk cache file for path, keyed by an MD5
// hash of the path string as given — ported directly from `Precache::cache`.
func CachePath(cacheDir, path string) string {
	sum := md5.Sum([]byte(path))
	return filepath.Join(cacheDir, fmt.Sprintf("%x", sum))
}

// Size recursively computes target's total size, breaking symlink
// cycles by tracking each visited (device, inode) pair and capping
// recursion depth at maxSymlinkDepth.
func (p *Precache) Size(id uint64, target string) (int64, error) {
	size, err := precacheWalk(target, map[visitKey]bool{}, 0)
	if err != nil {
		return 0, err
	}
	p.running.New(id, int(size))
	p.running.Adv(id, 1, int(size))
	return size, nil
}

type visitKey struct {
	Dev, Ino uint64
}

func statKey(info os.FileInfo) (visitKey, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return visitKey{}, false
	}
	return visitKey{Dev: uint64(st.Dev), Ino: st.Ino}, true
}

func precacheWalk(path string, visited map[visitKey]bool, depth int) (int64, error) {
	if depth > maxSymlinkDepth {
		return 0, nil
	}

	info, err := os.Lstat(path)
	if err != nil {
		return 0, err
	}
	if key, ok := statKey(info); ok {
		if visited[key] {
			return 0, nil
		}
		visited[key] = true
	}
	if !info.IsDir() {
		return info.Size(), nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, nil
	}
	var total int64
	for _, e := range entries {
		child := filepath.Join(path, e.Name())
		childInfo, err := e.Info()
		if err != nil {
			continue
		}
		if childInfo.Mode()&os.ModeSymlink != 0 {
			resolved, err := os.Stat(child)
			if err != nil {
				continue
			}
			if key, ok := statKey(resolved); ok && visited[key] {
				continue
			}
		}
		sz, err := precacheWalk(child, visited, depth+1)
		if err == nil {
			total += sz
		}
	}
	return total, nil
}

// Mime batches a mimetype lookup across paths, reporting one Adv per
// batch (the original reports the whole batch as a single task).
func (p *Precache) Mime(id uint64, paths []string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	p.running.New(id, len(paths))
	mimes, err := p.mimeDetect(paths)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(paths))
	for i, path := range paths {
		if i < len(mimes) && mimes[i] != "" {
			out[path] = mimes[i]
		}
	}
	p.running.Adv(id, len(paths), 0)
	return out, nil
}

// Image decodes path, downsizes it to fit maxWidth/maxHeight if
// needed, and caches the result as a JPEG — ported from
// `Precache::image`. A pre-existing cache entry is a no-op.
func (p *Precache) Image(id uint64, path string) error {
	cache := CachePath(p.cacheDir, path)
	if _, err := os.Stat(cache); err == nil {
		p.running.Adv(id, 1, 0)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return err
	}
	b := img.Bounds()
	if uint(b.Dx()) > p.maxWidth || uint(b.Dy()) > p.maxHeight {
		img = resize.Thumbnail(p.maxWidth, p.maxHeight, img, resize.Lanczos3)
	}

	if err := os.MkdirAll(p.cacheDir, 0o755); err != nil {
		return err
	}
	out, err := os.Create(cache)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 85}); err != nil {
		return err
	}
	p.running.Adv(id, 1, 0)
	return nil
}

// Video shells out to ffmpegthumbnailer to cache a video frame as a
// JPEG — ported from `Precache::video`.
func (p *Precache) Video(id uint64, path string) error {
	cache := CachePath(p.cacheDir, path)
	if _, err := os.Stat(cache); err == nil {
		p.running.Adv(id, 1, 0)
		return nil
	}
	if err := os.MkdirAll(p.cacheDir, 0o755); err != nil {
		return err
	}
	cmd := exec.Command("ffmpegthumbnailer",
		"-i", path, "-o", cache,
		"-q", "6", "-c", "jpeg", "-s", fmt.Sprint(p.maxWidth))
	if err := cmd.Run(); err != nil {
		return err
	}
	p.running.Adv(id, 1, 0)
	return nil
}

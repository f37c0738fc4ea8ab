package render

import (
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var (
	regularFontPaths = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		"/Library/Fonts/Arial.ttf",
		`C:\Windows\Fonts\arial.ttf`,
	}
	boldFontPaths = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
		"/Library/Fonts/Arial Bold.ttf",
		`C:\Windows\Fonts\arialbd.ttf`,
	}
)

type faceKey struct {
	points float64
	bold   bool
}

// fontCache loads TrueType faces once per size, falling back to the built-in
// bitmap face when no system font is available.
type fontCache struct {
	mu    sync.Mutex
	faces map[faceKey]font.Face
	paths func(bold bool) []string
}

func newFontCache() *fontCache {
	return &fontCache{
		faces: make(map[faceKey]font.Face),
		paths: func(bold bool) []string {
			if bold {
				return boldFontPaths
			}
			return regularFontPaths
		},
	}
}

func (c *fontCache) face(points float64, bold bool) font.Face {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := faceKey{points: points, bold: bold}
	if f, ok := c.faces[key]; ok {
		return f
	}
	var face font.Face = basicfont.Face7x13
	for _, path := range c.paths(bold) {
		if f, err := gg.LoadFontFace(path, points); err == nil {
			face = f
			break
		}
	}
	c.faces[key] = face
	return face
}

package texture_test

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bodyrig/internal/texture"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestBuildIndexScansSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	writePNG(t, filepath.Join(dir, "Body.png"))
	writePNG(t, filepath.Join(dir, "sub", "head.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	idx := texture.BuildIndex(dir)
	require.Equal(t, 2, idx.Len())

	_, ok := idx.ResolvePath("body")
	require.True(t, ok)
	_, ok = idx.ResolvePath("head")
	require.True(t, ok)
	_, ok = idx.ResolvePath("notes")
	require.False(t, ok)
}

func TestResolvePathIgnoresPrefixExtensionAndCase(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "body.png"))

	idx := texture.BuildIndex(dir)
	for _, name := range []string{"body", "BODY.png", "textures/Body.tga", `art\Body.jpg`} {
		_, ok := idx.ResolvePath(name)
		require.True(t, ok, "name %q", name)
	}
}

func TestCacheResolvesAndCaches(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "body.png"))

	cache := texture.NewCache(texture.BuildIndex(dir))

	img := cache.Resolve("body")
	require.NotNil(t, img)
	require.Equal(t, 2, img.Rect.Dx())

	// Cached resolution returns the same decoded image.
	require.Same(t, img, cache.Resolve("Body.png"))
	require.Nil(t, cache.Resolve("missing"))
}

func TestLoadTexturePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	writePNG(t, path)

	img, err := texture.LoadTexture(path)
	require.NoError(t, err)
	require.Equal(t, uint8(255), img.Pix[3])
}

func TestLoadTextureMissingFile(t *testing.T) {
	_, err := texture.LoadTexture(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}

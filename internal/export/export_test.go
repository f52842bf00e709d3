package export

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pegboard/internal/board"
	"pegboard/internal/errors"
	"pegboard/internal/geometry"
)

func sampleBoard(t *testing.T) board.State {
	t.Helper()
	s := board.New(geometry.Size{Width: 6, Height: 4}, 10)

	hammer := board.Blueprint{
		Type:  "hammer",
		Name:  "Claw Hammer",
		Color: "#8B4513",
		Shape: geometry.MustShape([][]int{{1, 1, 1}, {0, 1, 0}, {0, 1, 0}}),
	}
	cutters := board.Blueprint{
		Type:  "pliers",
		Name:  "Wire Cutters",
		Color: "#DC143C",
		Shape: geometry.MustShape([][]int{{1, 1}, {1, 1}}),
	}

	var err error
	s, _, err = s.Place(hammer, geometry.Position{X: 0, Y: 0}, "a")
	require.NoError(t, err)
	s, _, err = s.Place(cutters, geometry.Position{X: 4, Y: 2}, "b")
	require.NoError(t, err)
	return s
}

func TestLines(t *testing.T) {
	s := sampleBoard(t)
	assert.Equal(t, []string{
		"AAA...",
		".A....",
		".A..BB",
		"....BB",
		"",
		"A  Claw Hammer (hammer) at (0,0)",
		"B* Wire Cutters (pliers) at (4,2)",
	}, Lines(s))
}

func TestLinesEmptyBoard(t *testing.T) {
	s := board.New(geometry.Size{Width: 3, Height: 2}, 10)
	assert.Equal(t, []string{"...", "..."}, Lines(s))
}

func TestText(t *testing.T) {
	s := sampleBoard(t)
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, s))
	assert.Equal(t, String(s), buf.String())
}

func TestMarker(t *testing.T) {
	assert.Equal(t, 'A', Marker(0))
	assert.Equal(t, 'a', Marker(26))
	assert.Equal(t, '9', Marker(61))
	assert.Equal(t, '#', Marker(62))
	assert.Equal(t, '#', Marker(-1))
}

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"Claw Hammer":          "CH",
		"Needle Nose Pliers":   "NNP",
		"Phillips Screwdriver": "PS",
		"a b c d":              "abc",
		"":                     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, initials(in), in)
	}
}

func TestRender(t *testing.T) {
	s := sampleBoard(t)
	img, err := Render(s)
	require.NoError(t, err)

	// One cell of padding on each side.
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())

	// Corner of the padding stays white.
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})

	// Interior of a hammer cell (2,0) away from outline and label.
	got := color.RGBAModel.Convert(img.At(10+2*10+2, 10+2)).(color.RGBA)
	assert.Equal(t, color.RGBA{0x8B, 0x45, 0x13, 0xff}, got)
}

func TestRenderEmpty(t *testing.T) {
	_, err := Render(board.New(geometry.Size{Width: 3, Height: 3}, 10))
	assert.True(t, errors.Is(err, errors.ErrCodeExport))
}

func TestPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.png")
	require.NoError(t, PNG(path, sampleBoard(t)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())

	err = PNG(filepath.Join(t.TempDir(), "missing", "board.png"), sampleBoard(t))
	assert.True(t, errors.Is(err, errors.ErrCodeExport))
}

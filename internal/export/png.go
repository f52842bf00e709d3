// Package export renders a board to image and text files.
package export

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"pegboard/internal/board"
	"pegboard/internal/errors"
)

const (
	boardColor   = "#D2B48C"
	holeColor    = "#8B7355"
	outlineColor = "#333333"
	labelColor   = "#FFFFFF"
	gridPadding  = 1
)

// PNG writes the board to path as a PNG image, CellSize pixels per cell.
func PNG(path string, s board.State) error {
	img, err := Render(s)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return errors.Wrap(errors.ErrCodeExport, err, "write %s", path)
	}
	return nil
}

// Render draws the board: pegboard background with a hole per cell, then
// every item's occupied cells in its color, outlined and labelled.
func Render(s board.State) (image.Image, error) {
	if len(s.Items) == 0 {
		return nil, errors.New(errors.ErrCodeExport, "nothing to export")
	}
	cell := float64(s.CellSize)
	if cell <= 0 {
		return nil, errors.New(errors.ErrCodeExport, "cell size must be positive, got %d", s.CellSize)
	}

	pad := float64(gridPadding) * cell
	width := int(float64(s.Grid.Width)*cell + 2*pad)
	height := int(float64(s.Grid.Height)*cell + 2*pad)

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	face, err := labelFace(cell / 3)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)

	dc.SetHexColor(boardColor)
	dc.DrawRectangle(pad, pad, float64(s.Grid.Width)*cell, float64(s.Grid.Height)*cell)
	dc.Fill()

	dc.SetHexColor(holeColor)
	for y := 0; y < s.Grid.Height; y++ {
		for x := 0; x < s.Grid.Width; x++ {
			cx := pad + (float64(x)+0.5)*cell
			cy := pad + (float64(y)+0.5)*cell
			dc.DrawCircle(cx, cy, cell/8)
		}
	}
	dc.Fill()

	for _, it := range s.Items {
		drawItem(dc, it, pad, cell)
	}
	return dc.Image(), nil
}

func drawItem(dc *gg.Context, it board.Item, pad, cell float64) {
	cells := it.Cells()
	dc.SetHexColor(it.Color)
	for _, p := range cells {
		dc.DrawRectangle(pad+float64(p.X)*cell, pad+float64(p.Y)*cell, cell, cell)
	}
	dc.Fill()

	dc.SetLineWidth(1)
	dc.SetHexColor(outlineColor)
	for _, p := range cells {
		dc.DrawRectangle(pad+float64(p.X)*cell+0.5, pad+float64(p.Y)*cell+0.5, cell-1, cell-1)
	}
	dc.Stroke()

	// Label on the first occupied cell, which is the top-left one in row order.
	if len(cells) == 0 {
		return
	}
	first := cells[0]
	dc.SetHexColor(labelColor)
	dc.DrawStringAnchored(initials(it.Name),
		pad+(float64(first.X)+0.5)*cell,
		pad+(float64(first.Y)+0.5)*cell,
		0.5, 0.5)
}

func labelFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExport, err, "parse font")
	}
	if size < 6 {
		size = 6
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// initials turns "Needle Nose Pliers" into "NNP", at most three letters.
func initials(name string) string {
	var out []rune
	start := true
	for _, r := range name {
		if r == ' ' || r == '-' || r == '_' {
			start = true
			continue
		}
		if start {
			out = append(out, r)
			start = false
			if len(out) == 3 {
				break
			}
		}
	}
	return string(out)
}

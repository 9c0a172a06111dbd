// Command spriteview plays back one animation row of a fighter sprite sheet
// so clip timings can be checked without launching a match.
package main

import (
	"bytes"
	"flag"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

type previewGame struct {
	frames      []*ebiten.Image
	current     int
	tick        int
	ticksPerFrm int
}

func (g *previewGame) Update() error {
	if len(g.frames) <= 1 {
		return nil
	}
	g.tick++
	if g.tick >= g.ticksPerFrm {
		g.tick = 0
		g.current = (g.current + 1) % len(g.frames)
	}
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	if len(g.frames) == 0 {
		return
	}
	fw := g.frames[0].Bounds().Dx()
	fh := g.frames[0].Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64((512-fw)/2), float64((512-fh)/2))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.frames[g.current], op)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 512, 512
}

func loadRow(path string, frameW, frameH, row, count, hold int) ([]*ebiten.Image, int) {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("failed to read %s: %v", path, err)
		return nil, 0
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		log.Printf("failed to decode %s: %v", path, err)
		return nil, 0
	}
	sheet := ebiten.NewImageFromImage(img)
	cols := sheet.Bounds().Dx() / frameW
	if count <= 0 || count > cols {
		count = cols
	}
	frames := make([]*ebiten.Image, count)
	for i := 0; i < count; i++ {
		r := image.Rect(i*frameW, row*frameH, i*frameW+frameW, row*frameH+frameH)
		sub := sheet.SubImage(r).(image.Image)
		frames[i] = ebiten.NewImageFromImage(sub)
	}
	if hold < 1 {
		hold = 1
	}
	return frames, hold
}

func main() {
	sheet := flag.String("sheet", "assets/vanguard-Sheet.png", "sprite sheet to preview")
	frameW := flag.Int("w", 64, "frame width in pixels")
	frameH := flag.Int("h", 64, "frame height in pixels")
	row := flag.Int("row", 0, "animation row to play")
	count := flag.Int("frames", 0, "frame count (0 means the whole row)")
	hold := flag.Int("hold", 10, "ticks per frame")
	flag.Parse()

	frames, ticks := loadRow(*sheet, *frameW, *frameH, *row, *count, *hold)
	g := &previewGame{frames: frames, ticksPerFrm: ticks}
	ebiten.SetWindowSize(512, 512)
	ebiten.SetWindowTitle("spriteview")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

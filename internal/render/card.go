package render

import (
	"image"
	"image/color"
	"time"

	"github.com/fogleman/gg"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/domain/games"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/fatigue"
)

// Slide geometry.
const (
	Width  = 1080
	Height = 1080

	margin    = 45.0
	cardR     = 34.0
	rowHeight = 96.0
)

var (
	colorBG     = color.RGBA{11, 15, 20, 255}
	colorCard   = color.RGBA{16, 24, 36, 255}
	colorCard2  = color.RGBA{18, 28, 42, 255}
	colorBorder = color.RGBA{35, 52, 72, 255}
	colorTeal   = color.RGBA{59, 214, 198, 255}
	colorText   = color.RGBA{234, 242, 255, 255}
	colorMuted  = color.RGBA{156, 170, 190, 255}
	colorHot    = color.RGBA{255, 107, 107, 255}
	colorSep    = color.RGBA{40, 55, 75, 255}
	colorShadow = color.RGBA{0, 0, 0, 110}
)

type box struct{ x0, y0, x1, y1 float64 }

func (b box) w() float64 { return b.x1 - b.x0 }
func (b box) h() float64 { return b.y1 - b.y0 }

var (
	headerBox = box{margin, 40, Width - margin, 245}
	mainBox   = box{margin, 275, Width - margin, 910}
	footerBox = box{margin, 935, Width - margin, 1035}
)

// card draws one slide.
type card struct {
	dc    *gg.Context
	fonts *fontCache
	loc   *time.Location
	logo  image.Image
}

func (c *card) draw(date string, gs []games.Game, loads fatigue.Loads) {
	dc := c.dc
	dc.SetColor(colorBG)
	dc.Clear()

	c.panel(headerBox, true)
	dc.SetFontFace(c.fonts.face(54, true))
	dc.SetColor(colorText)
	dc.DrawStringAnchored("NHL Schedule Pressure", headerBox.x0+28, headerBox.y0+70, 0, 1)
	dc.SetFontFace(c.fonts.face(26, false))
	dc.SetColor(colorMuted)
	dc.DrawStringAnchored(date+" • All Games • TRVL + Density flags (B2B / 3IN4 / 4IN6)", headerBox.x0+28, headerBox.y0+145, 0, 1)

	c.panel(mainBox, false)
	c.legend()

	if len(gs) == 0 {
		dc.SetFontFace(c.fonts.face(34, true))
		dc.SetColor(colorText)
		dc.DrawStringAnchored("No games found for this date.", mainBox.x0+28, mainBox.y0+140, 0, 1)
	} else {
		y := mainBox.y0 + 130
		for i, g := range gs {
			if i > 0 {
				dc.SetColor(colorSep)
				dc.SetLineWidth(2)
				dc.DrawLine(mainBox.x0+24, y-14, mainBox.x1-24, y-14)
				dc.Stroke()
			}
			c.gameRow(g, loads, y)
			y += rowHeight
		}
	}

	c.footer()
}

func (c *card) panel(b box, withBar bool) {
	dc := c.dc
	dc.SetColor(colorShadow)
	dc.DrawRoundedRectangle(b.x0, b.y0+10, b.w(), b.h(), cardR)
	dc.Fill()

	dc.SetColor(colorCard)
	dc.DrawRoundedRectangle(b.x0, b.y0, b.w(), b.h(), cardR)
	dc.FillPreserve()
	dc.SetColor(colorBorder)
	dc.SetLineWidth(3)
	dc.Stroke()

	if withBar {
		dc.SetColor(colorTeal)
		dc.DrawRectangle(b.x0+22, b.y0+24, b.w()-44, 16)
		dc.Fill()
	}
}

func (c *card) legend() {
	c.dc.SetFontFace(c.fonts.face(20, true))
	x, y := mainBox.x0+28, mainBox.y0+22
	c.chip(x, y, "TRVL (7D) = km in last 7 days", colorBorder, 12, 6, 14)
	c.chip(x+420, y, "B2B = played yesterday", colorBorder, 12, 6, 14)
	c.chip(x, y+46, "3IN4 / 4IN6 include today", colorBorder, 12, 6, 14)
}

func (c *card) gameRow(g games.Game, loads fatigue.Loads, y float64) {
	dc := c.dc
	left := mainBox.x0 + 28

	dc.SetFontFace(c.fonts.face(34, true))
	dc.SetColor(colorText)
	dc.DrawStringAnchored(string(g.AwayTeam)+" @ "+string(g.HomeTeam), left, y-6, 0, 1)

	if start := FormatStart(g.StartTime, c.loc); start != "" {
		dc.SetFontFace(c.fonts.face(22, false))
		dc.SetColor(colorMuted)
		dc.DrawStringAnchored("Start: "+start+" ET", left, y+36, 0, 1)
	}

	away, _ := loads.Get(g.AwayTeam)
	home, _ := loads.Get(g.HomeTeam)
	c.teamChips("AWAY", away, y)
	c.teamChips("HOME", home, y+44)
}

// teamChips draws the chips right-aligned, followed by the side label.
func (c *card) teamChips(label string, load fatigue.TeamLoad, y float64) {
	dc := c.dc
	dc.SetFontFace(c.fonts.face(20, true))
	x := mainBox.x1 - 28
	for _, chip := range Chips(load) {
		tw, _ := dc.MeasureString(chip.Text())
		x -= tw + 28
		outline := colorBorder
		if chip.Hot {
			outline = colorHot
		}
		c.chip(x, y, chip.Text(), outline, 14, 8, 18)
		x -= 10
	}

	dc.SetFontFace(c.fonts.face(22, false))
	dc.SetColor(colorMuted)
	dc.DrawStringAnchored(label, x-8, y+6, 1, 1)
}

func (c *card) chip(x, y float64, text string, outline color.Color, padX, padY, r float64) {
	dc := c.dc
	tw, th := dc.MeasureString(text)
	w, h := tw+padX*2, th+padY*2

	dc.SetColor(colorCard2)
	dc.DrawRoundedRectangle(x, y, w, h, r)
	dc.FillPreserve()
	dc.SetColor(outline)
	dc.SetLineWidth(2)
	dc.Stroke()

	dc.SetColor(colorText)
	dc.DrawStringAnchored(text, x+padX, y+padY-1, 0, 1)
}

func (c *card) footer() {
	dc := c.dc
	c.panel(footerBox, true)

	dc.SetFontFace(c.fonts.face(28, true))
	dc.SetColor(colorText)
	dc.DrawStringAnchored("Fatigue Watch", footerBox.x0+28, footerBox.y0+46, 0, 1)
	dc.SetFontFace(c.fonts.face(22, false))
	dc.SetColor(colorMuted)
	dc.DrawStringAnchored("• Slower legs late   • Transition gaps   • Late penalties", footerBox.x0+28, footerBox.y0+78, 0, 1)

	if c.logo != nil {
		const size = 52.0
		c.circleImage(c.logo, footerBox.x1-28-size, footerBox.y1-8-size, size)
	}
}

// circleImage draws img scaled to size x size and clipped to a circle.
func (c *card) circleImage(img image.Image, x, y, size float64) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	dc := c.dc
	dc.Push()
	defer dc.Pop()

	dc.DrawCircle(x+size/2, y+size/2, size/2)
	dc.Clip()
	dc.Translate(x, y)
	dc.Scale(size/float64(b.Dx()), size/float64(b.Dy()))
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)
}

// FormatStart renders a start time as "7:00 PM" in loc, or "" when unknown.
func FormatStart(start *time.Time, loc *time.Location) string {
	if start == nil {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return start.In(loc).Format("3:04 PM")
}

package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// OG image geometry.
const (
	OGWidth  = 1200
	OGHeight = 630

	ogMargin     = 80
	ogTitleSize  = 64
	ogLabelSize  = 28
	ogLineHeight = 78
	ogMaxLines   = 4
)

var (
	ogBackground = color.RGBA{R: 0x0b, G: 0x0b, B: 0x0f, A: 0xff}
	ogAccent     = color.RGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	ogText       = color.RGBA{R: 0xfa, G: 0xfa, B: 0xf9, A: 0xff}
	ogMuted      = color.RGBA{R: 0xa8, G: 0xa2, B: 0x9e, A: 0xff}
)

// OGImageService draws share images: site name, page heading, and an accent bar.
// Rendered images are cached by heading; font faces are not safe for concurrent
// use, so rendering is serialized.
type OGImageService struct {
	siteName string

	mu        sync.Mutex
	titleFace font.Face
	labelFace font.Face
	cache     map[string][]byte
}

// NewOGImageService parses the embedded Go fonts.
func NewOGImageService(siteName string) (*OGImageService, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}

	titleFace, err := opentype.NewFace(bold, &opentype.FaceOptions{Size: ogTitleSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	labelFace, err := opentype.NewFace(regular, &opentype.FaceOptions{Size: ogLabelSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}

	return &OGImageService{
		siteName:  siteName,
		titleFace: titleFace,
		labelFace: labelFace,
		cache:     make(map[string][]byte),
	}, nil
}

// Render returns the PNG bytes for a page heading.
func (s *OGImageService) Render(heading, label string) ([]byte, error) {
	key := heading + "\x00" + label

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.cache[key]; ok {
		return cached, nil
	}

	img := image.NewRGBA(image.Rect(0, 0, OGWidth, OGHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(ogBackground), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, OGHeight-16, OGWidth, OGHeight), image.NewUniform(ogAccent), image.Point{}, draw.Src)

	labelDrawer := &font.Drawer{Dst: img, Src: image.NewUniform(ogMuted), Face: s.labelFace}
	labelDrawer.Dot = fixed.P(ogMargin, ogMargin+ogLabelSize)
	labelDrawer.DrawString(strings.ToUpper(s.siteName))
	if label != "" {
		labelDrawer.Src = image.NewUniform(ogAccent)
		labelDrawer.DrawString("  /  " + label)
	}

	titleDrawer := &font.Drawer{Dst: img, Src: image.NewUniform(ogText), Face: s.titleFace}
	lines := wrapText(titleDrawer, heading, OGWidth-2*ogMargin, ogMaxLines)
	top := (OGHeight-len(lines)*ogLineHeight)/2 + ogTitleSize
	for i, line := range lines {
		titleDrawer.Dot = fixed.P(ogMargin, top+i*ogLineHeight)
		titleDrawer.DrawString(line)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	s.cache[key] = out
	return out, nil
}

// wrapText greedily breaks text into lines no wider than maxWidth pixels,
// ending the last line with an ellipsis when the text does not fit.
func wrapText(d *font.Drawer, text string, maxWidth, maxLines int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if current == "" || d.MeasureString(candidate).Ceil() <= maxWidth {
			current = candidate
			continue
		}

		lines = append(lines, current)
		current = word
		if len(lines) == maxLines {
			lines[maxLines-1] = ellipsize(d, lines[maxLines-1], maxWidth)
			return lines
		}
	}
	return append(lines, current)
}

func ellipsize(d *font.Drawer, line string, maxWidth int) string {
	for d.MeasureString(line+"…").Ceil() > maxWidth {
		idx := strings.LastIndex(line, " ")
		if idx < 0 {
			break
		}
		line = line[:idx]
	}
	return line + "…"
}

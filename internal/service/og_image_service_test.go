package service

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/image/font"
)

func TestOGImageRender(t *testing.T) {
	svc, err := NewOGImageService("TheProjectSEO")
	if err != nil {
		t.Fatalf("new og service: %v", err)
	}

	out, err := svc.Render("How to Dominate Search Rankings in 2025: The Complete Guide", "Blog")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != OGWidth || b.Dy() != OGHeight {
		t.Fatalf("expected %dx%d, got %v", OGWidth, OGHeight, b)
	}

	again, err := svc.Render("How to Dominate Search Rankings in 2025: The Complete Guide", "Blog")
	if err != nil {
		t.Fatalf("second render failed: %v", err)
	}
	if &again[0] != &out[0] {
		t.Fatalf("expected cached bytes to be reused")
	}
}

func TestWrapTextEllipsizes(t *testing.T) {
	svc, err := NewOGImageService("x")
	if err != nil {
		t.Fatalf("new og service: %v", err)
	}
	d := &font.Drawer{Face: svc.titleFace}

	lines := wrapText(d, strings.Repeat("optimization ", 40), 1040, 4)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[3], "…") {
		t.Fatalf("expected ellipsis on last line, got %q", lines[3])
	}
	for _, line := range lines {
		if w := d.MeasureString(line).Ceil(); w > 1040 {
			t.Fatalf("line %q is %dpx wide", line, w)
		}
	}

	if got := wrapText(d, "Short title", 1040, 4); len(got) != 1 || got[0] != "Short title" {
		t.Fatalf("unexpected wrap of short title: %q", got)
	}
	if got := wrapText(d, "   ", 1040, 4); got != nil {
		t.Fatalf("expected no lines for blank text, got %q", got)
	}
}

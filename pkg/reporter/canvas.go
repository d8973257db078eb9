package reporter

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/opscart/avd-business-case/pkg/numeric"
)

// Color is an RGB triple
type Color struct {
	R, G, B int
}

// FontWeight selects regular or bold text
type FontWeight string

const (
	WeightRegular FontWeight = ""
	WeightBold    FontWeight = "B"
	WeightItalic  FontWeight = "I"
)

// RectStyle selects fill and/or outline
type RectStyle string

const (
	RectFill        RectStyle = "F"
	RectOutline     RectStyle = "D"
	RectFillOutline RectStyle = "FD"
)

// Canvas is the drawing capability the document renderer consumes. Any
// call may fail or panic on input it rejects.
type Canvas interface {
	AddPage() error
	PageSize() (width, height float64)
	SetFillColor(c Color) error
	SetTextColor(c Color) error
	SetFont(family string, weight FontWeight, size float64) error
	DrawRect(x, y, w, h float64, style RectStyle) error
	DrawText(content string, x, y float64) error
	Finish(w io.Writer) error
}

// ErrInvalidGeometry is returned for non-finite or negative coordinates
var ErrInvalidGeometry = errors.New("invalid geometry")

// FPDFCanvas draws onto an A4 portrait PDF in millimetres
type FPDFCanvas struct {
	pdf       *fpdf.Fpdf
	translate func(string) string
	pages     int
}

func NewFPDFCanvas() *FPDFCanvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return &FPDFCanvas{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// latched surfaces and clears fpdf's sticky error so one bad call does not
// poison every later one
func (c *FPDFCanvas) latched() error {
	if !c.pdf.Err() {
		return nil
	}
	err := c.pdf.Error()
	c.pdf.ClearError()
	return err
}

func (c *FPDFCanvas) AddPage() error {
	c.pdf.AddPage()
	c.pages++
	return c.latched()
}

func (c *FPDFCanvas) PageSize() (float64, float64) {
	return c.pdf.GetPageSize()
}

func (c *FPDFCanvas) SetFillColor(col Color) error {
	if err := validColor(col); err != nil {
		return err
	}
	c.pdf.SetFillColor(col.R, col.G, col.B)
	return c.latched()
}

func (c *FPDFCanvas) SetTextColor(col Color) error {
	if err := validColor(col); err != nil {
		return err
	}
	c.pdf.SetTextColor(col.R, col.G, col.B)
	return c.latched()
}

func (c *FPDFCanvas) SetFont(family string, weight FontWeight, size float64) error {
	if !numeric.IsFinite(size) || size <= 0 {
		return fmt.Errorf("%w: font size %v", ErrInvalidGeometry, size)
	}
	c.pdf.SetFont(family, string(weight), size)
	return c.latched()
}

func (c *FPDFCanvas) DrawRect(x, y, w, h float64, style RectStyle) error {
	if err := c.validPoint(x, y); err != nil {
		return err
	}
	if !numeric.IsFinite(w) || !numeric.IsFinite(h) || w < 0 || h < 0 {
		return fmt.Errorf("%w: rect %vx%v", ErrInvalidGeometry, w, h)
	}
	if c.pages == 0 {
		return errors.New("no page to draw on")
	}
	c.pdf.Rect(x, y, w, h, string(style))
	return c.latched()
}

func (c *FPDFCanvas) DrawText(content string, x, y float64) error {
	if err := c.validPoint(x, y); err != nil {
		return err
	}
	if c.pages == 0 {
		return errors.New("no page to draw on")
	}
	c.pdf.Text(x, y, c.translate(content))
	return c.latched()
}

func (c *FPDFCanvas) Finish(w io.Writer) error {
	if c.pages == 0 {
		return errors.New("document has no pages")
	}
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (c *FPDFCanvas) validPoint(x, y float64) error {
	if !numeric.IsFinite(x) || !numeric.IsFinite(y) {
		return fmt.Errorf("%w: point (%v, %v)", ErrInvalidGeometry, x, y)
	}
	width, height := c.PageSize()
	if x < 0 || y < 0 || x > width || y > height {
		return fmt.Errorf("%w: point (%.1f, %.1f) outside %.0fx%.0f page", ErrInvalidGeometry, x, y, width, height)
	}
	return nil
}

func validColor(c Color) error {
	for _, v := range []int{c.R, c.G, c.B} {
		if v < 0 || v > 255 {
			return fmt.Errorf("color component %d out of range", v)
		}
	}
	return nil
}

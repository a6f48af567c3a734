package domain

import "image"

type ResizeMode string

const (
	ResizeNone    ResizeMode = "none"
	ResizeStretch ResizeMode = "stretch"
	ResizeCover   ResizeMode = "cover"
	ResizeFitPad  ResizeMode = "fit_pad"
)

type LogoPosition string

const (
	LogoLeftTop     LogoPosition = "left_top"
	LogoLeftBottom  LogoPosition = "left_bottom"
	LogoRightTop    LogoPosition = "right_top"
	LogoRightBottom LogoPosition = "right_bottom"
)

const (
	OutputExtension   = ".jpg"
	OutputContentType = "image/jpeg"
)

// SourceExtensions lists the file extensions picked up from the input directory.
var SourceExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".bmp", ".tif", ".tiff"}

// Logo is the pre-resized logo template. It is loaded once per run and only
// ever read afterwards; scaled variants are derived copies.
type Logo struct {
	Path  string
	Image *image.RGBA
}

func (l *Logo) Size() image.Point {
	return l.Image.Bounds().Size()
}

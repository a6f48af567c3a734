package processor

import (
	"bytes"
	"context"
	"image"
	"image/color"

	"photo-brander/internal/domain"
	"photo-brander/internal/usecase/processor/operations"

	exif "github.com/dsoprea/go-exif/v3"
	"github.com/wb-go/wbf/zlog"
)

type Options struct {
	Width        int
	Height       int
	Mode         domain.ResizeMode
	PadColor     color.Color
	Position     domain.LogoPosition
	Offset       int
	MaxLogoRatio float64
	Quality      int
	// Metadata is the EXIF block attached to every output; nil attaches none.
	Metadata *exif.IfdBuilder
}

// Output is one encoded, branded image.
type Output struct {
	Data        []byte
	Size        image.Point
	Placement   image.Point
	LogoSize    image.Point
	ScaleFactor float64
}

type ImageProcessor struct {
	fitter      canvasFitter
	watermarker logoCompositor
	logo        *domain.Logo
	opts        Options
	logger      *zlog.Zerolog
}

func NewImageProcessor(logo *domain.Logo, opts Options, logger *zlog.Zerolog) *ImageProcessor {
	if opts.PadColor == nil {
		opts.PadColor = color.Transparent
	}

	return &ImageProcessor{
		fitter:      operations.NewFitter(),
		watermarker: operations.NewWatermarker(opts.Position, opts.Offset),
		logo:        logo,
		opts:        opts,
		logger:      logger,
	}
}

func (p *ImageProcessor) Load(path string) (*image.RGBA, error) {
	img, format, err := LoadImage(path)
	if err != nil {
		return nil, stageError(domain.StageLoad, err)
	}

	p.logger.Debug().
		Str("source", path).
		Str("format", format).
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Msg("Source decoded")

	return img, nil
}

// Process fits src to the canvas, brands it with the logo and encodes the
// result as JPEG. src is not modified.
func (p *ImageProcessor) Process(ctx context.Context, src *image.RGBA) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	canvas, err := p.fitter.Fit(src, p.opts.Width, p.opts.Height, p.opts.Mode, p.opts.PadColor)
	if err != nil {
		return nil, stageError(domain.StageFit, err)
	}
	if canvas == src {
		canvas = cloneRGBA(src)
	}

	size := canvas.Bounds().Size()
	logo, scale := operations.ScaleLogoForCanvas(p.logo.Image, size.X, size.Y, p.opts.MaxLogoRatio)

	at, err := p.watermarker.Apply(canvas, logo, scale)
	if err != nil {
		return nil, stageError(domain.StageComposite, err)
	}

	buf := new(bytes.Buffer)
	if err := operations.EncodeJPEG(buf, operations.Flatten(canvas), p.opts.Quality, p.opts.Metadata); err != nil {
		return nil, stageError(domain.StageEncode, err)
	}

	p.logger.Debug().
		Int("width", size.X).
		Int("height", size.Y).
		Int("logo_width", logo.Bounds().Dx()).
		Int("logo_height", logo.Bounds().Dy()).
		Float64("scale_factor", scale).
		Int("x", at.X).
		Int("y", at.Y).
		Int("size", buf.Len()).
		Msg("Image branded")

	return &Output{
		Data:        buf.Bytes(),
		Size:        size,
		Placement:   at,
		LogoSize:    logo.Bounds().Size(),
		ScaleFactor: scale,
	}, nil
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	out := &image.RGBA{
		Pix:    make([]byte, len(img.Pix)),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	copy(out.Pix, img.Pix)
	return out
}

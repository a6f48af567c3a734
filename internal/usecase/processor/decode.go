package processor

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"photo-brander/internal/domain"
	"photo-brander/internal/usecase/processor/operations"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads any registered format and returns it as RGBA at the origin.
func Decode(r io.Reader) (*image.RGBA, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if img.Bounds().Empty() {
		return nil, "", fmt.Errorf("%w: image has no pixels", ErrDecode)
	}
	return operations.ToRGBA(img), format, nil
}

func LoadImage(path string) (*image.RGBA, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return img, format, nil
}

// LoadLogo decodes the logo at path and resizes it once to width x height.
func LoadLogo(path string, width, height int) (*domain.Logo, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: logo size %dx%d", ErrLogoAsset, width, height)
	}

	img, _, err := LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLogoAsset, err)
	}

	return &domain.Logo{
		Path:  path,
		Image: operations.PrepareLogo(img, width, height),
	}, nil
}

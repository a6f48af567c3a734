package operations

import (
	"bytes"
	"fmt"
	"image"
	"io"

	exif "github.com/dsoprea/go-exif/v3"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"
)

// EncodeJPEG writes img as a JPEG at quality and, when ib is not nil, stores
// ib as the EXIF APP1 segment directly after the SOI marker.
func EncodeJPEG(w io.Writer, img image.Image, quality int, ib *exif.IfdBuilder) error {
	buf := new(bytes.Buffer)
	if err := encodeBaseline(buf, img, quality); err != nil {
		return fmt.Errorf("failed to encode jpeg: %w", err)
	}

	if ib == nil {
		_, err := w.Write(buf.Bytes())
		return err
	}

	mc, err := jpegstructure.NewJpegMediaParser().ParseBytes(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to parse encoded jpeg: %w", err)
	}

	sl, ok := mc.(*jpegstructure.SegmentList)
	if !ok {
		return fmt.Errorf("failed to parse encoded jpeg: unexpected media context %T", mc)
	}

	if err := sl.SetExif(ib); err != nil {
		return fmt.Errorf("failed to attach metadata: %w", err)
	}

	if err := sl.Write(w); err != nil {
		return fmt.Errorf("failed to write jpeg: %w", err)
	}
	return nil
}

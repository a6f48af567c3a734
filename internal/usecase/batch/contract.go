package batch

import (
	"context"
	"image"

	"photo-brander/internal/usecase/processor"
)

type imageProcessor interface {
	Load(path string) (*image.RGBA, error)
	Process(ctx context.Context, src *image.RGBA) (*processor.Output, error)
}

type outputNamer interface {
	Name(counter int) string
}

type outputRepository interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

type resultPublisher interface {
	Send(ctx context.Context, key, value []byte) error
}

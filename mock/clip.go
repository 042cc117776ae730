package mock

import (
	"context"

	"github.com/fwojciec/pagecap"
)

var _ pagecap.ClipService = (*ClipService)(nil)

// ClipService is a mock implementation of pagecap.ClipService.
type ClipService struct {
	CreateClipFn   func(ctx context.Context, clip *pagecap.Clip) error
	FindClipByIDFn func(ctx context.Context, id string) (*pagecap.Clip, error)
	FindClipsFn    func(ctx context.Context, filter pagecap.ClipFilter) ([]*pagecap.Clip, error)
	DeleteClipFn   func(ctx context.Context, id string) error
}

func (s *ClipService) CreateClip(ctx context.Context, clip *pagecap.Clip) error {
	return s.CreateClipFn(ctx, clip)
}

func (s *ClipService) FindClipByID(ctx context.Context, id string) (*pagecap.Clip, error) {
	return s.FindClipByIDFn(ctx, id)
}

func (s *ClipService) FindClips(ctx context.Context, filter pagecap.ClipFilter) ([]*pagecap.Clip, error) {
	return s.FindClipsFn(ctx, filter)
}

func (s *ClipService) DeleteClip(ctx context.Context, id string) error {
	return s.DeleteClipFn(ctx, id)
}

package video

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/narwhalmedia/catalog/internal/domain/castmember"
	"github.com/narwhalmedia/catalog/internal/domain/category"
	"github.com/narwhalmedia/catalog/internal/domain/events"
	"github.com/narwhalmedia/catalog/internal/domain/genre"
	"github.com/narwhalmedia/catalog/internal/domain/video"
)

// MockVideoGateway is a mock implementation of video.Gateway.
// Create and Update echo their argument when no video is given to Return.
type MockVideoGateway struct {
	mock.Mock
}

func (m *MockVideoGateway) Create(ctx context.Context, v *video.Video) (*video.Video, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		if args.Error(1) != nil {
			return nil, args.Error(1)
		}
		return v, nil
	}
	return args.Get(0).(*video.Video), args.Error(1)
}

func (m *MockVideoGateway) Update(ctx context.Context, v *video.Video) (*video.Video, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		if args.Error(1) != nil {
			return nil, args.Error(1)
		}
		return v, nil
	}
	return args.Get(0).(*video.Video), args.Error(1)
}

func (m *MockVideoGateway) FindByID(ctx context.Context, id video.ID) (*video.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*video.Video), args.Error(1)
}

func (m *MockVideoGateway) DeleteByID(ctx context.Context, id video.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVideoGateway) FindAll(ctx context.Context, q video.Query) (video.Pagination, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(video.Pagination), args.Error(1)
}

// MockMediaResourceGateway is a mock implementation of video.MediaResourceGateway
type MockMediaResourceGateway struct {
	mock.Mock
}

func (m *MockMediaResourceGateway) StoreAudioVideo(ctx context.Context, id video.ID, r video.VideoResource) (video.AudioVideoMedia, error) {
	args := m.Called(ctx, id, r)
	return args.Get(0).(video.AudioVideoMedia), args.Error(1)
}

func (m *MockMediaResourceGateway) StoreImage(ctx context.Context, id video.ID, r video.VideoResource) (video.ImageMedia, error) {
	args := m.Called(ctx, id, r)
	return args.Get(0).(video.ImageMedia), args.Error(1)
}

func (m *MockMediaResourceGateway) ClearResources(ctx context.Context, id video.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMediaResourceGateway) GetResource(ctx context.Context, id video.ID, t video.MediaType) (video.Resource, error) {
	args := m.Called(ctx, id, t)
	return args.Get(0).(video.Resource), args.Error(1)
}

type MockCategoryGateway struct {
	mock.Mock
}

func (m *MockCategoryGateway) ExistsByIDs(ctx context.Context, ids []category.ID) ([]category.ID, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]category.ID), args.Error(1)
}

type MockGenreGateway struct {
	mock.Mock
}

func (m *MockGenreGateway) ExistsByIDs(ctx context.Context, ids []genre.ID) ([]genre.ID, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]genre.ID), args.Error(1)
}

type MockCastMemberGateway struct {
	mock.Mock
}

func (m *MockCastMemberGateway) ExistsByIDs(ctx context.Context, ids []castmember.ID) ([]castmember.ID, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]castmember.ID), args.Error(1)
}

// MockEventPublisher is a mock implementation of events.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEvent(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

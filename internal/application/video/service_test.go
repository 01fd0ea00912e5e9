package video

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/narwhalmedia/catalog/internal/domain/castmember"
	"github.com/narwhalmedia/catalog/internal/domain/category"
	"github.com/narwhalmedia/catalog/internal/domain/genre"
	"github.com/narwhalmedia/catalog/internal/domain/video"
	pkgerrors "github.com/narwhalmedia/catalog/pkg/errors"
	"github.com/narwhalmedia/catalog/pkg/logger"
)

type VideoServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	videos      *MockVideoGateway
	resources   *MockMediaResourceGateway
	categories  *MockCategoryGateway
	genres      *MockGenreGateway
	castMembers *MockCastMemberGateway
	publisher   *MockEventPublisher
	service     *Service
}

func (suite *VideoServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.videos = new(MockVideoGateway)
	suite.resources = new(MockMediaResourceGateway)
	suite.categories = new(MockCategoryGateway)
	suite.genres = new(MockGenreGateway)
	suite.castMembers = new(MockCastMemberGateway)
	suite.publisher = new(MockEventPublisher)

	suite.service = NewService(
		suite.videos,
		suite.resources,
		suite.categories,
		suite.genres,
		suite.castMembers,
		suite.publisher,
		logger.NewNoop(),
	)
}

func (suite *VideoServiceTestSuite) TearDownTest() {
	suite.videos.AssertExpectations(suite.T())
	suite.resources.AssertExpectations(suite.T())
	suite.categories.AssertExpectations(suite.T())
	suite.genres.AssertExpectations(suite.T())
	suite.castMembers.AssertExpectations(suite.T())
	suite.publisher.AssertExpectations(suite.T())
}

func ptr[T any](v T) *T { return &v }

func validFields() VideoFields {
	return VideoFields{
		Title:       ptr("T"),
		Description: ptr("A video about distributed systems"),
		LaunchedAt:  ptr(2022),
		Duration:    65.5,
		Opened:      true,
		Published:   true,
		Rating:      "10",
	}
}

func withAllResources(f VideoFields) VideoFields {
	f.Video = ptr(video.NewResource([]byte("video"), "video/mp4", "video.mp4"))
	f.Trailer = ptr(video.NewResource([]byte("trailer"), "video/mp4", "trailer.mp4"))
	f.Banner = ptr(video.NewResource([]byte("banner"), "image/png", "banner.png"))
	f.Thumbnail = ptr(video.NewResource([]byte("thumb"), "image/png", "thumb.png"))
	f.ThumbnailHalf = ptr(video.NewResource([]byte("half"), "image/png", "half.png"))
	return f
}

func ofType(t video.MediaType) interface{} {
	return mock.MatchedBy(func(r video.VideoResource) bool { return r.Type == t })
}

func (suite *VideoServiceTestSuite) expectStoreAudioVideo(t video.MediaType) video.AudioVideoMedia {
	m, err := video.NewAudioVideoMedia(string(t), "sum-"+string(t), "/raw/"+string(t))
	suite.Require().NoError(err)
	suite.resources.On("StoreAudioVideo", suite.ctx, mock.AnythingOfType("video.ID"), ofType(t)).Return(m, nil).Once()
	return m
}

func (suite *VideoServiceTestSuite) expectStoreImage(t video.MediaType) video.ImageMedia {
	m, err := video.NewImageMedia(string(t), "sum-"+string(t), "/img/"+string(t))
	suite.Require().NoError(err)
	suite.resources.On("StoreImage", suite.ctx, mock.AnythingOfType("video.ID"), ofType(t)).Return(m, nil).Once()
	return m
}

func (suite *VideoServiceTestSuite) existingVideo() *video.Video {
	r := video.RatingAge12
	v := video.NewVideo(video.Metadata{
		Title:       ptr("Existing"),
		Description: ptr("Existing description"),
		LaunchedAt:  ptr(2020),
		Rating:      &r,
	})
	vm, err := video.AudioVideoMediaWith("video-media", "video.mp4", "sum-v", "/raw/video.mp4", "", video.MediaStatusPending)
	suite.Require().NoError(err)
	tm, err := video.AudioVideoMediaWith("trailer-media", "trailer.mp4", "sum-t", "/raw/trailer.mp4", "", video.MediaStatusPending)
	suite.Require().NoError(err)
	suite.Require().NoError(v.AddVideoMedia(vm))
	suite.Require().NoError(v.AddTrailerMedia(tm))
	v.PullEvents()
	return v
}

func (suite *VideoServiceTestSuite) TestCreateVideo_AllMedia() {
	// Arrange
	cmd := CreateVideoCommand{VideoFields: withAllResources(validFields())}
	suite.expectStoreAudioVideo(video.MediaTypeVideo)
	suite.expectStoreAudioVideo(video.MediaTypeTrailer)
	suite.expectStoreImage(video.MediaTypeBanner)
	suite.expectStoreImage(video.MediaTypeThumbnail)
	suite.expectStoreImage(video.MediaTypeThumbnailHalf)

	var saved *video.Video
	suite.videos.On("Create", suite.ctx, mock.AnythingOfType("*video.Video")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*video.Video) }).
		Return(nil, nil).Once()
	suite.publisher.On("PublishEvent", suite.ctx, mock.AnythingOfType("*video.VideoMediaCreated")).Return(nil).Twice()

	// Act
	out, err := suite.service.CreateVideo(suite.ctx, cmd)

	// Assert
	suite.Require().NoError(err)
	suite.Require().NotNil(saved)
	assert.Equal(suite.T(), string(saved.ID()), out.ID)

	_, ok := saved.VideoMedia()
	assert.True(suite.T(), ok)
	_, ok = saved.Trailer()
	assert.True(suite.T(), ok)
	_, ok = saved.Banner()
	assert.True(suite.T(), ok)
	_, ok = saved.Thumbnail()
	assert.True(suite.T(), ok)
	_, ok = saved.ThumbnailHalf()
	assert.True(suite.T(), ok)

	rating, ok := saved.Rating()
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), video.RatingAge10, rating)

	suite.resources.AssertNumberOfCalls(suite.T(), "StoreAudioVideo", 2)
	suite.resources.AssertNumberOfCalls(suite.T(), "StoreImage", 3)
	suite.categories.AssertNotCalled(suite.T(), "ExistsByIDs", mock.Anything, mock.Anything)
	suite.genres.AssertNotCalled(suite.T(), "ExistsByIDs", mock.Anything, mock.Anything)
	suite.castMembers.AssertNotCalled(suite.T(), "ExistsByIDs", mock.Anything, mock.Anything)
}

func (suite *VideoServiceTestSuite) TestCreateVideo_NullTitle() {
	// Arrange
	fields := withAllResources(validFields())
	fields.Title = nil

	// Act
	_, err := suite.service.CreateVideo(suite.ctx, CreateVideoCommand{VideoFields: fields})

	// Assert
	suite.Require().Error(err)
	assert.True(suite.T(), pkgerrors.IsValidation(err))
	assert.Equal(suite.T(), "Could not create Aggregate Video", pkgerrors.MessageOf(err))
	assert.Equal(suite.T(), []string{"'title' should not be null"}, pkgerrors.DetailsOf(err))

	suite.resources.AssertNotCalled(suite.T(), "StoreAudioVideo", mock.Anything, mock.Anything, mock.Anything)
	suite.resources.AssertNotCalled(suite.T(), "StoreImage", mock.Anything, mock.Anything, mock.Anything)
	suite.resources.AssertNotCalled(suite.T(), "ClearResources", mock.Anything, mock.Anything)
	suite.videos.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *VideoServiceTestSuite) TestCreateVideo_MissingCategory() {
	// Arrange
	fields := validFields()
	fields.Categories = []string{"c1", "c2"}
	fields.Genres = []string{"g1"}
	fields.CastMembers = []string{"m1"}

	suite.categories.On("ExistsByIDs", suite.ctx, []category.ID{"c1", "c2"}).Return([]category.ID{"c1"}, nil).Once()
	suite.genres.On("ExistsByIDs", suite.ctx, []genre.ID{"g1"}).Return([]genre.ID{"g1"}, nil).Once()
	suite.castMembers.On("ExistsByIDs", suite.ctx, []castmember.ID{"m1"}).Return([]castmember.ID{"m1"}, nil).Once()

	// Act
	_, err := suite.service.CreateVideo(suite.ctx, CreateVideoCommand{VideoFields: fields})

	// Assert
	suite.Require().Error(err)
	assert.True(suite.T(), pkgerrors.IsValidation(err))
	assert.Equal(suite.T(), []string{"Some categories could not be found: c2"}, pkgerrors.DetailsOf(err))
	suite.videos.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *VideoServiceTestSuite) TestCreateVideo_ReferenceErrorsPrecedeFieldErrors() {
	// Arrange
	fields := validFields()
	fields.Title = ptr("  ")
	fields.Rating = "unknown"
	fields.Categories = []string{"c1"}
	fields.Genres = []string{"g1", "g2"}
	fields.CastMembers = []string{"m1", "m2", "m3"}

	suite.categories.On("ExistsByIDs", suite.ctx, mock.Anything).Return([]category.ID{}, nil).Once()
	suite.genres.On("ExistsByIDs", suite.ctx, mock.Anything).Return([]genre.ID{"g2"}, nil).Once()
	suite.castMembers.On("ExistsByIDs", suite.ctx, mock.Anything).Return([]castmember.ID{"m2"}, nil).Once()

	// Act
	_, err := suite.service.CreateVideo(suite.ctx, CreateVideoCommand{VideoFields: fields})

	// Assert
	suite.Require().Error(err)
	assert.Equal(suite.T(), []string{
		"Some categories could not be found: c1",
		"Some genres could not be found: g1",
		"Some cast members could not be found: m1, m3",
		"'title' should not be empty",
		"'rating' should not be null",
	}, pkgerrors.DetailsOf(err))
}

func (suite *VideoServiceTestSuite) TestCreateVideo_ReferenceGatewayFailure() {
	// Arrange
	fields := validFields()
	fields.Genres = []string{"g1"}
	suite.genres.On("ExistsByIDs", suite.ctx, []genre.ID{"g1"}).Return(nil, errors.New("connection refused")).Once()

	// Act
	_, err := suite.service.CreateVideo(suite.ctx, CreateVideoCommand{VideoFields: fields})

	// Assert
	suite.Require().Error(err)
	assert.True(suite.T(), pkgerrors.IsInternal(err))
	suite.videos.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *VideoServiceTestSuite) TestCreateVideo_PersistFailureClearsResources() {
	// Arrange
	fields := validFields()
	fields.Video = ptr(video.NewResource([]byte("video"), "video/mp4", "video.mp4"))
	fields.Banner = ptr(video.NewResource([]byte("banner"), "image/png", "banner.png"))
	cause := errors.New("database is down")

	suite.expectStoreAudioVideo(video.MediaTypeVideo)
	suite.expectStoreImage(video.MediaTypeBanner)

	var saved *video.Video
	suite.videos.On("Create", suite.ctx, mock.AnythingOfType("*video.Video")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*video.Video) }).
		Return(nil, cause).Once()
	suite.resources.On("ClearResources", mock.Anything, mock.AnythingOfType("video.ID")).Return(nil).Once()

	// Act
	_, err := suite.service.CreateVideo(suite.ctx, CreateVideoCommand{VideoFields: fields})

	// Assert
	suite.Require().Error(err)
	suite.Require().NotNil(saved)
	assert.True(suite.T(), pkgerrors.IsInternal(err))
	assert.ErrorIs(suite.T(), err, cause)
	assert.Equal(suite.T(), "An error has occurred on creating a video with ID: "+string(saved.ID()), pkgerrors.MessageOf(err))
	suite.resources.AssertNumberOfCalls(suite.T(), "ClearResources", 1)
	suite.resources.AssertCalled(suite.T(), "ClearResources", mock.Anything, saved.ID())
	suite.publisher.AssertNotCalled(suite.T(), "PublishEvent", mock.Anything, mock.Anything)
}

func (suite *VideoServiceTestSuite) TestCreateVideo_StoreFailureClearsResources() {
	// Arrange
	fields := validFields()
	fields.Video = ptr(video.NewResource([]byte("video"), "video/mp4", "video.mp4"))
	fields.Trailer = ptr(video.NewResource([]byte("trailer"), "video/mp4", "trailer.mp4"))

	suite.expectStoreAudioVideo(video.MediaTypeVideo)
	suite.resources.On("StoreAudioVideo", suite.ctx, mock.AnythingOfType("video.ID"), ofType(video.MediaTypeTrailer)).
		Return(video.AudioVideoMedia{}, errors.New("bucket unavailable")).Once()
	suite.resources.On("ClearResources", mock.Anything, mock.AnythingOfType("video.ID")).Return(nil).Once()

	// Act
	_, err := suite.service.CreateVideo(suite.ctx, CreateVideoCommand{VideoFields: fields})

	// Assert
	suite.Require().Error(err)
	assert.True(suite.T(), pkgerrors.IsInternal(err))
	suite.videos.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *VideoServiceTestSuite) TestCreateVideo_CancelledRequestStillClearsResources() {
	// Arrange
	ctx, cancel := context.WithCancel(suite.ctx)
	defer cancel()

	fields := validFields()
	fields.Video = ptr(video.NewResource([]byte("video"), "video/mp4", "video.mp4"))
	fields.Banner = ptr(video.NewResource([]byte("banner"), "image/png", "banner.png"))

	stored, err := video.NewAudioVideoMedia("video.mp4", "sum-v", "/raw/VIDEO")
	suite.Require().NoError(err)
	suite.resources.On("StoreAudioVideo", ctx, mock.AnythingOfType("video.ID"), ofType(video.MediaTypeVideo)).
		Run(func(mock.Arguments) { cancel() }).
		Return(stored, nil).Once()
	suite.resources.On("StoreImage", ctx, mock.AnythingOfType("video.ID"), ofType(video.MediaTypeBanner)).
		Return(video.ImageMedia{}, context.Canceled).Once()

	var clearErr error
	suite.resources.On("ClearResources", mock.Anything, mock.AnythingOfType("video.ID")).
		Run(func(args mock.Arguments) { clearErr = args.Get(0).(context.Context).Err() }).
		Return(nil).Once()

	// Act
	_, err = suite.service.CreateVideo(ctx, CreateVideoCommand{VideoFields: fields})

	// Assert
	suite.Require().Error(err)
	assert.True(suite.T(), pkgerrors.IsInternal(err))
	assert.ErrorIs(suite.T(), err, context.Canceled)
	assert.NoError(suite.T(), clearErr)
	suite.videos.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *VideoServiceTestSuite) TestUpdateVideo_NotFound() {
	// Arrange
	fields := withAllResources(validFields())
	fields.Categories = []string{"c1"}
	suite.videos.On("FindByID", suite.ctx, video.ID("missing")).Return(nil, video.ErrNotFound).Once()

	// Act
	_, err := suite.service.UpdateVideo(suite.ctx, UpdateVideoCommand{ID: "missing", VideoFields: fields})

	// Assert
	suite.Require().Error(err)
	assert.True(suite.T(), pkgerrors.IsNotFound(err))
	assert.Equal(suite.T(), "Video with ID missing was not found", pkgerrors.MessageOf(err))
	suite.categories.AssertNotCalled(suite.T(), "ExistsByIDs", mock.Anything, mock.Anything)
	suite.resources.AssertNotCalled(suite.T(), "StoreAudioVideo", mock.Anything, mock.Anything, mock.Anything)
	suite.resources.AssertNotCalled(suite.T(), "StoreImage", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *VideoServiceTestSuite) TestUpdateVideo_Success() {
	// Arrange
	existing := suite.existingVideo()
	createdAt := existing.CreatedAt()
	before := existing.UpdatedAt()
	oldTrailer, _ := existing.Trailer()

	fields := validFields()
	fields.Title = ptr("Updated")
	fields.Genres = []string{"g1"}
	fields.Banner = ptr(video.NewResource([]byte("banner"), "image/png", "banner.png"))

	suite.videos.On("FindByID", suite.ctx, existing.ID()).Return(existing, nil).Once()
	suite.genres.On("ExistsByIDs", suite.ctx, []genre.ID{"g1"}).Return([]genre.ID{"g1"}, nil).Once()
	banner := suite.expectStoreImage(video.MediaTypeBanner)
	suite.videos.On("Update", suite.ctx, existing).Return(nil, nil).Once()

	// Act
	out, err := suite.service.UpdateVideo(suite.ctx, UpdateVideoCommand{ID: string(existing.ID()), VideoFields: fields})

	// Assert
	suite.Require().NoError(err)
	assert.Equal(suite.T(), string(existing.ID()), out.ID)
	assert.Equal(suite.T(), "Updated", existing.Title())
	assert.Equal(suite.T(), []genre.ID{"g1"}, existing.Genres())
	assert.Equal(suite.T(), createdAt, existing.CreatedAt())
	assert.True(suite.T(), existing.UpdatedAt().After(before))

	gotBanner, ok := existing.Banner()
	suite.Require().True(ok)
	assert.True(suite.T(), banner.Equal(gotBanner))

	trailer, ok := existing.Trailer()
	suite.Require().True(ok, "slots without a new resource are kept")
	assert.Equal(suite.T(), oldTrailer, trailer)
}

func (suite *VideoServiceTestSuite) TestUpdateVideo_ValidationFailure() {
	// Arrange
	existing := suite.existingVideo()
	fields := validFields()
	fields.Description = nil
	fields.Video = ptr(video.NewResource([]byte("video"), "video/mp4", "video.mp4"))
	suite.videos.On("FindByID", suite.ctx, existing.ID()).Return(existing, nil).Once()

	// Act
	_, err := suite.service.UpdateVideo(suite.ctx, UpdateVideoCommand{ID: string(existing.ID()), VideoFields: fields})

	// Assert
	suite.Require().Error(err)
	assert.True(suite.T(), pkgerrors.IsValidation(err))
	assert.Equal(suite.T(), "Could not update Aggregate Video", pkgerrors.MessageOf(err))
	assert.Equal(suite.T(), []string{"'description' should not be null"}, pkgerrors.DetailsOf(err))
	suite.videos.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *VideoServiceTestSuite) TestUpdateVideo_FailureDoesNotClearResources() {
	// Arrange
	existing := suite.existingVideo()
	fields := validFields()
	fields.Video = ptr(video.NewResource([]byte("video"), "video/mp4", "video.mp4"))
	cause := errors.New("database is down")

	suite.videos.On("FindByID", suite.ctx, existing.ID()).Return(existing, nil).Once()
	suite.expectStoreAudioVideo(video.MediaTypeVideo)
	suite.videos.On("Update", suite.ctx, existing).Return(nil, cause).Once()

	// Act
	_, err := suite.service.UpdateVideo(suite.ctx, UpdateVideoCommand{ID: string(existing.ID()), VideoFields: fields})

	// Assert
	suite.Require().Error(err)
	assert.True(suite.T(), pkgerrors.IsInternal(err))
	assert.ErrorIs(suite.T(), err, cause)
	assert.Equal(suite.T(), "An error has occurred on updating a video with ID: "+string(existing.ID()), pkgerrors.MessageOf(err))
	suite.resources.AssertNotCalled(suite.T(), "ClearResources", mock.Anything, mock.Anything)
}

func (suite *VideoServiceTestSuite) TestUpdateMediaStatus_CompletedTrailer() {
	// Arrange
	existing := suite.existingVideo()
	suite.videos.On("FindByID", suite.ctx, existing.ID()).Return(existing, nil).Once()

	var saved *video.Video
	suite.videos.On("Update", suite.ctx, existing).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*video.Video) }).
		Return(nil, nil).Once()

	// Act
	err := suite.service.UpdateMediaStatus(suite.ctx, UpdateMediaStatusCommand{
		Status:     video.MediaStatusCompleted,
		VideoID:    string(existing.ID()),
		ResourceID: "trailer-media",
		Folder:     "enc",
		Filename:   "v.mp4",
	})

	// Assert
	suite.Require().NoError(err)
	suite.Require().NotNil(saved)

	trailer, ok := saved.Trailer()
	suite.Require().True(ok)
	assert.Equal(suite.T(), video.MediaStatusCompleted, trailer.Status())
	assert.Equal(suite.T(), "enc/v.mp4", trailer.EncodedLocation())

	vm, ok := saved.VideoMedia()
	suite.Require().True(ok)
	assert.Equal(suite.T(), video.MediaStatusPending, vm.Status())
	assert.Equal(suite.T(), "", vm.EncodedLocation())
}

func (suite *VideoServiceTestSuite) TestUpdateMediaStatus_ProcessingVideo() {
	// Arrange
	existing := suite.existingVideo()
	suite.videos.On("FindByID", suite.ctx, existing.ID()).Return(existing, nil).Once()
	suite.videos.On("Update", suite.ctx, existing).Return(nil, nil).Once()

	// Act
	err := suite.service.UpdateMediaStatus(suite.ctx, UpdateMediaStatusCommand{
		Status:     video.MediaStatusProcessing,
		VideoID:    string(existing.ID()),
		ResourceID: "video-media",
	})

	// Assert
	suite.Require().NoError(err)
	vm, _ := existing.VideoMedia()
	assert.Equal(suite.T(), video.MediaStatusProcessing, vm.Status())
	trailer, _ := existing.Trailer()
	assert.Equal(suite.T(), video.MediaStatusPending, trailer.Status())
}

func (suite *VideoServiceTestSuite) TestUpdateMediaStatus_UnknownMediaStillPersists() {
	// Arrange
	existing := suite.existingVideo()
	before := existing.Snapshot()
	suite.videos.On("FindByID", suite.ctx, existing.ID()).Return(existing, nil).Once()
	suite.videos.On("Update", suite.ctx, existing).Return(nil, nil).Once()

	// Act
	err := suite.service.UpdateMediaStatus(suite.ctx, UpdateMediaStatusCommand{
		Status:     video.MediaStatusCompleted,
		VideoID:    string(existing.ID()),
		ResourceID: "someone-else",
		Folder:     "enc",
		Filename:   "x.mp4",
	})

	// Assert
	suite.Require().NoError(err)
	assert.Equal(suite.T(), before, existing.Snapshot())
}

func (suite *VideoServiceTestSuite) TestUpdateMediaStatus_NotFound() {
	// Arrange
	suite.videos.On("FindByID", suite.ctx, video.ID("missing")).Return(nil, video.ErrNotFound).Once()

	// Act
	err := suite.service.UpdateMediaStatus(suite.ctx, UpdateMediaStatusCommand{
		Status:     video.MediaStatusCompleted,
		VideoID:    "missing",
		ResourceID: "video-media",
	})

	// Assert
	assert.True(suite.T(), pkgerrors.IsNotFound(err))
	suite.videos.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *VideoServiceTestSuite) TestUploadMedia_Banner() {
	// Arrange
	existing := suite.existingVideo()
	oldVideo, _ := existing.VideoMedia()
	resource := video.NewVideoResource(video.NewResource([]byte("banner"), "image/png", "banner.png"), video.MediaTypeBanner)

	suite.videos.On("FindByID", suite.ctx, existing.ID()).Return(existing, nil).Once()
	banner := suite.expectStoreImage(video.MediaTypeBanner)
	suite.videos.On("Update", suite.ctx, existing).Return(nil, nil).Once()

	// Act
	out, err := suite.service.UploadMedia(suite.ctx, UploadMediaCommand{VideoID: string(existing.ID()), Resource: resource})

	// Assert
	suite.Require().NoError(err)
	assert.Equal(suite.T(), UploadMediaOutput{VideoID: string(existing.ID()), MediaType: video.MediaTypeBanner}, out)

	got, ok := existing.Banner()
	suite.Require().True(ok)
	assert.Equal(suite.T(), banner.ID(), got.ID())
	vm, _ := existing.VideoMedia()
	assert.Equal(suite.T(), oldVideo, vm)
}

func (suite *VideoServiceTestSuite) TestUploadMedia_VideoPublishesEvent() {
	// Arrange
	existing := suite.existingVideo()
	resource := video.NewVideoResource(video.NewResource([]byte("new video"), "video/mp4", "new.mp4"), video.MediaTypeVideo)

	suite.videos.On("FindByID", suite.ctx, existing.ID()).Return(existing, nil).Once()
	suite.expectStoreAudioVideo(video.MediaTypeVideo)
	suite.videos.On("Update", suite.ctx, existing).Return(nil, nil).Once()
	suite.publisher.On("PublishEvent", suite.ctx, mock.AnythingOfType("*video.VideoMediaCreated")).
		Return(errors.New("nats unavailable")).Once()

	// Act
	out, err := suite.service.UploadMedia(suite.ctx, UploadMediaCommand{VideoID: string(existing.ID()), Resource: resource})

	// Assert
	suite.Require().NoError(err, "publish failures are not returned")
	assert.Equal(suite.T(), video.MediaTypeVideo, out.MediaType)
}

func (suite *VideoServiceTestSuite) TestUploadMedia_InvalidType() {
	// Act
	_, err := suite.service.UploadMedia(suite.ctx, UploadMediaCommand{
		VideoID:  "id",
		Resource: video.VideoResource{Type: video.MediaType("POSTER")},
	})

	// Assert
	assert.True(suite.T(), pkgerrors.IsBadRequest(err))
}

func (suite *VideoServiceTestSuite) TestGetMedia() {
	// Arrange
	resource := video.NewResource([]byte("banner"), "image/png", "banner.png")
	suite.resources.On("GetResource", suite.ctx, video.ID("v1"), video.MediaTypeBanner).Return(resource, nil).Once()
	suite.resources.On("GetResource", suite.ctx, video.ID("v1"), video.MediaTypeTrailer).Return(video.Resource{}, video.ErrResourceNotFound).Once()

	// Act
	got, err := suite.service.GetMedia(suite.ctx, "v1", "banner")
	_, missingErr := suite.service.GetMedia(suite.ctx, "v1", "TRAILER")
	_, invalidErr := suite.service.GetMedia(suite.ctx, "v1", "poster")

	// Assert
	suite.Require().NoError(err)
	assert.Equal(suite.T(), resource, got)
	assert.True(suite.T(), pkgerrors.IsNotFound(missingErr))
	assert.True(suite.T(), pkgerrors.IsBadRequest(invalidErr))
}

func (suite *VideoServiceTestSuite) TestDeleteVideo() {
	// Arrange
	suite.videos.On("DeleteByID", suite.ctx, video.ID("v1")).Return(nil).Once()
	suite.resources.On("ClearResources", suite.ctx, video.ID("v1")).Return(nil).Once()

	// Act
	err := suite.service.DeleteVideo(suite.ctx, "v1")

	// Assert
	assert.NoError(suite.T(), err)
}

func (suite *VideoServiceTestSuite) TestGetAndListVideos() {
	// Arrange
	existing := suite.existingVideo()
	page := video.Pagination{CurrentPage: 1, PerPage: 10, Total: 1, Items: []*video.Video{existing}}
	suite.videos.On("FindByID", suite.ctx, existing.ID()).Return(existing, nil).Once()
	suite.videos.On("FindAll", suite.ctx, video.Query{Page: 1, PerPage: 10, Terms: "exist"}).Return(page, nil).Once()

	// Act
	got, err := suite.service.GetVideo(suite.ctx, string(existing.ID()))
	suite.Require().NoError(err)
	listed, err := suite.service.ListVideos(suite.ctx, ListVideosQuery{Page: 1, PerPage: 10, Terms: "exist"})

	// Assert
	suite.Require().NoError(err)
	assert.Same(suite.T(), existing, got)
	assert.Equal(suite.T(), page, listed)
}

func TestVideoServiceSuite(t *testing.T) {
	suite.Run(t, new(VideoServiceTestSuite))
}

func TestValidateAggregateIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("reports missing ids only", func(t *testing.T) {
		calls := 0
		exists := func(_ context.Context, ids []category.ID) ([]category.ID, error) {
			calls++
			assert.Equal(t, []category.ID{"A", "B"}, ids)
			return []category.ID{"A"}, nil
		}

		got, err := validateAggregateIDs(ctx, []category.ID{"A", "B"}, exists, "categories")

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 1, calls)
		assert.Equal(t, "Some categories could not be found: B", got.Message)
		assert.NotContains(t, got.Message, "A")
	})

	t.Run("empty set skips the checker", func(t *testing.T) {
		exists := func(context.Context, []genre.ID) ([]genre.ID, error) {
			t.Fatal("checker must not be called")
			return nil, nil
		}

		got, err := validateAggregateIDs(ctx, nil, exists, "genres")

		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("all found", func(t *testing.T) {
		exists := func(_ context.Context, ids []castmember.ID) ([]castmember.ID, error) {
			return []castmember.ID{ids[1], ids[0]}, nil
		}

		got, err := validateAggregateIDs(ctx, []castmember.ID{"x", "y"}, exists, "cast members")

		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("checker failure", func(t *testing.T) {
		boom := errors.New("boom")
		exists := func(context.Context, []genre.ID) ([]genre.ID, error) {
			return nil, boom
		}

		_, err := validateAggregateIDs(ctx, []genre.ID{"g"}, exists, "genres")

		assert.ErrorIs(t, err, boom)
	})
}

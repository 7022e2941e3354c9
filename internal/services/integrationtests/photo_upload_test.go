package integrationtests

import (
	"context"
	"io"
	"net/url"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"photo-gallery/internal/config"
	"photo-gallery/internal/domain/photo"
	"photo-gallery/internal/observability"
	"photo-gallery/internal/platform/database"
	"photo-gallery/internal/services"
	"photo-gallery/internal/testutils"
)

// PhotoUploadTestSuite runs uploads against Postgres, MinIO and Valkey
type PhotoUploadTestSuite struct {
	suite.Suite
	ctx        context.Context
	containers *testutils.TestContainers
	container  *services.Container
}

func (s *PhotoUploadTestSuite) SetupSuite() {
	if testing.Short() {
		s.T().Skip("Skipping integration tests in short mode")
	}
	s.ctx = context.Background()

	containers, err := testutils.SetupTestContainers(s.ctx)
	if err != nil {
		s.T().Skipf("test containers unavailable: %v", err)
	}
	s.containers = containers

	cfg := &config.Config{
		Environment:   "test",
		PublicBaseURL: "http://localhost:4000",
		AdminPassword: "admin1234",
		StoreDriver:   config.StoreDriverPostgres,
		Storage:       containers.StorageConfig(),
		Cache:         containers.CacheConfig(),
		Gallery:       config.GalleryConfig{PageSize: 8, Ceiling: 100},
	}
	s.container = services.NewContainerWithBackends(cfg, observability.NewNopLogger(), services.Backends{
		Store: database.NewPhotoRepository(containers.DB),
		Blobs: containers.MinIOStore,
		Cache: containers.RedisClient,
	})
}

func (s *PhotoUploadTestSuite) TearDownSuite() {
	if s.containers != nil {
		s.NoError(s.containers.Cleanup(s.ctx))
	}
}

func (s *PhotoUploadTestSuite) SetupTest() {
	require.NoError(s.T(), s.containers.ResetData(s.ctx))
}

func (s *PhotoUploadTestSuite) TestUpload_PersistsRecordAndObject() {
	svc := s.container.PhotoService()

	req := &photo.CreatePhotoRequest{Title: "Dunes", Tags: "desert, sunset"}
	p, err := svc.Upload(s.ctx, req, "sunset.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"), 10)
	s.Require().NoError(err)
	s.Equal([]string{"desert", "sunset"}, p.Tags)

	// listed through the cache-backed store
	listed := svc.List(s.ctx)
	s.Require().Len(listed, 1)
	s.Equal(*p, listed[0])

	parsed, err := url.Parse(p.URL)
	s.Require().NoError(err)
	name, err := url.PathUnescape(path.Base(parsed.Path))
	s.Require().NoError(err)

	rc, err := s.container.Blobs().Open(s.ctx, name)
	s.Require().NoError(err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	s.Require().NoError(err)
	s.Equal("jpeg-bytes", string(body))
}

func (s *PhotoUploadTestSuite) TestUpload_InvalidatesCachedList() {
	svc := s.container.PhotoService()
	s.Empty(svc.List(s.ctx))

	_, err := s.containers.RedisClient.GetList(s.ctx)
	s.Require().NoError(err, "empty list is cached after the first read")

	_, err = svc.Upload(s.ctx, &photo.CreatePhotoRequest{}, "a.png", "image/png", strings.NewReader("x"), 1)
	s.Require().NoError(err)

	_, err = s.containers.RedisClient.GetList(s.ctx)
	s.ErrorIs(err, photo.ErrCacheMiss)
	s.Len(svc.List(s.ctx), 1)
}

func (s *PhotoUploadTestSuite) TestGalleryPages_StartWithUploads() {
	_, err := s.container.PhotoService().Upload(s.ctx, &photo.CreatePhotoRequest{Title: "Mine"}, "a.jpg", "image/jpeg", strings.NewReader("x"), 1)
	s.Require().NoError(err)

	page, err := s.container.Paginator().LoadPage(s.ctx, 1, 8)
	s.Require().NoError(err)
	s.Len(page.Records, 8)
	s.Equal("Mine", page.Records[0].Title)
	s.True(page.HasMore)
}

func (s *PhotoUploadTestSuite) TestHealthChecks() {
	checks := s.container.HealthChecks()
	s.Len(checks, 3)
	for name, hc := range checks {
		s.NoError(hc.Health(s.ctx), name)
	}
}

func TestPhotoUploadTestSuite(t *testing.T) {
	suite.Run(t, new(PhotoUploadTestSuite))
}

package maplib_test

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/9seconds/cartographer/maplib"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LocationResolverTestSuite struct {
	suite.Suite

	geolocatorMock *GeolocatorMock
	clock          *fakeClock
	cache          *maplib.LocationCache
	r              *maplib.LocationResolver
}

func (suite *LocationResolverTestSuite) SetupTest() {
	suite.geolocatorMock = &GeolocatorMock{}
	suite.clock = newFakeClock()
	suite.cache = maplib.NewLocationCache(10)
	suite.r = maplib.NewLocationResolver(suite.geolocatorMock,
		suite.cache,
		maplib.DefaultLocationCacheTTL,
		suite.clock.Now)

	suite.geolocatorMock.On("Name").Return("geolocatorMock").Maybe()
}

func (suite *LocationResolverTestSuite) TearDownTest() {
	suite.geolocatorMock.AssertExpectations(suite.T())
}

func (suite *LocationResolverTestSuite) TestCachedWithinTTL() {
	suite.geolocatorMock.
		On("Locate", mock.Anything, net.IP(nil)).
		Return(geoResult("Nizhny Novgorod", 56.32, 44.0), nil).
		Once()

	first, err := suite.r.Resolve(context.Background(), "")

	suite.NoError(err)
	suite.False(first.Cached)
	suite.Equal("Nizhny Novgorod, Nizhny Novgorod Oblast, Russia", first.String())

	suite.clock.Advance(599 * time.Second)

	second, err := suite.r.Resolve(context.Background(), "")

	suite.NoError(err)
	suite.True(second.Cached)
	suite.Equal(first.Lat, second.Lat)
	suite.Equal(first.Lng, second.Lng)
}

func (suite *LocationResolverTestSuite) TestRefreshAfterTTL() {
	suite.geolocatorMock.
		On("Locate", mock.Anything, mock.Anything).
		Return(geoResult("Nizhny Novgorod", 56.32, 44.0), nil).
		Once()
	suite.geolocatorMock.
		On("Locate", mock.Anything, mock.Anything).
		Return(geoResult("Dzerzhinsk", 56.24, 43.46), nil).
		Once()

	_, err := suite.r.Resolve(context.Background(), "client")

	suite.NoError(err)

	suite.clock.Advance(600 * time.Second)

	location, err := suite.r.Resolve(context.Background(), "client")

	suite.NoError(err)
	suite.False(location.Cached)
	suite.Equal("Dzerzhinsk", location.City)

	entry, ok := suite.cache.Get("client")

	suite.True(ok)
	suite.Equal(suite.clock.Now(), entry.Timestamp)
}

func (suite *LocationResolverTestSuite) TestIdentifierIsIP() {
	ip := net.ParseIP("23.22.13.113")

	suite.geolocatorMock.
		On("Locate", mock.Anything, ip).
		Return(geoResult("Ashburn", 39.03, -77.5), nil).
		Once()

	location, err := suite.r.Resolve(context.Background(), "23.22.13.113")

	suite.NoError(err)
	suite.Equal("Ashburn", location.City)

	_, ok := suite.cache.Get("23.22.13.113")

	suite.True(ok)
}

func (suite *LocationResolverTestSuite) TestKeysAreIndependent() {
	suite.geolocatorMock.
		On("Locate", mock.Anything, mock.Anything).
		Return(geoResult("Nizhny Novgorod", 56.32, 44.0), nil).
		Twice()

	first, err := suite.r.Resolve(context.Background(), "first")

	suite.NoError(err)
	suite.False(first.Cached)

	second, err := suite.r.Resolve(context.Background(), "second")

	suite.NoError(err)
	suite.False(second.Cached)
}

func (suite *LocationResolverTestSuite) TestUnknownFields() {
	suite.geolocatorMock.
		On("Locate", mock.Anything, mock.Anything).
		Return(maplib.GeoLookupResult{Lat: floatPtr(1), Lng: floatPtr(2)}, nil).
		Once()

	location, err := suite.r.Resolve(context.Background(), "")

	suite.NoError(err)
	suite.Equal("Unknown, Unknown, Unknown", location.String())
}

func (suite *LocationResolverTestSuite) TestUpstreamFailed() {
	suite.geolocatorMock.
		On("Locate", mock.Anything, mock.Anything).
		Return(maplib.GeoLookupResult{}, io.EOF).
		Once()

	_, err := suite.r.Resolve(context.Background(), "")

	suite.True(errors.Is(err, maplib.ErrLocationUnavailable))
	suite.True(errors.Is(err, io.EOF))
	suite.Equal(0, suite.cache.Len())
}

func (suite *LocationResolverTestSuite) TestNoCoordinates() {
	suite.geolocatorMock.
		On("Locate", mock.Anything, mock.Anything).
		Return(maplib.GeoLookupResult{City: "Nowhere"}, nil).
		Once()

	_, err := suite.r.Resolve(context.Background(), "")

	suite.True(errors.Is(err, maplib.ErrLocationUnavailable))
	suite.Equal(0, suite.cache.Len())
}

func (suite *LocationResolverTestSuite) TestConcurrentMissesShareCall() {
	suite.geolocatorMock.
		On("Locate", mock.Anything, mock.Anything).
		After(100*time.Millisecond).
		Return(geoResult("Nizhny Novgorod", 56.32, 44.0), nil).
		Once()

	wg := &sync.WaitGroup{}

	wg.Add(10)

	for i := 0; i < 10; i++ {
		go func() {
			defer wg.Done()

			location, err := suite.r.Resolve(context.Background(), "")

			suite.NoError(err)
			suite.Equal("Nizhny Novgorod", location.City)
		}()
	}

	wg.Wait()
}

func (suite *LocationResolverTestSuite) TestCancelledCallerDoesNotFailWaiters() {
	geolocator := newBlockingGeolocator(geoResult("Nizhny Novgorod", 56.32, 44.0))
	resolver := maplib.NewLocationResolver(geolocator, suite.cache, maplib.DefaultLocationCacheTTL, suite.clock.Now)
	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	waiterResult := make(chan maplib.Location, 1)
	waiterErr := make(chan error, 1)

	go func() {
		_, err := resolver.Resolve(ctx, "81.2.69.142")
		firstErr <- err
	}()

	<-geolocator.started

	go func() {
		location, err := resolver.Resolve(context.Background(), "81.2.69.142")
		waiterResult <- location
		waiterErr <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	err := <-firstErr

	suite.True(errors.Is(err, maplib.ErrLocationUnavailable))
	suite.True(errors.Is(err, context.Canceled))

	close(geolocator.release)

	suite.NoError(<-waiterErr)
	suite.Equal("Nizhny Novgorod", (<-waiterResult).City)
	suite.EqualValues(1, geolocator.calls.Load())
	suite.Equal(1, suite.cache.Len())
}

func TestLocationResolver(t *testing.T) {
	suite.Run(t, &LocationResolverTestSuite{})
}

// blockingGeolocator holds Locate until release is closed or context
// of the call is done.
type blockingGeolocator struct {
	result  maplib.GeoLookupResult
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (b *blockingGeolocator) Name() string {
	return "blockingGeolocator"
}

func (b *blockingGeolocator) Locate(ctx context.Context, _ net.IP) (maplib.GeoLookupResult, error) {
	if b.calls.Add(1) == 1 {
		close(b.started)
	}

	select {
	case <-ctx.Done():
		return maplib.GeoLookupResult{}, ctx.Err()
	case <-b.release:
		return b.result, nil
	}
}

func newBlockingGeolocator(result maplib.GeoLookupResult) *blockingGeolocator {
	return &blockingGeolocator{
		result:  result,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

package maplib_test

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/9seconds/cartographer/maplib"
	"github.com/stretchr/testify/mock"
)

type GeolocatorMock struct {
	mock.Mock
}

func (m *GeolocatorMock) Name() string {
	return m.Called().String(0)
}

func (m *GeolocatorMock) Locate(ctx context.Context, ip net.IP) (maplib.GeoLookupResult, error) {
	args := m.Called(ctx, ip)

	return args.Get(0).(maplib.GeoLookupResult), args.Error(1)
}

type MapsAPIMock struct {
	mock.Mock
}

func (m *MapsAPIMock) Name() string {
	return m.Called().String(0)
}

func (m *MapsAPIMock) Credential() string {
	return m.Called().String(0)
}

func (m *MapsAPIMock) TextSearch(ctx context.Context, req maplib.TextSearchRequest) (maplib.TextSearchResponse, error) {
	args := m.Called(ctx, req)

	return args.Get(0).(maplib.TextSearchResponse), args.Error(1)
}

func (m *MapsAPIMock) Directions(ctx context.Context, req maplib.DirectionsRequest) (maplib.DirectionsResponse, error) {
	args := m.Called(ctx, req)

	return args.Get(0).(maplib.DirectionsResponse), args.Error(1)
}

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) LocationError(identifier string, err error) {
	m.Called(identifier, err)
}

func (m *LoggerMock) PlacesError(query, location string, err error) {
	m.Called(query, location, err)
}

func (m *LoggerMock) DirectionsError(origin, destination string, err error) {
	m.Called(origin, destination, err)
}

func (m *LoggerMock) CacheHit(identifier string) {
	m.Called(identifier)
}

// fakeClock is a manually driven clock for location cache tests.
type fakeClock struct {
	mutex sync.Mutex
	now   time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.now = f.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		now: time.Date(2020, time.May, 1, 12, 0, 0, 0, time.UTC),
	}
}

func floatPtr(value float64) *float64 {
	return &value
}

func geoResult(city string, lat, lng float64) maplib.GeoLookupResult {
	return maplib.GeoLookupResult{
		Lat:         floatPtr(lat),
		Lng:         floatPtr(lng),
		City:        city,
		Region:      "Nizhny Novgorod Oblast",
		Country:     "Russia",
		CountryCode: "RU",
	}
}

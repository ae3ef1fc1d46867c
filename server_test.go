package main

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/9seconds/cartographer/maplib"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type geolocatorMock struct {
	mock.Mock
}

func (m *geolocatorMock) Name() string {
	return "geolocatorMock"
}

func (m *geolocatorMock) Locate(ctx context.Context, ip net.IP) (maplib.GeoLookupResult, error) {
	args := m.Called(ctx, ip)

	return args.Get(0).(maplib.GeoLookupResult), args.Error(1)
}

type mapsAPIMock struct {
	mock.Mock
}

func (m *mapsAPIMock) Name() string {
	return "mapsAPIMock"
}

func (m *mapsAPIMock) Credential() string {
	return m.Called().String(0)
}

func (m *mapsAPIMock) TextSearch(ctx context.Context, req maplib.TextSearchRequest) (maplib.TextSearchResponse, error) {
	args := m.Called(ctx, req)

	return args.Get(0).(maplib.TextSearchResponse), args.Error(1)
}

func (m *mapsAPIMock) Directions(ctx context.Context, req maplib.DirectionsRequest) (maplib.DirectionsResponse, error) {
	args := m.Called(ctx, req)

	return args.Get(0).(maplib.DirectionsResponse), args.Error(1)
}

type ServerTestSuite struct {
	suite.Suite

	logOutput      *bytes.Buffer
	geolocatorMock *geolocatorMock
	mapsMock       *mapsAPIMock
	handler        http.Handler
}

func (suite *ServerTestSuite) SetupTest() {
	conf, _ := parseConfig(nil, "")

	suite.logOutput = &bytes.Buffer{}
	suite.geolocatorMock = &geolocatorMock{}
	suite.mapsMock = &mapsAPIMock{}
	suite.handler = makeHandler(conf,
		newLogger(suite.logOutput, true),
		suite.geolocatorMock,
		suite.mapsMock)
}

func (suite *ServerTestSuite) TearDownTest() {
	suite.geolocatorMock.AssertExpectations(suite.T())
	suite.mapsMock.AssertExpectations(suite.T())
}

func (suite *ServerTestSuite) Do(req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()

	suite.handler.ServeHTTP(resp, req)

	return resp
}

func (suite *ServerTestSuite) TestRoot() {
	resp := suite.Do(httptest.NewRequest("GET", "/", nil))

	suite.Equal(http.StatusOK, resp.Code)
	suite.Contains(resp.Body.String(), `"status":"running"`)
	suite.NotEmpty(resp.Header().Get("X-Request-Id"))
	suite.Contains(suite.logOutput.String(), `"event_name":"access"`)
	suite.Contains(suite.logOutput.String(), `"status":200`)
}

func (suite *ServerTestSuite) TestCORS() {
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "https://chat.example.com")

	resp := suite.Do(req)

	suite.Equal(http.StatusOK, resp.Code)
	suite.Equal("https://chat.example.com", resp.Header().Get("Access-Control-Allow-Origin"))
	suite.Equal("true", resp.Header().Get("Access-Control-Allow-Credentials"))
}

func (suite *ServerTestSuite) TestCORSPreflight() {
	req := httptest.NewRequest("OPTIONS", "/places/nearby", nil)
	req.Header.Set("Origin", "https://chat.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	req.Header.Set("Access-Control-Request-Headers", "X-Custom-Header")

	resp := suite.Do(req)

	suite.Less(resp.Code, 300)
	suite.Equal("https://chat.example.com", resp.Header().Get("Access-Control-Allow-Origin"))
	suite.NotEmpty(resp.Header().Get("Access-Control-Allow-Methods"))
}

func (suite *ServerTestSuite) TestCORSRestrictedOrigins() {
	conf := &config{CORSOrigins: []string{"https://chat.example.com"}}
	handler := makeHandler(conf, newLogger(suite.logOutput, false), suite.geolocatorMock, suite.mapsMock)

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	suite.Equal(http.StatusOK, resp.Code)
	suite.Empty(resp.Header().Get("Access-Control-Allow-Origin"))
}

func (suite *ServerTestSuite) TestMetrics() {
	suite.geolocatorMock.
		On("Locate", mock.Anything, mock.Anything).
		Return(maplib.GeoLookupResult{}, errors.New("unexpected")).
		Once()

	resp := suite.Do(httptest.NewRequest("GET", "/location", nil))

	suite.Equal(http.StatusInternalServerError, resp.Code)
	suite.Contains(suite.logOutput.String(), `"event_name":"location"`)

	resp = suite.Do(httptest.NewRequest("GET", "/metrics", nil))

	suite.Equal(http.StatusOK, resp.Code)
	suite.Contains(resp.Body.String(), `cartographer_operations_total{operation="location",result="location_error"} 1`)
	suite.Contains(resp.Body.String(), "go_goroutines")
}

func TestServer(t *testing.T) {
	suite.Run(t, &ServerTestSuite{})
}

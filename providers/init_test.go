package providers_test

import (
	"net/http"
	"time"

	"github.com/9seconds/cartographer/maplib"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"
)

type ProviderTestSuite struct {
	suite.Suite

	http maplib.HTTPClient
}

func (suite *ProviderTestSuite) SetupTest() {
	suite.http = maplib.NewHTTPClient(&http.Client{}, "test-agent", 5*time.Second)
}

type MockedProviderTestSuite struct {
	ProviderTestSuite
}

func (suite *MockedProviderTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *MockedProviderTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *MockedProviderTestSuite) TearDownTest() {
	httpmock.Reset()
}

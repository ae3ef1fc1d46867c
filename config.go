package main

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/9seconds/cartographer/maplib"
	"github.com/hjson/hjson-go"
	"github.com/spf13/afero"
)

const (
	DefaultListen             = "0.0.0.0:8000"
	DefaultGeolocationTimeout = 5 * time.Second
	DefaultMapsTimeout        = 10 * time.Second
)

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalJSON(b []byte) error {
	var v interface{}

	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("cannot unmarshal duration: %w", err)
	}

	vv, ok := v.(string)
	if !ok {
		return fmt.Errorf("incorrect duration: %v", v)
	}

	dur, err := time.ParseDuration(vv)
	if err != nil {
		return fmt.Errorf("cannot parse duration: %w", err)
	}

	if dur < 0 {
		return fmt.Errorf("duration should be positive: %s", vv)
	}

	d.Duration = dur

	return nil
}

type config struct {
	Listen             string   `json:"listen"`
	APIKey             string   `json:"api_key"`
	GeolocationTimeout duration `json:"geolocation_timeout"`
	MapsTimeout        duration `json:"maps_timeout"`
	LocationCacheSize  uint     `json:"location_cache_size"`
	LocationCacheTTL   duration `json:"location_cache_ttl"`
	CORSOrigins        []string `json:"cors_origins"`
}

func (c config) GetListen() string {
	if c.Listen != "" {
		return c.Listen
	}

	return DefaultListen
}

func (c config) GetAPIKey() string {
	return c.APIKey
}

func (c config) GetGeolocationTimeout() time.Duration {
	if c.GeolocationTimeout.Duration == 0 {
		return DefaultGeolocationTimeout
	}

	return c.GeolocationTimeout.Duration
}

func (c config) GetMapsTimeout() time.Duration {
	if c.MapsTimeout.Duration == 0 {
		return DefaultMapsTimeout
	}

	return c.MapsTimeout.Duration
}

func (c config) GetLocationCacheSize() int {
	if c.LocationCacheSize == 0 {
		return maplib.DefaultLocationCacheSize
	}

	return int(c.LocationCacheSize)
}

func (c config) GetLocationCacheTTL() time.Duration {
	if c.LocationCacheTTL.Duration == 0 {
		return maplib.DefaultLocationCacheTTL
	}

	return c.LocationCacheTTL.Duration
}

func (c config) GetCORSOrigins() []string {
	if len(c.CORSOrigins) == 0 {
		return []string{"*"}
	}

	return c.CORSOrigins
}

func (c config) validate() error {
	if _, _, err := net.SplitHostPort(c.GetListen()); err != nil {
		return fmt.Errorf("incorrect host:port for listen: %w", err)
	}

	return nil
}

// parseConfig reads hjson config from the given path. An empty path
// means that defaults are used.
func parseConfig(fs afero.Fs, path string) (*config, error) {
	conf := config{}

	if path == "" {
		return &conf, nil
	}

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	rawMap := map[string]interface{}{}

	if err := hjson.Unmarshal(content, &rawMap); err != nil {
		return nil, fmt.Errorf("cannot parse json: %w", err)
	}

	rawBytes, _ := json.Marshal(rawMap)

	if err := json.Unmarshal(rawBytes, &conf); err != nil {
		return nil, fmt.Errorf("incorrect config: %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

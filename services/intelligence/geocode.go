package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tripflow/utils"

	"go.uber.org/zap"
)

// geocodeResponse mirrors the Google Geocoding API response shape.
type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status string `json:"status"`
}

var geocodeHTTPClient = &http.Client{Timeout: 5 * time.Second}

// GoogleGeocoder resolves place names through the Google Geocoding API.
type GoogleGeocoder struct {
	apiKey string
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{apiKey: apiKey}
}

func (g *GoogleGeocoder) Resolve(ctx context.Context, name string) (float64, float64, bool) {
	logger := utils.GetLogger()

	endpoint := fmt.Sprintf(
		"https://maps.googleapis.com/maps/api/geocode/json?address=%s&key=%s",
		url.QueryEscape(name), g.apiKey,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, false
	}
	resp, err := geocodeHTTPClient.Do(req)
	if err != nil {
		logger.Warn("Geocode request failed", zap.String("name", name), zap.Error(err))
		return 0, 0, false
	}
	defer resp.Body.Close()

	var out geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		logger.Warn("Failed to decode geocode response", zap.String("name", name), zap.Error(err))
		return 0, 0, false
	}
	if out.Status != "OK" || len(out.Results) == 0 {
		return 0, 0, false
	}
	loc := out.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, true
}

// NullGeocoder resolves nothing. Used when no API key is configured.
type NullGeocoder struct{}

func (NullGeocoder) Resolve(ctx context.Context, name string) (float64, float64, bool) {
	return 0, 0, false
}

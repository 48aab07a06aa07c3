package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"places-server/models"
	"places-server/utils/errors"
)

const defaultGeocoderBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

var errNoLocation = errors.NewAPIError("GEOCODE_NO_RESULTS", "Could not find location for the specified address.", http.StatusUnprocessableEntity)

// GeoService resolves free-text addresses to coordinates through the Google
// Geocoding API. One outbound call per resolve, no retries, 10s cap.
type GeoService struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewGeoService(baseURL, apiKey string) *GeoService {
	if baseURL == "" {
		baseURL = defaultGeocoderBaseURL
	}
	return &GeoService{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location models.GeoPoint `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (s *GeoService) Resolve(ctx context.Context, address string) (models.GeoPoint, error) {
	endpoint := fmt.Sprintf("%s?address=%s&key=%s", s.baseURL, url.QueryEscape(address), url.QueryEscape(s.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.GeoPoint{}, errors.Wrap(err, "GEOCODE_ERROR", "Fetching coordinates failed, please try again.", http.StatusInternalServerError)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return models.GeoPoint{}, errors.Wrap(err, "GEOCODE_ERROR", "Fetching coordinates failed, please try again.", http.StatusInternalServerError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.GeoPoint{}, errors.NewAPIError("GEOCODE_ERROR", "Fetching coordinates failed, please try again.", http.StatusInternalServerError,
			fmt.Sprintf("geocoder returned status %d", resp.StatusCode))
	}

	var data geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return models.GeoPoint{}, errors.Wrap(err, "GEOCODE_ERROR", "Fetching coordinates failed, please try again.", http.StatusInternalServerError)
	}

	if data.Status == "ZERO_RESULTS" || len(data.Results) == 0 {
		return models.GeoPoint{}, errNoLocation
	}
	return data.Results[0].Geometry.Location, nil
}

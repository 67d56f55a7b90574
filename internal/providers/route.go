// Package providers wraps the external mapping and vehicle-data
// services behind small interfaces so handlers depend on a capability,
// not a concrete client, and tests can substitute doubles.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Route is the resolved path between two coordinates.
type Route struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes float64 `json:"duration_minutes"`
}

// RouteProvider resolves driving/cycling routes. Used to prefill the
// trip distance on the carbon form when the user only supplies
// endpoints.
type RouteProvider interface {
	Route(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (*Route, error)
}

// OSRMRouteProvider talks to an OSRM-compatible routing endpoint.
type OSRMRouteProvider struct {
	baseURL string
	client  *http.Client
}

func NewOSRMRouteProvider(baseURL string) *OSRMRouteProvider {
	return &OSRMRouteProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *OSRMRouteProvider) Route(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (*Route, error) {
	// OSRM takes lng,lat pairs
	url := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		p.baseURL, fromLng, fromLat, toLng, toLat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("route lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("route lookup returned status %d", resp.StatusCode)
	}

	var body struct {
		Code   string `json:"code"`
		Routes []struct {
			Distance float64 `json:"distance"` // metres
			Duration float64 `json:"duration"` // seconds
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode route response: %w", err)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return nil, fmt.Errorf("no route found")
	}

	return &Route{
		DistanceKm:      body.Routes[0].Distance / 1000,
		DurationMinutes: body.Routes[0].Duration / 60,
	}, nil
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// VehicleInfo carries the emission data shown next to the carbon form.
// It is informational only; the scoring formula does not depend on it.
type VehicleInfo struct {
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	CO2GramsPerKm float64 `json:"co2_grams_per_km"`
}

// VehicleDataProvider looks up emission data for a vehicle.
type VehicleDataProvider interface {
	Lookup(ctx context.Context, vehicleMake, model string) (*VehicleInfo, error)
}

// HTTPVehicleProvider queries an external vehicle-data API.
type HTTPVehicleProvider struct {
	baseURL string
	client  *http.Client
}

func NewHTTPVehicleProvider(baseURL string) *HTTPVehicleProvider {
	return &HTTPVehicleProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPVehicleProvider) Lookup(ctx context.Context, vehicleMake, model string) (*VehicleInfo, error) {
	q := url.Values{}
	q.Set("make", vehicleMake)
	q.Set("model", model)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/vehicles?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vehicle lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("vehicle %s %s not found", vehicleMake, model)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vehicle lookup returned status %d", resp.StatusCode)
	}

	var info VehicleInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle response: %w", err)
	}
	return &info, nil
}

package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"foodcart-api/geo"
)

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 5 * time.Second

// ProviderError reports a network, HTTP or parse failure while talking to
// the geocoding provider. It is distinct from "address not found", which is
// a legitimate result, not an error.
type ProviderError struct {
	Address string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("geocoding provider failed for %q: %v", e.Address, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Client calls the geocoding provider over HTTP. One external call per
// Geocode invocation, no retries; the cache decides what a failure means.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

type geocodeResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Geocode resolves an address to coordinates. It returns (nil, nil) when the
// provider has no match for the address and *ProviderError on any transport
// or parse failure.
func (c *Client) Geocode(ctx context.Context, address string) (*geo.Coordinates, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("format", "json")
	params.Set("geocode", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return nil, &ProviderError{Address: address, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Address: address, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Address: address, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &ProviderError{Address: address, Err: err}
	}

	members := body.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return nil, nil
	}

	coords, err := parsePos(members[0].GeoObject.Point.Pos)
	if err != nil {
		return nil, &ProviderError{Address: address, Err: err}
	}
	return coords, nil
}

// parsePos parses the provider's point encoding: "<longitude> <latitude>",
// longitude first. Swapping the pair would silently corrupt every distance
// computed downstream, so the ordering here must never change.
func parsePos(pos string) (*geo.Coordinates, error) {
	fields := strings.Fields(pos)
	if len(fields) != 2 {
		return nil, fmt.Errorf("malformed pos %q", pos)
	}
	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, fmt.Errorf("malformed longitude in pos %q: %w", pos, err)
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, fmt.Errorf("malformed latitude in pos %q: %w", pos, err)
	}
	return &geo.Coordinates{Lat: lat, Lon: lon}, nil
}

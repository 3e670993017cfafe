package geocoder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func providerPayload(pos string) string {
	return fmt.Sprintf(`{
		"response": {
			"GeoObjectCollection": {
				"featureMember": [
					{"GeoObject": {"Point": {"pos": %q}}}
				]
			}
		}
	}`, pos)
}

func TestClientGeocode(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"apikey":  q.Get("apikey"),
			"format":  q.Get("format"),
			"geocode": q.Get("geocode"),
		}
		fmt.Fprint(w, providerPayload("37.620795 55.753930"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", time.Second)
	coords, err := client.Geocode(context.Background(), "Москва, Красная площадь, 1")
	require.NoError(t, err)
	require.NotNil(t, coords)

	// pos is "longitude latitude"; latitude must land in Lat.
	assert.Equal(t, 55.753930, coords.Lat)
	assert.Equal(t, 37.620795, coords.Lon)

	assert.Equal(t, "test-key", gotQuery["apikey"])
	assert.Equal(t, "json", gotQuery["format"])
	assert.Equal(t, "Москва, Красная площадь, 1", gotQuery["geocode"])
}

func TestClientGeocodeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response": {"GeoObjectCollection": {"featureMember": []}}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", time.Second)
	coords, err := client.Geocode(context.Background(), "nowhere at all")
	assert.NoError(t, err)
	assert.Nil(t, coords)
}

func TestClientGeocodeEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", time.Second)
	coords, err := client.Geocode(context.Background(), "unknown address 123")
	assert.NoError(t, err)
	assert.Nil(t, coords)
}

func TestClientGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", time.Second)
	_, err := client.Geocode(context.Background(), "Москва")

	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "Москва", perr.Address)
}

func TestClientGeocodeMalformedPos(t *testing.T) {
	tests := []struct {
		name string
		pos  string
	}{
		{name: "single field", pos: "37.620795"},
		{name: "non-numeric", pos: "east north"},
		{name: "three fields", pos: "37.6 55.7 12.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, providerPayload(tt.pos))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "test-key", time.Second)
			_, err := client.Geocode(context.Background(), "Москва")

			var perr *ProviderError
			assert.True(t, errors.As(err, &perr))
		})
	}
}

func TestClientGeocodeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, providerPayload("37.620795 55.753930"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 20*time.Millisecond)
	_, err := client.Geocode(context.Background(), "Москва")

	var perr *ProviderError
	assert.True(t, errors.As(err, &perr))
}

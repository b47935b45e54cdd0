package airclub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Options{
		BaseURL:   baseURL,
		Timeout:   2 * time.Second,
		RateLimit: 1000,
		RateBurst: 1000,
	})
}

func TestFetchCountries_DecodesAndCaches(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/countries", r.URL.Path)
		hits.Add(1)
		w.Write([]byte(`[{"countryCode":"US","openness":10},{"countryCode":"KP","openness":0}]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	countries, err := c.FetchCountries(context.Background())
	require.NoError(t, err)
	require.Len(t, countries, 2)
	assert.Equal(t, Country{Code: "US", Openness: 10}, countries[0])

	_, err = c.FetchCountries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load(), "second fetch must be a cache hit")
}

func TestFetchAirports_SanitizesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":1,"iata":"jfk","name":"John F Kennedy Intl","countryCode":"US","latitude":40.6413,"longitude":-73.7781,"population":8400000,"incomeLevel":54000},
			{"id":2,"iata":"XXX","name":"Broken","countryCode":"ZZ","latitude":0,"longitude":0,"population":-5,"incomeLevel":-1}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	airports, err := c.FetchAirports(context.Background())
	require.NoError(t, err)
	require.Len(t, airports, 2)

	assert.Equal(t, "JFK", airports[0].IATA, "IATA must be canonicalized to upper case")
	assert.Equal(t, 0.0, airports[1].Population, "negative population clamps to zero")
	assert.Equal(t, 0.0, airports[1].Income, "negative income clamps to zero")
}

func TestFetchAirportLinks_NeverCached(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/airports/42/links", r.URL.Path)
		hits.Add(1)
		w.Write([]byte(`[{"capacity":120},{"capacity":-3},{"capacity":300}]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	for range 2 {
		links, err := c.FetchAirportLinks(context.Background(), 42)
		require.NoError(t, err)
		require.Len(t, links, 3)
		assert.Equal(t, 0.0, links[1].Capacity, "negative capacity clamps to zero")
	}
	assert.Equal(t, int64(2), hits.Load(), "link listings must bypass the cache")
}

func TestGetJSON_UpstreamErrorOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.FetchAirportLinks(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUpstream))
}

func TestGetJSON_UpstreamErrorOnTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed server: connection refused

	c := newTestClient(srv.URL)
	_, err := c.FetchCountries(context.Background())
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrUpstream))
}

func TestGetJSON_SendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "netscout-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "session=abc", r.Header.Get("Cookie"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Options{
		BaseURL:   srv.URL,
		UserAgent: "netscout-test",
		Cookie:    "session=abc",
		RateLimit: 1000,
		RateBurst: 1000,
	})
	_, err := c.FetchCountries(context.Background())
	require.NoError(t, err)
}

func TestNormalizeIATA(t *testing.T) {
	assert.Equal(t, "JFK", NormalizeIATA(" jfk "))
	assert.Equal(t, "LHR", NormalizeIATA("Lhr"))
}

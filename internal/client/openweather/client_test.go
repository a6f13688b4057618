package openweather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingClient struct{}

func (failingClient) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial tcp: i/o timeout")
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.Client(), "owm-key", Options{
		City:    "London",
		Country: "GB",
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, nil)
}

func TestCurrentSendsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "London,GB", r.URL.Query().Get("q"))
		assert.Equal(t, "owm-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		_, _ = w.Write([]byte(`{"weather":[{"id":800,"main":"Clear","description":"clear sky"}],"main":{"temp":15.4},"name":"London"}`))
	})

	cond, err := c.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Conditions{City: "London", Description: "clear sky", TempC: 15.4}, cond)
}

func TestLineSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"weather":[{"description":"clear sky"}],"main":{"temp":15.4}}`))
	})

	assert.Equal(t, "London: Clear sky, 15°C", c.Line(context.Background()))
}

func TestLineFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"weather":[`))
			},
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
			},
		},
		{
			name: "missing description",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"weather":[],"main":{"temp":10}}`))
			},
		},
		{
			name: "missing temperature",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"weather":[{"description":"rain"}],"main":{}}`))
			},
		},
		{
			name: "wrong types",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"weather":[{"description":"rain"}],"main":{"temp":"warm"}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler)
			assert.Equal(t, "London: Weather unavailable", c.Line(context.Background()))
		})
	}
}

func TestLineFallbackOnNetworkError(t *testing.T) {
	c := NewClient(failingClient{}, "owm-key", Options{City: "London", Country: "GB"}, nil)
	assert.Equal(t, "London: Weather unavailable", c.Line(context.Background()))
}

func TestLineFallbackOnTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(block) })

	c := NewClient(srv.Client(), "owm-key", Options{
		City:    "London",
		Country: "GB",
		BaseURL: srv.URL,
		Timeout: 50 * time.Millisecond,
	}, nil)

	assert.Equal(t, "London: Weather unavailable", c.Line(context.Background()))
}

// Temperatures round half to even: 15.5 and 16.5 both give 16.
func TestConditionsLineRounding(t *testing.T) {
	tests := []struct {
		temp float64
		want string
	}{
		{15.4, "London: Clear sky, 15°C"},
		{15.5, "London: Clear sky, 16°C"},
		{16.5, "London: Clear sky, 16°C"},
		{15.6, "London: Clear sky, 16°C"},
		{-0.4, "London: Clear sky, 0°C"},
		{-2.5, "London: Clear sky, -2°C"},
	}
	for _, tt := range tests {
		cond := Conditions{City: "London", Description: "clear sky", TempC: tt.temp}
		assert.Equal(t, tt.want, cond.Line(), "temp %v", tt.temp)
	}
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"":              "",
		"clear sky":     "Clear sky",
		"Clear Sky":     "Clear sky",
		"BROKEN CLOUDS": "Broken clouds",
		"ясно":          "Ясно",
		"light rain":    "Light rain",
		"éclaircies":    "Éclaircies",
	}
	for in, want := range tests {
		assert.Equal(t, want, capitalize(in), "input %q", in)
	}
}

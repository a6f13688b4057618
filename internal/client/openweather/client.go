package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5"
	defaultTimeout = 20 * time.Second
	userAgent      = "daily-brief/0.1"

	// Units is fixed to metric; the line is always rendered in °C.
	Units = "metric"
)

// Conditions is the subset of the current weather the brief needs.
type Conditions struct {
	City        string
	Description string
	TempC       float64
}

// Line renders conditions as "City: Description, N°C".
// The temperature is rounded half to even, so 15.5 gives 16 and 16.5 gives 16.
func (c Conditions) Line() string {
	return fmt.Sprintf("%s: %s, %d°C", c.City, capitalize(c.Description), int(math.RoundToEven(c.TempC)))
}

// UnavailableLine is the placeholder used whenever the weather cannot be fetched.
func UnavailableLine(city string) string {
	return city + ": Weather unavailable"
}

// HTTPClient wraps the stdlib client for easier testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures the location and endpoint of the client.
type Options struct {
	City    string
	Country string
	BaseURL string
	Timeout time.Duration
}

// APIClient fetches current conditions from the OpenWeatherMap HTTP API.
type APIClient struct {
	httpClient HTTPClient
	apiKey     string
	opts       Options
	logger     *zap.Logger
}

// NewClient builds an OpenWeatherMap client.
func NewClient(httpClient HTTPClient, apiKey string, opts Options, logger *zap.Logger) *APIClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &APIClient{
		httpClient: httpClient,
		apiKey:     apiKey,
		opts:       opts,
		logger:     logger,
	}
}

// Current queries the current weather for the configured city.
func (c *APIClient) Current(ctx context.Context) (Conditions, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	u, err := url.Parse(c.opts.BaseURL + "/weather")
	if err != nil {
		return Conditions{}, fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("q", c.opts.City+","+c.opts.Country)
	q.Set("appid", c.apiKey)
	q.Set("units", Units)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Conditions{}, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Conditions{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return Conditions{}, fmt.Errorf("current weather failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var payload currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Conditions{}, fmt.Errorf("decode weather response: %w", err)
	}

	desc, ok := payload.description()
	if !ok {
		return Conditions{}, fmt.Errorf("weather description missing")
	}
	if payload.Main == nil || payload.Main.Temp == nil {
		return Conditions{}, fmt.Errorf("temperature missing")
	}

	return Conditions{
		City:        c.opts.City,
		Description: desc,
		TempC:       *payload.Main.Temp,
	}, nil
}

// Line returns the weather line for the brief. It never fails: any error is
// logged and replaced by UnavailableLine.
func (c *APIClient) Line(ctx context.Context) string {
	cond, err := c.Current(ctx)
	if err != nil {
		c.logger.Warn("weather unavailable", zap.String("city", c.opts.City), zap.Error(err))
		return UnavailableLine(c.opts.City)
	}

	c.logger.Debug("weather fetched",
		zap.String("city", cond.City),
		zap.String("description", cond.Description),
		zap.Float64("tempC", cond.TempC),
	)
	return cond.Line()
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return strings.ToLower(s)
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

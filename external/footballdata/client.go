package footballdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/feed"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/resilience"
	"github.com/newnonsick/Football-APP-Backend/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL     = "https://api.football-data.org/v4"
	defaultCompetition = "PL"
	maxBodyBytes       = 8 << 20
)

var errTransient = crerr.New("football-data transient failure")

// numberAPI keeps integers exact when decoding into map[string]any.
var numberAPI = sonic.Config{UseNumber: true}.Froze()

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Competition    string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	token       string
	competition string
	maxRetries  int
	retryDelay  time.Duration
	logger      *logging.Logger
	breaker     *resilience.CircuitBreaker
	flight      singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	competition := strings.ToUpper(strings.TrimSpace(cfg.Competition))
	if competition == "" {
		competition = defaultCompetition
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		token:       strings.TrimSpace(cfg.Token),
		competition: competition,
		maxRetries:  max(cfg.MaxRetries, 0),
		retryDelay:  time.Second,
		logger:      logger.With("component", "football-data"),
		breaker:     resilience.NewFromConfig(cfg.CircuitBreaker),
	}
}

// FetchMatches returns the competition's fixtures with volatile fields cleared,
// together with the typed view of every match.
func (c *Client) FetchMatches(ctx context.Context) (usecase.MatchFeed, error) {
	doc, err := c.fetchDocument(ctx, "matches")
	if err != nil {
		return usecase.MatchFeed{}, err
	}
	clearListField(doc, "matches", "lastUpdated")

	matches, err := parseMatches(doc)
	if err != nil {
		return usecase.MatchFeed{}, fmt.Errorf("parse matches: %w", err)
	}
	return usecase.MatchFeed{Document: doc, Matches: matches}, nil
}

func (c *Client) FetchStandings(ctx context.Context) (feed.Document, error) {
	return c.fetchDocument(ctx, "standings")
}

func (c *Client) FetchScorers(ctx context.Context) (feed.Document, error) {
	doc, err := c.fetchDocument(ctx, "scorers")
	if err != nil {
		return nil, err
	}
	clearListField(doc, "scorers", "player", "lastUpdated")
	clearListField(doc, "scorers", "team", "lastUpdated")
	return doc, nil
}

func (c *Client) FetchTeams(ctx context.Context) (feed.Document, error) {
	doc, err := c.fetchDocument(ctx, "teams")
	if err != nil {
		return nil, err
	}
	clearListField(doc, "teams", "lastUpdated")
	return doc, nil
}

func (c *Client) fetchDocument(ctx context.Context, resource string) (feed.Document, error) {
	path := "/competitions/" + c.competition + "/" + resource
	raw, err := c.doRequest(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", resource, err)
	}

	var doc feed.Document
	if err := numberAPI.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", resource, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("decode %s payload: empty document", resource)
	}
	return doc, nil
}

func (c *Client) doRequest(ctx context.Context, path string) ([]byte, error) {
	out, err, _ := c.flight.Do(path, func() (any, error) {
		var raw []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, c.baseURL+path)
			return reqErr
		}, isTransient)
		return raw, execErr
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: football-data is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("X-Auth-Token", c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Mark(crerr.Wrap(err, "send request"), errTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(crerr.Wrap(readErr, "read response body"), errTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw)), errTransient)
			default:
				return nil, crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * c.retryDelay
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("provider request failed")
	}
	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isTransient(err error) bool {
	return crerr.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

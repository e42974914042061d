package pulselive

import (
	"context"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/newnonsick/Football-APP-Backend/internal/domain/feed"
	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL = "https://footballapi.pulselive.com"
	defaultTimeout = 10 * time.Second
	searchPath     = "/search/PremierLeague/"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"
)

var numberAPI = sonic.Config{UseNumber: true}.Froze()

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Logger  *logging.Logger
}

// Client searches the Premier League player directory.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "football-live-api",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		baseURL: baseURL,
		timeout: timeout,
		logger:  logger.With("component", "pulselive"),
	}
}

type searchResponse struct {
	Hits struct {
		Found int         `json:"found"`
		Hit   []searchHit `json:"hit"`
	} `json:"hits"`
}

type searchHit struct {
	Response map[string]any `json:"response"`
}

// SearchPlayer returns the profile whose display name equals name, else the
// first hit, else nil when nothing matched.
func (c *Client) SearchPlayer(ctx context.Context, name string) (feed.Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + searchPath)
	args := req.URI().QueryArgs()
	args.Add("terms", name+","+name+"*")
	args.Add("type", "player")
	args.Add("size", "10")
	args.Add("start", "0")
	args.Add("fullObjectResponse", "true")
	req.Header.SetMethod(fasthttp.MethodGet)
	setBrowserHeaders(&req.Header)

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, crerr.Wrapf(err, "search player %q", name)
	}
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return nil, crerr.Newf("search player %q: status=%d", name, code)
	}

	var payload searchResponse
	if err := numberAPI.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, crerr.Wrapf(err, "decode player search %q", name)
	}
	return pickHit(payload, name), nil
}

func pickHit(payload searchResponse, name string) feed.Document {
	if len(payload.Hits.Hit) == 0 {
		return nil
	}
	for _, hit := range payload.Hits.Hit {
		names, _ := hit.Response["name"].(map[string]any)
		if display, _ := names["display"].(string); display == name {
			return hit.Response
		}
	}
	return payload.Hits.Hit[0].Response
}

func setBrowserHeaders(h *fasthttp.RequestHeader) {
	h.Set("Accept", "*/*")
	h.Set("Accept-Language", "en-US,en;q=0.5")
	h.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
	h.Set("Origin", "https://www.premierleague.com")
	h.Set("Referer", "https://www.premierleague.com/")
	h.Set("Sec-Fetch-Dest", "empty")
	h.Set("Sec-Fetch-Mode", "cors")
	h.Set("Sec-Fetch-Site", "cross-site")
	h.SetUserAgent(userAgent)
}

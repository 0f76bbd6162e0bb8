package racefeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/bytebufferpool"

	"github.com/pitwall/gridbet/internal/platform/logging"
	"github.com/pitwall/gridbet/internal/platform/resilience"
	"github.com/pitwall/gridbet/internal/usecase"
)

const (
	defaultBaseURL       = "https://api.racefeed.example.com/v1"
	roundDetailWorkers   = 4
	maxResponseBodyBytes = 2 << 20
)

var errRaceFeedTransient = crerr.New("race feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the race calendar feed. It implements
// usecase.CalendarProvider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type scheduleEnvelope struct {
	Season int            `json:"season"`
	Rounds []scheduleItem `json:"rounds"`
}

type scheduleItem struct {
	Round    int    `json:"round"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	IsSprint bool   `json:"isSprint"`
}

type roundDetailEnvelope struct {
	Round   int    `json:"round"`
	Country struct {
		Name string `json:"name"`
		Flag string `json:"flag"`
	} `json:"country"`
}

func (c *Client) FetchSeasonCalendar(ctx context.Context, season int) ([]usecase.ExternalRound, error) {
	if season <= 0 {
		return nil, fmt.Errorf("season must be greater than zero")
	}

	schedulePath := fmt.Sprintf("/seasons/%d/schedule", season)
	var schedule scheduleEnvelope
	if err := c.doJSON(ctx, schedulePath, nil, &schedule); err != nil {
		return nil, fmt.Errorf("fetch schedule season=%d: %w", season, err)
	}

	rounds := make([]usecase.ExternalRound, 0, len(schedule.Rounds))
	for _, item := range schedule.Rounds {
		parsed := parseFeedDateTime(item.Date)
		round := usecase.ExternalRound{
			Round:    item.Round,
			Name:     strings.TrimSpace(item.Name),
			IsSprint: item.IsSprint,
		}
		if parsed != nil {
			round.Date = *parsed
		}
		rounds = append(rounds, round)
	}

	c.hydrateRoundDetails(ctx, season, rounds)

	sort.SliceStable(rounds, func(i, j int) bool {
		if rounds[i].Round != rounds[j].Round {
			return rounds[i].Round < rounds[j].Round
		}
		return rounds[i].Date.Before(rounds[j].Date)
	})

	return rounds, nil
}

// hydrateRoundDetails fills country metadata per round. Detail fetches are
// best effort: a failed round keeps its schedule-only row.
func (c *Client) hydrateRoundDetails(ctx context.Context, season int, rounds []usecase.ExternalRound) {
	var mu sync.Mutex
	workers := pool.New().WithMaxGoroutines(roundDetailWorkers)

	for i := range rounds {
		if rounds[i].Round <= 0 {
			continue
		}
		idx := i
		workers.Go(func() {
			path := fmt.Sprintf("/seasons/%d/rounds/%d", season, rounds[idx].Round)
			var detail roundDetailEnvelope
			if err := c.doJSON(ctx, path, nil, &detail); err != nil {
				c.logger.WarnContext(
					ctx,
					"fetch round detail failed, continuing with schedule-only row",
					"season", season,
					"round", rounds[idx].Round,
					"error", err,
				)
				return
			}
			mu.Lock()
			rounds[idx].CountryName = strings.TrimSpace(detail.Country.Name)
			rounds[idx].FlagFileName = strings.TrimSpace(detail.Country.Flag)
			mu.Unlock()
		})
	}

	workers.Wait()
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "race feed circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: race calendar feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errRaceFeedTransient) {
				c.breaker.ReportFailure()
			} else {
				c.breaker.ReportSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode feed payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errRaceFeedTransient, err)
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errRaceFeedTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: feed status=%d body=%s", errRaceFeedTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("feed status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "race feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// readBody copies the response through a pooled buffer so repeated sync runs
// do not churn allocations.
func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, maxResponseBodyBytes)); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	value := strings.TrimSpace(string(raw))
	if len(value) <= limit {
		return value
	}
	return value[:limit] + "..."
}

func parseFeedDateTime(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

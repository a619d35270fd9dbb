// Package wikidata implements the knowledge-base collaborator against the
// Wikidata MediaWiki API.
package wikidata

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/miahuynhh/entity-relationship-extractor/services"
)

const (
	defaultBaseURL = "https://www.wikidata.org/w/api.php"
	userAgent      = "EntityRelationshipExtractor/1.0 (Educational Project)"
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "wikidata_request_duration_seconds",
		Help: "Wikidata API round-trip time by action",
	},
	[]string{"action"},
)

func init() {
	prometheus.MustRegister(requestDuration)
}

// Client queries the Wikidata API. It implements graph.KnowledgeBase. Every
// method is a blocking round trip bounded by the HTTP client's timeout;
// callers treat errors the same as absent results.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a client against the public Wikidata endpoint, or the
// WIKIDATA_API_URL override when set.
func NewClient() *Client {
	baseURL := os.Getenv("WIKIDATA_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return NewClientWithBaseURL(baseURL)
}

// NewClientWithBaseURL creates a client against a specific API endpoint.
func NewClientWithBaseURL(baseURL string) *Client {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	return &Client{
		baseURL:    baseURL,
		httpClient: services.DefaultHttpClient(),
		logger:     logger,
	}
}

// SearchEntity returns the QID of the top-ranked match for the given text,
// or "" when Wikidata has no match.
func (c *Client) SearchEntity(ctx context.Context, text string) (string, error) {
	body, err := c.get(ctx, url.Values{
		"action":   {"wbsearchentities"},
		"format":   {"json"},
		"language": {"en"},
		"search":   {text},
		"limit":    {"1"},
	})
	if err != nil {
		return "", errors.Wrapf(err, "searching for entity %q", text)
	}

	return gjson.GetBytes(body, "search.0.id").String(), nil
}

// GetLabel returns the English label for an entity or property ID, or ""
// when no English label exists.
func (c *Client) GetLabel(ctx context.Context, id string) (string, error) {
	body, err := c.get(ctx, url.Values{
		"action":    {"wbgetentities"},
		"format":    {"json"},
		"ids":       {id},
		"props":     {"labels"},
		"languages": {"en"},
	})
	if err != nil {
		return "", errors.Wrapf(err, "getting label for %s", id)
	}

	return gjson.GetBytes(body, "entities."+id+".labels.en.value").String(), nil
}

// GetClaims returns the subject's entity-valued claims as property ID →
// target QIDs, one element per claim occurrence. Claims whose value is not
// another entity are skipped.
func (c *Client) GetClaims(ctx context.Context, id string) (map[string][]string, error) {
	body, err := c.get(ctx, url.Values{
		"action": {"wbgetentities"},
		"format": {"json"},
		"ids":    {id},
		"props":  {"claims"},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "getting claims for %s", id)
	}

	claims := make(map[string][]string)
	gjson.GetBytes(body, "entities."+id+".claims").ForEach(func(pid, statements gjson.Result) bool {
		statements.ForEach(func(_, statement gjson.Result) bool {
			datavalue := statement.Get("mainsnak.datavalue")
			if datavalue.Get("type").String() != "wikibase-entityid" {
				return true
			}
			if target := datavalue.Get("value.id").String(); target != "" {
				claims[pid.String()] = append(claims[pid.String()], target)
			}
			return true
		})
		return true
	})

	return claims, nil
}

func (c *Client) get(ctx context.Context, params url.Values) ([]byte, error) {
	action := params.Get("action")
	timer := prometheus.NewTimer(requestDuration.WithLabelValues(action))
	defer timer.ObserveDuration()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("action", action).Warn("Wikidata request failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("wikidata returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, errors.New("wikidata returned malformed JSON")
	}

	return body, nil
}

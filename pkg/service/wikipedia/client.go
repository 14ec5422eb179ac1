package wikipedia

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/stubscout/pkg/domain/model"
	"github.com/secmon-lab/stubscout/pkg/utils/logging"
	"github.com/secmon-lab/stubscout/pkg/utils/safe"
)

const (
	// DefaultEndpoint is the English Wikipedia action API
	DefaultEndpoint = "https://en.wikipedia.org/w/api.php"

	defaultUserAgent = "stubscout/1.0 (https://github.com/secmon-lab/stubscout)"
	defaultTimeout   = 10 * time.Second
	categoryLimit    = 50
	thumbnailSize    = 200
	maxResponseBytes = 4 << 20
)

type client struct {
	endpoint   *url.URL
	site       string
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

// Option is a functional option for client configuration
type Option func(*client)

// WithHTTPClient replaces the HTTP client used for API calls
func WithHTTPClient(c *http.Client) Option {
	return func(x *client) {
		x.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header sent to the API
func WithUserAgent(ua string) Option {
	return func(x *client) {
		x.userAgent = ua
	}
}

// WithTimeout bounds every single API call
func WithTimeout(d time.Duration) Option {
	return func(x *client) {
		x.timeout = d
	}
}

// New creates a Service for the MediaWiki action API at endpoint
func New(endpoint string, opts ...Option) (Service, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid wikipedia endpoint", goerr.V(model.EndpointKey, endpoint))
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, goerr.New("wikipedia endpoint must be an absolute URL", goerr.V(model.EndpointKey, endpoint))
	}

	c := &client{
		endpoint:   u,
		site:       u.Scheme + "://" + u.Host,
		httpClient: http.DefaultClient,
		userAgent:  defaultUserAgent,
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Search implements Service
func (c *client) Search(ctx context.Context, query string, limit int) []model.SearchHit {
	hits, err := c.search(ctx, query, limit)
	if err != nil {
		logging.From(ctx).Warn("wikipedia search failed", "error", err, model.QueryKey, query)
		return []model.SearchHit{}
	}
	return hits
}

// Categories implements Service
func (c *client) Categories(ctx context.Context, title string) []string {
	categories, err := c.categories(ctx, title)
	if err != nil {
		logging.From(ctx).Warn("wikipedia category lookup failed", "error", err, model.TitleKey, title)
		return []string{}
	}
	return categories
}

// Details implements Service
func (c *client) Details(ctx context.Context, title string) *model.ArticleDetail {
	detail, err := c.details(ctx, title)
	if err != nil {
		logging.From(ctx).Warn("wikipedia detail lookup failed", "error", err, model.TitleKey, title)
		return nil
	}
	return detail
}

// CategoryMembers implements Service
func (c *client) CategoryMembers(ctx context.Context, category string, limit int) []model.SearchHit {
	members, err := c.categoryMembers(ctx, category, limit)
	if err != nil {
		logging.From(ctx).Warn("wikipedia category member lookup failed", "error", err, "category", category)
		return []model.SearchHit{}
	}
	return members
}

func (c *client) search(ctx context.Context, query string, limit int) ([]model.SearchHit, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {query},
		"srlimit":  {strconv.Itoa(limit)},
	}

	var resp apiResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, goerr.Wrap(err, "search request failed", goerr.V(model.QueryKey, query))
	}

	hits := make([]model.SearchHit, 0, len(resp.Query.Search))
	for _, s := range resp.Query.Search {
		hits = append(hits, model.SearchHit{
			Title:   s.Title,
			PageID:  s.PageID,
			Snippet: stripHTML(s.Snippet),
		})
	}
	return hits, nil
}

func (c *client) categories(ctx context.Context, title string) ([]string, error) {
	params := url.Values{
		"action":  {"query"},
		"prop":    {"categories"},
		"titles":  {title},
		"cllimit": {strconv.Itoa(categoryLimit)},
	}

	var resp apiResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, goerr.Wrap(err, "category request failed", goerr.V(model.TitleKey, title))
	}

	for key, page := range resp.Query.Pages {
		if page.isMissing(key) {
			return []string{}, nil
		}
		return page.categoryTitles(), nil
	}
	return []string{}, nil
}

func (c *client) details(ctx context.Context, title string) (*model.ArticleDetail, error) {
	params := url.Values{
		"action":      {"query"},
		"prop":        {"extracts|pageimages|categories"},
		"titles":      {title},
		"exintro":     {"1"},
		"explaintext": {"1"},
		"piprop":      {"thumbnail"},
		"pithumbsize": {strconv.Itoa(thumbnailSize)},
		"pilimit":     {"1"},
		"cllimit":     {strconv.Itoa(categoryLimit)},
	}

	var resp apiResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, goerr.Wrap(err, "detail request failed", goerr.V(model.TitleKey, title))
	}

	for key, page := range resp.Query.Pages {
		if page.isMissing(key) {
			return nil, nil
		}

		pageTitle := page.Title
		if pageTitle == "" {
			pageTitle = title
		}
		detail := &model.ArticleDetail{
			Title:      pageTitle,
			Extract:    page.Extract,
			Categories: page.categoryTitles(),
			ViewURL:    c.viewURL(pageTitle),
			EditURL:    c.editURL(pageTitle),
		}
		if page.Thumbnail != nil {
			detail.ThumbnailURL = page.Thumbnail.Source
		}
		return detail, nil
	}
	return nil, nil
}

func (c *client) categoryMembers(ctx context.Context, category string, limit int) ([]model.SearchHit, error) {
	params := url.Values{
		"action":  {"query"},
		"list":    {"categorymembers"},
		"cmtitle": {category},
		"cmlimit": {strconv.Itoa(limit)},
		"cmtype":  {"page"},
	}

	var resp apiResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, goerr.Wrap(err, "category member request failed", goerr.V("category", category))
	}

	members := make([]model.SearchHit, 0, len(resp.Query.CategoryMembers))
	for _, m := range resp.Query.CategoryMembers {
		members = append(members, model.SearchHit{Title: m.Title, PageID: m.PageID})
	}
	return members, nil
}

func (c *client) get(ctx context.Context, params url.Values, out *apiResponse) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params.Set("format", "json")
	params.Set("origin", "*")

	u := *c.endpoint
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(model.Upstream(err), "wikipedia request failed",
			goerr.V(model.EndpointKey, c.endpoint.String()),
		)
	}
	defer safe.Drain(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return goerr.Wrap(model.ErrUpstreamUnavailable, "unexpected wikipedia status",
			goerr.V(model.StatusKey, resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode wikipedia response")
	}
	if out.Error != nil {
		return goerr.Wrap(model.ErrUpstreamUnavailable, "wikipedia API error",
			goerr.V("code", out.Error.Code),
			goerr.V("info", out.Error.Info),
		)
	}
	return nil
}

// pagePath converts a title to its URL path segment: spaces become underscores, then escaped
func pagePath(title string) string {
	return url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

func (c *client) viewURL(title string) string {
	return c.site + "/wiki/" + pagePath(title)
}

func (c *client) editURL(title string) string {
	return c.site + "/w/index.php?title=" + pagePath(title) + "&action=edit"
}

// stripHTML returns the text content of a search snippet such as
// `<span class="searchmatch">river</span> delta`.
func stripHTML(snippet string) string {
	if !strings.ContainsAny(snippet, "<&") {
		return snippet
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snippet))
	if err != nil {
		return snippet
	}
	return strings.TrimSpace(doc.Text())
}

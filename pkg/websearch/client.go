package websearch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html"
)

const (
	searchEndpoint = "https://serpapi.com/search.json"

	// crawlBudget caps the text extracted from any single page.
	crawlBudget  = 5000
	crawlTimeout = 10 * time.Second
)

// Result is one organic search hit.
type Result struct {
	Title          string `json:"title"`
	Link           string `json:"link"`
	Snippet        string `json:"snippet"`
	Position       int    `json:"position"`
	CrawledContent string `json:"crawled_content,omitempty"`
	CrawlError     string `json:"crawl_error,omitempty"`
}

// SearchResponse is the aggregated outcome of a search (and optional
// crawl of the top results).
type SearchResponse struct {
	Query        string   `json:"query"`
	Results      []Result `json:"results"`
	TotalResults int64    `json:"total_results"`
}

type Client struct {
	httpClient  *resty.Client
	crawlClient *resty.Client
	apiKey      string
	proxyURL    string
}

func NewClient(apiKey, proxyURL string) *Client {
	return &Client{
		httpClient: resty.New(),
		crawlClient: resty.New().
			SetTimeout(crawlTimeout),
		apiKey:   apiKey,
		proxyURL: proxyURL,
	}
}

// serpResponse mirrors the subset of the SerpAPI payload we consume.
type serpResponse struct {
	OrganicResults []struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
		Position int    `json:"position"`
	} `json:"organic_results"`
	SearchInformation struct {
		TotalResults int64 `json:"total_results"`
	} `json:"search_information"`
}

// Search queries the hosted search API. A missing API key fails only
// this call, not the application.
func (c *Client) Search(ctx context.Context, query string, numResults int) (*SearchResponse, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, fmt.Errorf("search API key not configured")
	}
	if numResults <= 0 {
		numResults = 5
	}

	var result serpResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"engine":  "google",
			"q":       query,
			"api_key": c.apiKey,
			"num":     fmt.Sprintf("%d", numResults),
		}).
		SetResult(&result).
		Get(searchEndpoint)
	if err != nil {
		return nil, fmt.Errorf("web search failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("web search failed: status %d", resp.StatusCode())
	}

	out := &SearchResponse{
		Query:        query,
		TotalResults: result.SearchInformation.TotalResults,
		Results:      make([]Result, 0, len(result.OrganicResults)),
	}
	for _, r := range result.OrganicResults {
		out.Results = append(out.Results, Result{
			Title:    r.Title,
			Link:     r.Link,
			Snippet:  r.Snippet,
			Position: r.Position,
		})
	}
	return out, nil
}

// Crawl fetches a page (through the relaxing proxy when configured)
// and extracts its visible text, truncated to the character budget.
func (c *Client) Crawl(ctx context.Context, pageURL string) (string, error) {
	target := pageURL
	if c.proxyURL != "" {
		target = c.proxyURL + url.QueryEscape(pageURL)
	}

	resp, err := c.crawlClient.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		return "", fmt.Errorf("failed to crawl %s: %w", pageURL, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("failed to crawl %s: status %d", pageURL, resp.StatusCode())
	}

	text := extractText(resp.String())
	if text == "" {
		return "Unable to extract content from this page.", nil
	}
	return text, nil
}

// SearchAndCrawl searches and, when requested, crawls the top three
// results. A single page's failure is captured on its result row
// rather than aborting the batch.
func (c *Client) SearchAndCrawl(ctx context.Context, query string, crawlResults bool, numResults int) (*SearchResponse, error) {
	res, err := c.Search(ctx, query, numResults)
	if err != nil {
		return nil, err
	}
	if !crawlResults {
		return res, nil
	}

	limit := len(res.Results)
	if limit > 3 {
		limit = 3
	}
	for i := 0; i < limit; i++ {
		content, err := c.Crawl(ctx, res.Results[i].Link)
		if err != nil {
			res.Results[i].CrawlError = err.Error()
			continue
		}
		res.Results[i].CrawledContent = content
	}
	return res, nil
}

// extractText walks the HTML tree collecting text nodes, skipping
// script and style subtrees, collapsing whitespace, and enforcing the
// character budget.
func extractText(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	text := strings.Join(strings.Fields(sb.String()), " ")
	if r := []rune(text); len(r) > crawlBudget {
		text = string(r[:crawlBudget])
	}
	return text
}

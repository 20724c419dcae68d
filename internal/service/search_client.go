package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// SearchClient talks to the web-search/extraction API and lifts structured
// listing facts out of free-text results. Extraction is best-effort pattern
// matching: a pattern that finds nothing omits its field, never errors.
type SearchClient struct {
	httpClient *resty.Client
	numResults int
	logger     *zap.Logger
}

func NewSearchClient(baseURL, apiKey string, numResults int, logger *zap.Logger) *SearchClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(20 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetHeader("x-api-key", apiKey).
		SetHeader("Content-Type", "application/json")

	if numResults <= 0 {
		numResults = 10
	}
	return &SearchClient{httpClient: client, numResults: numResults, logger: logger}
}

// SearchResult is one raw web result.
type SearchResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

func (c *SearchClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	var out searchResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"query":      query,
			"numResults": c.numResults,
			"contents":   map[string]any{"text": true},
		}).
		SetResult(&out).
		Post("/search")
	if err := vendorErr("web search", resp, err); err != nil {
		return nil, err
	}
	c.logger.Info("Web search completed",
		zap.String("query", query),
		zap.Int("results", len(out.Results)),
	)
	return out.Results, nil
}

// ExtractedListing holds whatever facts the text yielded. Empty fields mean
// the pattern did not fire.
type ExtractedListing struct {
	Price         string `json:"price,omitempty"`
	Area          string `json:"area,omitempty"`
	BHK           string `json:"bhk,omitempty"`
	Location      string `json:"location,omitempty"`
	Furnishing    string `json:"furnishing,omitempty"`
	Amenities     string `json:"amenities,omitempty"`
	ContactNumber string `json:"contact_number,omitempty"`
	SourceURL     string `json:"source_url,omitempty"`
}

var (
	priceRe      = regexp.MustCompile(`(?i)(?:₹|rs\.?\s?|inr\s?)([\d,]+(?:\.\d+)?)`)
	areaRe       = regexp.MustCompile(`(?i)([\d,]+)\s*(?:sq\.?\s?ft|sqft|square\s+feet)`)
	bhkRe        = regexp.MustCompile(`(?i)(\d+)\s*bhk`)
	locationRe   = regexp.MustCompile(`(?i)(?:located\s+in|location\s*[:\-])\s*([a-z][a-z0-9 ]{2,40})`)
	furnishingRe = regexp.MustCompile(`(?i)(semi[\s-]?furnished|unfurnished|fully[\s-]?furnished|furnished)`)
	contactRe    = regexp.MustCompile(`(?:\+?\d[\d\s()-]{8,}\d)`)
)

// Known amenity tokens scanned for in listing text.
var amenityTokens = []string{
	"gym", "parking", "lift", "swimming pool", "security",
	"power backup", "clubhouse", "garden", "wifi",
}

// ExtractListing lifts listing fields from one free-text search result.
func ExtractListing(text string) ExtractedListing {
	out := ExtractedListing{}

	if m := priceRe.FindStringSubmatch(text); m != nil {
		out.Price = m[1]
	}
	if m := areaRe.FindStringSubmatch(text); m != nil {
		out.Area = m[1]
	}
	if m := bhkRe.FindStringSubmatch(text); m != nil {
		out.BHK = m[1]
	}
	if m := locationRe.FindStringSubmatch(text); m != nil {
		out.Location = strings.TrimSpace(m[1])
	}
	if m := furnishingRe.FindStringSubmatch(text); m != nil {
		out.Furnishing = strings.ToLower(strings.ReplaceAll(m[1], " ", "-"))
	}
	if m := contactRe.FindString(text); m != "" {
		out.ContactNumber = strings.TrimSpace(m)
	}

	lower := strings.ToLower(text)
	var found []string
	for _, token := range amenityTokens {
		if strings.Contains(lower, token) {
			found = append(found, token)
		}
	}
	out.Amenities = strings.Join(found, ", ")

	return out
}

// SearchListings runs a query and extracts facts from every result.
func (c *SearchClient) SearchListings(ctx context.Context, query string) ([]ExtractedListing, error) {
	results, err := c.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	listings := make([]ExtractedListing, 0, len(results))
	for _, r := range results {
		listing := ExtractListing(r.Title + "\n" + r.Text)
		listing.SourceURL = r.URL
		listings = append(listings, listing)
	}
	return listings, nil
}

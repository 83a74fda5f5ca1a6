package scripture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/japaniel/bulletiner/pkg/logx"
)

// Reading is one scripture passage with inline verse numbers, split into
// prose paragraphs.
type Reading struct {
	Reference  string
	Paragraphs []string
	Available  bool // false when the placeholder stands in for fetched text
}

// Text returns the full passage with paragraph breaks.
func (r Reading) Text() string {
	return strings.Join(r.Paragraphs, "\n\n")
}

// Segments tokenizes the whole reading into verse segments, paragraph by
// paragraph.
func (r Reading) Segments() [][]Segment {
	out := make([][]Segment, 0, len(r.Paragraphs))
	for _, p := range r.Paragraphs {
		out = append(out, SplitVerses(p))
	}
	return out
}

// Placeholder returns the stand-in reading used when the provider is
// unavailable: the bare citation in brackets, so a document can still be
// produced.
func Placeholder(reference string) Reading {
	return Reading{
		Reference:  reference,
		Paragraphs: []string{fmt.Sprintf("[Reading text not available: %s]", reference)},
	}
}

// maxBodySize caps provider responses to keep a misbehaving upstream from
// exhausting memory.
const maxBodySize = 10 * 1024 * 1024

// Client fetches passages from the scripture text provider.
type Client struct {
	BaseURL string
	// Params are fixed query parameters sent with every request
	// (translation, verse numbering, heading suppression).
	Params map[string]string
	// Delay is the politeness pause between consecutive requests in FetchAll.
	Delay time.Duration

	HTTPClient *http.Client
}

// NewClient returns a Client with the given provider base URL and fixed
// query parameters.
func NewClient(baseURL string, params map[string]string, delay time.Duration) *Client {
	return &Client{
		BaseURL:    baseURL,
		Params:     params,
		Delay:      delay,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch retrieves one passage and extracts its text from the provider HTML.
func (c *Client) Fetch(ctx context.Context, reference string) (Reading, error) {
	reqURL, err := c.passageURL(reference)
	if err != nil {
		return Reading{}, err
	}

	logx.Debug("fetching passage", "reference", reference, "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Reading{}, fmt.Errorf("build request: %w", err)
	}
	// Some providers refuse requests without a browser-looking UA.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Reading{}, fmt.Errorf("fetch %q: %w", reference, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Reading{}, fmt.Errorf("fetch %q: status %d", reference, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Reading{}, fmt.Errorf("read body: %w", err)
	}

	parsedURL, _ := url.Parse(reqURL)
	article, err := readability.FromReader(strings.NewReader(string(body)), parsedURL)
	if err != nil {
		return Reading{}, fmt.Errorf("extract %q: %w", reference, err)
	}

	paragraphs := cleanParagraphs(article.TextContent)
	if len(paragraphs) == 0 {
		return Reading{}, fmt.Errorf("no scripture text found for %q", reference)
	}

	return Reading{Reference: reference, Paragraphs: paragraphs, Available: true}, nil
}

// Ref labels one passage to fetch.
type Ref struct {
	Label     string
	Reference string
}

// FetchAll retrieves several passages sequentially with the politeness
// delay between requests. A failed fetch yields the placeholder reading for
// that label and never fails the batch.
func (c *Client) FetchAll(ctx context.Context, refs []Ref) map[string]Reading {
	results := make(map[string]Reading, len(refs))
	for i, r := range refs {
		if r.Reference == "" {
			continue
		}
		if i > 0 && c.Delay > 0 {
			select {
			case <-time.After(c.Delay):
			case <-ctx.Done():
			}
		}
		reading, err := c.Fetch(ctx, r.Reference)
		if err != nil {
			logx.Error("could not fetch reading, using placeholder", err,
				"label", r.Label, "reference", r.Reference)
			reading = Placeholder(r.Reference)
		}
		results[r.Label] = reading
	}
	return results
}

func (c *Client) passageURL(reference string) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("bad provider URL: %w", err)
	}
	q := u.Query()
	for k, v := range c.Params {
		q.Set(k, v)
	}
	q.Set("passage", reference)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

var paragraphBreakRe = regexp.MustCompile(`\n\s*\n`)

// cleanParagraphs splits extracted text on blank lines and scrubs provider
// artifacts: liturgical-break asterisks and doubled spaces.
func cleanParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "*", "")
	var out []string
	for _, p := range paragraphBreakRe.Split(text, -1) {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

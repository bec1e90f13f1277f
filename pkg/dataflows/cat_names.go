package dataflows

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// builtinCatNames is the fallback rotation of popular cat names used when
// no registry page is configured or scraping fails.
var builtinCatNames = []string{
	"Musk", "Buffet", "Stonks", "Meowth", "Coin",
	"Tesla", "Cash", "Whiskers", "Bitcoin", "Luna",
}

// CatNameClient returns ordered lists of cat names, either from the
// built-in rotation or scraped from a configured registry page.
type CatNameClient struct {
	client *resty.Client
	config *Config
}

// NewCatNameClient creates a new cat name client
func NewCatNameClient(config *Config) *CatNameClient {
	client := resty.New().
		SetTimeout(15*time.Second).
		SetHeader("User-Agent", "catstonks/1.0")

	return &CatNameClient{
		client: client,
		config: config,
	}
}

// FetchNames returns count cat names in a stable order. When a registry URL
// is configured and online tools are enabled it scrapes names from that
// page, falling back to the built-in rotation on any failure. An empty
// result set is not an error.
func (cn *CatNameClient) FetchNames(ctx context.Context, count int) ([]string, error) {
	if count <= 0 {
		return []string{}, nil
	}

	if cn.config.NamesURL != "" && cn.config.OnlineTools {
		names, err := cn.scrapeNames(ctx, cn.config.NamesURL)
		if err != nil {
			log.Printf("cat name scrape failed, using built-in list: %v", err)
		} else if len(names) > 0 {
			return cycleNames(names, count), nil
		}
	}

	return cycleNames(builtinCatNames, count), nil
}

// scrapeNames pulls cat names from list items and table cells of a
// registry page.
func (cn *CatNameClient) scrapeNames(ctx context.Context, pageURL string) ([]string, error) {
	var names []string
	err := WithRetry(ctx, DefaultRetryConfig(), func() error {
		resp, err := cn.client.R().SetContext(ctx).Get(pageURL)
		if err != nil {
			return fmt.Errorf("failed to fetch cat names: %w", err)
		}

		if resp.StatusCode() != 200 {
			return fmt.Errorf("HTTP error %d when fetching cat names", resp.StatusCode())
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
		if err != nil {
			return fmt.Errorf("failed to parse HTML: %w", err)
		}

		names = names[:0]
		doc.Find("li, td").Each(func(_ int, sel *goquery.Selection) {
			name := strings.TrimSpace(sel.Text())
			if isPlausibleCatName(name) {
				names = append(names, name)
			}
		})
		return nil
	})

	return names, err
}

// cycleNames repeats the source list until count names are produced,
// preserving the source order.
func cycleNames(source []string, count int) []string {
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, source[i%len(source)])
	}
	return result
}

func isPlausibleCatName(name string) bool {
	if name == "" || len(name) > 30 {
		return false
	}
	return !strings.ContainsAny(name, "\n\t0123456789")
}

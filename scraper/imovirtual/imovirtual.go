package imovirtual

import (
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/BillDFrank/Predict-apartment-price-Project/config"
	"github.com/BillDFrank/Predict-apartment-price-Project/models"
	"github.com/BillDFrank/Predict-apartment-price-Project/utils"
)

const (
	baseURL       = "https://www.imovirtual.com"
	searchURLTmpl = baseURL + "/pt/resultados/comprar/apartamento/todo-o-pais?viewType=listing&page=%d"

	labelConstructionYear = "Ano de construção"
	labelCertificate      = "Certificado energético"
)

// userAgents is the pool of client-identity strings rotated across detail
// requests to spread the request signature.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0",
}

// Client fetches Imovirtual search-result pages and listing detail pages.
// All requests share one http.Client with a bounded timeout.
type Client struct {
	httpClient *http.Client
	logger     *utils.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// New creates a ready-to-use Imovirtual client.
func New(cfg *config.Config, logger *utils.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond,
		},
		logger: logger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *Client) userAgent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return userAgents[c.rnd.Intn(len(userAgents))]
}

func (c *Client) get(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("imovirtual: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent())
	req.Header.Set("Accept-Language", "pt-PT,pt;q=0.9")
	return c.httpClient.Do(req)
}

// FetchSummaryPage retrieves one search-results page and extracts its listing
// cards. An empty result means either the pagination is exhausted or the page
// could not be retrieved; the caller treats both as the stop condition.
func (c *Client) FetchSummaryPage(page int) ([]models.SummaryListing, error) {
	url := fmt.Sprintf(searchURLTmpl, page)

	resp, err := c.get(url)
	if err != nil {
		return nil, fmt.Errorf("imovirtual: fetch page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("[imovirtual] Failed to retrieve page %d — status %d", page, resp.StatusCode)
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("imovirtual: parse page %d: %w", page, err)
	}

	listings := parseSummaryPage(doc, page, time.Now().Format("2006-01-02"))
	if len(listings) == 0 {
		c.logger.Warn("[imovirtual] No listings found on page %d — selectors or page structure may have changed", page)
	}
	return listings, nil
}

// parseSummaryPage extracts listing cards from a search-results document.
func parseSummaryPage(doc *goquery.Document, page int, scrapeDate string) []models.SummaryListing {
	var listings []models.SummaryListing

	doc.Find("article[data-cy=listing-item]").Each(func(_ int, card *goquery.Selection) {
		l := models.SummaryListing{
			Page:       page,
			ScrapeDate: scrapeDate,
		}

		if href, ok := card.Find("a").First().Attr("href"); ok && href != "" {
			if strings.HasPrefix(href, "http") {
				l.URL = href
			} else {
				l.URL = baseURL + href
			}
		}

		l.Title = strings.TrimSpace(card.Find("p.css-u3orbr").First().Text())
		l.Price = strings.TrimSpace(card.Find("span.css-2bt9f1").First().Text())
		l.Location = strings.TrimSpace(card.Find("p.css-42r2ms").First().Text())

		// The dl holds label/value pairs; Tipologia is the room count and the
		// area can appear under either "Área" or "Zona".
		dl := card.Find("dl.css-12dsp7a").First()
		dts := dl.Find("dt")
		dds := dl.Find("dd")
		n := dts.Length()
		if dds.Length() < n {
			n = dds.Length()
		}
		for i := 0; i < n; i++ {
			label := strings.TrimSpace(dts.Eq(i).Text())
			value := strings.TrimSpace(dds.Eq(i).Text())
			switch label {
			case "Tipologia":
				l.Rooms = value
			case "Área", "Zona":
				l.AreaText = value
			}
		}

		listings = append(listings, l)
	})

	return listings
}

// FetchDetail retrieves a single listing's own page and extracts the
// secondary fields. Fields that cannot be located resolve to the "N/A"
// sentinel rather than being left absent.
func (c *Client) FetchDetail(url string) (models.DetailFields, error) {
	resp, err := c.get(url)
	if err != nil {
		return models.DetailFields{}, fmt.Errorf("imovirtual: fetch detail %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.DetailFields{}, fmt.Errorf("imovirtual: detail %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return models.DetailFields{}, fmt.Errorf("imovirtual: parse detail %s: %w", url, err)
	}

	return parseDetailPage(doc), nil
}

// parseDetailPage extracts the three backfill fields from a listing page.
// Each extraction is independent; a missing element leaves that field at the
// sentinel without affecting the others.
func parseDetailPage(doc *goquery.Document) models.DetailFields {
	fields := models.DetailFields{
		Bathrooms:            models.NotAvailable,
		ConstructionYear:     models.NotAvailable,
		EnergeticCertificate: models.NotAvailable,
	}

	// The bathroom count sits in the third of the equally-structured summary
	// controls at the top of the page.
	buttons := doc.Find("button.eezlw8k1.css-ds0a69")
	if buttons.Length() >= 3 {
		if v := strings.TrimSpace(buttons.Eq(2).Find("div.css-1ftqasz").Text()); v != "" {
			fields.Bathrooms = v
		}
	}

	// Construction year and certificate are label/value <p> pairs scanned in
	// document order, stopping once both labels have been matched.
	ps := doc.Find("div.css-t7cajz.e16p81cp1 p.e16p81cp2.css-nlohq6")
	for i := 0; i < ps.Length()-1; i++ {
		label := strings.TrimSpace(ps.Eq(i).Text())
		switch {
		case strings.Contains(label, labelConstructionYear):
			if v := strings.TrimSpace(ps.Eq(i + 1).Text()); v != "" {
				fields.ConstructionYear = v
			}
		case strings.Contains(label, labelCertificate):
			if v := strings.TrimSpace(ps.Eq(i + 1).Text()); v != "" {
				fields.EnergeticCertificate = v
			}
		}
		if fields.ConstructionYear != models.NotAvailable &&
			fields.EnergeticCertificate != models.NotAvailable {
			break
		}
	}

	return fields
}

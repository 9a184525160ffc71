package imovirtual

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/BillDFrank/Predict-apartment-price-Project/models"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

const summaryFixture = `
<html><body>
<article data-cy="listing-item">
  <a href="/pt/anuncio/t3-lisboa-ID1"></a>
  <p class="css-u3orbr">T3 em Lisboa</p>
  <span class="css-2bt9f1">350 000 €</span>
  <p class="css-42r2ms">Lisboa, Arroios</p>
  <dl class="css-12dsp7a">
    <dt>Tipologia</dt><dd>T3</dd>
    <dt>Área</dt><dd>120 m²</dd>
  </dl>
</article>
<article data-cy="listing-item">
  <a href="https://www.imovirtual.com/pt/anuncio/t1-porto-ID2"></a>
  <p class="css-u3orbr">T1 no Porto</p>
  <span class="css-2bt9f1">180 000 €</span>
  <dl class="css-12dsp7a">
    <dt>Tipologia</dt><dd>T1</dd>
    <dt>Zona</dt><dd>55 m²</dd>
  </dl>
</article>
</body></html>`

func TestParseSummaryPage(t *testing.T) {
	doc := parseDoc(t, summaryFixture)

	listings := parseSummaryPage(doc, 3, "2026-09-01")
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}

	first := listings[0]
	if first.Page != 3 {
		t.Errorf("page = %d; want 3", first.Page)
	}
	if first.URL != "https://www.imovirtual.com/pt/anuncio/t3-lisboa-ID1" {
		t.Errorf("unexpected URL %q", first.URL)
	}
	if first.Title != "T3 em Lisboa" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Price != "350 000 €" {
		t.Errorf("price = %q", first.Price)
	}
	if first.Location != "Lisboa, Arroios" {
		t.Errorf("location = %q", first.Location)
	}
	if first.Rooms != "T3" {
		t.Errorf("rooms = %q", first.Rooms)
	}
	if first.AreaText != "120 m²" {
		t.Errorf("area text = %q", first.AreaText)
	}
	if first.ScrapeDate != "2026-09-01" {
		t.Errorf("scrape date = %q", first.ScrapeDate)
	}

	second := listings[1]
	if second.URL != "https://www.imovirtual.com/pt/anuncio/t1-porto-ID2" {
		t.Errorf("absolute href should be kept as-is, got %q", second.URL)
	}
	if second.Location != "" {
		t.Errorf("missing location should stay empty, got %q", second.Location)
	}
	if second.AreaText != "55 m²" {
		t.Errorf("Zona label should also yield area, got %q", second.AreaText)
	}
}

func TestParseSummaryPageEmpty(t *testing.T) {
	doc := parseDoc(t, `<html><body><div>maintenance page</div></body></html>`)

	if listings := parseSummaryPage(doc, 1, "2026-09-01"); len(listings) != 0 {
		t.Errorf("expected no listings, got %d", len(listings))
	}
}

const detailFixture = `
<html><body>
<button class="eezlw8k1 css-ds0a69"><div class="css-1ftqasz">T3</div></button>
<button class="eezlw8k1 css-ds0a69"><div class="css-1ftqasz">120 m²</div></button>
<button class="eezlw8k1 css-ds0a69"><div class="css-1ftqasz">2 banheiros</div></button>
<div class="css-t7cajz e16p81cp1">
  <p class="e16p81cp2 css-nlohq6">Elevador</p>
  <p class="e16p81cp2 css-nlohq6">Sim</p>
  <p class="e16p81cp2 css-nlohq6">Ano de construção</p>
  <p class="e16p81cp2 css-nlohq6">1999</p>
  <p class="e16p81cp2 css-nlohq6">Certificado energético</p>
  <p class="e16p81cp2 css-nlohq6">B-</p>
</div>
</body></html>`

func TestParseDetailPage(t *testing.T) {
	doc := parseDoc(t, detailFixture)

	fields := parseDetailPage(doc)
	if fields.Bathrooms != "2 banheiros" {
		t.Errorf("bathrooms = %q; want %q", fields.Bathrooms, "2 banheiros")
	}
	if fields.ConstructionYear != "1999" {
		t.Errorf("construction year = %q; want %q", fields.ConstructionYear, "1999")
	}
	if fields.EnergeticCertificate != "B-" {
		t.Errorf("certificate = %q; want %q", fields.EnergeticCertificate, "B-")
	}
}

func TestParseDetailPageMissingFields(t *testing.T) {
	// Only two controls and no label/value block: everything falls back to
	// the sentinel.
	doc := parseDoc(t, `
<html><body>
<button class="eezlw8k1 css-ds0a69"><div class="css-1ftqasz">T2</div></button>
<button class="eezlw8k1 css-ds0a69"><div class="css-1ftqasz">80 m²</div></button>
</body></html>`)

	fields := parseDetailPage(doc)
	if fields.Bathrooms != models.NotAvailable {
		t.Errorf("bathrooms = %q; want sentinel", fields.Bathrooms)
	}
	if fields.ConstructionYear != models.NotAvailable {
		t.Errorf("construction year = %q; want sentinel", fields.ConstructionYear)
	}
	if fields.EnergeticCertificate != models.NotAvailable {
		t.Errorf("certificate = %q; want sentinel", fields.EnergeticCertificate)
	}
}

func TestParseDetailPagePartialLabels(t *testing.T) {
	// One label present, one absent: extractions are independent.
	doc := parseDoc(t, `
<html><body>
<div class="css-t7cajz e16p81cp1">
  <p class="e16p81cp2 css-nlohq6">Ano de construção</p>
  <p class="e16p81cp2 css-nlohq6">2005</p>
</div>
</body></html>`)

	fields := parseDetailPage(doc)
	if fields.ConstructionYear != "2005" {
		t.Errorf("construction year = %q; want %q", fields.ConstructionYear, "2005")
	}
	if fields.EnergeticCertificate != models.NotAvailable {
		t.Errorf("certificate = %q; want sentinel", fields.EnergeticCertificate)
	}
	if fields.Bathrooms != models.NotAvailable {
		t.Errorf("bathrooms = %q; want sentinel", fields.Bathrooms)
	}
}

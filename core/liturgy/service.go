// ABOUTME: Liturgy service is the supplementary content provider for the public feed
// ABOUTME: Fetches the daily liturgical document and renders it as a synthetic feed item

package liturgy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"microfeed-api/core/builder"
	coreerrors "microfeed-api/core/errors"
	"microfeed-api/core/interfaces"
	htmlutil "microfeed-api/pkg/utils/html"

	"github.com/goccy/go-json"
)

// Document is the structured liturgical document returned by the provider.
type Document struct {
	Date     string   `json:"data"`
	Title    string   `json:"liturgia"`
	Color    string   `json:"cor"`
	Readings Readings `json:"leituras"`
	Prayers  Prayers  `json:"oracoes"`
}

// Reading is one reading, psalm or gospel entry.
type Reading struct {
	Reference string `json:"referencia"`
	Title     string `json:"titulo"`
	Refrain   string `json:"refrao"`
	Text      string `json:"texto"`
	Kind      string `json:"tipo"`
}

// Readings groups the day's readings by liturgical role.
type Readings struct {
	First  []Reading `json:"primeiraLeitura"`
	Psalm  []Reading `json:"salmo"`
	Second []Reading `json:"segundaLeitura"`
	Gospel []Reading `json:"evangelho"`
	Extras []Reading `json:"extras"`
}

// Prayer is one titled prayer text.
type Prayer struct {
	Title string `json:"titulo"`
	Text  string `json:"texto"`
}

// Prayers groups the day's prayers.
type Prayers struct {
	Collect   string   `json:"coleta"`
	Offerings string   `json:"oferendas"`
	Communion string   `json:"comunhao"`
	Extras    []Prayer `json:"extras"`
}

// Service fetches the daily liturgy and renders it as a synthetic item.
// It implements builder.SupplementaryProvider; every failure mode returns
// an error for the orchestrator to swallow.
type Service struct {
	deps interfaces.Dependencies
	url  string
}

// NewService creates a liturgy service fetching from the given URL.
func NewService(deps interfaces.Dependencies, url string) *Service {
	return &Service{deps: deps, url: url}
}

// FetchDailyItem retrieves today's liturgical document and renders it.
func (s *Service) FetchDailyItem(ctx context.Context) (*builder.PublicItem, error) {
	if s.deps.HTTPClient == nil {
		return nil, errors.New("HTTP client not configured")
	}

	resp, err := s.deps.HTTPClient.Get(ctx, s.url)
	if err != nil {
		return nil, coreerrors.WrapError(err, "liturgy fetch failed")
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		return nil, coreerrors.Upstream(s.url, resp.StatusCode(), "liturgy provider returned non-200 status")
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, coreerrors.WrapError(err, "liturgy body read failed")
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, coreerrors.WrapError(err, "liturgy body decode failed")
	}
	if doc.Date == "" {
		return nil, errors.New("liturgy document has no date")
	}

	return s.renderItem(&doc), nil
}

// renderItem produces the synthetic feed item from a liturgical document.
func (s *Service) renderItem(doc *Document) *builder.PublicItem {
	contentHTML := s.renderHTML(doc)

	return &builder.PublicItem{
		ID:            "liturgia-" + strings.ReplaceAll(doc.Date, "/", "-"),
		Title:         "Liturgia Diária: " + doc.Date,
		URL:           "#liturgia",
		DatePublished: time.Now().UTC().Format(time.RFC3339),
		ContentHTML:   map[string]string{"pt": contentHTML},
		ContentText:   map[string]string{"pt": htmlutil.StripHTML(contentHTML)},
		Microfeed: &builder.ItemExtension{
			Status: "published",
			Metadata: &builder.Metadata{
				Type:  "liturgia",
				Tags:  []string{strings.ToLower(doc.Color)},
				Date:  &doc.Date,
				Color: doc.Color,
			},
		},
	}
}

// renderHTML renders the document with the fixed liturgy template: title,
// color line, readings sections and prayers sections.
func (s *Service) renderHTML(doc *Document) string {
	var out strings.Builder

	fmt.Fprintf(&out, "<h1>%s</h1>", doc.Title)
	fmt.Fprintf(&out, `<p style="text-transform: capitalize; font-weight: bold;">Cor Litúrgica: %s</p>`, doc.Color)

	readings := doc.Readings
	hasReadings := len(readings.First)+len(readings.Psalm)+len(readings.Second)+
		len(readings.Gospel)+len(readings.Extras) > 0
	if hasReadings {
		out.WriteString("<h2>Leituras</h2>")
		renderReadings(&out, readings.First, "Primeira Leitura")
		renderReadings(&out, readings.Psalm, "Salmo Responsorial")
		renderReadings(&out, readings.Second, "Segunda Leitura")
		renderReadings(&out, readings.Gospel, "Evangelho")
		for _, extra := range readings.Extras {
			title := extra.Kind
			if title == "" {
				title = "Extra"
			}
			renderReadings(&out, []Reading{extra}, title)
		}
	}

	prayers := doc.Prayers
	hasPrayers := prayers.Collect != "" || prayers.Offerings != "" ||
		prayers.Communion != "" || len(prayers.Extras) > 0
	if hasPrayers {
		out.WriteString("<h2>Orações</h2>")
		if prayers.Collect != "" {
			fmt.Fprintf(&out, "<h3>Coleta</h3><p>%s</p>", breakLines(prayers.Collect))
		}
		if prayers.Offerings != "" {
			fmt.Fprintf(&out, "<h3>Sobre as Oferendas</h3><p>%s</p>", breakLines(prayers.Offerings))
		}
		if prayers.Communion != "" {
			fmt.Fprintf(&out, "<h3>Antífona da Comunhão</h3><p>%s</p>", breakLines(prayers.Communion))
		}
		for _, extra := range prayers.Extras {
			fmt.Fprintf(&out, "<h3>%s</h3><p>%s</p>", extra.Title, breakLines(extra.Text))
		}
	}

	return out.String()
}

// renderReadings renders one group of readings under a default title.
func renderReadings(out *strings.Builder, readings []Reading, defaultTitle string) {
	for _, r := range readings {
		title := r.Title
		if title == "" {
			title = defaultTitle
		}
		out.WriteString("<div>")
		fmt.Fprintf(out, "<h3>%s (%s)</h3>", title, r.Reference)
		if r.Refrain != "" {
			fmt.Fprintf(out, `<blockquote style="font-style: italic;"><strong>R.</strong> %s</blockquote>`, r.Refrain)
		}
		fmt.Fprintf(out, "<p>%s</p>", breakLines(r.Text))
		out.WriteString("</div>")
	}
}

func breakLines(text string) string {
	return strings.ReplaceAll(text, "\n", "<br>")
}

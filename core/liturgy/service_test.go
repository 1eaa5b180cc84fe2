package liturgy

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	coreerrors "microfeed-api/core/errors"
	"microfeed-api/core/interfaces"
)

// mockHTTPClient is a mock implementation of the HTTPClient interface
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string) (interfaces.Response, error)
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	return m.getFunc(ctx, url)
}

// mockResponse is a mock implementation of the Response interface
type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int        { return m.statusCode }
func (m *mockResponse) Body() io.ReadCloser    { return io.NopCloser(strings.NewReader(m.body)) }
func (m *mockResponse) Header(key string) string { return "" }

const liturgyJSON = `{
	"data": "19/03/2024",
	"liturgia": "São José, Esposo da Virgem Maria",
	"cor": "Branco",
	"leituras": {
		"primeiraLeitura": [{"referencia": "2Sm 7,4-5a", "texto": "Naquele dia..."}],
		"salmo": [{"referencia": "Sl 88", "refrao": "Sua descendência permanecerá", "texto": "Cantarei\neternamente"}],
		"evangelho": [{"referencia": "Mt 1,16", "texto": "Jacó gerou José..."}]
	},
	"oracoes": {
		"coleta": "Ó Deus...",
		"comunhao": "Servo fiel"
	}
}`

func depsWith(status int, body string) interfaces.Dependencies {
	return interfaces.Dependencies{
		HTTPClient: &mockHTTPClient{
			getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
				return &mockResponse{statusCode: status, body: body}, nil
			},
		},
	}
}

func TestFetchDailyItem_RendersDocument(t *testing.T) {
	service := NewService(depsWith(200, liturgyJSON), "https://liturgy.example.com/today")

	item, err := service.FetchDailyItem(context.Background())
	if err != nil {
		t.Fatalf("FetchDailyItem returned error: %v", err)
	}

	if item.ID != "liturgia-19-03-2024" {
		t.Errorf("ID = %q, want slashes replaced", item.ID)
	}
	if item.Title != "Liturgia Diária: 19/03/2024" {
		t.Errorf("Title = %q", item.Title)
	}
	if item.URL != "#liturgia" {
		t.Errorf("URL = %q", item.URL)
	}

	html := item.ContentHTML["pt"]
	for _, fragment := range []string{
		"<h1>São José, Esposo da Virgem Maria</h1>",
		"Cor Litúrgica: Branco",
		"<h2>Leituras</h2>",
		"<h3>Primeira Leitura (2Sm 7,4-5a)</h3>",
		"<strong>R.</strong> Sua descendência permanecerá",
		"Cantarei<br>eternamente",
		"<h3>Evangelho (Mt 1,16)</h3>",
		"<h2>Orações</h2>",
		"<h3>Coleta</h3>",
		"<h3>Antífona da Comunhão</h3>",
	} {
		if !strings.Contains(html, fragment) {
			t.Errorf("ContentHTML missing %q", fragment)
		}
	}
	if strings.Contains(html, "Segunda Leitura") {
		t.Error("empty reading group must not render")
	}
	if strings.Contains(html, "Sobre as Oferendas") {
		t.Error("empty prayer must not render")
	}

	meta := item.Microfeed.Metadata
	if meta.Type != "liturgia" {
		t.Errorf("metadata type = %q", meta.Type)
	}
	if len(meta.Tags) != 1 || meta.Tags[0] != "branco" {
		t.Errorf("metadata tags = %v, want lower-cased color", meta.Tags)
	}
	if meta.Date == nil || *meta.Date != "19/03/2024" {
		t.Errorf("metadata date = %v", meta.Date)
	}
	if meta.Color != "Branco" {
		t.Errorf("metadata color = %q", meta.Color)
	}
	if item.Microfeed.Status != "published" {
		t.Errorf("status = %q", item.Microfeed.Status)
	}

	if !strings.Contains(item.ContentText["pt"], "São José, Esposo da Virgem Maria") {
		t.Errorf("ContentText[pt] = %q", item.ContentText["pt"])
	}
	if strings.Contains(item.ContentText["pt"], "<") {
		t.Error("ContentText must carry no markup")
	}
}

func TestFetchDailyItem_NoHTTPClient(t *testing.T) {
	service := NewService(interfaces.Dependencies{}, "https://liturgy.example.com")

	item, err := service.FetchDailyItem(context.Background())
	if err == nil {
		t.Error("expected error without HTTP client")
	}
	if item != nil {
		t.Error("item must be nil on failure")
	}
}

func TestFetchDailyItem_TransportError(t *testing.T) {
	deps := interfaces.Dependencies{
		HTTPClient: &mockHTTPClient{
			getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
				return nil, errors.New("connection refused")
			},
		},
	}
	service := NewService(deps, "https://liturgy.example.com")

	if _, err := service.FetchDailyItem(context.Background()); err == nil {
		t.Error("expected transport error to propagate")
	}
}

func TestFetchDailyItem_Non200(t *testing.T) {
	service := NewService(depsWith(503, "unavailable"), "https://liturgy.example.com")

	_, err := service.FetchDailyItem(context.Background())
	if err == nil {
		t.Fatal("expected error on non-200 status")
	}
	if !coreerrors.IsExternalAPI(err) {
		t.Errorf("error = %T, want ExternalAPIError", err)
	}
}

func TestFetchDailyItem_InvalidJSON(t *testing.T) {
	service := NewService(depsWith(200, "not json"), "https://liturgy.example.com")

	if _, err := service.FetchDailyItem(context.Background()); err == nil {
		t.Error("expected decode error")
	}
}

func TestFetchDailyItem_MissingDate(t *testing.T) {
	service := NewService(depsWith(200, `{"liturgia": "x"}`), "https://liturgy.example.com")

	if _, err := service.FetchDailyItem(context.Background()); err == nil {
		t.Error("expected error for document without date")
	}
}

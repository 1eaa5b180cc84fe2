package importer

import (
	"context"
	"io"
	"strings"
	"testing"

	"microfeed-api/core/domain"
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

func (m *mockResponse) StatusCode() int          { return m.statusCode }
func (m *mockResponse) Body() io.ReadCloser      { return io.NopCloser(strings.NewReader(m.body)) }
func (m *mockResponse) Header(key string) string { return "" }

// mockRepository records saved channels and items
type mockRepository struct {
	channel *domain.Channel
	items   []*domain.Item

	saveItemErr error
}

func (m *mockRepository) FetchContent(ctx context.Context, q interfaces.ContentQuery) (*domain.FeedContent, error) {
	return &domain.FeedContent{}, nil
}

func (m *mockRepository) FetchItem(ctx context.Context, itemID string) (*domain.FeedContent, error) {
	return &domain.FeedContent{}, nil
}

func (m *mockRepository) SaveItem(ctx context.Context, item *domain.Item) error {
	if m.saveItemErr != nil {
		return m.saveItemErr
	}
	m.items = append(m.items, item)
	return nil
}

func (m *mockRepository) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	return nil, nil
}

func (m *mockRepository) SaveChannel(ctx context.Context, channel *domain.Channel) error {
	m.channel = channel
	return nil
}

func (m *mockRepository) SaveSettings(ctx context.Context, settings *domain.Settings) error {
	return nil
}

const podcastRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>Homilias</title>
    <link>https://example.com</link>
    <description>Homilias dominicais</description>
    <language>pt</language>
    <itunes:author>Padre João</itunes:author>
    <itunes:explicit>no</itunes:explicit>
    <itunes:type>episodic</itunes:type>
    <item>
      <title>Primeiro Domingo</title>
      <guid>ep-1</guid>
      <link>https://example.com/ep-1</link>
      <description>Homilia do primeiro domingo</description>
      <pubDate>Tue, 19 Mar 2024 16:00:00 GMT</pubDate>
      <enclosure url="https://cdn.example.com/ep1.mp3" length="2048" type="audio/mpeg"/>
      <itunes:duration>01:02:05</itunes:duration>
      <itunes:episode>1</itunes:episode>
    </item>
    <item>
      <title>Sem GUID</title>
      <link>https://example.com/ep-2</link>
      <description>Entry without a guid</description>
    </item>
  </channel>
</rss>`

func serviceWith(repo *mockRepository, status int, body string) *Service {
	deps := interfaces.Dependencies{
		HTTPClient: &mockHTTPClient{
			getFunc: func(ctx context.Context, url string) (interfaces.Response, error) {
				return &mockResponse{statusCode: status, body: body}, nil
			},
		},
	}
	return NewService(deps, repo)
}

func TestImport_ParsesChannelAndItems(t *testing.T) {
	repo := &mockRepository{}
	service := serviceWith(repo, 200, podcastRSS)

	count, err := service.Import(context.Background(), "https://example.com/feed.xml")
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	if repo.channel == nil {
		t.Fatal("channel not saved")
	}
	if repo.channel.Title != "Homilias" {
		t.Errorf("channel title = %q", repo.channel.Title)
	}
	if repo.channel.Publisher != "Padre João" {
		t.Errorf("publisher = %q, want itunes author", repo.channel.Publisher)
	}
	if repo.channel.ITunesType != "episodic" {
		t.Errorf("itunes type = %q", repo.channel.ITunesType)
	}
	if repo.channel.ITunesExplicit {
		t.Error("explicit = true, want false for 'no'")
	}

	if len(repo.items) != 2 {
		t.Fatalf("saved %d items", len(repo.items))
	}

	first := repo.items[0]
	if first.ID != "ep-1" || first.GUID != "ep-1" {
		t.Errorf("first id/guid = %q/%q", first.ID, first.GUID)
	}
	if first.Status != domain.StatusPublished {
		t.Errorf("status = %d, want published", first.Status)
	}
	if first.PubDateMs != 1710864000000 {
		t.Errorf("PubDateMs = %d", first.PubDateMs)
	}
	if first.MediaFile == nil {
		t.Fatal("media file missing")
	}
	if first.MediaFile.Category != domain.CategoryAudio {
		t.Errorf("category = %q", first.MediaFile.Category)
	}
	if first.MediaFile.SizeByte != 2048 {
		t.Errorf("SizeByte = %d", first.MediaFile.SizeByte)
	}
	if first.MediaFile.DurationSecond != 3725 {
		t.Errorf("DurationSecond = %d", first.MediaFile.DurationSecond)
	}
	if first.ITunesEpisode != "1" {
		t.Errorf("ITunesEpisode = %q", first.ITunesEpisode)
	}

	second := repo.items[1]
	if second.ID != "https://example.com/ep-2" {
		t.Errorf("second id = %q, want link fallback", second.ID)
	}
}

func TestImport_EmptyURL(t *testing.T) {
	service := serviceWith(&mockRepository{}, 200, podcastRSS)

	_, err := service.Import(context.Background(), "")
	if !coreerrors.IsValidation(err) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestImport_InvalidURL(t *testing.T) {
	service := serviceWith(&mockRepository{}, 200, podcastRSS)

	_, err := service.Import(context.Background(), "not a url")
	if !coreerrors.IsValidation(err) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestImport_Non200(t *testing.T) {
	service := serviceWith(&mockRepository{}, 404, "")

	_, err := service.Import(context.Background(), "https://example.com/feed.xml")
	if !coreerrors.IsExternalAPI(err) {
		t.Errorf("error = %v, want external API error", err)
	}
}

func TestImport_UnparseableFeed(t *testing.T) {
	service := serviceWith(&mockRepository{}, 200, "this is not xml")

	if _, err := service.Import(context.Background(), "https://example.com/feed.xml"); err == nil {
		t.Error("expected parse error")
	}
}

func TestCategoryForMime(t *testing.T) {
	tests := []struct {
		mime string
		want domain.EnclosureCategory
	}{
		{"audio/mpeg", domain.CategoryAudio},
		{"video/mp4", domain.CategoryVideo},
		{"image/jpeg", domain.CategoryImage},
		{"application/pdf", domain.CategoryDocument},
		{"", domain.CategoryDocument},
	}

	for _, tt := range tests {
		if got := categoryForMime(tt.mime); got != tt.want {
			t.Errorf("categoryForMime(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}

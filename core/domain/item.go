// ABOUTME: Item domain model represents a single stored episode/post in a feed
// ABOUTME: Provides status and enclosure category enums plus media file validation

package domain

// ItemStatus is the publish status of a stored item.
type ItemStatus int

// Stored item statuses. Only published and unlisted items appear in the
// public feed.
const (
	StatusPublished   ItemStatus = 1
	StatusUnpublished ItemStatus = 2
	StatusDeleted     ItemStatus = 3
	StatusUnlisted    ItemStatus = 4
)

// statusNames maps status codes to their public names.
var statusNames = map[ItemStatus]string{
	StatusPublished:   "published",
	StatusUnpublished: "unpublished",
	StatusDeleted:     "deleted",
	StatusUnlisted:    "unlisted",
}

// Name returns the public name of the status, defaulting to "published"
// for unknown codes.
func (s ItemStatus) Name() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "published"
}

// EnclosureCategory classifies an item's media file.
type EnclosureCategory string

// Media file categories.
const (
	CategoryAudio       EnclosureCategory = "audio"
	CategoryVideo       EnclosureCategory = "video"
	CategoryDocument    EnclosureCategory = "document"
	CategoryExternalURL EnclosureCategory = "external_url"
	CategoryImage       EnclosureCategory = "image"
)

// Item represents an individual episode/post entry in a feed.
type Item struct {
	// ID is the unique identifier for the item
	ID string

	// GUID is the stable identifier echoed in the vendor extension
	GUID string

	// Title is the item's headline
	Title string

	// Link is the item's own URL, if any
	Link string

	// Image is the item image, possibly relative to the public bucket
	Image string

	// Description is rich text; it may embed a metadata directive and
	// language-delimited content blocks
	Description string

	// Status controls whether the item appears in the public feed
	Status ItemStatus

	// PubDateMs is the publish timestamp in Unix milliseconds
	PubDateMs int64

	// UpdatedDateMs is the last-modified timestamp in Unix milliseconds
	UpdatedDateMs int64

	// Language is the item-level language override, if any
	Language string

	// MediaFile is the attached media, nil when the item has none
	MediaFile *MediaFile

	// iTunes item-level fields
	ITunesTitle       string
	ITunesBlock       bool
	ITunesEpisodeType string
	ITunesSeason      string
	ITunesEpisode     string
	ITunesExplicit    bool
}

// MediaFile represents media attached to an item.
type MediaFile struct {
	Category       EnclosureCategory
	URL            string
	ContentType    string
	SizeByte       int64
	DurationSecond int
}

// IsValid reports whether the media file is structurally usable: it must
// at minimum carry a URL.
func (m *MediaFile) IsValid() bool {
	if m == nil {
		return false
	}
	return m.URL != ""
}

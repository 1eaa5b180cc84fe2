// ABOUTME: SQLite content repository supplying the stored feed aggregate
// ABOUTME: Stores channel/settings/items as JSON rows with keyset pagination on publish time and id

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"microfeed-api/core/domain"
	coreerrors "microfeed-api/core/errors"
	"microfeed-api/core/interfaces"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS channels (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS items (
	id TEXT PRIMARY KEY,
	status INTEGER NOT NULL,
	pub_date_ms INTEGER NOT NULL,
	data TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_items_pub_date ON items(pub_date_ms, id);
`

// Repository implements the ContentRepository interface on SQLite.
// Channel, settings and items are stored as JSON documents; the items
// table carries status and publish-time columns for filtering and
// cursor pagination.
type Repository struct {
	db *sql.DB
}

// NewRepository opens (or creates) the database at the given DSN.
func NewRepository(dsn string) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("storage DSN cannot be empty")
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// FetchContent loads the channel, settings and one page of items with the
// pagination cursors for the requested sort order. Cursors pair the publish
// timestamp with the item id so rows sharing a timestamp stay reachable
// across page boundaries.
func (r *Repository) FetchContent(ctx context.Context, q interfaces.ContentQuery) (*domain.FeedContent, error) {
	content := &domain.FeedContent{ItemsSortOrder: q.Sort}

	if err := r.loadChannel(ctx, &content.Channel); err != nil {
		return nil, err
	}
	if err := r.loadSettings(ctx, &content.Settings); err != nil {
		return nil, err
	}

	descending := q.Sort != domain.SortOldestFirst

	query := "SELECT data FROM items"
	args := []interface{}{}

	switch {
	case q.NextCursor != "":
		cursor, err := parseCursor(q.NextCursor)
		if err != nil {
			return nil, err
		}
		cmp := "<"
		if !descending {
			cmp = ">"
		}
		query += " WHERE " + keysetCondition(cmp)
		args = append(args, cursor.ms, cursor.ms, cursor.id)
	case q.PrevCursor != "":
		cursor, err := parseCursor(q.PrevCursor)
		if err != nil {
			return nil, err
		}
		// The previous page lies on the other side of the cursor; it is
		// selected in reverse order and flipped back below.
		cmp := ">"
		if !descending {
			cmp = "<"
		}
		query += " WHERE " + keysetCondition(cmp)
		args = append(args, cursor.ms, cursor.ms, cursor.id)
	}

	backwards := q.PrevCursor != ""
	if descending != backwards {
		query += " ORDER BY pub_date_ms DESC, id DESC"
	} else {
		query += " ORDER BY pub_date_ms ASC, id ASC"
	}
	query += " LIMIT ?"
	args = append(args, q.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var item domain.Item
		if err := json.Unmarshal([]byte(data), &item); err != nil {
			return nil, coreerrors.WrapError(err, "corrupt item row")
		}
		content.Items = append(content.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if backwards {
		reverse(content.Items)
	}

	if err := r.fillCursors(ctx, content, descending); err != nil {
		return nil, err
	}
	return content, nil
}

// fillCursors sets the next/prev cursors by probing for rows beyond each
// edge of the current page.
func (r *Repository) fillCursors(ctx context.Context, content *domain.FeedContent, descending bool) error {
	if len(content.Items) == 0 {
		return nil
	}

	first := content.Items[0]
	last := content.Items[len(content.Items)-1]

	afterCmp, beforeCmp := "<", ">"
	if !descending {
		afterCmp, beforeCmp = ">", "<"
	}

	moreAfter, err := r.rowExists(ctx, afterCmp, last)
	if err != nil {
		return err
	}
	if moreAfter {
		content.ItemsNextCursor = formatCursor(last)
	}

	moreBefore, err := r.rowExists(ctx, beforeCmp, first)
	if err != nil {
		return err
	}
	if moreBefore {
		content.ItemsPrevCursor = formatCursor(first)
	}
	return nil
}

func (r *Repository) rowExists(ctx context.Context, cmp string, edge domain.Item) (bool, error) {
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM items WHERE %s)", keysetCondition(cmp))
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, edge.PubDateMs, edge.PubDateMs, edge.ID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// keysetCondition builds the composite comparison against a cursor; the id
// breaks timestamp ties. Placeholders are ms, ms, id.
func keysetCondition(cmp string) string {
	return fmt.Sprintf("(pub_date_ms %[1]s ? OR (pub_date_ms = ? AND id %[1]s ?))", cmp)
}

// FetchItem loads the aggregate for single-item mode.
func (r *Repository) FetchItem(ctx context.Context, itemID string) (*domain.FeedContent, error) {
	content := &domain.FeedContent{}

	if err := r.loadChannel(ctx, &content.Channel); err != nil {
		return nil, err
	}
	if err := r.loadSettings(ctx, &content.Settings); err != nil {
		return nil, err
	}

	item, err := r.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, coreerrors.ItemNotFound(itemID)
	}

	content.Items = []domain.Item{*item}
	return content, nil
}

// GetItem loads a single raw item, returning nil when it does not exist.
func (r *Repository) GetItem(ctx context.Context, itemID string) (*domain.Item, error) {
	var data string
	err := r.db.QueryRowContext(ctx, "SELECT data FROM items WHERE id = ?", itemID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var item domain.Item
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return nil, coreerrors.WrapError(err, "corrupt item row")
	}
	return &item, nil
}

// SaveItem inserts or updates an item row.
func (r *Repository) SaveItem(ctx context.Context, item *domain.Item) error {
	if item == nil || item.ID == "" {
		return coreerrors.Invalid("item.id", "cannot be empty")
	}

	data, err := json.Marshal(item)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO items (id, status, pub_date_ms, data) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET status = excluded.status,
			pub_date_ms = excluded.pub_date_ms, data = excluded.data`,
		item.ID, int(item.Status), item.PubDateMs, string(data))
	return err
}

// SaveChannel replaces the stored channel metadata.
func (r *Repository) SaveChannel(ctx context.Context, channel *domain.Channel) error {
	return r.saveSingleton(ctx, "channels", channel)
}

// SaveSettings replaces the stored feed settings.
func (r *Repository) SaveSettings(ctx context.Context, settings *domain.Settings) error {
	return r.saveSingleton(ctx, "settings", settings)
}

func (r *Repository) saveSingleton(ctx context.Context, table string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (id, data) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data`, table)
	_, err = r.db.ExecContext(ctx, query, string(data))
	return err
}

func (r *Repository) loadChannel(ctx context.Context, channel *domain.Channel) error {
	return r.loadSingleton(ctx, "channels", channel)
}

func (r *Repository) loadSettings(ctx context.Context, settings *domain.Settings) error {
	return r.loadSingleton(ctx, "settings", settings)
}

// loadSingleton reads the single JSON row of a table; a missing row
// leaves the target at its zero value.
func (r *Repository) loadSingleton(ctx context.Context, table string, target interface{}) error {
	var data string
	query := fmt.Sprintf("SELECT data FROM %s WHERE id = 1", table)
	err := r.db.QueryRowContext(ctx, query).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), target)
}

// keysetCursor is the decoded form of a pagination cursor: the publish
// timestamp of the page edge plus the item id at that edge.
type keysetCursor struct {
	ms int64
	id string
}

func parseCursor(cursor string) (keysetCursor, error) {
	msPart, id, _ := strings.Cut(cursor, ":")
	ms, err := strconv.ParseInt(msPart, 10, 64)
	if err != nil {
		return keysetCursor{}, coreerrors.Invalid("cursor", "must be a millisecond timestamp")
	}
	return keysetCursor{ms: ms, id: id}, nil
}

func formatCursor(item domain.Item) string {
	return strconv.FormatInt(item.PubDateMs, 10) + ":" + item.ID
}

func reverse(items []domain.Item) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

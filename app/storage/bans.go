package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/umputun/tg-guard/app/storage/engine"
	"github.com/umputun/tg-guard/lib/verdict"
)

// bans-related command constants
const (
	CmdCreateBansTable engine.DBCmd = iota + 200
	CmdCreateBansIndexes
	CmdAddBan
	CmdReadBans
	CmdBanStats
)

var bansQueries = engine.NewQueryMap().
	Add(CmdCreateBansTable, engine.Query{
		Sqlite: `CREATE TABLE IF NOT EXISTS bans (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			gid TEXT NOT NULL DEFAULT '',
			time TIMESTAMP,
			chat_id INTEGER,
			chat_title TEXT NOT NULL DEFAULT '',
			user_id INTEGER,
			user_name TEXT NOT NULL DEFAULT '',
			display_name TEXT NOT NULL DEFAULT '',
			rule TEXT NOT NULL DEFAULT '',
			trigger_word TEXT NOT NULL DEFAULT '',
			reason TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL DEFAULT ''
		)`,
		Postgres: `CREATE TABLE IF NOT EXISTS bans (
			id BIGSERIAL PRIMARY KEY,
			gid TEXT NOT NULL DEFAULT '',
			time TIMESTAMP,
			chat_id BIGINT,
			chat_title TEXT NOT NULL DEFAULT '',
			user_id BIGINT,
			user_name TEXT NOT NULL DEFAULT '',
			display_name TEXT NOT NULL DEFAULT '',
			rule TEXT NOT NULL DEFAULT '',
			trigger_word TEXT NOT NULL DEFAULT '',
			reason TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL DEFAULT ''
		)`,
	}).
	Add(CmdCreateBansIndexes, engine.Query{
		Sqlite: `
			CREATE INDEX IF NOT EXISTS idx_bans_gid_time ON bans(gid, time);
			CREATE INDEX IF NOT EXISTS idx_bans_user_id ON bans(user_id)`,
		Postgres: `
			CREATE INDEX IF NOT EXISTS idx_bans_gid_time ON bans(gid, time DESC);
			CREATE INDEX IF NOT EXISTS idx_bans_user_id ON bans(user_id)`,
	}).
	AddSame(CmdAddBan, `INSERT INTO bans (gid, time, chat_id, chat_title, user_id, user_name, display_name,
		rule, trigger_word, reason, text) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`).
	AddSame(CmdReadBans, `SELECT id, time, chat_id, chat_title, user_id, user_name, display_name,
		rule, trigger_word, reason, text FROM bans WHERE gid = ? ORDER BY time DESC, id DESC LIMIT ?`).
	AddSame(CmdBanStats, `SELECT rule, COUNT(*) AS count FROM bans WHERE gid = ? GROUP BY rule`)

// Bans is a storage for ban events
type Bans struct {
	*engine.SQL
	engine.RWLocker
}

// BanEntry represents a single ban event
type BanEntry struct {
	ID          int64        `db:"id" json:"id"`
	Time        time.Time    `db:"time" json:"time"`
	ChatID      int64        `db:"chat_id" json:"chat_id"`
	ChatTitle   string       `db:"chat_title" json:"chat_title"`
	UserID      int64        `db:"user_id" json:"user_id"`
	UserName    string       `db:"user_name" json:"user_name,omitempty"`
	DisplayName string       `db:"display_name" json:"display_name,omitempty"`
	Rule        verdict.Rule `db:"rule" json:"rule_name"`
	Trigger     string       `db:"trigger_word" json:"trigger_word"`
	Reason      string       `db:"reason" json:"reason"`
	Text        string       `db:"text" json:"text"`
}

// NewBans creates a new Bans storage
func NewBans(ctx context.Context, db *engine.SQL) (*Bans, error) {
	if db == nil {
		return nil, fmt.Errorf("db connection is nil")
	}
	res := &Bans{SQL: db, RWLocker: db.MakeLock()}
	cfg := engine.TableConfig{
		Name:          "bans",
		CreateTable:   CmdCreateBansTable,
		CreateIndexes: CmdCreateBansIndexes,
		QueriesMap:    bansQueries,
	}
	if err := engine.InitTable(ctx, db, cfg); err != nil {
		return nil, fmt.Errorf("failed to init bans storage: %w", err)
	}
	return res, nil
}

// Add saves a ban event. Zero time is replaced with the current time, all times are stored in UTC.
func (b *Bans) Add(ctx context.Context, entry BanEntry) error {
	b.Lock()
	defer b.Unlock()

	if entry.Time.IsZero() {
		entry.Time = time.Now()
	}
	query, err := b.Statement(bansQueries, CmdAddBan)
	if err != nil {
		return fmt.Errorf("failed to get add ban query: %w", err)
	}
	_, err = b.ExecContext(ctx, query, b.GID(), entry.Time.UTC(), entry.ChatID, entry.ChatTitle, entry.UserID,
		entry.UserName, entry.DisplayName, string(entry.Rule), entry.Trigger, entry.Reason, entry.Text)
	if err != nil {
		return fmt.Errorf("failed to insert ban for user %d: %w", entry.UserID, err)
	}
	log.Printf("[INFO] ban entry added for user_id:%d, name:%q, rule:%s", entry.UserID, entry.UserName, entry.Rule)
	return nil
}

// Read returns up to limit most recent ban events, newest first
func (b *Bans) Read(ctx context.Context, limit int) ([]BanEntry, error) {
	if limit <= 0 {
		return []BanEntry{}, nil
	}
	b.RLock()
	defer b.RUnlock()

	query, err := b.Statement(bansQueries, CmdReadBans)
	if err != nil {
		return nil, fmt.Errorf("failed to get read bans query: %w", err)
	}
	res := []BanEntry{}
	if err = b.SelectContext(ctx, &res, query, b.GID(), limit); err != nil {
		return nil, fmt.Errorf("failed to read bans: %w", err)
	}
	for i := range res {
		res[i].Time = res[i].Time.Local()
	}
	return res, nil
}

// Stats returns the number of bans per rule
func (b *Bans) Stats(ctx context.Context) (map[verdict.Rule]int, error) {
	b.RLock()
	defer b.RUnlock()

	query, err := b.Statement(bansQueries, CmdBanStats)
	if err != nil {
		return nil, fmt.Errorf("failed to get ban stats query: %w", err)
	}
	var rows []struct {
		Rule  string `db:"rule"`
		Count int    `db:"count"`
	}
	if err = b.SelectContext(ctx, &rows, query, b.GID()); err != nil {
		return nil, fmt.Errorf("failed to get ban stats: %w", err)
	}
	res := make(map[verdict.Rule]int, len(rows))
	for _, r := range rows {
		res[verdict.Rule(r.Rule)] = r.Count
	}
	return res, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/umputun/tg-guard/app/storage/engine"
)

// chats-related command constants
const (
	CmdCreateChatsTable engine.DBCmd = iota + 100
	CmdCreateChatsIndexes
	CmdUpsertChat
	CmdDeactivateChat
	CmdGetChat
	CmdListChats
	CmdListActiveChats
)

var chatsQueries = engine.NewQueryMap().
	Add(CmdCreateChatsTable, engine.Query{
		Sqlite: `CREATE TABLE IF NOT EXISTS chats (
			gid TEXT NOT NULL DEFAULT '',
			chat_id INTEGER NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			user_name TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT 1,
			added_at TIMESTAMP,
			updated_at TIMESTAMP,
			PRIMARY KEY (gid, chat_id)
		)`,
		Postgres: `CREATE TABLE IF NOT EXISTS chats (
			gid TEXT NOT NULL DEFAULT '',
			chat_id BIGINT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			user_name TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT TRUE,
			added_at TIMESTAMP,
			updated_at TIMESTAMP,
			PRIMARY KEY (gid, chat_id)
		)`,
	}).
	AddSame(CmdCreateChatsIndexes, `CREATE INDEX IF NOT EXISTS idx_chats_gid_active ON chats(gid, active)`).
	AddSame(CmdUpsertChat, `INSERT INTO chats (gid, chat_id, title, user_name, type, active, added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (gid, chat_id) DO UPDATE SET
		title = excluded.title,
		user_name = excluded.user_name,
		type = excluded.type,
		active = excluded.active,
		updated_at = excluded.updated_at`).
	AddSame(CmdDeactivateChat, `UPDATE chats SET active = ?, updated_at = ? WHERE gid = ? AND chat_id = ?`).
	AddSame(CmdGetChat, `SELECT chat_id, title, user_name, type, active, added_at, updated_at
		FROM chats WHERE gid = ? AND chat_id = ?`).
	AddSame(CmdListChats, `SELECT chat_id, title, user_name, type, active, added_at, updated_at
		FROM chats WHERE gid = ? ORDER BY updated_at DESC, chat_id`).
	AddSame(CmdListActiveChats, `SELECT chat_id, title, user_name, type, active, added_at, updated_at
		FROM chats WHERE gid = ? AND active = ? ORDER BY updated_at DESC, chat_id`)

// Chats is a registry of chats the bot is a member of.
// Chats are never removed, leaving a chat just deactivates it.
type Chats struct {
	*engine.SQL
	engine.RWLocker
}

// ChatInfo represents a single chat record
type ChatInfo struct {
	ID        int64     `db:"chat_id" json:"id"`
	Title     string    `db:"title" json:"title"`
	UserName  string    `db:"user_name" json:"user_name,omitempty"`
	Type      string    `db:"type" json:"type"`
	Active    bool      `db:"active" json:"active"`
	AddedAt   time.Time `db:"added_at" json:"added_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// NewChats creates a new Chats storage
func NewChats(ctx context.Context, db *engine.SQL) (*Chats, error) {
	if db == nil {
		return nil, fmt.Errorf("db connection is nil")
	}
	res := &Chats{SQL: db, RWLocker: db.MakeLock()}
	cfg := engine.TableConfig{
		Name:          "chats",
		CreateTable:   CmdCreateChatsTable,
		CreateIndexes: CmdCreateChatsIndexes,
		QueriesMap:    chatsQueries,
	}
	if err := engine.InitTable(ctx, db, cfg); err != nil {
		return nil, fmt.Errorf("failed to init chats storage: %w", err)
	}
	return res, nil
}

// Register adds the chat or reactivates and updates the existing one. AddedAt of an existing chat is kept.
func (c *Chats) Register(ctx context.Context, chat ChatInfo) error {
	if chat.ID == 0 {
		return fmt.Errorf("chat id is required")
	}
	c.Lock()
	defer c.Unlock()

	query, err := c.Statement(chatsQueries, CmdUpsertChat)
	if err != nil {
		return fmt.Errorf("failed to get upsert chat query: %w", err)
	}
	now := time.Now().UTC()
	if _, err = c.ExecContext(ctx, query, c.GID(), chat.ID, chat.Title, chat.UserName, chat.Type, true, now, now); err != nil {
		return fmt.Errorf("failed to register chat %d: %w", chat.ID, err)
	}
	log.Printf("[DEBUG] chat registered, id:%d, title:%q", chat.ID, chat.Title)
	return nil
}

// Deactivate marks the chat as inactive, unknown chat is a no-op
func (c *Chats) Deactivate(ctx context.Context, chatID int64) error {
	c.Lock()
	defer c.Unlock()

	query, err := c.Statement(chatsQueries, CmdDeactivateChat)
	if err != nil {
		return fmt.Errorf("failed to get deactivate chat query: %w", err)
	}
	res, err := c.ExecContext(ctx, query, false, time.Now().UTC(), c.GID(), chatID)
	if err != nil {
		return fmt.Errorf("failed to deactivate chat %d: %w", chatID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		log.Printf("[DEBUG] chat %d not registered, nothing to deactivate", chatID)
		return nil
	}
	log.Printf("[DEBUG] chat deactivated, id:%d", chatID)
	return nil
}

// Get returns the chat by id
func (c *Chats) Get(ctx context.Context, chatID int64) (ChatInfo, error) {
	c.RLock()
	defer c.RUnlock()

	query, err := c.Statement(chatsQueries, CmdGetChat)
	if err != nil {
		return ChatInfo{}, fmt.Errorf("failed to get chat query: %w", err)
	}
	var res ChatInfo
	if err = c.GetContext(ctx, &res, query, c.GID(), chatID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ChatInfo{}, fmt.Errorf("chat %d not found", chatID)
		}
		return ChatInfo{}, fmt.Errorf("failed to get chat %d: %w", chatID, err)
	}
	return res, nil
}

// List returns chats, most recently updated first. With activeOnly set, inactive chats are skipped.
func (c *Chats) List(ctx context.Context, activeOnly bool) ([]ChatInfo, error) {
	c.RLock()
	defer c.RUnlock()

	cmd, args := CmdListChats, []any{c.GID()}
	if activeOnly {
		cmd, args = CmdListActiveChats, []any{c.GID(), true}
	}
	query, err := c.Statement(chatsQueries, cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to get list chats query: %w", err)
	}
	res := []ChatInfo{}
	if err = c.SelectContext(ctx, &res, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return res, nil
}

// ActiveIDs returns ids of all active chats
func (c *Chats) ActiveIDs(ctx context.Context) ([]int64, error) {
	chats, err := c.List(ctx, true)
	if err != nil {
		return nil, err
	}
	res := make([]int64, 0, len(chats))
	for _, chat := range chats {
		res = append(res, chat.ID)
	}
	return res, nil
}

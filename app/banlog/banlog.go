// Package banlog writes per-chat ban logs. Each chat gets its own rotated file named after the chat,
// with one line per ban: time, first name, last name, @username, user id, rule and the trigger.
package banlog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/forPelevin/gomoji"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config defines ban log location and rotation
type Config struct {
	Dir        string // directory for log files
	MaxSize    int    // max size of a single file in megabytes before rotation
	MaxBackups int    // max number of rotated files to keep
}

// Record is a single ban event to log
type Record struct {
	Time         time.Time
	ChatID       int64
	ChatTitle    string
	ChatUserName string
	UserID       int64
	UserName     string
	FirstName    string
	LastName     string
	Rule         string
	Trigger      string
}

// Logger writes ban records to per-chat rotated files. Safe for concurrent use.
type Logger struct {
	Config
	mu      sync.Mutex
	writers map[string]*lumberjack.Logger
}

var invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
var spaces = regexp.MustCompile(`\s+`)

// New makes a ban logger, creating the log directory if needed
func New(cfg Config) (*Logger, error) {
	if cfg.Dir == "" {
		cfg.Dir = "logs"
	}
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to make ban log directory %s: %w", cfg.Dir, err)
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 100
	}
	return &Logger{Config: cfg, writers: map[string]*lumberjack.Logger{}}, nil
}

// Write appends the record to the chat's log file
func (l *Logger) Write(rec Record) error {
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}
	fname := filepath.Join(l.Dir, FileName(rec.ChatTitle, rec.ChatUserName, rec.ChatID))
	line := Line(rec)

	l.mu.Lock()
	defer l.mu.Unlock()
	wr, ok := l.writers[fname]
	if !ok {
		wr = &lumberjack.Logger{
			Filename:   fname,
			MaxSize:    l.MaxSize, // in MB
			MaxBackups: l.MaxBackups,
			Compress:   true,
			LocalTime:  true,
		}
		l.writers[fname] = wr
	}
	if _, err := wr.Write([]byte(line + "\n")); err != nil {
		return fmt.Errorf("failed to write ban log %s: %w", fname, err)
	}
	log.Printf("[DEBUG] ban logged to %s: %s", fname, line)
	return nil
}

// Close closes all opened log files
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	errs := new(multierror.Error)
	for name, wr := range l.writers {
		if err := wr.Close(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to close %s: %w", name, err))
		}
	}
	l.writers = map[string]*lumberjack.Logger{}
	return errs.ErrorOrNil()
}

// Line formats the record as a single log line, missing values are shown as "-".
// Line breaks and repeated spaces inside values are collapsed to a single space.
func Line(rec Record) string {
	userName := "-"
	if rec.UserName != "" {
		userName = "@" + rec.UserName
	}
	return fmt.Sprintf("%s %s %s %s %d %s %s", rec.Time.Format(time.RFC3339), dash(rec.FirstName), dash(rec.LastName),
		userName, rec.UserID, dash(rec.Rule), dash(rec.Trigger))
}

// FileName makes the log file name for the chat, <title>-<username><chat id>.ban.log.
// Emoji, characters not allowed in file names and path separators are removed, spaces replaced with "_".
func FileName(title, userName string, chatID int64) string {
	clean := func(s string) string {
		s = gomoji.RemoveEmojis(s)
		s = invalidChars.ReplaceAllString(s, "")
		s = strings.TrimSpace(s)
		return spaces.ReplaceAllString(s, "_")
	}
	t := clean(title)
	if t == "" {
		t = "unknown"
	}
	u := clean(userName)
	if u == "" {
		u = "nousername"
	}
	return fmt.Sprintf("%s-%s%d.ban.log", t, u, chatID)
}

func dash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return strings.Join(strings.Fields(s), " ")
}

package banlog

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		userName string
		chatID   int64
		want     string
	}{
		{"plain", "GoUsers", "gousers", -1001234, "GoUsers-gousers-1001234.ban.log"},
		{"spaces", "Go  Users Chat", "gousers", -1001, "Go_Users_Chat-gousers-1001.ban.log"},
		{"invalid chars", `a<b>c:d"e/f\g|h?i*j`, "u", 1, "abcdefghij-u1.ban.log"},
		{"emoji", "🚀 Rocket Chat 🚀", "rocket", 5, "Rocket_Chat-rocket5.ban.log"},
		{"no title", "", "chat", 7, "unknown-chat7.ban.log"},
		{"no username", "Title", "", 7, "Title-nousername7.ban.log"},
		{"only emoji title", "😀😀", "", -42, "unknown-nousername-42.ban.log"},
		{"cyrillic title", "Привет мир", "privet", -100, "Привет_мир-privet-100.ban.log"},
		{"path traversal", "../../etc", "x", 1, "....etc-x1.ban.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.title, tt.userName, tt.chatID))
		})
	}
}

func TestLine(t *testing.T) {
	ts := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{
			name: "full",
			rec: Record{Time: ts, FirstName: "John", LastName: "Doe", UserName: "johndoe", UserID: 12334567890,
				Rule: "greek_rule", Trigger: "σκύλος"},
			want: "2026-01-31T12:00:00Z John Doe @johndoe 12334567890 greek_rule σκύλος",
		},
		{
			name: "missing values",
			rec:  Record{Time: ts, UserID: 42, Rule: "mixed_rule", Trigger: "Cанаda"},
			want: "2026-01-31T12:00:00Z - - - 42 mixed_rule Cанаda",
		},
		{
			name: "multi-word keyword and messy name",
			rec: Record{Time: ts, FirstName: " Mary\nAnn ", UserID: 1, Rule: "keyword_rule",
				Trigger: "crypto\n  now"},
			want: "2026-01-31T12:00:00Z Mary Ann - - 1 keyword_rule crypto now",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Line(tt.rec))
		})
	}
}

func TestLogger_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l, err := New(Config{Dir: dir, MaxSize: 1, MaxBackups: 2})
	require.NoError(t, err)

	ts := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)
	require.NoError(t, l.Write(Record{Time: ts, ChatID: -100, ChatTitle: "Test Chat", ChatUserName: "test",
		UserID: 1, UserName: "spammer", Rule: "greek_rule", Trigger: "ωорлд"}))
	require.NoError(t, l.Write(Record{Time: ts, ChatID: -100, ChatTitle: "Test Chat", ChatUserName: "test",
		UserID: 2, Rule: "keyword_rule", Trigger: "crypto now"}))
	require.NoError(t, l.Write(Record{Time: ts, ChatID: -200, ChatTitle: "Other", UserID: 3,
		Rule: "mixed_rule", Trigger: "Cанаda"}))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, "Test_Chat-test-100.ban.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2026-01-31T12:00:00Z - - @spammer 1 greek_rule ωорлд", lines[0])
	assert.Equal(t, "2026-01-31T12:00:00Z - - - 2 keyword_rule crypto now", lines[1])

	data, err = os.ReadFile(filepath.Join(dir, "Other-nousername-200.ban.log"))
	require.NoError(t, err)
	assert.Equal(t, "2026-01-31T12:00:00Z - - - 3 mixed_rule Cанаda\n", string(data))

	// writing after close reopens the file and appends
	require.NoError(t, l.Write(Record{Time: ts, ChatID: -200, ChatTitle: "Other", UserID: 4, Rule: "mixed_rule", Trigger: "x"}))
	require.NoError(t, l.Close())
	data, err = os.ReadFile(filepath.Join(dir, "Other-nousername-200.ban.log"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestLogger_ZeroTime(t *testing.T) {
	dir := t.TempDir()
	l, err := New(Config{Dir: dir})
	require.NoError(t, err)
	defer l.Close()
	assert.Equal(t, 100, l.MaxSize)

	require.NoError(t, l.Write(Record{ChatID: 1, ChatTitle: "c", UserID: 1, Rule: "greek_rule", Trigger: "α"}))
	data, err := os.ReadFile(filepath.Join(dir, "c-nousername1.ban.log"))
	require.NoError(t, err)
	ts, err := time.Parse(time.RFC3339, strings.Fields(string(data))[0])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestLogger_Concurrent(t *testing.T) {
	dir := t.TempDir()
	l, err := New(Config{Dir: dir})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, l.Write(Record{ChatID: int64(i % 2), ChatTitle: "chat", UserID: int64(i),
				Rule: "keyword_rule", Trigger: "spam"}))
		}(i)
	}
	wg.Wait()
	require.NoError(t, l.Close())

	total := 0
	for _, name := range []string{"chat-nousername0.ban.log", "chat-nousername1.ban.log"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		total += strings.Count(string(data), "\n")
	}
	assert.Equal(t, 20, total)
}

func TestNew_BadDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o600))
	_, err := New(Config{Dir: filepath.Join(f, "sub")})
	require.Error(t, err)
}

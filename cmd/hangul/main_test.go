package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jusunglee/hangulfun/internal/db"
	"github.com/jusunglee/hangulfun/internal/introductions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := newCLI(&out, slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := c.command().ParseAndRun(context.Background(), args)
	return out.String(), err
}

func TestDecode(t *testing.T) {
	out, err := run(t, "decode", "밥을")
	require.NoError(t, err)

	assert.Contains(t, out, "ch=밥 (0xbc25) Syllables")
	assert.Contains(t, out, "ch=을 (0xc744) Syllables")
	assert.Contains(t, out, "(6 jamo, 18 bytes)")
	assert.Contains(t, out, "surface:    바블")
	assert.Contains(t, out, "pronounced: babeul")
}

func TestDecodeRequiresText(t *testing.T) {
	_, err := run(t, "decode")
	assert.ErrorIs(t, err, errNoText)
}

func TestDecodeRecordsLookup(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "hangul.db")

	out, err := run(t, "decode", "--db", dbPath, "학교")
	require.NoError(t, err)
	assert.Contains(t, out, "looked up 1 time(s)")

	out, err = run(t, "decode", "--db", dbPath, "학교")
	require.NoError(t, err)
	assert.Contains(t, out, "looked up 2 time(s)")

	out, err = run(t, "history", "--db", dbPath, "--sort", "top")
	require.NoError(t, err)
	assert.Contains(t, out, "학교")
	assert.Contains(t, out, "hakkkyo")
}

func TestDecodeSkipsRecordingNonKorean(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "hangul.db")

	_, err := run(t, "decode", "--db", dbPath, "abc")
	require.NoError(t, err)

	out, err := run(t, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "no lookups recorded yet")
}

func TestHistoryValidation(t *testing.T) {
	_, err := run(t, "history")
	assert.EqualError(t, err, "--db is required")

	_, err = run(t, "history", "--db", filepath.Join(t.TempDir(), "h.db"), "--limit", "0")
	assert.EqualError(t, err, "limit must be positive, got 0")

	_, err = run(t, "history", "--db", filepath.Join(t.TempDir(), "h.db"), "--sort", "oldest")
	assert.Error(t, err)
}

func TestWriteHistory(t *testing.T) {
	var out bytes.Buffer
	writeHistory(&out, []db.Lookup{{
		Text:       "밥을",
		Pronounced: "바블",
		Romanized:  "babeul",
		Count:      3,
		LastSeen:   time.Date(2026, 1, 2, 3, 4, 0, 0, time.Local),
	}})

	assert.Contains(t, out.String(), "PRONOUNCED")
	assert.Contains(t, out.String(), "babeul")
	assert.Contains(t, out.String(), "2026-01-02 03:04")
}

func TestRomanize(t *testing.T) {
	out, err := run(t, "romanize", "김치", "hello")
	require.NoError(t, err)
	assert.Equal(t, "김치\tgimchi\nhello\t\n", out)
}

func TestWriteDialogue(t *testing.T) {
	var out bytes.Buffer
	err := writeDialogue(&out, introductions.Cast{Name: "마이클", Country: "미국", Occupation: "학생"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "B: 안녕하세요? 저는 마이클이에요.")
	assert.Contains(t, out.String(), "B: 네, 저는 학생이에요.")
}

func TestWriteDialogueRejectsNonHangul(t *testing.T) {
	err := writeDialogue(io.Discard, introductions.Cast{Name: "Mike", Country: "미국", Occupation: "학생"})
	assert.ErrorIs(t, err, introductions.ErrNotSyllable)
}

func TestIntroductions(t *testing.T) {
	out, err := run(t, "introductions")
	require.NoError(t, err)
	assert.Contains(t, out, "A: 안녕하세요?")
}

func TestDefaultLRCPath(t *testing.T) {
	assert.Equal(t, "songs/spring day.lrc", defaultLRCPath("songs/spring day.mp3"))
	assert.Equal(t, "track.lrc", defaultLRCPath("track"))
	assert.Equal(t, "spring day", title("songs/spring day.mp3"))
}

func TestLoadLyrics(t *testing.T) {
	dir := t.TempDir()

	_, err := loadLyrics(filepath.Join(dir, "missing.lrc"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.lrc")
	require.NoError(t, os.WriteFile(empty, []byte("[ar:Artist]\n[ti:Title]\n"), 0o644))
	_, err = loadLyrics(empty)
	assert.ErrorIs(t, err, errNoLyrics)

	song := filepath.Join(dir, "song.lrc")
	require.NoError(t, os.WriteFile(song, []byte("[00:01.00]밥을 먹어요\n"), 0o644))
	lines, err := loadLyrics(song)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "밥을 먹어요", lines[0].Text)
	assert.Equal(t, time.Second, lines[0].At)
}

func TestPlayRequiresOneFile(t *testing.T) {
	_, err := run(t, "play")
	assert.EqualError(t, err, "play takes exactly one FILE")
}

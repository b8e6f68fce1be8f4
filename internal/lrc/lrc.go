// Package lrc parses LRC lyric files into timed lines.
package lrc

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Line is one lyric line and the time it starts.
type Line struct {
	At   time.Duration
	Text string
}

var (
	// [mm:ss], [mm:ss.xx] or [mm:ss:xx] at the start of what is left of a line.
	timeTag = regexp.MustCompile(`^\[(\d+):(\d{1,2})(?:[.:](\d{1,3}))?\]`)
	// [key:value] where the key is not a number.
	metaTag = regexp.MustCompile(`^\[([A-Za-z#]+):(.*)\]\s*$`)
	// Enhanced LRC word timings.
	wordTag = regexp.MustCompile(`<\d+:\d{1,2}(?:[.:]\d{1,3})?>`)
)

// Parse reads LRC text. Every time tag on a line produces one Line, so
// a chorus tagged with several times appears several times. Metadata tags
// are skipped except offset, which shifts every line by that many
// milliseconds (positive means earlier). Untimed lines and lines that are
// empty after trimming are dropped. The result is sorted by time.
func Parse(r io.Reader) ([]Line, error) {
	var (
		lines  []Line
		offset time.Duration
	)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimSpace(scanner.Text())
		if lineNo == 1 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}
		if raw == "" {
			continue
		}

		if m := metaTag.FindStringSubmatch(raw); m != nil {
			if strings.EqualFold(m[1], "offset") {
				ms, err := strconv.Atoi(strings.TrimSpace(m[2]))
				if err != nil {
					return nil, fmt.Errorf("line %d: parsing offset %q: %w", lineNo, m[2], err)
				}
				offset = time.Duration(ms) * time.Millisecond
			}
			continue
		}

		var times []time.Duration
		rest := raw
		for len(rest) > 1 && rest[0] == '[' && isDigit(rest[1]) {
			m := timeTag.FindStringSubmatch(rest)
			if m == nil {
				end := strings.IndexByte(rest, ']')
				if end < 0 {
					end = len(rest) - 1
				}
				return nil, fmt.Errorf("line %d: malformed time tag %q", lineNo, rest[:end+1])
			}
			at, err := parseTime(m[1], m[2], m[3])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			times = append(times, at)
			rest = rest[len(m[0]):]
		}
		if len(times) == 0 {
			continue
		}

		text := strings.TrimSpace(wordTag.ReplaceAllString(rest, ""))
		if text == "" {
			continue
		}
		for _, at := range times {
			lines = append(lines, Line{At: at, Text: text})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lyrics: %w", err)
	}

	for i := range lines {
		lines[i].At = max(lines[i].At-offset, 0)
	}
	slices.SortStableFunc(lines, func(a, b Line) int {
		return cmp.Compare(a.At, b.At)
	})
	return lines, nil
}

func parseTime(mins, secs, frac string) (time.Duration, error) {
	m, err := strconv.Atoi(mins)
	if err != nil {
		return 0, fmt.Errorf("parsing minutes %q: %w", mins, err)
	}
	s, err := strconv.Atoi(secs)
	if err != nil {
		return 0, fmt.Errorf("parsing seconds %q: %w", secs, err)
	}
	if s >= 60 {
		return 0, fmt.Errorf("seconds out of range: %d", s)
	}
	d := time.Duration(m)*time.Minute + time.Duration(s)*time.Second
	if frac != "" {
		f, err := strconv.Atoi(frac)
		if err != nil {
			return 0, fmt.Errorf("parsing fraction %q: %w", frac, err)
		}
		// .5 is half a second, .05 is 50ms, .005 is 5ms.
		for range 3 - len(frac) {
			f *= 10
		}
		d += time.Duration(f) * time.Millisecond
	}
	return d, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

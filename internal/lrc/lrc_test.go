package lrc

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := `[ti:봄날]
[ar:BTS]
[length: 04:34]

[00:12.50]보고 싶다
[00:15.05]  이렇게 말하니까 더 보고 싶다
[00:20]
[00:21.123]너희 사진을 보고 있어도
not a lyric line
`
	lines, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Line{
		{At: 12*time.Second + 500*time.Millisecond, Text: "보고 싶다"},
		{At: 15*time.Second + 50*time.Millisecond, Text: "이렇게 말하니까 더 보고 싶다"},
		{At: 21*time.Second + 123*time.Millisecond, Text: "너희 사진을 보고 있어도"},
	}, lines)
}

func TestParseRepeatedTags(t *testing.T) {
	input := "[00:30.00][01:10.00]후렴\n[00:50.00]둘째 줄\n"
	lines, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "후렴", lines[0].Text)
	assert.Equal(t, 30*time.Second, lines[0].At)
	assert.Equal(t, "둘째 줄", lines[1].Text)
	assert.Equal(t, "후렴", lines[2].Text)
	assert.Equal(t, time.Minute+10*time.Second, lines[2].At)
}

func TestParseOffset(t *testing.T) {
	input := "[offset:+500]\n[00:00.20]하나\n[00:02.00]둘\n"
	lines, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, time.Duration(0), lines[0].At)
	assert.Equal(t, 1500*time.Millisecond, lines[1].At)

	lines, err = Parse(strings.NewReader("[offset:-1000]\n[00:01.00]하나\n"))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, lines[0].At)
}

func TestParseEnhancedWordTags(t *testing.T) {
	input := "[00:01.00]<00:01.00>안녕 <00:01.50>하세요\n"
	lines, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "안녕 하세요", lines[0].Text)
}

func TestParseKeepsBracketsInText(t *testing.T) {
	lines, err := Parse(strings.NewReader("[00:01.00][Chorus] 가자\n[Verse]\n"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "[Chorus] 가자", lines[0].Text)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bad tag", "[00:01.00]ok\n[0x:12]bad\n", "line 2: malformed time tag"},
		{"seconds out of range", "[00:75.00]bad\n", "line 1: seconds out of range"},
		{"bad offset", "[offset:soon]\n", "line 1: parsing offset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	lines, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

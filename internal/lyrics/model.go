// Package lyrics is a terminal browser for studying timed song lyrics one
// syllable at a time.
package lyrics

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jusunglee/hangulfun/internal/analysis"
	"github.com/jusunglee/hangulfun/internal/hangul"
	"github.com/jusunglee/hangulfun/internal/lrc"
	"github.com/jusunglee/hangulfun/internal/translation"
)

const (
	defaultVisibleLines = 10
	defaultWidth        = 60
	// Rows used by everything but the lyric lines.
	chromeHeight = 12
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	timeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	wordStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("250"))
	syllableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("21")).Background(lipgloss.Color("250")).Bold(true)
	dividerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Translator translates the current lyric line on demand.
type Translator interface {
	Translate(ctx context.Context, text string) (translation.Translation, error)
}

type translatedMsg struct {
	line int
	tr   translation.Translation
	err  error
}

type Model struct {
	ctx   context.Context
	title string
	lines []lrc.Line
	// words holds the syllable runs of each line.
	words [][]string

	line     int
	word     int
	syllable int
	first    int
	visible  int
	width    int

	translator   Translator
	translations map[int]translation.Translation
	pending      map[int]bool
	err          error

	keys keyMap
	help help.Model
}

// New returns a browser over lines. translator may be nil, which disables
// the translate key.
func New(ctx context.Context, title string, lines []lrc.Line, translator Translator) Model {
	words := make([][]string, len(lines))
	for i, l := range lines {
		words[i] = hangul.Words(l.Text)
	}

	keys := defaultKeys()
	keys.Translate.SetEnabled(translator != nil)

	return Model{
		ctx:          ctx,
		title:        title,
		lines:        lines,
		words:        words,
		visible:      defaultVisibleLines,
		width:        defaultWidth,
		translator:   translator,
		translations: make(map[int]translation.Translation),
		pending:      make(map[int]bool),
		keys:         keys,
		help:         help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.visible = max(3, msg.Height-chromeHeight)
		m.scrollToCursor()
		return m, nil

	case translatedMsg:
		delete(m.pending, msg.line)
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.translations[msg.line] = msg.tr
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLine):
			m.nextLine()
		case key.Matches(msg, m.keys.PrevLine):
			m.prevLine()
		case key.Matches(msg, m.keys.NextSyllable):
			m.nextSyllable()
		case key.Matches(msg, m.keys.PrevSyllable):
			m.prevSyllable()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Translate):
			return m, m.translateCurrent()
		}
	}
	return m, nil
}

func (m *Model) nextLine() {
	if m.line+1 < len(m.lines) {
		m.line++
		m.word, m.syllable = 0, 0
		m.err = nil
		m.scrollToCursor()
	}
}

func (m *Model) prevLine() {
	if m.line > 0 {
		m.line--
		m.word, m.syllable = 0, 0
		m.err = nil
		m.scrollToCursor()
	}
}

// nextSyllable moves right within the word, then to the start of the next
// word. It stops at the end of the line.
func (m *Model) nextSyllable() {
	words := m.currentWords()
	if m.word >= len(words) {
		return
	}
	if m.syllable+1 < utf8.RuneCountInString(words[m.word]) {
		m.syllable++
	} else if m.word+1 < len(words) {
		m.word++
		m.syllable = 0
	}
}

func (m *Model) prevSyllable() {
	words := m.currentWords()
	if m.word >= len(words) {
		return
	}
	if m.syllable > 0 {
		m.syllable--
	} else if m.word > 0 {
		m.word--
		m.syllable = utf8.RuneCountInString(words[m.word]) - 1
	}
}

func (m *Model) scrollToCursor() {
	if m.line < m.first {
		m.first = m.line
	}
	if m.line >= m.first+m.visible {
		m.first = m.line - m.visible + 1
	}
}

func (m Model) currentWords() []string {
	if m.line >= len(m.words) {
		return nil
	}
	return m.words[m.line]
}

func (m Model) translateCurrent() tea.Cmd {
	if m.translator == nil || m.line >= len(m.lines) {
		return nil
	}
	line := m.line
	if _, done := m.translations[line]; done || m.pending[line] {
		return nil
	}
	m.pending[line] = true

	ctx, translator, text := m.ctx, m.translator, m.lines[line].Text
	return func() tea.Msg {
		tr, err := translator.Translate(ctx, text)
		return translatedMsg{line: line, tr: tr, err: err}
	}
}

// Selection returns the selected word and syllable, if the current line
// has any Hangul.
func (m Model) Selection() (word string, syllable rune, ok bool) {
	words := m.currentWords()
	if m.word >= len(words) {
		return "", 0, false
	}
	word = words[m.word]
	for i, r := range []rune(word) {
		if i == m.syllable {
			return word, r, true
		}
	}
	return "", 0, false
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(m.title))
	if len(m.lines) > 0 {
		s.WriteString(dimStyle.Render(fmt.Sprintf("  line %d/%d", m.line+1, len(m.lines))))
	}
	s.WriteString("\n\n")

	last := min(len(m.lines), m.first+m.visible)
	for i := m.first; i < last; i++ {
		l := m.lines[i]
		s.WriteString(timeStyle.Render(formatTime(l.At)))
		if i == m.line {
			s.WriteString(cursorStyle.Render(" > "))
			s.WriteString(m.renderCurrentLine(l.Text))
		} else {
			s.WriteString("   " + l.Text)
		}
		s.WriteString("\n")
	}

	s.WriteString(m.divider())
	s.WriteString(m.renderSelection())
	s.WriteString(m.divider())
	s.WriteString(m.renderTranslation())
	s.WriteString("\n")
	s.WriteString(m.help.View(m.keys))
	return s.String()
}

// renderCurrentLine highlights the selected word and syllable.
func (m Model) renderCurrentLine(text string) string {
	var s strings.Builder
	word := 0
	for _, run := range hangul.Split(text) {
		if run.Class != hangul.Syllables {
			s.WriteString(run.Text)
			continue
		}
		if word != m.word {
			s.WriteString(run.Text)
		} else {
			for i, r := range []rune(run.Text) {
				if i == m.syllable {
					s.WriteString(syllableStyle.Render(string(r)))
				} else {
					s.WriteString(wordStyle.Render(string(r)))
				}
			}
		}
		word++
	}
	return s.String()
}

func (m Model) renderSelection() string {
	word, syllable, ok := m.Selection()
	if !ok {
		return dimStyle.Render("No Hangul on this line") + "\n"
	}

	analyzed := analysis.Analyze(word)
	var s strings.Builder
	fmt.Fprintf(&s, "Selected word: %s (%s)", word, analyzed.Romanized)
	if analyzed.Pronounced != word {
		fmt.Fprintf(&s, " pronounced %s", analyzed.Pronounced)
	}
	s.WriteString("\n")
	fmt.Fprintf(&s, "Selected syllable: %c\n", syllable)

	if m.syllable >= len(analyzed.Syllables) {
		return s.String()
	}
	info := analyzed.Syllables[m.syllable]
	s.WriteString(jamoLine("Initial", info.Initial))
	s.WriteString(jamoLine("Medial ", info.Medial))
	if info.Final != nil {
		s.WriteString(jamoLine("Final  ", *info.Final))
	}
	return s.String()
}

func jamoLine(label string, j analysis.Jamo) string {
	rom := j.Romanized
	switch {
	case j.Silent():
		rom = "silent"
	case rom == "":
		rom = "?"
	case j.Linked != "" && j.Linked != j.Romanized:
		rom = j.Romanized + "/" + j.Linked
	}
	line := fmt.Sprintf("  %s: %s (%s)", label, j.Compat, rom)
	if j.Hint != "" {
		line += " " + dimStyle.Render(j.Hint)
	}
	return line + "\n"
}

func (m Model) renderTranslation() string {
	switch tr, ok := m.translations[m.line]; {
	case m.err != nil:
		return errorStyle.Render("Translation failed: "+m.err.Error()) + "\n"
	case ok:
		out := "Translation: " + tr.Translated + "\n"
		if tr.Explanation != "" {
			out += dimStyle.Render(tr.Explanation) + "\n"
		}
		return out
	case m.pending[m.line]:
		return dimStyle.Render("Translating…") + "\n"
	default:
		return ""
	}
}

func (m Model) divider() string {
	return dividerStyle.Render(strings.Repeat("⎯", max(m.width, 1))) + "\n"
}

func formatTime(d time.Duration) string {
	total := int(d / (10 * time.Millisecond))
	return fmt.Sprintf("[%02d:%02d.%02d]", total/6000, total/100%60, total%100)
}

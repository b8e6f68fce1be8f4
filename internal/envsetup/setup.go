// envsetup provides a lightweight .env configuration wizard.
// It runs automatically on first bot startup when no .env file exists,
// collecting the Discord token and optional LLM credentials for /translate.
package envsetup

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jusunglee/hangulfun/internal/anthropic"
	"github.com/jusunglee/hangulfun/internal/google"
	"github.com/jusunglee/hangulfun/internal/llm"
)

// DefaultPath is where the wizard writes its configuration.
const DefaultPath = ".env"

type step int

const (
	stepWelcome step = iota
	stepDiscord
	stepLLMProvider
	stepLLMKey
	stepConfirm
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type model struct {
	path         string
	step         step
	discordToken string
	llmProvider  string
	llmAPIKey    string
	input        textinput.Model
	saved        bool
	err          error
	width        int
	height       int
}

// New returns a wizard that writes to path.
func New(path string) model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60
	ti.Prompt = "> "

	return model{
		path:  path,
		step:  stepWelcome,
		input: ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleEnter()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleEnter() (tea.Model, tea.Cmd) {
	m.err = nil
	value := strings.TrimSpace(m.input.Value())

	switch m.step {
	case stepWelcome:
		m.next(stepDiscord)

	case stepDiscord:
		if value == "" {
			m.err = errors.New("Discord token is required")
			return m, nil
		}
		m.discordToken = value
		m.next(stepLLMProvider)

	case stepLLMProvider:
		switch strings.ToLower(value) {
		case "1", llm.ProviderAnthropic:
			m.llmProvider = llm.ProviderAnthropic
			m.next(stepLLMKey)
		case "2", llm.ProviderGoogle:
			m.llmProvider = llm.ProviderGoogle
			m.next(stepLLMKey)
		case "3", "skip", "":
			m.llmProvider = ""
			m.next(stepConfirm)
		default:
			m.err = errors.New("Please enter 1 for Anthropic, 2 for Google or 3 to skip")
			return m, nil
		}

	case stepLLMKey:
		if value == "" {
			m.err = errors.New("API key is required")
			return m, nil
		}
		m.llmAPIKey = value
		m.next(stepConfirm)

	case stepConfirm:
		switch strings.ToLower(value) {
		case "y", "yes", "":
			if err := m.writeEnvFile(); err != nil {
				m.err = err
				return m, nil
			}
			m.saved = true
			return m, tea.Quit
		case "n", "no":
			path := m.path
			m = New(path)
		}
	}

	return m, nil
}

// next moves to s and clears the input, masking it for secrets.
func (m *model) next(s step) {
	m.step = s
	m.input.SetValue("")
	if s == stepDiscord || s == stepLLMKey {
		m.input.EchoMode = textinput.EchoPassword
		m.input.EchoCharacter = '*'
	} else {
		m.input.EchoMode = textinput.EchoNormal
	}
}

// EnvContents renders the .env file for the collected answers.
func (m model) EnvContents() string {
	var sb strings.Builder
	sb.WriteString("DATABASE_URL=./hangul.db\n")
	fmt.Fprintf(&sb, "DISCORD_TOKEN=%s\n", m.discordToken)
	switch m.llmProvider {
	case llm.ProviderAnthropic:
		fmt.Fprintf(&sb, "LLM_PROVIDER=%s\nLLM_MODEL=%s\nANTHROPIC_API_KEY=%s\n", m.llmProvider, anthropic.DefaultModel, m.llmAPIKey)
	case llm.ProviderGoogle:
		fmt.Fprintf(&sb, "LLM_PROVIDER=%s\nLLM_MODEL=%s\nGOOGLE_API_KEY=%s\n", m.llmProvider, google.DefaultModel, m.llmAPIKey)
	}
	return sb.String()
}

func (m model) writeEnvFile() error {
	if err := os.WriteFile(m.path, []byte(m.EnvContents()), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", m.path, err)
	}
	return nil
}

func (m model) View() string {
	var s strings.Builder

	switch m.step {
	case stepWelcome:
		s.WriteString(titleStyle.Render("Hangul Bot - Env Setup"))
		s.WriteString("\n\n")
		s.WriteString("This wizard will help you configure the bot.\n")
		s.WriteString("You'll need:\n\n")
		s.WriteString("  - A Discord bot token\n")
		s.WriteString("  - Optionally, an LLM API key (Anthropic or Google) for /translate\n")
		s.WriteString("\n")
		s.WriteString(dimStyle.Render("Press Enter to continue, Ctrl+C to exit"))

	case stepDiscord:
		s.WriteString(titleStyle.Render("Step 1: Discord Bot Token"))
		s.WriteString("\n\n")
		s.WriteString("To get your Discord bot token:\n\n")
		s.WriteString("  1. Go to " + linkStyle.Render("https://discord.com/developers/applications") + "\n")
		s.WriteString("  2. Create a new application (or select existing)\n")
		s.WriteString("  3. Go to the Bot section\n")
		s.WriteString("  4. Click 'Reset Token' to get your bot token\n")
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Paste your Discord token here:"))
		s.WriteString("\n")
		s.WriteString(m.input.View())

	case stepLLMProvider:
		s.WriteString(titleStyle.Render("Step 2: Choose LLM Provider"))
		s.WriteString("\n\n")
		s.WriteString("Which LLM provider should /translate use?\n\n")
		s.WriteString("  1. Anthropic (Claude)\n")
		s.WriteString("  2. Google (Gemini)\n")
		s.WriteString("  3. None, disable /translate\n")
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Enter 1, 2 or 3:"))
		s.WriteString("\n")
		s.WriteString(m.input.View())

	case stepLLMKey:
		s.WriteString(titleStyle.Render("Step 3: LLM API Key"))
		s.WriteString("\n\n")
		if m.llmProvider == llm.ProviderAnthropic {
			s.WriteString("To get your Anthropic API key:\n\n")
			s.WriteString("  1. Go to " + linkStyle.Render("https://console.anthropic.com") + "\n")
			s.WriteString("  2. Sign up or log in\n")
			s.WriteString("  3. Go to API Keys and create a new key\n")
		} else {
			s.WriteString("To get your Google AI API key:\n\n")
			s.WriteString("  1. Go to " + linkStyle.Render("https://aistudio.google.com/apikey") + "\n")
			s.WriteString("  2. Sign in with your Google account\n")
			s.WriteString("  3. Create an API key\n")
		}
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Paste your API key here:"))
		s.WriteString("\n")
		s.WriteString(m.input.View())

	case stepConfirm:
		provider := m.llmProvider
		if provider == "" {
			provider = "none"
		}
		s.WriteString(titleStyle.Render("Configuration Complete"))
		s.WriteString("\n\n")
		s.WriteString("Your configuration:\n\n")
		s.WriteString("  Database:     " + successStyle.Render("./hangul.db") + "\n")
		s.WriteString("  Discord:      " + successStyle.Render(maskToken(m.discordToken)) + "\n")
		s.WriteString("  LLM Provider: " + successStyle.Render(provider) + "\n")
		if m.llmAPIKey != "" {
			s.WriteString("  LLM API Key:  " + successStyle.Render(maskToken(m.llmAPIKey)) + "\n")
		}
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Save this configuration? [Y/n]:"))
		s.WriteString("\n")
		s.WriteString(m.input.View())
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()))
	}
	s.WriteString("\n")
	return s.String()
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

// Run starts the setup wizard and returns true if setup was completed successfully
func Run() (bool, error) {
	p := tea.NewProgram(New(DefaultPath))
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m := finalModel.(model)
	return m.saved, nil
}

// NeedsSetup checks if .env file exists
func NeedsSetup() bool {
	_, err := os.Stat(DefaultPath)
	return os.IsNotExist(err)
}

package bot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/jusunglee/hangulfun/internal/analysis"
	"github.com/jusunglee/hangulfun/internal/db"
	"github.com/jusunglee/hangulfun/internal/metrics"
	"github.com/jusunglee/hangulfun/internal/transliteration"
	"github.com/samber/lo"
)

const (
	// Discord rejects message content longer than this.
	maxMessageLength = 2000
	maxTextRunes     = 200
)

type Config struct {
	GuildID string
	// Per-user command limit; zero values use DefaultCommandsPerWindow
	// and DefaultRateWindow.
	CommandsPerWindow int
	RateWindow        time.Duration
}

type Bot struct {
	log        Logger
	session    DiscordSession
	repo       LookupRecorder
	translator Translator
	website    *WebsiteClient
	limiter    *RateLimiter
	config     Config
}

// New builds a bot. repo, translator and website may be nil; /translate
// then reports that translation is not configured.
func New(
	log Logger,
	session DiscordSession,
	repo LookupRecorder,
	translator Translator,
	website *WebsiteClient,
	config Config,
) *Bot {
	return &Bot{
		log:        log,
		session:    session,
		repo:       repo,
		translator: translator,
		website:    website,
		limiter:    NewRateLimiter(config.CommandsPerWindow, config.RateWindow),
		config:     config,
	}
}

func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handleInteraction(ctx, i)
	})
	b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.log.InfoContext(ctx, "connected to Discord", "username", r.User.Username, "discriminator", r.User.Discriminator)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening Discord connection: %w", err)
	}

	if err := b.registerCommands(ctx); err != nil {
		b.session.Close()
		return fmt.Errorf("registering commands: %w", err)
	}

	b.log.InfoContext(ctx, "bot is running, press Ctrl+C to stop")

	<-ctx.Done()
	b.log.Info("shutdown signal received")
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("closing Discord connection: %w", err)
	}
	b.log.Info("shut down complete")
	return nil
}

func (b *Bot) registerCommands(ctx context.Context) error {
	guildID := b.config.GuildID
	appID := b.session.GetUserID()
	if guildID != "" {
		b.log.InfoContext(ctx, "registering commands to guild", "guild_id", guildID)
		_, err := b.session.ApplicationCommandBulkOverwrite(appID, "", []*discordgo.ApplicationCommand{})
		if err != nil {
			b.log.WarnContext(ctx, "failed to clear global commands", "error", err)
		} else {
			b.log.InfoContext(ctx, "cleared global commands")
		}
	} else {
		b.log.InfoContext(ctx, "registering commands globally (may take up to 1 hour to propagate)")
	}

	_, err := b.session.ApplicationCommandBulkOverwrite(appID, guildID, commands)
	if err != nil {
		return fmt.Errorf("bulk overwrite commands: %w", err)
	}
	b.log.InfoContext(ctx, "registered commands", "count", len(commands))
	return nil
}

func textOption(description string) []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "text",
			Description: description,
			Required:    true,
			MaxLength:   maxTextRunes,
		},
	}
}

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "romanize",
		Description: "Romanize Korean (as pronounced) or Chinese text",
		Options:     textOption("Text to romanize, e.g. 한국어"),
	},
	{
		Name:        "decode",
		Description: "Break Hangul into jamo with pronunciation and hints",
		Options:     textOption("Hangul to decode, e.g. 밥을"),
	},
	{
		Name:        "translate",
		Description: "Translate a Korean phrase or lyric line into English",
		Options:     textOption("Phrase to translate"),
	},
}

type handlerResult struct {
	Response string
	Err      error
}

func (b *Bot) handleInteraction(ctx context.Context, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	b.handleCommand(ctx, i)
}

func (b *Bot) handleCommand(ctx context.Context, i *discordgo.InteractionCreate) {
	cmd := i.ApplicationCommandData().Name

	if ok, retryAfter := b.limiter.Allow(interactionUserID(i)); !ok {
		metrics.BotCommandsTotal.WithLabelValues(cmd, "rate_limited").Inc()
		seconds := int(math.Ceil(retryAfter.Seconds()))
		b.respond(ctx, i, fmt.Sprintf("⏳ You're sending commands too fast, try again in %ds.", seconds), true)
		return
	}

	var result handlerResult
	switch cmd {
	case "romanize":
		result = b.handleRomanize(i)
		b.respond(ctx, i, result.Response, false)
	case "decode":
		result = b.handleDecode(ctx, i)
		b.respond(ctx, i, result.Response, false)
	case "translate":
		// The model can take longer than Discord's three second window.
		b.deferResponse(ctx, i)
		result = b.handleTranslate(ctx, i)
		b.editResponse(ctx, i, result.Response)
	default:
		result = handlerResult{
			Response: "❌ Unknown command",
			Err:      newUserError(fmt.Errorf("unknown command %q", cmd)),
		}
		b.respond(ctx, i, result.Response, true)
	}

	if result.Err == nil {
		metrics.BotCommandsTotal.WithLabelValues(cmd, "ok").Inc()
		return
	}

	if _, ok := errors.AsType[*userError](result.Err); ok {
		metrics.BotCommandsTotal.WithLabelValues(cmd, "user_error").Inc()
		if b.config.GuildID != "" {
			b.log.WarnContext(ctx, "user error", "command", cmd, "error", result.Err, "channel_id", i.ChannelID)
		}
	} else {
		metrics.BotCommandsTotal.WithLabelValues(cmd, "error").Inc()
		b.log.ErrorContext(ctx, "command failed", "command", cmd, "error", result.Err, "channel_id", i.ChannelID)
	}
}

func (b *Bot) handleRomanize(i *discordgo.InteractionCreate) handlerResult {
	text, result, ok := commandText(i)
	if !ok {
		return result
	}

	if transliteration.DetectScript(text) == transliteration.Latin {
		return handlerResult{
			Response: "❌ Nothing to romanize. Send Korean or Chinese text.",
			Err:      newUserError(errors.New("no Hangul or Han characters")),
		}
	}

	romanized := transliteration.Transliterate(text)
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** → %s", text, romanized)
	if literal := transliteration.TransliterateLiteral(text); literal != romanized {
		fmt.Fprintf(&sb, "\n-# spelled %s", literal)
	}
	return handlerResult{Response: sb.String()}
}

func (b *Bot) handleDecode(ctx context.Context, i *discordgo.InteractionCreate) handlerResult {
	text, result, ok := commandText(i)
	if !ok {
		return result
	}

	if transliteration.DetectScript(text) != transliteration.Korean {
		return handlerResult{
			Response: "❌ /decode needs Hangul, e.g. `/decode 밥을`",
			Err:      newUserError(errors.New("no Hangul characters")),
		}
	}

	word := analysis.Analyze(text)
	metrics.AnalysesTotal.WithLabelValues("bot").Inc()

	if b.repo != nil {
		_, err := b.repo.RecordLookup(ctx, db.RecordLookupParams{
			Text:       text,
			Romanized:  word.Romanized,
			Pronounced: word.Pronounced,
		})
		if err != nil {
			b.log.WarnContext(ctx, "recording lookup", "text", text, "error", err)
		}
	}
	if err := b.website.RecordLookup(ctx, text); err != nil {
		b.log.WarnContext(ctx, "mirroring lookup to website", "text", text, "error", err)
	}

	return handlerResult{Response: formatDecode(word)}
}

func (b *Bot) handleTranslate(ctx context.Context, i *discordgo.InteractionCreate) handlerResult {
	text, result, ok := commandText(i)
	if !ok {
		return result
	}

	if b.translator == nil {
		return handlerResult{
			Response: "❌ Translation is not configured on this bot.",
			Err:      newUserError(errors.New("no translator configured")),
		}
	}

	tr, err := b.translator.Translate(ctx, text)
	if err != nil {
		return handlerResult{
			Response: "❌ Failed to translate. Please try again later.",
			Err:      fmt.Errorf("translating %q: %w", text, err),
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**", tr.Original)
	if romanized := transliteration.Transliterate(tr.Original); romanized != "" {
		fmt.Fprintf(&sb, " (%s)", romanized)
	}
	fmt.Fprintf(&sb, "\n%s", tr.Translated)
	if tr.Explanation != "" {
		fmt.Fprintf(&sb, "\n-# %s", tr.Explanation)
	}
	return handlerResult{Response: truncate(sb.String())}
}

// commandText returns the trimmed text option, or a user error result when
// it is empty or too long.
func commandText(i *discordgo.InteractionCreate) (string, handlerResult, bool) {
	text := strings.TrimSpace(getOption(i.ApplicationCommandData().Options, "text"))
	if text == "" {
		return "", handlerResult{
			Response: "❌ Please provide some text.",
			Err:      newUserError(errors.New("empty text")),
		}, false
	}
	if utf8.RuneCountInString(text) > maxTextRunes {
		return "", handlerResult{
			Response: fmt.Sprintf("❌ Text is too long (max %d characters).", maxTextRunes),
			Err:      newUserError(errors.New("text too long")),
		}, false
	}
	return text, handlerResult{}, true
}

func formatDecode(word analysis.Word) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** → %s (%s)\n```\n", word.Text, word.Pronounced, word.Romanized)

	var hints []string
	for _, s := range word.Syllables {
		fmt.Fprintf(&sb, "%s  %s + %s", s.Text, jamoLabel(s.Initial), jamoLabel(s.Medial))
		if s.Final != nil {
			fmt.Fprintf(&sb, " + %s", jamoLabel(*s.Final))
		}
		sb.WriteString("\n")

		for _, j := range lo.Compact([]*analysis.Jamo{&s.Initial, &s.Medial, s.Final}) {
			if j.Hint != "" {
				hints = append(hints, fmt.Sprintf("%s %s: %s", s.Text, j.Compat, j.Hint))
			}
		}
	}
	sb.WriteString("```")

	for _, h := range lo.Uniq(hints) {
		fmt.Fprintf(&sb, "\n- %s", h)
	}
	return truncate(sb.String())
}

func jamoLabel(j analysis.Jamo) string {
	if j.Silent() {
		return j.Compat + " (silent)"
	}
	if j.Romanized == "" {
		return j.Compat
	}
	return fmt.Sprintf("%s %s", j.Compat, j.Romanized)
}

func truncate(s string) string {
	if len(s) <= maxMessageLength {
		return s
	}
	cut := maxMessageLength - len("…")
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

func (b *Bot) respond(ctx context.Context, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.log.ErrorContext(ctx, "failed to respond to interaction", "error", err)
	}
}

func (b *Bot) deferResponse(ctx context.Context, i *discordgo.InteractionCreate) {
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		b.log.ErrorContext(ctx, "failed to defer interaction", "error", err)
	}
}

func (b *Bot) editResponse(ctx context.Context, i *discordgo.InteractionCreate, content string) {
	_, err := b.session.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content})
	if err != nil {
		b.log.ErrorContext(ctx, "failed to edit interaction response", "error", err)
	}
}

type userError struct {
	Err error
}

func (e *userError) Error() string {
	return e.Err.Error()
}

func (e *userError) Unwrap() error {
	return e.Err
}

func newUserError(err error) *userError {
	return &userError{Err: err}
}

func getOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	opt, ok := lo.Find(options, func(opt *discordgo.ApplicationCommandInteractionDataOption) bool {
		return opt.Name == name
	})
	if !ok {
		return ""
	}
	return opt.StringValue()
}

// interactionUserID is the invoking user, from Member in guilds and User in DMs.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jusunglee/hangulfun/internal/analysis"
	"github.com/jusunglee/hangulfun/internal/db"
	"github.com/jusunglee/hangulfun/internal/db/dbopen"
	"github.com/jusunglee/hangulfun/internal/hangul"
	"github.com/jusunglee/hangulfun/internal/introductions"
	"github.com/jusunglee/hangulfun/internal/metrics"
	"github.com/jusunglee/hangulfun/internal/transliteration"
	"github.com/peterbourgon/ff/v4"
)

var errNoText = errors.New("no text given")

func (c *cli) decodeCommand() *ff.Command {
	return &ff.Command{
		Name:      "decode",
		Usage:     "hangul decode [--db PATH] TEXT...",
		ShortHelp: "break text into jamo and show how it is pronounced",
		Flags:     ff.NewFlagSet("decode").SetParent(c.flags),
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return errNoText
			}
			text := strings.Join(args, " ")
			word := writeDecodeReport(c.stdout, text)
			metrics.AnalysesTotal.WithLabelValues("cli").Inc()
			if *c.dbPath == "" || !hangul.ContainsSyllables(text) {
				return nil
			}
			return c.withRepo(ctx, func(repo db.Repository) error {
				lookup, err := repo.RecordLookup(ctx, db.RecordLookupParams{
					Text:       text,
					Romanized:  word.Romanized,
					Pronounced: word.Pronounced,
				})
				if err != nil {
					return fmt.Errorf("recording lookup: %w", err)
				}
				fmt.Fprintf(c.stdout, "looked up %d time(s)\n", lookup.Count)
				return nil
			})
		},
	}
}

// writeDecodeReport prints one line per character followed by the
// decomposition, surface form and romanizations of text.
func writeDecodeReport(w io.Writer, text string) analysis.Word {
	for _, info := range analysis.DescribeAll(text) {
		fmt.Fprintln(w, info)
	}
	word := analysis.Analyze(text)
	fmt.Fprintf(w, "decomposed: %s (%d jamo, %d bytes)\n",
		word.Decomposed, utf8.RuneCountInString(word.Decomposed), len(word.Decomposed))
	fmt.Fprintf(w, "surface:    %s\n", word.Pronounced)
	fmt.Fprintf(w, "literal:    %s\n", word.LiteralRomanized)
	fmt.Fprintf(w, "pronounced: %s\n", word.Romanized)
	return word
}

func (c *cli) romanizeCommand() *ff.Command {
	return &ff.Command{
		Name:      "romanize",
		Usage:     "hangul romanize TEXT...",
		ShortHelp: "romanize Korean (as pronounced) or Chinese text, one line per argument",
		Flags:     ff.NewFlagSet("romanize").SetParent(c.flags),
		Exec: func(_ context.Context, args []string) error {
			if len(args) == 0 {
				return errNoText
			}
			for _, arg := range args {
				fmt.Fprintf(c.stdout, "%s\t%s\n", arg, transliteration.Transliterate(arg))
			}
			return nil
		},
	}
}

func (c *cli) introductionsCommand() *ff.Command {
	return &ff.Command{
		Name:      "introductions",
		Usage:     "hangul introductions",
		ShortHelp: "print a greeting and introduction dialogue with random names",
		Flags:     ff.NewFlagSet("introductions").SetParent(c.flags),
		Exec: func(context.Context, []string) error {
			return writeDialogue(c.stdout, introductions.RandomCast())
		},
	}
}

func writeDialogue(w io.Writer, cast introductions.Cast) error {
	lines, err := introductions.Dialogue(cast)
	if err != nil {
		return err
	}
	for i, line := range lines {
		speaker := "A"
		if i%2 == 1 {
			speaker = "B"
		}
		fmt.Fprintf(w, "%s: %s\n   %s\n", speaker, line, transliteration.Transliterate(line))
	}
	return nil
}

func (c *cli) withRepo(ctx context.Context, fn func(repo db.Repository) error) error {
	repo, err := dbopen.Open(ctx, *c.dbPath, c.log)
	if err != nil {
		return err
	}
	defer repo.Close()
	return fn(repo)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jusunglee/hangulfun/internal/logger"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newCLI(os.Stdout, logger.New()).command()
	err := root.ParseAndRun(ctx, os.Args[1:], ff.WithEnvVarPrefix("HANGUL"))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ff.ErrHelp), errors.Is(err, ff.ErrNoExec):
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Command(root.GetSelected()))
		return nil
	default:
		return err
	}
}

type cli struct {
	stdout io.Writer
	log    *slog.Logger
	flags  *ff.FlagSet
	dbPath *string
}

func newCLI(stdout io.Writer, log *slog.Logger) *cli {
	fs := ff.NewFlagSet("hangul")
	return &cli{
		stdout: stdout,
		log:    log,
		flags:  fs,
		dbPath: fs.StringLong("db", "", "record lookups in this SQLite file or PostgreSQL URL"),
	}
}

func (c *cli) command() *ff.Command {
	return &ff.Command{
		Name:      "hangul",
		Usage:     "hangul [FLAGS] <SUBCOMMAND> ...",
		ShortHelp: "decode, romanize and study Korean text",
		Flags:     c.flags,
		Subcommands: []*ff.Command{
			c.decodeCommand(),
			c.romanizeCommand(),
			c.playCommand(),
			c.introductionsCommand(),
			c.historyCommand(),
		},
	}
}

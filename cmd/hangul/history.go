package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jusunglee/hangulfun/internal/db"
	"github.com/peterbourgon/ff/v4"
	"github.com/samber/lo"
)

func (c *cli) historyCommand() *ff.Command {
	fs := ff.NewFlagSet("history").SetParent(c.flags)
	var (
		sortBy = fs.StringEnumLong("sort", "order by most recent or most looked up", "recent", "top")
		limit  = fs.IntLong("limit", 20, "number of lookups to show")
	)
	return &ff.Command{
		Name:      "history",
		Usage:     "hangul history --db PATH [--sort recent|top] [--limit N]",
		ShortHelp: "list recorded lookups",
		Flags:     fs,
		Exec: func(ctx context.Context, _ []string) error {
			if *c.dbPath == "" {
				return errors.New("--db is required")
			}
			if *limit < 1 {
				return fmt.Errorf("limit must be positive, got %d", *limit)
			}
			return c.withRepo(ctx, func(repo db.Repository) error {
				list := repo.ListRecentLookups
				if *sortBy == "top" {
					list = repo.ListTopLookups
				}
				lookups, err := list(ctx, int32(*limit))
				if err != nil {
					return fmt.Errorf("listing lookups: %w", err)
				}
				writeHistory(c.stdout, lookups)
				return nil
			})
		},
	}
}

func writeHistory(w io.Writer, lookups []db.Lookup) {
	if len(lookups) == 0 {
		fmt.Fprintln(w, "no lookups recorded yet")
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TEXT", "PRONOUNCED", "ROMANIZED", "COUNT", "LAST SEEN").
		Rows(lo.Map(lookups, func(l db.Lookup, _ int) []string {
			return []string{
				l.Text,
				l.Pronounced,
				l.Romanized,
				strconv.FormatInt(l.Count, 10),
				l.LastSeen.Local().Format("2006-01-02 15:04"),
			}
		})...)
	fmt.Fprintln(w, t.String())
}

// Command doodle renders a poll from a markup file and optionally records one
// vote against it.
//
//	doodle -file poll.txt
//	doodle -file poll.txt -name "Ann" -vote 0,2
//	doodle -file poll.txt -name "Ann" -vote ""   # withdraw
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"doodle/contexts/community-scheduling/doodle-poll/application/commands"
	"doodle/contexts/community-scheduling/doodle-poll/domain/entities"
	"doodle/contexts/community-scheduling/doodle-poll/domain/identity"
	"doodle/contexts/community-scheduling/doodle-poll/domain/markup"
	"doodle/internal/app/bootstrap"
	"doodle/internal/platform/config"
	"doodle/internal/platform/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("doodle: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("doodle", flag.ContinueOnError)
	file := fs.String("file", "", "poll markup file")
	name := fs.String("name", "", "voter name; enables voting")
	vote := fs.String("vote", "", "comma separated option indexes; empty withdraws")
	storeDir := fs.String("store", "", "vote set directory; overrides the configured backend")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*file) == "" {
		return errors.New("-file is required")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read poll markup: %w", err)
	}
	pollConfig, options, err := markup.ParseBlock(string(raw))
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dir := strings.TrimSpace(*storeDir); dir != "" {
		cfg.Storage.Backend = config.BackendFile
		cfg.Storage.FileDir = dir
	}
	logger := logging.NewWithWriter(os.Stderr, cfg.Log.Format, "warn")

	ctx := context.Background()
	app, err := bootstrap.BuildModule(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	cmd := commands.RenderCommand{
		Config:           pollConfig,
		Options:          options,
		DisplayMode:      entities.DisplayModeShow,
		IsLatestRevision: true,
	}
	if isFlagSet(fs, "name") {
		indexes, err := parseIndexes(*vote)
		if err != nil {
			return err
		}
		formID, err := identity.DeriveFormID(pollConfig.Title)
		if err != nil {
			return err
		}
		cmd.Vote = &commands.PendingVote{
			FormID:          formID,
			VoterName:       *name,
			SelectedIndexes: indexes,
			SourceAddress:   "cli",
		}
	}

	projection, err := app.Module.Handler.Render.Render(ctx, cmd)
	if err != nil {
		return err
	}
	return printProjection(out, projection)
}

func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func parseIndexes(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	indexes := make([]int, 0, len(parts))
	for _, part := range parts {
		index, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid vote index %q: %w", part, err)
		}
		indexes = append(indexes, index)
	}
	return indexes, nil
}

func printProjection(out io.Writer, p entities.Projection) error {
	fmt.Fprintf(out, "%s (%s)\n", p.Title, p.StorageKey)
	if p.Message != entities.MessageNone {
		fmt.Fprintf(out, "message: %s\n", p.Message)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	header := append([]string{"voter"}, p.Options...)
	header = append(header, "voted at")
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range p.Tally.Rows {
		cells := make([]string, 0, len(row.Marked)+2)
		cells = append(cells, row.VoterName)
		for _, marked := range row.Marked {
			if marked {
				cells = append(cells, "x")
			} else {
				cells = append(cells, "")
			}
		}
		cells = append(cells, row.VotedAtDisplay)
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	totals := []string{string(p.ResultLabel)}
	for _, count := range p.Tally.Counts {
		totals = append(totals, strconv.Itoa(count))
	}
	totals = append(totals, "")
	fmt.Fprintln(tw, strings.Join(totals, "\t"))
	return tw.Flush()
}

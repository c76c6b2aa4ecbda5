package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/seqdiff"
)

func diffCmd(load func() (*config.Config, error)) *cobra.Command {
	var maxRows int

	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Print the row-level diff between two files",
		Long: `Treat each line of OLD and NEW as a list row and print the deletions
and insertions a list view would animate.

Deletions are printed as "-i line" with i an index into OLD, insertions as
"+i line" with i an index into NEW. When either file has more rows than
--max-rows the diff is skipped and "reload" is printed, as the list adapter
would fall back to a full reload.

Examples:
  vtree diff before.txt after.txt
  vtree diff --max-rows=0 big-a.txt big-b.txt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-rows") {
				maxRows = cfg.Diff.MaxRows
			}

			old, err := readLines(args[0])
			if err != nil {
				return err
			}
			next, err := readLines(args[1])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if seqdiff.Exceeds(len(old), len(next), maxRows) {
				fmt.Fprintf(w, "reload (%d -> %d rows, limit %d)\n", len(old), len(next), maxRows)
				return nil
			}
			cs := seqdiff.Diff(old, next)
			for _, d := range cs.Deletions {
				fmt.Fprintf(w, "-%d %s\n", d.Index, d.Value)
			}
			for _, ins := range cs.Insertions {
				fmt.Fprintf(w, "+%d %s\n", ins.Index, ins.Value)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxRows, "max-rows", 0, "Reload threshold, 0 to always diff (default from config)")

	return cmd
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Newf(errors.CategoryCLI, "cannot read %s", path).Wrap(err)
	}
	text := strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/pkg/component"
	"github.com/vango-dev/vtree/pkg/layout"
	"github.com/vango-dev/vtree/pkg/listview"
	"github.com/vango-dev/vtree/pkg/view"
	"github.com/vango-dev/vtree/pkg/vtree"
)

func demoCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		steps int
		quiet bool
		dump  bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Render a sample screen through a scripted sequence of changes",
		Long: `Render a sample inbox screen, then apply a scripted sequence of state
changes (new message, read flag, deletion, reorder, header toggle) and
print the mutations each pass made to the view hierarchy.

Examples:
  vtree demo
  vtree demo --steps=12 --quiet
  vtree demo --dump`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return runDemo(cmd.Context(), cmd.OutOrStdout(), cfg, steps, quiet, dump)
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", len(script), "Number of scripted changes after the first render")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only pass summaries")
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the view hierarchy after every pass")

	return cmd
}

// demoSession is the inbox screen wired to a host and a list table.
type demoSession struct {
	screen *inbox
	host   *component.Host
	table  *listview.Table
	last   listview.Update
}

// newDemoSession builds the session. onRows, which may be nil, sees every
// list update.
func newDemoSession(cfg *config.Config, logger *slog.Logger, onRows func(listview.Update), observers ...component.Observer) *demoSession {
	s := &demoSession{table: listview.NewTable(0)}
	rows := listview.NewComparable[string](s.table,
		listview.WithMaxRows(cfg.Diff.MaxRows),
		listview.WithLogger(logger),
		listview.WithObserver(func(u listview.Update) {
			s.last = u
			if onRows != nil {
				onRows(u)
			}
		}),
	)
	s.screen = newInbox(rows)

	opts := []component.Option{
		component.WithReconciler(vtree.NewReconciler(
			vtree.WithPoolSize(cfg.Recycle.PoolSize),
			vtree.WithLogger(logger),
		)),
		component.WithEngine(layout.NewStack()),
		component.WithBounds(view.Size{Width: cfg.Layout.Width, Height: cfg.Layout.Height}),
		component.WithLogger(logger),
	}
	for _, o := range observers {
		opts = append(opts, component.WithObserver(o))
	}
	s.host = component.NewHost(view.NewStack(), s.screen.render, opts...)
	return s
}

func runDemo(ctx context.Context, w io.Writer, cfg *config.Config, steps int, quiet, dump bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := cfg.Logger(io.Discard)
	s := newDemoSession(cfg, logger, nil)

	printPass(w, "initial render", s.host.Mount(ctx), s.last, quiet)
	if dump {
		fmt.Fprint(w, view.Dump(s.host.Container()))
	}
	for i := 0; i < steps; i++ {
		name := s.screen.advance()
		r := s.host.Render(ctx)
		printPass(w, name, r, s.last, quiet)
		if dump {
			fmt.Fprint(w, view.Dump(s.host.Container()))
		}
	}

	fmt.Fprintln(w)
	success(w, "%d passes, %d live views, %d pooled, %d rows in list",
		steps+1, s.host.Reconciler().Registry().Len(), s.host.Reconciler().Pool().Len(), s.table.Count())
	return nil
}

func printPass(w io.Writer, name string, r *component.Report, rows listview.Update, quiet bool) {
	st := r.Pass.Stats
	fmt.Fprintf(w, "pass %d (%s) %s\n", r.Seq, r.Kind, name)
	info(w, "created=%d recycled=%d reused=%d moved=%d removed=%d replaced=%d",
		st.Created, st.Recycled, st.Reused, st.Moved, st.Removed, st.Replaced)
	switch rows.Mode {
	case listview.ModeBatch:
		info(w, "list rows: -%d +%d", rows.Deletions, rows.Insertions)
	case listview.ModeReload:
		info(w, "list rows: reload (%d rows)", rows.NewCount)
	}
	if quiet {
		return
	}
	for _, m := range r.Pass.Mutations {
		if m.Op == vtree.OpReuse {
			continue
		}
		parent := m.Parent
		if parent == "" {
			parent = "(root)"
		}
		info(w, "  %-7s %s in %s at %d", m.Op, m.Key, parent, m.Index)
	}
}

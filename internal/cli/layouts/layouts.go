// Package layouts implements the layout subcommands over the layout store.
package layouts

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/regenrek/peakydock/internal/cli/output"
	"github.com/regenrek/peakydock/internal/cli/root"
	"github.com/regenrek/peakydock/internal/dock"
	"github.com/regenrek/peakydock/internal/layoutstore"
)

const maxSuggestions = 3

func Register(reg *root.Registry) {
	reg.Register("layout.list", runList)
	reg.Register("layout.show", runShow)
	reg.Register("layout.export", runExport)
	reg.Register("layout.import", runImport)
	reg.Register("layout.validate", runValidate)
	reg.Register("layout.delete", runDelete)
}

func openStore(ctx root.CommandContext) (*layoutstore.Store, error) {
	cfg, _, err := ctx.LoadConfig()
	if err != nil {
		return nil, err
	}
	return ctx.OpenStore(cfg)
}

// getEntry looks name up and, when it is missing, suggests close names.
func getEntry(store *layoutstore.Store, name string) (layoutstore.Entry, error) {
	entry, err := store.Get(name)
	if err == nil || !errors.Is(err, layoutstore.ErrNotFound) {
		return entry, err
	}
	return entry, notFound(name, store.Names())
}

func notFound(name string, names []string) error {
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return fmt.Errorf("layout %q: %w", name, layoutstore.ErrNotFound)
	}
	suggestions := make([]string, 0, maxSuggestions)
	for _, match := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, match.Str)
	}
	return fmt.Errorf("layout %q: %w (did you mean %s?)", name, layoutstore.ErrNotFound, strings.Join(suggestions, ", "))
}

func summarize(entry layoutstore.Entry) output.LayoutSummary {
	panels, stacks := countLayout(entry.Layout.Root)
	return output.LayoutSummary{
		Name:    entry.Name,
		SavedAt: entry.SavedAt,
		Panels:  panels,
		Stacks:  stacks,
	}
}

func countLayout(n *dock.NodeSnapshot) (panels, stacks int) {
	if n == nil {
		return 0, 0
	}
	if n.Type == dock.SnapshotStack {
		return len(n.Items), 1
	}
	for _, child := range n.Children {
		p, s := countLayout(child)
		panels += p
		stacks += s
	}
	return panels, stacks
}

func runList(ctx root.CommandContext) error {
	start := time.Now()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	names := store.Names()
	items := make([]output.LayoutSummary, 0, len(names))
	for _, name := range names {
		entry, err := store.Get(name)
		if err != nil {
			continue
		}
		items = append(items, summarize(entry))
	}
	if ctx.JSON {
		meta := output.WithDuration(output.NewMeta("layout.list", ctx.Deps.Version), start)
		return output.WriteSuccess(ctx.Out, meta, output.LayoutList{Dir: store.Dir(), Layouts: items, Total: len(items)})
	}
	if len(items) == 0 {
		_, err := fmt.Fprintf(ctx.Out, "No saved layouts in %s\n", store.Dir())
		return err
	}
	w := tabwriter.NewWriter(ctx.Out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "NAME\tPANELS\tSTACKS\tSAVED"); err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", item.Name, item.Panels, item.Stacks, formatSaved(item.SavedAt)); err != nil {
			return err
		}
	}
	return w.Flush()
}

func formatSaved(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func runShow(ctx root.CommandContext) error {
	start := time.Now()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	entry, err := getEntry(store, ctx.Args[0])
	if err != nil {
		return err
	}
	if ctx.JSON {
		meta := output.WithDuration(output.NewMeta("layout.show", ctx.Deps.Version), start)
		return output.WriteSuccess(ctx.Out, meta, output.LayoutDetail{LayoutSummary: summarize(entry), Layout: entry.Layout})
	}
	if _, err := fmt.Fprintf(ctx.Out, "%s (saved %s)\n", entry.Name, formatSaved(entry.SavedAt)); err != nil {
		return err
	}
	_, err = fmt.Fprint(ctx.Out, RenderTree(entry.Layout))
	return err
}

func runDelete(ctx root.CommandContext) error {
	start := time.Now()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	name := ctx.Args[0]
	if err := store.Delete(name); err != nil {
		if errors.Is(err, layoutstore.ErrNotFound) {
			return notFound(name, store.Names())
		}
		return err
	}
	if ctx.JSON {
		meta := output.WithDuration(output.NewMeta("layout.delete", ctx.Deps.Version), start)
		return output.WriteSuccess(ctx.Out, meta, output.ActionResult{Action: "layout.delete", Status: "ok", Message: name})
	}
	_, err = fmt.Fprintf(ctx.Out, "Deleted layout %q\n", name)
	return err
}

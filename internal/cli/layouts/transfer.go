package layouts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/regenrek/peakydock/internal/atomicfile"
	"github.com/regenrek/peakydock/internal/cli/output"
	"github.com/regenrek/peakydock/internal/cli/root"
	"github.com/regenrek/peakydock/internal/dock"
	"github.com/regenrek/peakydock/internal/layoutstore"
	"github.com/regenrek/peakydock/internal/userpath"
)

// maxLayoutFileSize bounds imported files.
const maxLayoutFileSize = 4 << 20

// readLayoutFile accepts either a bare layout ({"root": ...}) or a store
// entry as written by export --entry. The returned name is the entry's,
// if any.
func readLayoutFile(path string) (dock.Layout, string, error) {
	path = userpath.ExpandUser(path)
	info, err := os.Stat(path)
	if err != nil {
		return dock.Layout{}, "", err
	}
	if info.Size() > maxLayoutFileSize {
		return dock.Layout{}, "", fmt.Errorf("%s: file larger than %d bytes", path, maxLayoutFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return dock.Layout{}, "", err
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return dock.Layout{}, "", fmt.Errorf("%s: %w", path, err)
	}
	if _, ok := probe["schemaVersion"]; ok {
		entry, err := layoutstore.DecodeEntry(data)
		if err != nil {
			return dock.Layout{}, "", fmt.Errorf("%s: %w", path, err)
		}
		return entry.Layout, entry.Name, nil
	}
	var layout dock.Layout
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&layout); err != nil {
		return dock.Layout{}, "", fmt.Errorf("%s: %w", path, err)
	}
	if err := dock.ValidateLayout(layout); err != nil {
		return dock.Layout{}, "", fmt.Errorf("%s: %w", path, err)
	}
	return layout, "", nil
}

func runExport(ctx root.CommandContext) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	entry, err := getEntry(store, ctx.Args[0])
	if err != nil {
		return err
	}
	var payload any = entry.Layout
	if ctx.Cmd.Bool("entry") {
		payload = entry
	}
	if dest := strings.TrimSpace(ctx.Cmd.String("output")); dest != "" {
		dest = userpath.ExpandUser(dest)
		if err := atomicfile.WriteJSON(dest, payload, 0o644); err != nil {
			return err
		}
		_, err = fmt.Fprintf(ctx.ErrOut, "Wrote %s\n", dest)
		return err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(ctx.Out, "%s\n", data)
	return err
}

func runImport(ctx root.CommandContext) error {
	start := time.Now()
	file := ctx.Args[0]
	layout, entryName, err := readLayoutFile(file)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(ctx.Cmd.String("name"))
	if name == "" {
		name = entryName
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	if name, err = layoutstore.SanitizeName(name); err != nil {
		return err
	}
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	if _, err := store.Get(name); err == nil && !ctx.Cmd.Bool("force") {
		return fmt.Errorf("layout %q: %w (use --force to replace it)", name, output.ErrConflict)
	}
	if err := store.Save(ctx.Context, name, layout); err != nil {
		return err
	}
	panels, _ := countLayout(layout.Root)
	if ctx.JSON {
		meta := output.WithDuration(output.NewMeta("layout.import", ctx.Deps.Version), start)
		return output.WriteSuccess(ctx.Out, meta, output.ActionResult{
			Action:  "layout.import",
			Status:  "ok",
			Message: name,
			Details: map[string]any{"panels": panels, "file": file},
		})
	}
	_, err = fmt.Fprintf(ctx.Out, "Imported %s as %q (%d panels)\n", file, name, panels)
	return err
}

// errInvalid is returned after the validation report has been written.
var errInvalid = errors.New("layout is invalid")

func runValidate(ctx root.CommandContext) error {
	start := time.Now()
	file := ctx.Args[0]
	result := output.ValidationResult{File: file}
	layout, _, err := readLayoutFile(file)
	if err != nil {
		result.Errors = []string{err.Error()}
	} else {
		result.Valid = true
		result.Panels, _ = countLayout(layout.Root)
	}
	if ctx.JSON {
		meta := output.WithDuration(output.NewMeta("layout.validate", ctx.Deps.Version), start)
		if err := output.WriteSuccess(ctx.Out, meta, result); err != nil {
			return err
		}
		if !result.Valid {
			return root.ExitCode(1)
		}
		return nil
	}
	if !result.Valid {
		return fmt.Errorf("%w: %s", errInvalid, result.Errors[0])
	}
	_, err = fmt.Fprintf(ctx.Out, "%s: ok (%d panels)\n", file, result.Panels)
	return err
}

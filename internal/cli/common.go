/*
Package cli implements the command-line interface for liftsearch.

Each command is implemented as a separate function that returns a *cobra.Command,
allowing for clean separation and easy testing. Commands open one engine per
invocation from ~/.liftsearch.json and write to the command's output stream.
*/
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/khanglvm/liftsearch/internal/catalog"
	"github.com/khanglvm/liftsearch/internal/config"
	"github.com/khanglvm/liftsearch/internal/engine"
)

// loadConfig reads the default config file, creating it on first run.
func loadConfig() (*config.Config, string, error) {
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, path, nil
}

// loadConfigFile reads the default config file without environment
// overrides, for commands that write it back.
func loadConfigFile() (*config.Config, string, error) {
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadFrom(path)
	var notFound *config.ConfigNotFoundError
	if errors.As(err, &notFound) {
		return config.NewConfig(), path, nil
	}
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// openEngine builds an engine from the user's config. The caller closes it.
func openEngine(ctx context.Context) (*engine.Engine, *config.Config, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	storePath, err := cfg.StoragePath()
	if err != nil {
		return nil, nil, err
	}

	e, err := engine.New(ctx, engine.Options{
		CatalogSource:   cfg.Catalog.Source,
		CatalogTimeout:  cfg.CatalogTimeout(),
		StorageBackend:  cfg.Storage.Backend,
		StoragePath:     storePath,
		DisableLearning: !cfg.Learning.Enabled,
	})
	if err != nil {
		return nil, nil, err
	}
	return e, cfg, nil
}

// resolveExercise finds an exercise by id or display name.
func resolveExercise(e *engine.Engine, ref string) (catalog.Exercise, error) {
	ex, ok := e.Find(ref)
	if !ok {
		return catalog.Exercise{}, fmt.Errorf("%w: %s", engine.ErrUnknownExercise, ref)
	}
	return ex, nil
}

// writeJSON pretty-prints v.
func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printExercises prints a numbered exercise list.
func printExercises(w io.Writer, exercises []catalog.Exercise) {
	for i, ex := range exercises {
		fmt.Fprintf(w, "  %2d. %s", i+1, colorGreen(w, ex.Name))
		if label := ex.EquipmentLabel(); label != "" {
			fmt.Fprintf(w, " (%s)", label)
		}
		fmt.Fprintf(w, "  [%s]\n", ex.ID)
	}
}

// colorGreen returns text with green ANSI color when w is a terminal.
func colorGreen(w io.Writer, s string) string {
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return s
	}
	return "\033[32m" + s + "\033[0m"
}

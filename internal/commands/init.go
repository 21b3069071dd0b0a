package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tradeconv-dev/tradeconv/internal/config"
	"github.com/tradeconv-dev/tradeconv/internal/refdata"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tradeconv project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir)
		},
	}

	return cmd
}

func runInit(dir string) error {
	cfg := config.Default()

	dirs := []string{
		cfg.RefData.Dir,
		cfg.Dirs.Import,
		filepath.Join(cfg.Dirs.Import, "processed"),
		cfg.Dirs.Output,
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Seed empty reference data tables; the operator fills these in.
	contexts := refdata.ContextHeader + "\n"
	if err := os.WriteFile(filepath.Join(dir, cfg.RefData.Dir, "contexts.csv"), []byte(contexts), 0o644); err != nil {
		return fmt.Errorf("writing contexts skeleton: %w", err)
	}

	identifiers := refdata.IdentifierHeader + "\n"
	if err := os.WriteFile(filepath.Join(dir, cfg.RefData.Dir, "identifiers.csv"), []byte(identifiers), 0o644); err != nil {
		return fmt.Errorf("writing identifiers skeleton: %w", err)
	}

	fmt.Printf("Initialized tradeconv project at %s\n", dir)
	return nil
}

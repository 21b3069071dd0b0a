package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tradeconv-dev/tradeconv/internal/config"
	"github.com/tradeconv-dev/tradeconv/internal/engine"
	"github.com/tradeconv-dev/tradeconv/internal/format"
	"github.com/tradeconv-dev/tradeconv/internal/model"
	"github.com/tradeconv-dev/tradeconv/internal/reader"
	"github.com/tradeconv-dev/tradeconv/internal/refdata"
	"github.com/tradeconv-dev/tradeconv/internal/runlog"
	"github.com/tradeconv-dev/tradeconv/internal/writer"
)

func newConvertCommand() *cobra.Command {
	var (
		configPath string
		formatTag  string
		outPath    string
		portfolio  string
	)

	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert trade exports to quick-import records",
		Long: `Convert runs broker or custodian trade exports through the conversion
pipeline and writes a quick-import CSV. With file arguments it converts
exactly those files; without arguments it scans the import directory and
moves converted files into import/processed.

The whole batch is converted or nothing is: the first invalid line aborts
the run with no output file written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(configPath, formatTag, outPath, portfolio, args)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.FileName, "path to tradeconv.yaml")
	cmd.Flags().StringVarP(&formatTag, "format", "f", "", "source format tag (defaults to config)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file path (defaults to output dir)")
	cmd.Flags().StringVar(&portfolio, "portfolio", "", "portfolio override for fixed-book formats")

	return cmd
}

func runConvert(configPath, formatTag, outPath, portfolio string, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	root := filepath.Dir(configPath)

	if formatTag == "" {
		formatTag = cfg.Convert.DefaultFormat
	}
	f := format.DefaultRegistry().Get(formatTag)
	if f == nil {
		return fmt.Errorf("unknown format %q (see 'tradeconv formats')", formatTag)
	}
	if portfolio != "" {
		bs, ok := f.(*format.BondSettlement)
		if !ok {
			return fmt.Errorf("--portfolio applies only to fixed-book formats")
		}
		override := *bs
		override.Portfolio = portfolio
		f = &override
	}

	ref, err := refdata.Load(filepath.Join(root, cfg.RefData.Dir))
	if err != nil {
		return err
	}

	scanned := false
	files := args
	if len(files) == 0 {
		scanned = true
		infos, err := reader.Scan(filepath.Join(root, cfg.Dirs.Import))
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("No files to convert")
			return nil
		}
		for _, info := range infos {
			files = append(files, info.Path)
		}
	}

	// All files in a run share one batch so key disambiguation spans them.
	var lines []model.RawLine
	for _, path := range files {
		fileLines, err := reader.ReadFile(path, f, ref)
		if err != nil {
			return err
		}
		lines = append(lines, fileLines...)
	}

	svc := engine.NewService(f, ref)
	records, err := svc.Convert(lines)
	if err != nil {
		return err
	}

	if outPath == "" {
		name := fmt.Sprintf("upload-%s-%s.csv", formatTag, time.Now().Format("20060102-150405"))
		outPath = filepath.Join(root, cfg.Dirs.Output, name)
	}
	if err := writer.WriteFile(outPath, records); err != nil {
		return err
	}

	if cfg.Convert.RunLog {
		entries := make([]runlog.Entry, 0, len(files))
		for _, path := range files {
			entries = append(entries, runlog.Entry{
				Timestamp:  time.Now(),
				Format:     formatTag,
				SourceFile: filepath.Base(path),
				Records:    len(records),
				OutputFile: filepath.Base(outPath),
				Status:     "converted",
			})
		}
		if err := runlog.Append(root, entries); err != nil {
			return err
		}
	}

	if scanned {
		for _, path := range files {
			if err := reader.MarkProcessed(filepath.Join(root, cfg.Dirs.Import), filepath.Base(path)); err != nil {
				return err
			}
		}
	}

	fmt.Printf("Converted %d records from %d file(s) to %s\n", len(records), len(files), outPath)
	return nil
}

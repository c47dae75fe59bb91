// pagectl is the local archive tool: it extracts newspaper scans into a
// SQLite archive and exports review spreadsheets, without a running daemon.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pressarchive/newspaper-ocr/internal/export"
	"github.com/pressarchive/newspaper-ocr/internal/ingest"
	"github.com/pressarchive/newspaper-ocr/internal/llm/openai"
	"github.com/pressarchive/newspaper-ocr/internal/pipeline"
	"github.com/pressarchive/newspaper-ocr/internal/repository"
	"github.com/pressarchive/newspaper-ocr/internal/script"
)

const dateLayout = "2006-01-02"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	var archivePath string

	root := &cobra.Command{
		Use:           "pagectl",
		Short:         "Extract newspaper scans into a local archive and export them",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&archivePath, "archive", "pages.db", "path to the SQLite archive")

	root.AddCommand(newProcessCmd(&archivePath, logger))
	root.AddCommand(newExportCmd(&archivePath, logger))

	if err := root.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func newProcessCmd(archivePath *string, logger *slog.Logger) *cobra.Command {
	var (
		model      string
		skipHidden bool
		keepScript bool
	)

	cmd := &cobra.Command{
		Use:   "process <scan-dir>",
		Short: "Extract every scan under a directory into the archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := repository.OpenSQLite(*archivePath)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer store.Close()

			scans, stats, err := ingest.DiscoverScans(args[0], skipHidden)
			if err != nil {
				return fmt.Errorf("discover scans: %w", err)
			}
			logger.Info("scans discovered",
				"root", args[0],
				"matched", stats.Matched,
				"deduplicated", stats.Deduplicated,
			)

			sc := script.Transform(script.Noop)
			if !keepScript {
				if sc, err = script.S2HK(); err != nil {
					return fmt.Errorf("load s2hk conversion: %w", err)
				}
			}

			extractor := openai.NewClient(openai.Config{Model: model, Lenient: true}, logger)
			processor := pipeline.NewProcessor(logger, pipeline.Config{}, store, extractor, sc)

			var failed int
			for _, scan := range scans {
				if _, err := processor.ProcessPage(cmd.Context(), scan); err != nil {
					logger.Error("page failed", "scan", scan, "error", err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d pages failed", failed, len(scans))
			}
			logger.Info("processing complete", "pages", len(scans))
			return nil
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "vision model override (default from OPENAI_MODEL)")
	cmd.Flags().BoolVar(&skipHidden, "skip-hidden", true, "skip hidden files and directories")
	cmd.Flags().BoolVar(&keepScript, "keep-script", false, "skip simplified-to-traditional conversion")
	return cmd
}

func newExportCmd(archivePath *string, logger *slog.Logger) *cobra.Command {
	var (
		fromStr string
		toStr   string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export archived pages to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := repository.OpenSQLite(*archivePath)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer store.Close()

			from, err := parseDateFlag(fromStr)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			to, err := parseDateFlag(toStr)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			data, err := export.NewService(store, logger).ExportPagesXLSX(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write workbook: %w", err)
			}
			logger.Info("export written", "path", outPath, "bytes", len(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "start of the publication window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "end of the publication window (YYYY-MM-DD)")
	cmd.Flags().StringVar(&outPath, "out", "pages.xlsx", "output workbook path")
	return cmd
}

func parseDateFlag(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return &t, nil
}

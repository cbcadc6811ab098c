package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vcfsplit/internal/batch"
	"github.com/inodb/vcfsplit/internal/duckdb"
	"github.com/inodb/vcfsplit/internal/output"
	"github.com/inodb/vcfsplit/internal/scan"
	"github.com/inodb/vcfsplit/internal/vcf"
)

func newScanCmd() *cobra.Command {
	var (
		recordsOut string
		metaOut    string
	)

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Extract every .vcf / .vcf.gz file in a directory",
		Long: `Extract header metadata and body records from every file in a directory
whose name ends in .vcf or .vcf.gz (case-insensitive).

gzip-compressed files are selected but not decompressed; they are reported
as errors. A file that fails does not stop the others.`,
		Example: `  vcfsplit scan data/
  vcfsplit scan --records records.tsv --meta meta.tsv data/
  vcfsplit scan --duckdb out.duckdb --workers 4 data/`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args[0], recordsOut, metaOut)
		},
	}

	cmd.Flags().StringVar(&recordsOut, "records", "", "Write body records to file ('-' for stdout)")
	cmd.Flags().StringVar(&metaOut, "meta", "", "Write meta lines to file ('-' for stdout)")
	cmd.Flags().String("duckdb", "", "Export extracted content to a DuckDB database")
	cmd.Flags().Int("workers", 0, "Files processed in parallel (default: number of CPUs)")
	cmd.Flags().Bool("recursive", false, "Descend into subdirectories")
	viper.BindPFlag("duckdb.path", cmd.Flags().Lookup("duckdb"))
	viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	viper.BindPFlag("recursive", cmd.Flags().Lookup("recursive"))

	return cmd
}

func runScan(cmd *cobra.Command, dir, recordsOut, metaOut string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	paths, err := scan.Dir(dir, viper.GetBool("recursive"))
	if err != nil {
		return err
	}
	logger.Info("found VCF files", zap.String("dir", dir), zap.Int("count", len(paths)))

	var sinks []fileSink

	if recordsOut != "" {
		out, closeFn, err := openOutput(cmd, recordsOut)
		if err != nil {
			return err
		}
		defer closeFn()
		tw := output.NewTabWriter(out)
		if err := tw.WriteHeader(); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		sinks = append(sinks, fileSink{write: tw.WriteFile, flush: tw.Flush})
	}

	if metaOut != "" {
		out, closeFn, err := openOutput(cmd, metaOut)
		if err != nil {
			return err
		}
		defer closeFn()
		mw := output.NewMetaWriter(out)
		if err := mw.WriteHeader(); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		sinks = append(sinks, fileSink{write: mw.WriteFile, flush: mw.Flush})
	}

	if dbPath := viper.GetString("duckdb.path"); dbPath != "" {
		store, err := duckdb.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Info("exporting to DuckDB", zap.String("path", dbPath))
		sinks = append(sinks, fileSink{write: duckdbSink(store, logger)})
	}

	p := batch.NewProcessor(viper.GetInt("workers"))
	p.SetLogger(logger)

	report := &batch.Report{}
	runErr := p.Run(context.Background(), paths, func(r batch.Result) error {
		if r.File != nil {
			if err := writeSinks(sinks, r.File); err != nil {
				logger.Warn("failed to write file", zap.String("path", r.Path), zap.Error(err))
				r.Err = errors.Join(r.Err, err)
			}
		}
		report.Results = append(report.Results, r)
		return nil
	})

	if err := flushSinks(sinks); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	output.WriteSummary(cmd.ErrOrStderr(), report)

	if len(report.Failed()) > 0 {
		return errFilesFailed
	}
	return nil
}

// fileSink receives each extracted file in input order.
type fileSink struct {
	write func(*vcf.File) error
	flush func() error
}

// writeSinks hands f to every sink. A failing sink does not stop the others.
func writeSinks(sinks []fileSink, f *vcf.File) error {
	var errs []error
	for _, s := range sinks {
		if err := s.write(f); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", f.Path, err))
		}
	}
	return errors.Join(errs...)
}

func flushSinks(sinks []fileSink) error {
	for _, s := range sinks {
		if s.flush == nil {
			continue
		}
		if err := s.flush(); err != nil {
			return fmt.Errorf("flushing output: %w", err)
		}
	}
	return nil
}

// duckdbSink imports files whose fingerprint changed since the last import.
func duckdbSink(store *duckdb.Store, logger *zap.Logger) func(*vcf.File) error {
	return func(f *vcf.File) error {
		fp, err := duckdb.StatFile(f.Path)
		if err != nil {
			return err
		}
		imported, err := store.Imported(fp)
		if err != nil {
			return err
		}
		if imported {
			logger.Debug("unchanged since last import, skipping", zap.String("path", f.Path))
			return nil
		}
		return store.WriteFile(f, fp)
	}
}

// openOutput opens path for writing; "-" is the command's stdout.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

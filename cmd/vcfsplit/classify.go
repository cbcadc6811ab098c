package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inodb/vcfsplit/internal/output"
	"github.com/inodb/vcfsplit/internal/vcf"
)

func newClassifyCmd() *cobra.Command {
	var showMeta bool

	cmd := &cobra.Command{
		Use:   "classify <file>",
		Short: "Print the classification of every line in a VCF file",
		Long: `Print LINE, KIND and TEXT for every line of a VCF file, where KIND is
META, COLUMN_HEADER or BODY. With --meta, print the meta lines grouped as
INFO, FILTER, FORMAT or OTHER instead.`,
		Example: `  vcfsplit classify input.vcf
  vcfsplit classify --meta input.vcf`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args[0], showMeta)
		},
	}

	cmd.Flags().BoolVar(&showMeta, "meta", false, "Print meta lines with their INFO/FILTER/FORMAT/OTHER bucket")

	return cmd
}

func runClassify(cmd *cobra.Command, path string, showMeta bool) error {
	vf, err := vcf.LoadFile(path)
	if err != nil {
		return err
	}

	if showMeta {
		// Malformed body lines do not affect the meta buckets.
		f, _ := vcf.Extract(vf)
		mw := output.NewMetaWriter(cmd.OutOrStdout())
		if err := mw.WriteHeader(); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		if err := mw.WriteFile(f); err != nil {
			return fmt.Errorf("writing meta lines: %w", err)
		}
		return mw.Flush()
	}

	lw := output.NewLineWriter(cmd.OutOrStdout())
	if err := lw.WriteLines(vcf.ClassifyLines(vf.Lines)); err != nil {
		return fmt.Errorf("writing lines: %w", err)
	}
	return lw.Flush()
}

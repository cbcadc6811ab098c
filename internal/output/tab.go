// Package output provides writers for extracted VCF content.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vcfsplit/internal/vcf"
)

// TabWriter writes body records in tab-delimited format, one row per
// record, prefixed with the source file and line number.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited record writer.
func NewTabWriter(w io.Writer) *TabWriter {
	columns := []string{"#FILE", "LINE"}
	columns = append(columns, vcf.FixedColumnNames[:]...)
	return &TabWriter{
		w:       bufio.NewWriter(w),
		columns: columns,
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// WriteFile writes every record of f.
func (tw *TabWriter) WriteFile(f *vcf.File) error {
	for i := range f.Records {
		if err := tw.Write(f.Path, &f.Records[i]); err != nil {
			return err
		}
	}
	return nil
}

// Write writes a single record. Sample columns are not written.
func (tw *TabWriter) Write(path string, r *vcf.Record) error {
	fields := r.Fields()
	values := make([]string, 0, len(tw.columns))
	values = append(values, path, strconv.Itoa(r.Line))
	values = append(values, fields[:]...)

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

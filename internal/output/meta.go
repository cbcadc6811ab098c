package output

import (
	"bufio"
	"io"
	"strconv"

	"github.com/inodb/vcfsplit/internal/vcf"
)

// MetaWriter writes meta lines as FILE, LINE, KIND, RAW rows. The raw text
// is written verbatim and may itself contain tabs.
type MetaWriter struct {
	w *bufio.Writer
}

// NewMetaWriter creates a new meta line writer.
func NewMetaWriter(w io.Writer) *MetaWriter {
	return &MetaWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header line.
func (mw *MetaWriter) WriteHeader() error {
	_, err := mw.w.WriteString("#FILE\tLINE\tKIND\tRAW\n")
	return err
}

// WriteFile writes every meta line of f in file order.
func (mw *MetaWriter) WriteFile(f *vcf.File) error {
	for _, ml := range f.Meta.All() {
		if err := mw.writeRow(f.Path, strconv.Itoa(ml.Line), ml.Kind.String(), ml.RawText); err != nil {
			return err
		}
	}
	return nil
}

func (mw *MetaWriter) writeRow(values ...string) error {
	for i, v := range values {
		if i > 0 {
			if err := mw.w.WriteByte('\t'); err != nil {
				return err
			}
		}
		if _, err := mw.w.WriteString(v); err != nil {
			return err
		}
	}
	return mw.w.WriteByte('\n')
}

// Flush flushes any buffered data to the underlying writer.
func (mw *MetaWriter) Flush() error {
	return mw.w.Flush()
}

// LineWriter writes the per-line classification of a file.
type LineWriter struct {
	w *bufio.Writer
}

// NewLineWriter creates a new classification writer.
func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{w: bufio.NewWriter(w)}
}

// WriteLines writes LINE, KIND and the original text for each line.
func (lw *LineWriter) WriteLines(lines []vcf.Line) error {
	for _, l := range lines {
		row := strconv.Itoa(l.Number) + "\t" + l.Kind.String() + "\t" + l.Text + "\n"
		if _, err := lw.w.WriteString(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (lw *LineWriter) Flush() error {
	return lw.w.Flush()
}

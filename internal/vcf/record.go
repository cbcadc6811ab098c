package vcf

import (
	"fmt"
	"strings"
)

// FixedColumns is the number of mandatory VCF body columns.
const FixedColumns = 8

// FixedColumnNames are the mandatory body columns in order.
var FixedColumnNames = [FixedColumns]string{"CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO"}

// Record is one body line split into the fixed VCF columns.
// Values are kept verbatim; POS and QUAL are not parsed.
type Record struct {
	Line   int    // 1-based source line number
	Chrom  string // Chromosome name (e.g., "12", "chr12")
	Pos    string
	ID     string
	Ref    string
	Alt    string
	Qual   string
	Filter string
	Info   string
	Extra  []string // FORMAT and sample columns, if any
}

// Fields returns the eight fixed values in column order.
func (r *Record) Fields() [FixedColumns]string {
	return [FixedColumns]string{r.Chrom, r.Pos, r.ID, r.Ref, r.Alt, r.Qual, r.Filter, r.Info}
}

// SplitRecord splits a body line on tabs. Lines with fewer than eight
// columns return a *MalformedRecordError and a zero Record.
func SplitRecord(line string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < FixedColumns {
		return Record{}, &MalformedRecordError{Columns: len(fields)}
	}

	r := Record{
		Chrom:  fields[0],
		Pos:    fields[1],
		ID:     fields[2],
		Ref:    fields[3],
		Alt:    fields[4],
		Qual:   fields[5],
		Filter: fields[6],
		Info:   fields[7],
	}
	if len(fields) > FixedColumns {
		r.Extra = fields[FixedColumns:]
	}
	return r, nil
}

// Columns is the column-major view of a file's records: eight aligned
// sequences where index i in each refers to the same body line.
type Columns struct {
	Chrom  []string
	Pos    []string
	ID     []string
	Ref    []string
	Alt    []string
	Qual   []string
	Filter []string
	Info   []string
}

// Len returns the shared length of the sequences.
func (c Columns) Len() int {
	return len(c.Chrom)
}

// add appends one value to every sequence.
func (c *Columns) add(r *Record) {
	c.Chrom = append(c.Chrom, r.Chrom)
	c.Pos = append(c.Pos, r.Pos)
	c.ID = append(c.ID, r.ID)
	c.Ref = append(c.Ref, r.Ref)
	c.Alt = append(c.Alt, r.Alt)
	c.Qual = append(c.Qual, r.Qual)
	c.Filter = append(c.Filter, r.Filter)
	c.Info = append(c.Info, r.Info)
}

// MalformedRecordError reports a body line with fewer than eight columns.
type MalformedRecordError struct {
	Path    string
	Line    int
	Columns int
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("vcf parse error in %s at line %d: expected at least %d columns, found %d",
		e.Path, e.Line, FixedColumns, e.Columns)
}

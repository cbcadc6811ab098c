package vcf

import "strings"

// Line prefixes that tag header content.
const (
	MetaPrefix         = "##"
	ColumnHeaderPrefix = "#CHROM"
)

// Kind is the role a line plays in a VCF file.
type Kind int

const (
	// KindBody is a data record.
	KindBody Kind = iota
	// KindMeta is a "##" definitional header line.
	KindMeta
	// KindColumnHeader is the "#CHROM" line naming the columns.
	KindColumnHeader
)

func (k Kind) String() string {
	switch k {
	case KindMeta:
		return "META"
	case KindColumnHeader:
		return "COLUMN_HEADER"
	case KindBody:
		return "BODY"
	default:
		return "UNKNOWN"
	}
}

// Line is a classified source line.
type Line struct {
	Number int // 1-based line number
	Kind   Kind
	Text   string
}

// Classify returns the kind of a single line. The first matching rule wins:
// "##" is META, "#CHROM" is COLUMN_HEADER, everything else is BODY.
func Classify(line string) Kind {
	switch {
	case strings.HasPrefix(line, MetaPrefix):
		return KindMeta
	case strings.HasPrefix(line, ColumnHeaderPrefix):
		return KindColumnHeader
	default:
		return KindBody
	}
}

// ClassifyLines tags every line in order.
func ClassifyLines(lines []string) []Line {
	out := make([]Line, len(lines))
	for i, text := range lines {
		out[i] = Line{Number: i + 1, Kind: Classify(text), Text: text}
	}
	return out
}

// ColumnHeader is the parsed "#CHROM" line.
type ColumnHeader struct {
	Line       int
	FieldNames []string // e.g. CHROM, POS, ID, REF, ALT, QUAL, FILTER, INFO
}

// ParseColumnHeader splits a column-header line on tabs. The leading "#" is
// dropped from the first name.
func ParseColumnHeader(line string) ColumnHeader {
	names := strings.Split(strings.TrimPrefix(line, "#"), "\t")
	return ColumnHeader{FieldNames: names}
}

// SampleNames returns the per-sample column names after FORMAT (index 9+).
// Returns nil if no sample columns are present.
func (h *ColumnHeader) SampleNames() []string {
	if len(h.FieldNames) > 9 {
		return h.FieldNames[9:]
	}
	return nil
}

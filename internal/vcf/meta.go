package vcf

import (
	"sort"
	"strings"
)

// MetaKind buckets a "##" line by its leading tag.
type MetaKind int

const (
	MetaOther MetaKind = iota
	MetaInfo
	MetaFilter
	MetaFormat
)

func (k MetaKind) String() string {
	switch k {
	case MetaInfo:
		return "INFO"
	case MetaFilter:
		return "FILTER"
	case MetaFormat:
		return "FORMAT"
	default:
		return "OTHER"
	}
}

// ParseMetaKind is the inverse of MetaKind.String.
func ParseMetaKind(s string) MetaKind {
	switch s {
	case "INFO":
		return MetaInfo
	case "FILTER":
		return MetaFilter
	case "FORMAT":
		return MetaFormat
	default:
		return MetaOther
	}
}

// MetaLine is one raw meta line. The key=value structure is not parsed.
type MetaLine struct {
	Line    int
	Kind    MetaKind
	RawText string
}

// ClassifyMeta returns the bucket for a line already classified as META.
func ClassifyMeta(line string) MetaKind {
	tag := strings.TrimPrefix(line, MetaPrefix)
	switch {
	case strings.HasPrefix(tag, "INFO"):
		return MetaInfo
	case strings.HasPrefix(tag, "FILTER"):
		return MetaFilter
	case strings.HasPrefix(tag, "FORMAT"):
		return MetaFormat
	default:
		return MetaOther
	}
}

// Meta holds meta lines grouped by kind, each in order of appearance.
type Meta struct {
	Info   []MetaLine
	Filter []MetaLine
	Format []MetaLine
	Other  []MetaLine
}

// Add appends a meta line to its bucket.
func (m *Meta) Add(ml MetaLine) {
	switch ml.Kind {
	case MetaInfo:
		m.Info = append(m.Info, ml)
	case MetaFilter:
		m.Filter = append(m.Filter, ml)
	case MetaFormat:
		m.Format = append(m.Format, ml)
	default:
		m.Other = append(m.Other, ml)
	}
}

// Len returns the number of meta lines across all buckets.
func (m *Meta) Len() int {
	return len(m.Info) + len(m.Filter) + len(m.Format) + len(m.Other)
}

// All returns every meta line in file order.
func (m *Meta) All() []MetaLine {
	all := make([]MetaLine, 0, m.Len())
	all = append(all, m.Info...)
	all = append(all, m.Filter...)
	all = append(all, m.Format...)
	all = append(all, m.Other...)
	sort.Slice(all, func(i, j int) bool { return all[i].Line < all[j].Line })
	return all
}

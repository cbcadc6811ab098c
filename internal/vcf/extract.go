package vcf

import "errors"

// File is the structured content extracted from one VariantFile.
type File struct {
	Path    string
	Meta    Meta
	Header  *ColumnHeader // nil when the file has no #CHROM line
	Records []Record

	// ColumnHeaderLines counts #CHROM lines. Only the first is kept in Header.
	ColumnHeaderLines int

	// Malformed lists body lines that were skipped for having too few columns.
	Malformed []*MalformedRecordError
}

// Columns returns the eight aligned body sequences.
func (f *File) Columns() Columns {
	var c Columns
	for i := range f.Records {
		c.add(&f.Records[i])
	}
	return c
}

// ExtractFile loads and extracts the file at path.
func ExtractFile(path string) (*File, error) {
	vf, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Extract(vf)
}

// Extract classifies every line of vf and builds a File.
//
// Malformed body lines never abort extraction: they are skipped, collected
// in File.Malformed and returned joined as the error, alongside the File
// holding every valid record.
func Extract(vf *VariantFile) (*File, error) {
	f := &File{Path: vf.Path}

	for _, l := range ClassifyLines(vf.Lines) {
		switch l.Kind {
		case KindMeta:
			f.Meta.Add(MetaLine{Line: l.Number, Kind: ClassifyMeta(l.Text), RawText: l.Text})

		case KindColumnHeader:
			f.ColumnHeaderLines++
			if f.Header == nil {
				h := ParseColumnHeader(l.Text)
				h.Line = l.Number
				f.Header = &h
			}

		case KindBody:
			r, err := SplitRecord(l.Text)
			if err != nil {
				var me *MalformedRecordError
				if !errors.As(err, &me) {
					return nil, err
				}
				me.Path = vf.Path
				me.Line = l.Number
				f.Malformed = append(f.Malformed, me)
				continue
			}
			r.Line = l.Number
			f.Records = append(f.Records, r)
		}
	}

	if len(f.Malformed) > 0 {
		errs := make([]error, len(f.Malformed))
		for i, me := range f.Malformed {
			errs[i] = me
		}
		return f, errors.Join(errs...)
	}
	return f, nil
}

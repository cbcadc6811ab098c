package vcf

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Kind
	}{
		{"INFO meta", `##INFO=<ID=DP,Number=1,Type=Integer,Description="Depth">`, KindMeta},
		{"fileformat meta", "##fileformat=VCFv4.2", KindMeta},
		{"bare meta marker", "##", KindMeta},
		{"column header", "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO", KindColumnHeader},
		{"column header prefix only", "#CHROM", KindColumnHeader},
		{"meta wins over column header", "##CHROM", KindMeta},
		{"single hash comment", "#comment", KindBody},
		{"lowercase chrom header", "#chrom\tpos", KindBody},
		{"record", "chr1\t12345\trs1\tA\tG\t99\tPASS\tDP=30", KindBody},
		{"blank", "", KindBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.line); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassifyLines_Partition(t *testing.T) {
	lines := []string{
		"##fileformat=VCFv4.2",
		"##INFO=<ID=DP>",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO",
		"chr1\t1\t.\tA\tC\t.\t.\t.",
		"##late=meta",
		"chr1\t2\t.\tA\tC\t.\t.\t.",
	}

	classified := ClassifyLines(lines)
	if len(classified) != len(lines) {
		t.Fatalf("got %d classified lines, want %d", len(classified), len(lines))
	}

	var rebuilt []string
	for i, l := range classified {
		if l.Number != i+1 {
			t.Errorf("line %d has number %d", i+1, l.Number)
		}
		rebuilt = append(rebuilt, l.Text)
	}
	if strings.Join(rebuilt, "\n") != strings.Join(lines, "\n") {
		t.Error("recombined lines differ from input")
	}

	wantKinds := []Kind{KindMeta, KindMeta, KindColumnHeader, KindBody, KindMeta, KindBody}
	for i, want := range wantKinds {
		if classified[i].Kind != want {
			t.Errorf("line %d: kind %v, want %v", i+1, classified[i].Kind, want)
		}
	}
}

func TestParseColumnHeader(t *testing.T) {
	h := ParseColumnHeader("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO")

	want := []string{"CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO"}
	if len(h.FieldNames) != len(want) {
		t.Fatalf("got %d field names, want %d", len(h.FieldNames), len(want))
	}
	for i := range want {
		if h.FieldNames[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, h.FieldNames[i], want[i])
		}
	}
	if h.SampleNames() != nil {
		t.Errorf("expected no sample names, got %v", h.SampleNames())
	}
}

func TestColumnHeader_SampleNames(t *testing.T) {
	h := ParseColumnHeader("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tTUMOR\tNORMAL")

	samples := h.SampleNames()
	if len(samples) != 2 || samples[0] != "TUMOR" || samples[1] != "NORMAL" {
		t.Errorf("SampleNames() = %v, want [TUMOR NORMAL]", samples)
	}
}

func TestKind_String(t *testing.T) {
	if KindMeta.String() != "META" || KindColumnHeader.String() != "COLUMN_HEADER" || KindBody.String() != "BODY" {
		t.Error("unexpected Kind names")
	}
}

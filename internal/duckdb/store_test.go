package duckdb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vcfsplit/internal/vcf"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func extractString(t *testing.T, path, content string) *vcf.File {
	t.Helper()
	vf, err := vcf.LoadReader(path, strings.NewReader(content))
	require.NoError(t, err)
	f, _ := vcf.Extract(vf)
	return f
}

const krasVCF = "##fileformat=VCFv4.2\n" +
	"##INFO=<ID=DP,Number=1,Type=Integer,Description=\"Depth\">\n" +
	"##FORMAT=<ID=GT,Number=1,Type=String,Description=\"Genotype\">\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
	"12\t25245351\trs121913529\tC\tA\t99\tPASS\tDP=30\n" +
	"12\t25245350\t.\tC\n" +
	"7\t140753336\t.\tA\tT\t.\tPASS\tDP=12\n"

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.duckdb")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestWriteAndReadFile(t *testing.T) {
	s := openInMemory(t)

	f := extractString(t, "kras.vcf", krasVCF)
	fp := FileFingerprint{Path: "kras.vcf", Size: int64(len(krasVCF)), ModTime: time.Now()}
	require.NoError(t, s.WriteFile(f, fp))

	records, err := s.Records("kras.vcf")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, f.Records, records)
	assert.Equal(t, 5, records[0].Line)
	assert.Equal(t, "25245351", records[0].Pos)
	assert.Equal(t, 7, records[1].Line)

	meta, err := s.MetaLines("kras.vcf")
	require.NoError(t, err)
	require.Len(t, meta, 3)
	assert.Equal(t, vcf.MetaOther, meta[0].Kind)
	assert.Equal(t, vcf.MetaInfo, meta[1].Kind)
	assert.Equal(t, vcf.MetaFormat, meta[2].Kind)
	assert.Equal(t, f.Meta.All(), meta)

	var header string
	var malformed int64
	require.NoError(t, s.DB().QueryRow(
		`SELECT column_header, malformed_count FROM vcf_files WHERE path=?`, "kras.vcf",
	).Scan(&header, &malformed))
	assert.Equal(t, "CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO", header)
	assert.Equal(t, int64(1), malformed)
}

func TestWriteFile_ReplacesEarlierImport(t *testing.T) {
	s := openInMemory(t)

	fp := FileFingerprint{Path: "a.vcf", Size: 1, ModTime: time.Now()}
	require.NoError(t, s.WriteFile(extractString(t, "a.vcf", krasVCF), fp))

	fp2 := FileFingerprint{Path: "a.vcf", Size: 2, ModTime: time.Now()}
	require.NoError(t, s.WriteFile(extractString(t, "a.vcf", "chr1\t1\t.\tA\tC\t.\t.\t.\n"), fp2))

	records, err := s.Records("a.vcf")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "chr1", records[0].Chrom)

	meta, err := s.MetaLines("a.vcf")
	require.NoError(t, err)
	assert.Empty(t, meta)

	n, err := s.FileCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// badUnicodeVCF carries a Latin-1 byte in a Description, which DuckDB
// rejects when the meta_lines appender flushes.
const badUnicodeVCF = "##fileformat=VCFv4.2\n" +
	"##INFO=<ID=CF,Number=1,Type=String,Description=\"caf\xe9\">\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
	"chr1\t100\t.\tA\tG\t50\tPASS\tCF=1\n"

func TestWriteFile_FailureLeavesNoFingerprint(t *testing.T) {
	s := openInMemory(t)

	fp := FileFingerprint{Path: "bad.vcf", Size: int64(len(badUnicodeVCF)), ModTime: time.Now()}
	require.Error(t, s.WriteFile(extractString(t, "bad.vcf", badUnicodeVCF), fp))

	ok, err := s.Imported(fp)
	require.NoError(t, err)
	assert.False(t, ok, "failed write must not mark the file imported")

	_, found, err := s.Fingerprint("bad.vcf")
	require.NoError(t, err)
	assert.False(t, found)

	records, err := s.Records("bad.vcf")
	require.NoError(t, err)
	assert.Empty(t, records)

	meta, err := s.MetaLines("bad.vcf")
	require.NoError(t, err)
	assert.Empty(t, meta)

	// The store stays usable for later files.
	good := FileFingerprint{Path: "kras.vcf", Size: 1, ModTime: time.Now()}
	require.NoError(t, s.WriteFile(extractString(t, "kras.vcf", krasVCF), good))
	n, err := s.FileCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestImported(t *testing.T) {
	s := openInMemory(t)

	now := time.Now()
	fp := FileFingerprint{Path: "a.vcf", Size: 1000, ModTime: now}

	// Not imported yet
	ok, err := s.Imported(fp)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.WriteFile(extractString(t, "a.vcf", krasVCF), fp))

	// Same fingerprint
	ok, err = s.Imported(fp)
	require.NoError(t, err)
	assert.True(t, ok)

	// Different size → stale
	changed := fp
	changed.Size = 9999
	ok, err = s.Imported(changed)
	require.NoError(t, err)
	assert.False(t, ok)

	// Different modtime → stale
	changed = fp
	changed.ModTime = now.Add(time.Hour)
	ok, err = s.Imported(changed)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteFile(t *testing.T) {
	s := openInMemory(t)

	fp := FileFingerprint{Path: "a.vcf", Size: 1, ModTime: time.Now()}
	require.NoError(t, s.WriteFile(extractString(t, "a.vcf", krasVCF), fp))
	require.NoError(t, s.DeleteFile("a.vcf"))

	_, ok, err := s.Fingerprint("a.vcf")
	require.NoError(t, err)
	assert.False(t, ok)

	records, err := s.Records("a.vcf")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestStatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.vcf")
	require.NoError(t, os.WriteFile(path, []byte(krasVCF), 0644))

	fp, err := StatFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, fp.Path)
	assert.Equal(t, int64(len(krasVCF)), fp.Size)

	again, err := StatFile(path)
	require.NoError(t, err)
	assert.True(t, fp.Same(again))

	_, err = StatFile(filepath.Join(t.TempDir(), "missing.vcf"))
	assert.Error(t, err)
}

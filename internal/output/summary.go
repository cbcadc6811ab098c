package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/inodb/vcfsplit/internal/batch"
)

// WriteSummary renders one row per batch result with meta bucket counts,
// record counts and the error, if any.
func WriteSummary(w io.Writer, report *batch.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "INFO", "FILTER", "FORMAT", "Other", "Header", "Records", "Malformed", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	var records, malformed, failed int

	for _, r := range report.Results {
		status := "ok"
		if r.Err != nil {
			failed++
			status = "error"
		}

		if r.File == nil {
			table.Append([]string{r.Path, "-", "-", "-", "-", "-", "-", "-", status})
			continue
		}

		f := r.File
		header := "no"
		if f.Header != nil {
			header = "yes"
		}
		if len(f.Malformed) > 0 {
			status = "partial"
		}

		records += len(f.Records)
		malformed += len(f.Malformed)

		table.Append([]string{
			f.Path,
			strconv.Itoa(len(f.Meta.Info)),
			strconv.Itoa(len(f.Meta.Filter)),
			strconv.Itoa(len(f.Meta.Format)),
			strconv.Itoa(len(f.Meta.Other)),
			header,
			strconv.Itoa(len(f.Records)),
			strconv.Itoa(len(f.Malformed)),
			status,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(report.Results)),
		"", "", "", "", "",
		strconv.Itoa(records),
		strconv.Itoa(malformed),
		fmt.Sprintf("%d failed", failed),
	})

	table.Render()
}

package commands

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/gingerrexayers/fcopy-go/internal/fcopy/types"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// formatBytes converts bytes into a human-readable string (KB, MB, GB).
func formatBytes(bytes int64, decimals int) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	const k = 1024
	if decimals < 0 {
		decimals = 0
	}
	sizes := []string{"Bytes", "KB", "MB", "GB", "TB"}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}

	return fmt.Sprintf("%.*f %s", decimals, float64(bytes)/math.Pow(k, float64(i)), sizes[i])
}

// WriteSummary renders the counters of a tree copy as a borderless table.
func WriteSummary(w io.Writer, s types.TreeSummary) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"COPIED", "LINKED", "SKIPPED", "FAILED", "SIZE"}),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader:     tw.Off,
					ShowFooter:     tw.Off,
					BetweenRows:    tw.Off,
					BetweenColumns: tw.Off,
				},
				Lines: tw.Lines{
					ShowTop:        tw.Off,
					ShowBottom:     tw.Off,
					ShowHeaderLine: tw.Off,
					ShowFooterLine: tw.Off,
				},
			},
		}))

	row := []string{
		strconv.Itoa(s.Copied),
		strconv.Itoa(s.Linked),
		strconv.Itoa(s.Skipped),
		strconv.Itoa(s.Failed),
		formatBytes(s.Bytes, 2),
	}
	if err := table.Append(row); err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

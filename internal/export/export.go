// Package export writes the archive in formats meant for people and
// spreadsheets.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/factcollector/internal/archive"
)

// Formats lists the accepted --format values.
var Formats = []string{"json", "md", "xlsx"}

const sheetName = "Facts"

// Markdown renders facts as a numbered list.
func Markdown(facts []archive.Fact) string {
	var b strings.Builder
	b.WriteString("# Fact Archive\n\n")
	if len(facts) == 0 {
		b.WriteString("_No facts collected yet._\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%d unique facts.\n\n", len(facts))
	for i, f := range facts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, escapeMarkdown(f.Text))
		if f.Source != "" {
			fmt.Fprintf(&b, "   *source: %s*\n", f.Source)
		}
	}
	return b.String()
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"\n", " ",
)

func escapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}

// WriteJSON writes facts in the archive's on-disk format.
func WriteJSON(w io.Writer, facts []archive.Fact) error {
	data, err := archive.Marshal(facts)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteXLSX writes facts to a workbook with one row per fact.
func WriteXLSX(path string, facts []archive.Fact) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	header := []any{"#", "Text", "Source"}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	for i, fact := range facts {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{i + 1, fact.Text, fact.Source}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheetName, "B", "B", 80); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "C", "C", 50); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// Write exports facts to path in format.
func Write(format, path string, facts []archive.Fact) error {
	switch format {
	case "xlsx":
		return WriteXLSX(path, facts)
	case "md", "markdown":
		return os.WriteFile(path, []byte(Markdown(facts)), 0644)
	case "json":
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := WriteJSON(file, facts); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	}
	return fmt.Errorf("unknown export format %q (must be one of %s)", format, strings.Join(Formats, ", "))
}

// package formatter provides functions to export movie lists to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/watchcall/watchcall/internal/models"
	"github.com/watchcall/watchcall/internal/shared"
)

// ExportToCSV converts a MovieList to CSV format with columns: ID, Title, Year, MovieID, AddedAt
func ExportToCSV(list *models.MovieList) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "MovieID", "AddedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range list.Movies {
		record := []string{
			entry.ID,
			entry.Title,
			entry.Year,
			entry.MovieID,
			entry.AddedAt.Format("2006-01-02"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a MovieList to Markdown format
func ExportToMarkdown(list *models.MovieList) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", list.Name))

	if list.IsDefault {
		buf.WriteString("**Default list**\n\n")
	}
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(list.Movies)))

	buf.WriteString("## Movies\n\n")
	for i, entry := range list.Movies {
		yearPart := ""
		if entry.Year != "" {
			yearPart = fmt.Sprintf(" (%s)", entry.Year)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s [%s](%s)\n", i+1, entry.Title, yearPart, entry.MovieID, shared.IMDbURL(entry.MovieID)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a MovieList to plain text format
func ExportToText(list *models.MovieList) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("List: %s\n", list.Name))
	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(list.Movies)))

	for i, entry := range list.Movies {
		yearPart := ""
		if entry.Year != "" {
			yearPart = fmt.Sprintf(" (%s)", entry.Year)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, entry.Title, yearPart))
	}

	return buf.Bytes(), nil
}

// Extension returns the file extension for a given export format,
// defaulting to csv for unknown formats.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case "markdown", "md":
		return "md"
	case "txt", "text":
		return "txt"
	default:
		return "csv"
	}
}

// WriteExport renders a list in the given format and writes it to path.
func WriteExport(list *models.MovieList, format, path string) error {
	var data []byte
	var err error

	switch strings.ToLower(format) {
	case "csv":
		data, err = ExportToCSV(list)
	case "markdown", "md":
		data, err = ExportToMarkdown(list)
	case "txt", "text":
		data, err = ExportToText(list)
	default:
		return fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return fmt.Errorf("failed to render export: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}

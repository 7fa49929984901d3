package views

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"homeinventory/pkg/domain"
)

// UnknownRoom labels items whose room no longer exists.
const UnknownRoom = "Unknown Room"

// Insurance labels used in exports.
const (
	LabelFixed    = "Fixed (Building)"
	LabelContents = "Contents"
)

// ExportRow is one item flattened for a spreadsheet.
type ExportRow struct {
	Brand         string
	Name          string
	Model         string
	Type          string
	Category      string
	InsuranceType string
	Room          string
	Projects      string
	Description   string
	Notes         string
	Value         float64
	PurchaseDate  string
}

// ExportHeader returns the column titles; the value column names currency.
func ExportHeader(currency string) []string {
	return []string{
		"Brand", "Name", "Model", "Type", "Category", "Insurance Type", "Room",
		"Projects", "Description", "Notes", fmt.Sprintf("Value (%s)", currency), "Purchase Date",
	}
}

// ExportRows resolves room and project names for items. Project names follow
// the order of the projects collection and are joined with "; ".
func ExportRows(items []domain.Item, rooms []domain.Room, projects []domain.Project) []ExportRow {
	roomNames := make(map[string]string, len(rooms))
	for _, r := range rooms {
		roomNames[r.ID] = r.Name
	}
	rows := make([]ExportRow, 0, len(items))
	for _, it := range items {
		room := roomNames[it.RoomID]
		if room == "" {
			room = UnknownRoom
		}
		var names []string
		for _, p := range projects {
			if it.HasProject(p.ID) {
				names = append(names, p.Name)
			}
		}
		label := LabelContents
		if it.IsFixed {
			label = LabelFixed
		}
		rows = append(rows, ExportRow{
			Brand:         it.Brand,
			Name:          it.Name,
			Model:         it.Model,
			Type:          it.Type,
			Category:      it.Category,
			InsuranceType: label,
			Room:          room,
			Projects:      strings.Join(names, "; "),
			Description:   it.Description,
			Notes:         it.Notes,
			Value:         it.ValueOrZero(),
			PurchaseDate:  it.PurchaseDate,
		})
	}
	return rows
}

// FormatValue renders a value the way the export has always shown it:
// shortest decimal form, no thousands separator.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes the header and rows. Text fields are always quoted with
// inner quotes doubled; the insurance label and value are bare. Lines are
// separated by "\n" with no trailing newline.
func WriteCSV(w io.Writer, rows []ExportRow, currency string) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(ExportHeader(currency), ",")); err != nil {
		return err
	}
	for _, r := range rows {
		fields := []string{
			quote(r.Brand),
			quote(r.Name),
			quote(r.Model),
			quote(r.Type),
			quote(r.Category),
			r.InsuranceType,
			quote(r.Room),
			quote(r.Projects),
			quote(r.Description),
			quote(r.Notes),
			FormatValue(r.Value),
			quote(r.PurchaseDate),
		}
		if _, err := bw.WriteString("\n" + strings.Join(fields, ",")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

package views

import (
	"bytes"
	"strings"
	"testing"

	"homeinventory/pkg/domain"

	"github.com/xuri/excelize/v2"
)

func exportFixture() ([]domain.Item, []domain.Room, []domain.Project) {
	items := []domain.Item{
		{ID: "i1", RoomID: "r1", Name: `24" Monitor`, Brand: "Dell", Model: "U2419", Category: "Electronics",
			ProjectIDs: []string{"p2", "p1"}, Value: ptr(199.5), PurchaseDate: "2023-02-01", Notes: "desk"},
		{ID: "i2", RoomID: "gone", Name: "Boiler", IsFixed: true, ProjectIDs: []string{}},
	}
	rooms := []domain.Room{{ID: "r1", Name: "Office"}}
	projects := []domain.Project{{ID: "p1", Name: "Claim"}, {ID: "p2", Name: "Move"}}
	return items, rooms, projects
}

func TestWriteCSV(t *testing.T) {
	items, rooms, projects := exportFixture()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, ExportRows(items, rooms, projects), "GBP"); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	want := strings.Join([]string{
		"Brand,Name,Model,Type,Category,Insurance Type,Room,Projects,Description,Notes,Value (GBP),Purchase Date",
		`"Dell","24"" Monitor","U2419","","Electronics",Contents,"Office","Claim; Move","","desk",199.5,"2023-02-01"`,
		`"","Boiler","","","",Fixed (Building),"Unknown Room","","","",0,""`,
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("csv mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil, "USD"); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if strings.Contains(buf.String(), "\n") || !strings.HasSuffix(buf.String(), "Value (USD),Purchase Date") {
		t.Fatalf("unexpected header-only output %q", buf.String())
	}
}

func TestFormatValue(t *testing.T) {
	for v, want := range map[float64]string{0: "0", 100: "100", 12.5: "12.5", 1234567: "1234567"} {
		if got := FormatValue(v); got != want {
			t.Fatalf("FormatValue(%v) = %q want %q", v, got, want)
		}
	}
}

func TestWriteXLSX(t *testing.T) {
	items, rooms, projects := exportFixture()
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, ExportRows(items, rooms, projects), "EUR"); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != ReportSheet {
		t.Fatalf("unexpected sheets %v", sheets)
	}
	rows, err := f.GetRows(ReportSheet)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and two rows, got %d", len(rows))
	}
	if rows[0][10] != "Value (EUR)" {
		t.Fatalf("header %v", rows[0])
	}
	if rows[1][1] != `24" Monitor` || rows[1][6] != "Office" || rows[1][10] != "199.5" {
		t.Fatalf("first row %v", rows[1])
	}
	if rows[2][5] != LabelFixed || rows[2][6] != UnknownRoom {
		t.Fatalf("second row %v", rows[2])
	}
}

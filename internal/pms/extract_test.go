package pms

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8"?>
<REPORT>
  <LIST_G_CONSIDERED_DATE>
    <G_CONSIDERED_DATE>
      <C_DATE>07/03/24</C_DATE>
      <DAY_DESCRIPTION> Thursday </DAY_DESCRIPTION>
      <ROOMS_MORNING>12</ROOMS_MORNING>
      <DEPARTURE_ROOM>2</DEPARTURE_ROOM>
      <ARRIVAL_ROOM>5</ARRIVAL_ROOM>
    </G_CONSIDERED_DATE>
    <G_CONSIDERED_DATE>
      <C_DATE>05/03/24</C_DATE>
      <DAY_DESCRIPTION>Tuesday</DAY_DESCRIPTION>
      <ROOMS_MORNING>10</ROOMS_MORNING>
      <DEPARTURE_ROOM>4</DEPARTURE_ROOM>
      <ARRIVAL_ROOM>3</ARRIVAL_ROOM>
    </G_CONSIDERED_DATE>
    <G_CONSIDERED_DATE>
      <C_DATE></C_DATE>
      <DAY_DESCRIPTION>Skipped</DAY_DESCRIPTION>
      <ROOMS_MORNING>1</ROOMS_MORNING>
    </G_CONSIDERED_DATE>
    <G_CONSIDERED_DATE>
      <DAY_DESCRIPTION>No date element</DAY_DESCRIPTION>
    </G_CONSIDERED_DATE>
    <G_CONSIDERED_DATE>
      <C_DATE>31/12/23</C_DATE>
      <DAY_DESCRIPTION>Sunday</DAY_DESCRIPTION>
      <ROOMS_MORNING>n/a</ROOMS_MORNING>
      <DEPARTURE_ROOM>3</DEPARTURE_ROOM>
    </G_CONSIDERED_DATE>
  </LIST_G_CONSIDERED_DATE>
</REPORT>`

func TestExtractReaderSortsAndDerives(t *testing.T) {
	rows, err := ExtractReader(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %+v", len(rows), rows)
	}
	wantDates := []string{"31/12/23", "05/03/24", "07/03/24"}
	for i, want := range wantDates {
		if rows[i].Date != want {
			t.Fatalf("row %d: expected date %s, got %s", i, want, rows[i].Date)
		}
	}

	first := rows[0]
	if first.Stayover != 0 || first.Departures != 3 || first.Arrivals != 0 {
		t.Fatalf("unexpected defaults for non-numeric counts: %+v", first)
	}

	mid := rows[1]
	if mid.Stayover != 6 || mid.Departures != 4 || mid.Arrivals != 3 || mid.DayLabel != "Tuesday" {
		t.Fatalf("unexpected row: %+v", mid)
	}
	if rows[2].DayLabel != "Thursday" {
		t.Fatalf("expected trimmed day label, got %q", rows[2].DayLabel)
	}
}

func TestExtractReaderFindsNestedMatches(t *testing.T) {
	doc := `<A><B><G_CONSIDERED_DATE><C_DATE>02/01/24</C_DATE><ROOMS_MORNING>4</ROOMS_MORNING>
		<G_CONSIDERED_DATE><C_DATE>01/01/24</C_DATE><ROOMS_MORNING>2</ROOMS_MORNING></G_CONSIDERED_DATE>
	</G_CONSIDERED_DATE></B></A>`
	rows, err := ExtractReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Date != "01/01/24" || rows[0].Stayover != 2 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Date != "02/01/24" || rows[1].Stayover != 4 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestExtractReaderKeepsInputOrderForEqualDates(t *testing.T) {
	doc := `<R>
		<G_CONSIDERED_DATE><C_DATE>01/02/24</C_DATE><DAY_DESCRIPTION>first</DAY_DESCRIPTION></G_CONSIDERED_DATE>
		<G_CONSIDERED_DATE><C_DATE>1/2/24</C_DATE><DAY_DESCRIPTION>second</DAY_DESCRIPTION></G_CONSIDERED_DATE>
	</R>`
	rows, err := ExtractReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 2 || rows[0].DayLabel != "first" || rows[1].DayLabel != "second" {
		t.Fatalf("expected stable order, got %+v", rows)
	}
}

func TestExtractReaderErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"not well formed", `<R><G_CONSIDERED_DATE></R>`, ErrMalformedXML},
		{"empty document", ``, ErrMalformedXML},
		{"two roots", `<R/><S/>`, ErrMalformedXML},
		{"bad date", `<R><G_CONSIDERED_DATE><C_DATE>2024-03-05</C_DATE></G_CONSIDERED_DATE></R>`, ErrInvalidDate},
		{"blank date", `<R><G_CONSIDERED_DATE><C_DATE>   </C_DATE></G_CONSIDERED_DATE></R>`, ErrInvalidDate},
		{"impossible date", `<R><G_CONSIDERED_DATE><C_DATE>31/02/24</C_DATE></G_CONSIDERED_DATE></R>`, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := ExtractReader(strings.NewReader(tc.doc))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if rows != nil {
				t.Fatalf("expected no partial rows, got %+v", rows)
			}
		})
	}
}

func TestExtractReaderLatin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<R><G_CONSIDERED_DATE><C_DATE>05/03/24</C_DATE><DAY_DESCRIPTION>Marted\xec</DAY_DESCRIPTION></G_CONSIDERED_DATE></R>"
	rows, err := ExtractReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 1 || rows[0].DayLabel != "Martedì" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestExtractFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xml")
	if err := os.WriteFile(path, []byte(sampleExport), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := Extract(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if _, err := Extract(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseDateTwoDigitYears(t *testing.T) {
	cases := map[string]int{
		"05/03/24": 2024,
		"5/3/68":   2068,
		"01/01/69": 1969,
		"31/12/99": 1999,
	}
	for in, year := range cases {
		got, err := ParseDate(in)
		if err != nil {
			t.Fatalf("parse %s: %v", in, err)
		}
		if got.Year() != year {
			t.Fatalf("parse %s: expected year %d, got %d", in, year, got.Year())
		}
	}
}

func TestParseInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{" 12 ", 12},
		{"+3", 3},
		{"-2", -2},
		{"", 0},
		{"4.5", 0},
		{"abc", 0},
	}
	for _, tc := range cases {
		if got := ParseInt(tc.in, 0); got != tc.want {
			t.Fatalf("ParseInt(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

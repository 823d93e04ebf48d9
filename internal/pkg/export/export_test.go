package export

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"CSV", FormatCSV, false},
		{" xlsx ", FormatXLSX, false},
		{"pdf", "", true},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseFormat(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if FormatXLSX.Extension() != "xls" || FormatCSV.Extension() != "csv" {
		t.Fatal("unexpected extensions")
	}
	if !strings.HasPrefix(FormatCSV.ContentType(), "text/csv") {
		t.Fatalf("unexpected csv content type %q", FormatCSV.ContentType())
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, Table{
		Header: []string{"id", "name"},
		Rows:   [][]string{{"1", "Ama \"Kente\" Mensah"}, {"2", "a,b"}},
	})
	if err != nil {
		t.Fatalf("write csv: %v", err)
	}
	want := "id,name\r\n1,\"Ama \"\"Kente\"\" Mensah\"\r\n2,\"a,b\"\r\n"
	if buf.String() != want {
		t.Fatalf("unexpected csv:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWriteSpreadsheetML(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, FormatXLSX, Table{
		Name:   "payments",
		Header: []string{"reference", "amount"},
		Rows:   [][]string{{"REF<1>", "150.00"}},
	})
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`<?mso-application progid="Excel.Sheet"?>`, `ss:Name="payments"`, "REF&lt;1&gt;", "150.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("workbook missing %q:\n%s", want, out)
		}
	}

	var decoded struct {
		Rows []struct {
			Cells []string `xml:"Cell>Data"`
		} `xml:"Worksheet>Table>Row"`
	}
	if err := xml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("workbook is not valid xml: %v", err)
	}
	if len(decoded.Rows) != 2 || decoded.Rows[1].Cells[0] != "REF<1>" {
		t.Fatalf("unexpected rows %+v", decoded.Rows)
	}
}

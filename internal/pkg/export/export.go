// Package export renders tabular data as CSV or SpreadsheetML workbooks.
package export

import (
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts csv or xlsx, defaulting to csv when empty.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.ms-excel"
	}
	return "text/csv; charset=utf-8"
}

// Extension returns the file extension of f. SpreadsheetML opens in Excel as .xls.
func (f Format) Extension() string {
	if f == FormatXLSX {
		return "xls"
	}
	return "csv"
}

// Table is a named sheet with a fixed header.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Write renders t to w in format f.
func Write(w io.Writer, f Format, t Table) error {
	if f == FormatXLSX {
		return WriteSpreadsheetML(w, t)
	}
	return WriteCSV(w, t)
}

// WriteCSV writes t as RFC 4180 CSV.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

type workbook struct {
	XMLName   xml.Name  `xml:"urn:schemas-microsoft-com:office:spreadsheet Workbook"`
	XMLNSSS   string    `xml:"xmlns:ss,attr"`
	Worksheet worksheet `xml:"Worksheet"`
}

type worksheet struct {
	Name  string `xml:"ss:Name,attr"`
	Table table  `xml:"Table"`
}

type table struct {
	Rows []row `xml:"Row"`
}

type row struct {
	Cells []cell `xml:"Cell"`
}

type cell struct {
	Data data `xml:"Data"`
}

type data struct {
	Type  string `xml:"ss:Type,attr"`
	Value string `xml:",chardata"`
}

// WriteSpreadsheetML writes t as an XML Spreadsheet 2003 workbook with string cells.
func WriteSpreadsheetML(w io.Writer, t Table) error {
	name := t.Name
	if name == "" {
		name = "Sheet1"
	}
	book := workbook{
		XMLNSSS:   "urn:schemas-microsoft-com:office:spreadsheet",
		Worksheet: worksheet{Name: name},
	}
	book.Worksheet.Table.Rows = append(book.Worksheet.Table.Rows, toRow(t.Header))
	for _, r := range t.Rows {
		book.Worksheet.Table.Rows = append(book.Worksheet.Table.Rows, toRow(r))
	}

	if _, err := io.WriteString(w, xml.Header+`<?mso-application progid="Excel.Sheet"?>`+"\n"); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", " ")
	if err := enc.Encode(book); err != nil {
		return fmt.Errorf("encode workbook: %w", err)
	}
	return enc.Flush()
}

func toRow(values []string) row {
	r := row{Cells: make([]cell, len(values))}
	for i, v := range values {
		r.Cells[i] = cell{Data: data{Type: "String", Value: v}}
	}
	return r
}

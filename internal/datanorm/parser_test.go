package datanorm

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCSV_MapsHeadersToValues(t *testing.T) {
	in := "id,organization,name\nv1,OrgA,Jane\nv2,OrgB,\"Doe, John\"\n"

	records, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Get("name") != "Jane" || records[0].Get("organization") != "OrgA" {
		t.Errorf("unexpected first record: %+v", records[0].Values)
	}
	if records[1].Get("name") != "Doe, John" {
		t.Errorf("quoted comma not preserved: %q", records[1].Get("name"))
	}
	if records[1].Line != 3 {
		t.Errorf("line = %d, want 3", records[1].Line)
	}
}

func TestParseCSV_StripsBOMAndTrimsHeaders(t *testing.T) {
	in := "\xEF\xBB\xBFid , name\nv1,Jane\n"

	records, err := ParseCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if got := records[0].Get("id"); got != "v1" {
		t.Errorf("id = %q, want v1 (BOM or padding leaked into header)", got)
	}
	if got := records[0].Get("name"); got != "Jane" {
		t.Errorf("name = %q", got)
	}
}

func TestParseCSV_Empty(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records from empty input", len(records))
	}

	records, err = ParseCSV(strings.NewReader("id,name\n"))
	if err != nil {
		t.Fatalf("ParseCSV header only: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records from header-only input", len(records))
	}
}

func TestParseCSV_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unterminated quote", "id,name\nv1,\"Jane\n"},
		{"too many fields", "id,name\nv1,Jane,extra\n"},
		{"too few fields", "id,name,role\nv1,Jane\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("expected error")
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not *ParseError", err)
			}
			if pe.Line == 0 {
				t.Errorf("expected a line number, got %v", pe)
			}
		})
	}
}

func TestPeekHeader_ReplaysInput(t *testing.T) {
	in := "\xEF\xBB\xBF nombre ,horas\nAna,3\n"

	header, replay, err := PeekHeader(strings.NewReader(in))
	if err != nil {
		t.Fatalf("PeekHeader: %v", err)
	}
	if len(header) != 2 || header[0] != "nombre" || header[1] != "horas" {
		t.Errorf("header = %q", header)
	}

	records, err := ParseCSV(replay)
	if err != nil {
		t.Fatalf("ParseCSV after peek: %v", err)
	}
	if len(records) != 1 || records[0].Get("nombre") != "Ana" {
		t.Errorf("replayed records = %+v", records)
	}
}

func TestPeekHeader_Empty(t *testing.T) {
	header, replay, err := PeekHeader(strings.NewReader(""))
	if err != nil || header != nil || replay == nil {
		t.Errorf("PeekHeader(\"\") = %v, %v, %v", header, replay, err)
	}
}

package datanorm

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV reads header + data rows and returns one Record per data row.
// Quoting follows RFC 4180. Every data row must have exactly as many fields
// as the header; anything else is a *ParseError. Empty input yields no
// records and no error.
func ParseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = 0 // header width is enforced on every row

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, toParseError(err)
	}

	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.TrimSpace(h)
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, toParseError(err)
		}
		line, _ := reader.FieldPos(0)

		values := make(map[string]string, len(headers))
		for i, h := range headers {
			values[h] = row[i]
		}
		records = append(records, Record{Line: line, Headers: headers, Values: values})
	}
	return records, nil
}

func toParseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Err: err}
}

// stripBOM wraps a reader to drop a leading UTF-8 byte order mark.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// PeekHeader reads the header row of r without losing it: the returned
// reader replays the complete input. Empty input has no header.
func PeekHeader(r io.Reader) ([]string, io.Reader, error) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, err
	}
	replay := io.MultiReader(strings.NewReader(line), br)

	first := strings.TrimPrefix(line, string(utf8BOM))
	if strings.TrimSpace(first) == "" {
		return nil, replay, nil
	}
	header, err := csv.NewReader(strings.NewReader(first)).Read()
	if err != nil {
		return nil, nil, toParseError(err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	return header, replay, nil
}

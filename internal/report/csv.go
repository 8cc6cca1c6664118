package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// WriteCSV writes the table with a header row in Columns order. List cells
// are JSON arrays without HTML escaping.
func WriteCSV(w io.Writer, table Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range table.Rows {
		record, err := encodeRow(row)
		if err != nil {
			return fmt.Errorf("encode row %d: %w", i+1, err)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes the table to path.
func WriteCSVFile(path string, table Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(file, table); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ReadCSV parses a table written by WriteCSV.
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Columns)
	header, err := reader.Read()
	if err != nil {
		return Table{}, fmt.Errorf("read csv header: %w", err)
	}
	for i, name := range Columns {
		if header[i] != name {
			return Table{}, fmt.Errorf("csv column %d is %q, expected %q", i+1, header[i], name)
		}
	}
	var table Table
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read csv: %w", err)
		}
		row, err := decodeRow(record)
		if err != nil {
			return Table{}, fmt.Errorf("csv line %d: %w", line, err)
		}
		if table.RunID == "" {
			table.RunID = row.RunID
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// ReadCSVFile parses the table stored at path.
func ReadCSVFile(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return ReadCSV(file)
}

func encodeRow(row TableRow) ([]string, error) {
	allURLs, err := encodeList(row.AllURLs)
	if err != nil {
		return nil, err
	}
	keywords, err := encodeList(row.ExpectedKeywords)
	if err != nil {
		return nil, err
	}
	return []string{
		row.Question,
		strconv.FormatBool(row.ShouldAnswer),
		strconv.FormatBool(row.AnswerProvided),
		strconv.FormatBool(row.TestAnswerProvided),
		row.ExpectedAnswer,
		row.Answer,
		formatFloat(row.FuzzyPartialRatio),
		row.ExpectedURL,
		formatFloat(row.RetrievalKeywordScore),
		strconv.FormatBool(row.CorrectDoc),
		formatFloat(row.RetrievalRank),
		strconv.FormatBool(row.ShouldProvideRelevant),
		row.SectionURL,
		allURLs,
		row.PageContent,
		keywords,
		formatFloat(row.SecondsToRun),
		row.Failure,
		row.RunID,
	}, nil
}

type cellDecoder struct {
	record []string
	err    error
}

func (d *cellDecoder) text(index int) string {
	return d.record[index]
}

func (d *cellDecoder) boolean(index int) bool {
	if d.err != nil {
		return false
	}
	value, err := strconv.ParseBool(d.record[index])
	if err != nil {
		d.err = fmt.Errorf("%s: %w", Columns[index], err)
	}
	return value
}

func (d *cellDecoder) number(index int) float64 {
	if d.err != nil {
		return 0
	}
	value, err := strconv.ParseFloat(d.record[index], 64)
	if err != nil {
		d.err = fmt.Errorf("%s: %w", Columns[index], err)
	}
	return value
}

func (d *cellDecoder) list(index int) []string {
	if d.err != nil {
		return nil
	}
	values := []string{}
	if err := json.Unmarshal([]byte(d.record[index]), &values); err != nil {
		d.err = fmt.Errorf("%s: %w", Columns[index], err)
	}
	return values
}

func decodeRow(record []string) (TableRow, error) {
	d := &cellDecoder{record: record}
	row := TableRow{
		Question:              d.text(0),
		ShouldAnswer:          d.boolean(1),
		AnswerProvided:        d.boolean(2),
		TestAnswerProvided:    d.boolean(3),
		ExpectedAnswer:        d.text(4),
		Answer:                d.text(5),
		FuzzyPartialRatio:     d.number(6),
		ExpectedURL:           d.text(7),
		RetrievalKeywordScore: d.number(8),
		CorrectDoc:            d.boolean(9),
		RetrievalRank:         d.number(10),
		ShouldProvideRelevant: d.boolean(11),
		SectionURL:            d.text(12),
		AllURLs:               d.list(13),
		PageContent:           d.text(14),
		ExpectedKeywords:      d.list(15),
		SecondsToRun:          d.number(16),
		Failure:               d.text(17),
		RunID:                 d.text(18),
	}
	if d.err != nil {
		return TableRow{}, d.err
	}
	return row, nil
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(values); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

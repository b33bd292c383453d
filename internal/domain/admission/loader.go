package admission

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// RowError reports a CSV row that could not be turned into an admission.
// The caller decides whether to keep going; the loader never aborts the
// whole file for one bad row.
type RowError struct {
	Row int64
	Msg string
}

func (e *RowError) Error() string { return fmt.Sprintf("row %d: %s", e.Row, e.Msg) }

// CSVLoader streams admissions out of a seed CSV one row at a time.
// Headers are matched case-insensitively with spaces treated as
// underscores, so "Blood Type" and "blood_type" land in the same column.
type CSVLoader struct {
	csv    *csv.Reader
	colIdx map[string]int
	rowNum int64
	closer io.Closer
}

func NewCSVLoader(r io.Reader) (*CSVLoader, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	// Skip UTF-8 BOM if present
	if bom, err := br.Peek(3); err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	l := &CSVLoader{csv: cr, colIdx: make(map[string]int)}
	if err := l.readHeader(); err != nil {
		return nil, err
	}
	return l, nil
}

// OpenCSV opens path and wraps it in a loader that owns the file handle.
func OpenCSV(path string) (*CSVLoader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	l, err := NewCSVLoader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	l.closer = f
	return l, nil
}

func (l *CSVLoader) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func (l *CSVLoader) readHeader() error {
	header, err := l.csv.Read()
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}
	l.rowNum++
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		l.colIdx[normalizeColumn(h)] = i
	}
	if _, ok := l.colIdx["date_of_admission"]; !ok {
		return fmt.Errorf("csv header has no date_of_admission column")
	}
	return nil
}

// normalizeColumn lowercases a header cell and joins its words with
// underscores.
func normalizeColumn(h string) string {
	h = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), "_", " ")
	return strings.Join(strings.Fields(h), "_")
}

// Row returns the current CSV row number (1-based, header included).
func (l *CSVLoader) Row() int64 { return l.rowNum }

// Next returns the next admission, io.EOF at the end of the file, or a
// *RowError for a row that cannot be used. Suspect but parseable values
// (negative billing, out-of-range ages, discharge before admission) load
// untouched; counting those is the quality check's job, not the loader's.
func (l *CSVLoader) Next() (*Admission, error) {
	for {
		row, err := l.csv.Read()
		if err == io.EOF {
			return nil, io.EOF
		}
		l.rowNum++
		if err != nil {
			return nil, &RowError{Row: l.rowNum, Msg: err.Error()}
		}

		// Skip empty rows
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		return l.parseRow(row)
	}
}

func (l *CSVLoader) parseRow(row []string) (*Admission, error) {
	adm := &Admission{
		Name:              l.str(row, "name"),
		Gender:            l.str(row, "gender"),
		BloodType:         l.str(row, "blood_type"),
		MedicalCondition:  l.str(row, "medical_condition"),
		Doctor:            l.str(row, "doctor"),
		Hospital:          l.str(row, "hospital"),
		InsuranceProvider: l.str(row, "insurance_provider"),
		AdmissionType:     l.str(row, "admission_type"),
		Medication:        l.str(row, "medication"),
		TestResults:       l.str(row, "test_results"),
	}

	doa, err := l.date(row, "date_of_admission")
	if err != nil {
		return nil, &RowError{Row: l.rowNum, Msg: err.Error()}
	}
	if doa == nil {
		return nil, &RowError{Row: l.rowNum, Msg: "date_of_admission is empty"}
	}
	adm.DateOfAdmission = *doa

	if adm.DischargeDate, err = l.date(row, "discharge_date"); err != nil {
		return nil, &RowError{Row: l.rowNum, Msg: err.Error()}
	}
	if adm.Age, err = l.intVal(row, "age"); err != nil {
		return nil, &RowError{Row: l.rowNum, Msg: err.Error()}
	}
	if adm.BillingAmount, err = l.floatVal(row, "billing_amount"); err != nil {
		return nil, &RowError{Row: l.rowNum, Msg: err.Error()}
	}
	if adm.RoomNumber, err = l.intVal(row, "room_number"); err != nil {
		return nil, &RowError{Row: l.rowNum, Msg: err.Error()}
	}
	return adm, nil
}

// Cell helpers sanitize to valid UTF-8 since exported CSVs are sometimes
// Windows-1252 encoded.

func (l *CSVLoader) cell(row []string, col string) string {
	if i, ok := l.colIdx[col]; ok && i < len(row) {
		return strings.ToValidUTF8(strings.TrimSpace(row[i]), "�")
	}
	return ""
}

func (l *CSVLoader) str(row []string, col string) *string {
	if s := l.cell(row, col); s != "" {
		return &s
	}
	return nil
}

func (l *CSVLoader) intVal(row []string, col string) (*int, error) {
	s := l.cell(row, col)
	if s == "" {
		return nil, nil
	}
	// Some exports render integer columns as floats ("30.0").
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a number", col, s)
	}
	n := int(f)
	return &n, nil
}

func (l *CSVLoader) floatVal(row []string, col string) (*float64, error) {
	s := l.cell(row, col)
	if s == "" {
		return nil, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a number", col, s)
	}
	return &f, nil
}

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", "1/2/2006"}

func (l *CSVLoader) date(row []string, col string) (*time.Time, error) {
	s := l.cell(row, col)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%s: %q is not a date", col, s)
}

package notes

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Note is one row of the flat-file notes table the policy editor maintains
// alongside the dashboards. The file is read and rewritten wholesale; the
// only invariant is the three-column shape.
type Note struct {
	Name    string `json:"name" binding:"required"`
	Note    string `json:"note"`
	Flagged bool   `json:"flagged"`
}

var header = []string{"name", "note", "flagged"}

// Load reads the notes file. A missing file is an empty table, not an error.
func Load(path string) ([]Note, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Note{}, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading notes: %w", err)
	}

	notes := make([]Note, 0, len(rows))
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == header[0] {
			continue
		}
		if len(row) < 1 {
			continue
		}
		n := Note{Name: row[0]}
		if len(row) > 1 {
			n.Note = row[1]
		}
		if len(row) > 2 {
			n.Flagged, _ = strconv.ParseBool(row[2])
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// Save rewrites the whole notes file.
func Save(path string, notes []Note) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, n := range notes {
		if err := w.Write([]string{n.Name, n.Note, strconv.FormatBool(n.Flagged)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

package recording

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/wesleyorama2/coach/pkg/coach"
)

const csvStepColumn = "step"

// encodeCSV writes one row per step. Missing markers become empty cells.
// Title and metadata are not part of the CSV form.
func encodeCSV(w io.Writer, r *Recording) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(r.Variables)+1)
	header = append(header, csvStepColumn)
	for _, v := range r.Variables {
		header = append(header, v.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for step := 0; step < r.Steps; step++ {
		row[0] = strconv.Itoa(step)
		for i, v := range r.Variables {
			row[i+1] = ""
			if x := v.Values[step]; !coach.IsMissing(x) {
				row[i+1] = strconv.FormatFloat(x, 'g', -1, 64)
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func decodeCSV(rd io.Reader) (*Recording, error) {
	cr := csv.NewReader(rd)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) == 0 || header[0] != csvStepColumn {
		return nil, fmt.Errorf("first column must be %q", csvStepColumn)
	}

	r := &Recording{Version: Version, Variables: make([]Variable, len(header)-1)}
	for i, name := range header[1:] {
		r.Variables[i].Name = name
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if step, err := strconv.Atoi(row[0]); err != nil || step != r.Steps {
			return nil, fmt.Errorf("row %d: step column is %q", r.Steps+1, row[0])
		}

		for i, cell := range row[1:] {
			x := coach.Missing()
			if cell != "" {
				x, err = strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, fmt.Errorf("row %d, %s: %w", r.Steps+1, header[i+1], err)
				}
			}
			r.Variables[i].Values = append(r.Variables[i].Values, x)
		}
		r.Steps++
	}

	for i := range r.Variables {
		if r.Variables[i].Values == nil {
			r.Variables[i].Values = Samples{}
		}
	}

	return r, nil
}

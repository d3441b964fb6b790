package civ

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"civspatial/logger"
)

// wantFields is the column count of the header
// "id,name,latitude,longitude,startYear".
const wantFields = 5

// LoadCSV reads a headered CSV file with columns
// id, name, latitude, longitude, startYear and returns the decoded
// civilizations in file order. The header line is read and discarded
// without being validated against wantFields, matching the source
// loader's "getline(file, line) // header" skip.
func LoadCSV(path string) ([]Civilization, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening civilization CSV")
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV decodes civilizations from an already-open reader, skipping
// the first (header) row.
func ReadCSV(r io.Reader) ([]Civilization, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // validated per-row below instead

	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, nil // empty file: no header, no rows
		}
		return nil, errors.Wrap(err, "reading CSV header")
	}

	var civs []Civilization
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading CSV row %d", row)
		}
		c, err := parseRow(record)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing CSV row %d (%s)", row, logger.Escape([]byte(strings.Join(record, ","))))
		}
		civs = append(civs, c)
	}
	return civs, nil
}

func parseRow(record []string) (Civilization, error) {
	if len(record) != wantFields {
		return Civilization{}, errors.Errorf("expected %d fields, got %d", wantFields, len(record))
	}
	id, err := strconv.Atoi(record[0])
	if err != nil {
		return Civilization{}, errors.Wrap(err, "id")
	}
	lat, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return Civilization{}, errors.Wrap(err, "latitude")
	}
	lon, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return Civilization{}, errors.Wrap(err, "longitude")
	}
	startYear, err := strconv.Atoi(record[4])
	if err != nil {
		return Civilization{}, errors.Wrap(err, "startYear")
	}
	return Civilization{
		ID:        id,
		Name:      record[1],
		Latitude:  lat,
		Longitude: lon,
		StartYear: startYear,
	}, nil
}

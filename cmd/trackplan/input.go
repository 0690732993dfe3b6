package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-trackgeo/track"
)

func readSeriesFile(path string) (track.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readSeries(f)
}

// readSeries parses "distance value" lines.
func readSeries(r io.Reader) (track.Series, error) {
	var distances, values []float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		})
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want \"distance value\", got %q", line, sc.Text())
		}
		d, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: distance: %w", line, err)
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: value: %w", line, err)
		}
		distances = append(distances, d)
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return track.NewSeries(distances, values)
}

package kmeans

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// Importer reads training points from text where every line holds the first
// two fields of a point separated by a comma. Reading stops at the first blank
// line. Fields that do not parse as numbers are read as zero, including text
// with trailing garbage such as "12abc" and values out of float64 range such
// as "1e400".
type Importer struct {
}

func NewImporter() *Importer {
	return &Importer{}
}

func (i *Importer) Import(file string) ([]Point, error) {
	f, err := os.Open(file)
	if err != nil {
		return []Point{}, err
	}

	defer f.Close()

	return i.ImportReader(f)
}

func (i *Importer) ImportReader(r io.Reader) ([]Point, error) {
	var (
		d = make([]Point, 0, 64)
		s = bufio.NewScanner(r)
	)

	for s.Scan() {
		line := s.Text()
		if len(line) == 0 {
			break
		}

		first, rest, _ := strings.Cut(line, ",")
		second, _, _ := strings.Cut(rest, ",")

		d = append(d, NewPoint(parseField(first), parseField(second)))
	}

	if err := s.Err(); err != nil {
		return []Point{}, err
	}

	return d, nil
}

func parseField(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}

	return f
}

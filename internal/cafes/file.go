// Package cafes reads the list of cafes from a JSON data file.
package cafes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/UnknownOlympus/cafemap/internal/models"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is the encoding of the Moscow open data cafe export.
const DefaultEncoding = "windows-1251"

// record mirrors one entry of the data file. Other fields are ignored.
type record struct {
	Name    *string `json:"Name"`
	GeoData *struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat]
	} `json:"geoData"`
}

// FileSource loads cafes from a JSON file in a configurable character encoding.
type FileSource struct {
	path     string
	encoding string
	log      *slog.Logger
}

// NewFileSource returns a source reading path, decoded from the named encoding.
// An empty encoding name selects DefaultEncoding.
func NewFileSource(path, encodingName string, log *slog.Logger) *FileSource {
	if encodingName == "" {
		encodingName = DefaultEncoding
	}

	return &FileSource{path: path, encoding: encodingName, log: log}
}

// FetchCafes reads and validates the whole file. The order of the returned
// cafes matches the order in the file.
func (fs *FileSource) FetchCafes(ctx context.Context) ([]models.Cafe, error) {
	enc, err := htmlindex.Get(fs.encoding)
	if err != nil {
		return nil, &DataFormatError{Path: fs.path, Record: -1, Reason: "unknown encoding " + fs.encoding, Err: err}
	}

	file, err := os.Open(fs.path)
	if err != nil {
		return nil, &FilesystemError{Path: fs.path, Err: err}
	}
	defer file.Close()

	cafes, err := decode(file, enc, fs.path)
	if err != nil {
		return nil, err
	}

	fs.log.InfoContext(ctx, "Cafes loaded from file", "path", fs.path, "encoding", fs.encoding, "count", len(cafes))

	return cafes, nil
}

func decode(r io.Reader, enc encoding.Encoding, path string) ([]models.Cafe, error) {
	const coordsListLength = 2

	raw, err := io.ReadAll(enc.NewDecoder().Reader(r))
	if err != nil {
		return nil, &DataFormatError{Path: path, Record: -1, Reason: "cannot decode text", Err: err}
	}

	var records []record
	if err = json.Unmarshal(raw, &records); err != nil {
		return nil, &DataFormatError{Path: path, Record: -1, Reason: "expected a JSON array of cafes", Err: err}
	}

	cafes := make([]models.Cafe, 0, len(records))
	for idx, rec := range records {
		switch {
		case rec.Name == nil:
			return nil, &DataFormatError{Path: path, Record: idx, Reason: "missing Name"}
		case rec.GeoData == nil:
			return nil, &DataFormatError{Path: path, Record: idx, Reason: "missing geoData"}
		case len(rec.GeoData.Coordinates) != coordsListLength:
			return nil, &DataFormatError{
				Path:   path,
				Record: idx,
				Reason: fmt.Sprintf("expected 2 coordinates, got %d", len(rec.GeoData.Coordinates)),
			}
		}

		cafes = append(cafes, models.Cafe{
			Name: *rec.Name,
			Coordinates: models.Coordinates{
				Longitude: rec.GeoData.Coordinates[0],
				Latitude:  rec.GeoData.Coordinates[1],
			},
		})
	}

	return cafes, nil
}

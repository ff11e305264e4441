// Package render draws the user and the nearest cafes on a Leaflet map
// saved as a standalone HTML page.
package render

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"log/slog"
	"os"

	"github.com/UnknownOlympus/cafemap/internal/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Defaults used when the Options leave a field empty.
const (
	DefaultOutput = "cafes_map.html"
	DefaultZoom   = 13
)

// Marker colours and popups.
const (
	OriginColor = "blue"
	CafeColor   = "red"
	OriginLabel = "Вы здесь"
)

// FilesystemError reports an artifact that could not be written.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to write map %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// Options configures a Renderer.
type Options struct {
	Output string // Output is the path of the generated HTML file.
	Zoom   int    // Zoom is the initial zoom level of the map.
}

// Renderer writes the map page to a fixed path.
type Renderer struct {
	output string
	zoom   int
	log    *slog.Logger
}

type pageData struct {
	Latitude  float64
	Longitude float64
	Zoom      int
	Markers   template.JS
}

// New returns a Renderer writing to opts.Output.
func New(opts Options, log *slog.Logger) *Renderer {
	if opts.Output == "" {
		opts.Output = DefaultOutput
	}
	if opts.Zoom <= 0 {
		opts.Zoom = DefaultZoom
	}

	return &Renderer{output: opts.Output, zoom: opts.Zoom, log: log}
}

// Path returns the file the renderer writes to.
func (r *Renderer) Path() string {
	return r.output
}

// Render builds the page for origin and ranked and overwrites the output file.
// It returns the path of the written file.
func (r *Renderer) Render(origin models.Coordinates, ranked []models.RankedCafe) (string, error) {
	markers, err := Markers(origin, ranked).MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode markers: %w", err)
	}

	var page bytes.Buffer
	err = pageTemplate.Execute(&page, pageData{
		Latitude:  origin.Latitude,
		Longitude: origin.Longitude,
		Zoom:      r.zoom,
		Markers:   template.JS(markers), // markers are JSON produced by geojson
	})
	if err != nil {
		return "", fmt.Errorf("failed to render map page: %w", err)
	}

	const filePerm = 0o644
	if err = os.WriteFile(r.output, page.Bytes(), filePerm); err != nil {
		return "", &FilesystemError{Path: r.output, Err: err}
	}

	r.log.Info("Map saved", "path", r.output, "markers", len(ranked)+1)

	return r.output, nil
}

// Markers returns the origin followed by every ranked cafe as GeoJSON points.
// Each feature carries its popup HTML and marker colour.
func Markers(origin models.Coordinates, ranked []models.RankedCafe) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	fc.Append(marker(origin, OriginLabel, OriginColor))
	for _, cafe := range ranked {
		fc.Append(marker(cafe.Coordinates, Label(cafe), CafeColor))
	}

	return fc
}

// Label is the popup text of a cafe marker.
func Label(cafe models.RankedCafe) string {
	return fmt.Sprintf("%s<br>Расстояние: %.2f км", html.EscapeString(cafe.Title), cafe.Distance)
}

func marker(c models.Coordinates, popup, color string) *geojson.Feature {
	feature := geojson.NewFeature(orb.Point{c.Longitude, c.Latitude})
	feature.Properties["popup"] = popup
	feature.Properties["color"] = color

	return feature
}

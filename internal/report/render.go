package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	ioutils "github.com/handiism/tcg-portfolio/internal/io"
	"github.com/handiism/tcg-portfolio/internal/model"
)

// DateLayout is the layout of the report date, e.g. "March 07, 2025".
const DateLayout = "January 02, 2006"

//go:embed gallery.html.tmpl
var galleryHTML string

var gallery = template.Must(template.New("gallery").
	Funcs(template.FuncMap{"money": money}).
	Parse(galleryHTML))

// Options controls rendering.
type Options struct {
	// Now is the date printed in the header.
	Now time.Time

	// Thumbnails maps an entry's original query to an image path relative
	// to the report. Entries without one use their remote image URL.
	Thumbnails map[model.Query]string
}

type cardView struct {
	Image  string
	Name   string
	Set    string
	Number string
	Price  float64
}

type pageView struct {
	Total float64
	Count int
	Date  string
	Cards []cardView
}

// Render produces the HTML gallery for a portfolio.
//
// Render is pure: the same portfolio and options always give the same
// document. Entries appear in portfolio order.
func Render(p model.Portfolio, opts Options) (string, error) {
	page := pageView{
		Total: p.TotalValue(),
		Count: len(p),
		Date:  opts.Now.Format(DateLayout),
		Cards: make([]cardView, 0, len(p)),
	}

	for _, e := range p {
		image := e.Image
		if thumb, ok := opts.Thumbnails[model.Query(e.OriginalQuery)]; ok && thumb != "" {
			image = thumb
		}
		page.Cards = append(page.Cards, cardView{
			Image:  image,
			Name:   e.Name,
			Set:    e.Set,
			Number: e.DisplayNumber(),
			Price:  e.MarketPrice,
		})
	}

	var sb strings.Builder
	if err := gallery.Execute(&sb, page); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return sb.String(), nil
}

// ThumbnailFile returns the file name a query's thumbnail is stored under.
func ThumbnailFile(q model.Query) string {
	return ioutils.SanitizeFileName(string(q)) + ".jpg"
}

// Gallery renders reports for a fixed report location, picking up any
// thumbnails already present on disk.
type Gallery struct {
	// ReportFile is where the report will be written; thumbnail links are
	// made relative to its directory.
	ReportFile string

	// ThumbnailDir holds thumbnails named by ThumbnailFile. Empty disables
	// thumbnail lookup.
	ThumbnailDir string

	// Now defaults to time.Now.
	Now func() time.Time
}

// Render renders p with the current date and the thumbnails found on disk.
func (g *Gallery) Render(p model.Portfolio) (string, error) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return Render(p, Options{Now: now(), Thumbnails: g.thumbnails(p)})
}

func (g *Gallery) thumbnails(p model.Portfolio) map[model.Query]string {
	if g.ThumbnailDir == "" {
		return nil
	}

	base := filepath.Dir(g.ReportFile)
	found := make(map[model.Query]string)
	for _, e := range p {
		q := model.Query(e.OriginalQuery)
		path := filepath.Join(g.ThumbnailDir, ThumbnailFile(q))
		if !ioutils.FileExists(path) {
			continue
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			rel = path
		}
		found[q] = filepath.ToSlash(rel)
	}
	return found
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

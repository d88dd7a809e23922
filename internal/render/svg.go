package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"strconv"
	"text/template"

	"github.com/naka-gawa/github-wrapped/internal/domain"
)

const (
	svgWidth     = 520
	svgHeight    = 250
	svgLanguages = 5
)

//go:embed templates/card.svg.tmpl
var cardTemplate string

var cardTmpl = template.Must(
	template.New("card").
		Funcs(template.FuncMap{
			"add":      func(a, b int) int { return a + b },
			"sub":      func(a, b int) int { return a - b },
			"mul":      func(a, b int) int { return a * b },
			"xml":      html.EscapeString,
			"barWidth": func(ratio float64, full int) string { return strconv.FormatFloat(ratio*float64(full), 'f', 1, 64) },
		}).
		Parse(cardTemplate),
)

type cardViewModel struct {
	Width  int
	Height int
	Theme  Theme

	Title    string
	Subtitle string

	Metrics   []Row
	Languages []Row
}

// RenderSVG draws the summary card for a report.
func RenderSVG(report *domain.Report, theme Theme) ([]byte, error) {
	if report == nil || report.Stats == nil {
		return nil, fmt.Errorf("render svg: no stats to render")
	}
	s := report.Stats

	title := report.Username
	if name := report.Profile.DisplayName(); name != "" {
		title = name
	}
	subtitle := fmt.Sprintf("GitHub activity since %s", report.From.Format("January 2, 2006"))

	median := "n/a"
	if m := domain.SummarizeMergeTimes(s.PRMergeTimes); m.Count > 0 {
		median = FormatDuration(m.Median)
	}

	vm := cardViewModel{
		Width:    svgWidth,
		Height:   svgHeight,
		Theme:    theme,
		Title:    title,
		Subtitle: subtitle,
		Metrics: []Row{
			{Label: "Commits", Value: strconv.Itoa(s.TotalCommits)},
			{Label: "Pull requests", Value: strconv.Itoa(s.TotalPRs)},
			{Label: "Issues", Value: strconv.Itoa(s.TotalIssues)},
			{Label: "Reviews", Value: strconv.Itoa(s.CommentsOnPRs)},
			{Label: "Most active day", Value: orDash(s.MostActiveDay)},
			{Label: "Median merge time", Value: median},
		},
		Languages: languageShares(s.TopLanguages, svgLanguages),
	}

	var buf bytes.Buffer
	if err := cardTmpl.Execute(&buf, vm); err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return buf.Bytes(), nil
}

// languageShares returns the n largest languages with their share of all bytes.
func languageShares(t domain.Tally, n int) []Row {
	total := t.Sum()
	if total == 0 {
		return nil
	}
	top := t.Top(n).Entries()
	rows := make([]Row, 0, len(top))
	for _, e := range top {
		share := float64(e.Count) / float64(total)
		rows = append(rows, Row{
			Label: e.Key,
			Value: fmt.Sprintf("%.1f%%", share*100),
			Ratio: share,
		})
	}
	return rows
}

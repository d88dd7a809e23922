// Package export writes reports to spreadsheet workbooks.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/naka-gawa/github-wrapped/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary      = "Summary"
	SheetRepositories = "Repositories"
	SheetReviews      = "Reviews"
	SheetLanguages    = "Languages"
	SheetMonthly      = "Monthly"
	SheetMergeTimes   = "Merge times"
)

// WriteXLSX writes the report as a workbook with one sheet per group of stats.
func WriteXLSX(w io.Writer, report *domain.Report) error {
	if report == nil || report.Stats == nil {
		return fmt.Errorf("export: no stats to write")
	}
	s := report.Stats

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}
	for _, name := range []string{SheetRepositories, SheetReviews, SheetLanguages, SheetMonthly, SheetMergeTimes} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("export: create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: create style: %w", err)
	}

	merge := domain.SummarizeMergeTimes(s.PRMergeTimes)
	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Username", report.Username},
		{"From", report.From.Format("2006-01-02")},
		{"Generated at", report.GeneratedAt.UTC().Format(time.RFC3339)},
		{"Total commits", s.TotalCommits},
		{"Total pull requests", s.TotalPRs},
		{"Total issues", s.TotalIssues},
		{"Pull requests reviewed", s.CommentsOnPRs},
		{"Most active day", s.MostActiveDay},
		{"Merged pull requests reviewed", merge.Count},
		{"Mean merge time (hours)", hours(merge.Mean)},
		{"Median merge time (hours)", hours(merge.Median)},
		{"P90 merge time (hours)", hours(merge.P90)},
	}
	if err := writeRows(f, SheetSummary, summary, header); err != nil {
		return err
	}

	repos := [][]interface{}{{"Group", "Repository", "Count"}}
	repos = appendTally(repos, "Commits", s.CommitsByRepo)
	repos = appendTally(repos, "Pull requests", s.PRsByRepo)
	repos = appendTally(repos, "Issues", s.IssuesByRepo)
	repos = appendTally(repos, "Top by commits", s.TopReposByCommits)
	repos = appendTally(repos, "Top by issues", s.TopReposByIssues)
	if err := writeRows(f, SheetRepositories, repos, header); err != nil {
		return err
	}

	reviews := [][]interface{}{{"Group", "Name", "Count"}}
	reviews = appendTally(reviews, "Pull request author", s.TopReviewers)
	reviews = appendTally(reviews, "Repository", s.MostReviewedRepos)
	if err := writeRows(f, SheetReviews, reviews, header); err != nil {
		return err
	}

	langs := [][]interface{}{{"Language", "Bytes"}}
	for _, e := range s.TopLanguages.Top(-1).Entries() {
		langs = append(langs, []interface{}{e.Key, e.Count})
	}
	if err := writeRows(f, SheetLanguages, langs, header); err != nil {
		return err
	}

	monthly := [][]interface{}{{"Month", "Contributions"}}
	for _, e := range s.MonthlyContributions.Entries() {
		monthly = append(monthly, []interface{}{e.Key, e.Count})
	}
	if err := writeRows(f, SheetMonthly, monthly, header); err != nil {
		return err
	}

	mergeRows := [][]interface{}{{"#", "Milliseconds", "Hours"}}
	for i, ms := range s.PRMergeTimes {
		mergeRows = append(mergeRows, []interface{}{i + 1, ms, hours(time.Duration(ms) * time.Millisecond)})
	}
	if err := writeRows(f, SheetMergeTimes, mergeRows, header); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func appendTally(rows [][]interface{}, group string, t domain.Tally) [][]interface{} {
	for _, e := range t.Entries() {
		rows = append(rows, []interface{}{group, e.Key, e.Count})
	}
	return rows
}

// writeRows writes rows starting at A1 and styles the first one as a header.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("export: %s row %d: %w", sheet, i+1, err)
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("export: %s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) > 0 {
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return fmt.Errorf("export: %s header: %w", sheet, err)
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("export: %s header: %w", sheet, err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "C", 24); err != nil {
		return fmt.Errorf("export: %s column width: %w", sheet, err)
	}
	return nil
}

func hours(d time.Duration) float64 {
	return float64(int64(d.Hours()*100)) / 100
}

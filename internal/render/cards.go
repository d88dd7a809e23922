package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/naka-gawa/github-wrapped/internal/domain"
)

const (
	maxCardRows     = 10
	maxLanguageRows = 8
)

// Card is one tile of the stats page.
type Card struct {
	Title string
	Value string
	Rows  []Row
	Note  string
}

// Row is a labelled bar inside a card. Ratio is relative to the largest row of the card.
type Row struct {
	Label string
	Value string
	Ratio float64
}

// Cards builds one card per Stats field, in a fixed order.
func Cards(s *domain.Stats) []Card {
	if s == nil {
		return nil
	}
	merge := domain.SummarizeMergeTimes(s.PRMergeTimes)

	cards := []Card{
		{Title: "Commits", Value: strconv.Itoa(s.TotalCommits)},
		{Title: "Pull requests", Value: strconv.Itoa(s.TotalPRs)},
		{Title: "Issues", Value: strconv.Itoa(s.TotalIssues)},
		tallyCard("Commits by repository", s.CommitsByRepo, maxCardRows, strconv.Itoa),
		tallyCard("Pull requests by repository", s.PRsByRepo, maxCardRows, strconv.Itoa),
		tallyCard("Issues by repository", s.IssuesByRepo, maxCardRows, strconv.Itoa),
		{Title: "Pull requests reviewed", Value: strconv.Itoa(s.CommentsOnPRs)},
		withNote(tallyCard("Top reviewers", s.TopReviewers.Top(-1), maxCardRows, strconv.Itoa),
			"Counted by the author of each reviewed pull request."),
		tallyCard("Most reviewed repositories", s.MostReviewedRepos.Top(-1), maxCardRows, strconv.Itoa),
		tallyCard("Top languages", s.TopLanguages.Top(-1), maxLanguageRows, FormatBytes),
		tallyCard("Monthly contributions", s.MonthlyContributions, 13, strconv.Itoa),
		mergeTimeCard(merge),
		{Title: "Issue resolution time", Value: "n/a", Note: "No data source."},
		{Title: "Most active day", Value: orDash(s.MostActiveDay)},
		tallyCard("Top repositories by commits", s.TopReposByCommits, domain.TopRepoLimit, strconv.Itoa),
		tallyCard("Top repositories by issues", s.TopReposByIssues, domain.TopRepoLimit, strconv.Itoa),
	}
	return cards
}

func tallyCard(title string, t domain.Tally, limit int, format func(int) string) Card {
	entries := t.Entries()
	card := Card{Title: title}
	if len(entries) == 0 {
		card.Note = "Nothing yet."
		return card
	}
	if len(entries) > limit {
		card.Note = fmt.Sprintf("+%d more", len(entries)-limit)
		entries = entries[:limit]
	}

	var maxCount int
	for _, e := range entries {
		if e.Count > maxCount {
			maxCount = e.Count
		}
	}
	for _, e := range entries {
		row := Row{Label: e.Key, Value: format(e.Count)}
		if maxCount > 0 {
			row.Ratio = float64(e.Count) / float64(maxCount)
		}
		card.Rows = append(card.Rows, row)
	}
	return card
}

func mergeTimeCard(m domain.DurationSummary) Card {
	card := Card{Title: "Pull request merge time"}
	if m.Count == 0 {
		card.Value = "n/a"
		card.Note = "None of the reviewed pull requests were merged."
		return card
	}
	card.Value = FormatDuration(m.Median)
	card.Rows = []Row{
		{Label: "merged", Value: strconv.Itoa(m.Count)},
		{Label: "mean", Value: FormatDuration(m.Mean)},
		{Label: "median", Value: FormatDuration(m.Median)},
		{Label: "p90", Value: FormatDuration(m.P90)},
	}
	return card
}

func withNote(c Card, note string) Card {
	if c.Note == "" {
		c.Note = note
	} else {
		c.Note = note + " " + c.Note
	}
	return c
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// FormatBytes renders a byte count using binary units.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := int64(n) / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatDuration renders d with at most two units, e.g. "2d 3h" or "45m".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	days := int(d / (24 * time.Hour))
	hours := int(d % (24 * time.Hour) / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	switch {
	case days > 0 && hours > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case days > 0:
		return fmt.Sprintf("%dd", days)
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

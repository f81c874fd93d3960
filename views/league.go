// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/danielhkuo/quickly-league/league"
	"github.com/danielhkuo/quickly-league/models"
	"github.com/dustin/go-humanize"
)

const pageStyle = `body{font-family:system-ui,sans-serif;max-width:48rem;margin:2rem auto;padding:0 1rem;color:#1f2937}` +
	`table{width:100%;border-collapse:collapse;margin-bottom:1.5rem}th,td{padding:.35rem .5rem;border-bottom:1px solid #e5e7eb;text-align:left}` +
	`td.num,th.num{text-align:right}.muted{color:#6b7280;font-size:.875rem}.score{font-weight:600;text-align:center;width:5rem}`

// LeaguePage renders the public standings page of a published league.
// now anchors the relative timestamps.
func LeaguePage(view models.LeagueView, now time.Time) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		title := html.EscapeString(view.League.Name)

		writeHead(&b, title)
		fmt.Fprintf(&b, `<h1>%s</h1>`, title)
		fmt.Fprintf(&b, `<p class="muted">Organized by %s · created %s · %d of %d matches played</p>`,
			html.EscapeString(view.League.Owner),
			humanize.RelTime(view.League.CreatedAt, now, "ago", "from now"),
			view.Played, view.Total)
		fmt.Fprintf(&b, `<p class="muted">Win %s · Tie %s · Loss %s</p>`,
			humanize.Ftoa(view.League.Rules.WinPoints),
			humanize.Ftoa(view.League.Rules.TiePoints),
			humanize.Ftoa(view.League.Rules.LossPoints))

		b.WriteString(`<h2>Standings</h2>`)
		b.WriteString(standingsTableHTML(view.Standings))

		b.WriteString(`<h2>Fixtures</h2>`)
		if len(view.Rounds) == 0 {
			b.WriteString(`<p class="muted">No fixtures scheduled.</p>`)
		}
		for _, round := range view.Rounds {
			b.WriteString(roundHTML(round, now))
		}

		b.WriteString(`</body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// NotFoundPage renders a minimal page for unknown or unpublished leagues
func NotFoundPage(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeHead(&b, "League not found")
		fmt.Fprintf(&b, `<h1>League not found</h1><p class="muted">%s</p></body></html>`, html.EscapeString(message))
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeHead(b *strings.Builder, title string) {
	b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	fmt.Fprintf(b, `<title>%s</title><style>%s</style></head><body>`, title, pageStyle)
}

func standingsTableHTML(standings []league.Standing) string {
	if len(standings) == 0 {
		return `<p class="muted">No teams yet.</p>`
	}

	var b strings.Builder
	b.WriteString(`<table id="standings"><thead><tr><th class="num">#</th><th>Team</th>`)
	b.WriteString(`<th class="num">P</th><th class="num">W</th><th class="num">D</th><th class="num">L</th><th class="num">Pts</th></tr></thead><tbody>`)
	for i, s := range standings {
		fmt.Fprintf(&b, `<tr><td class="num">%d</td><td>%s</td><td class="num">%d</td><td class="num">%d</td><td class="num">%d</td><td class="num">%d</td><td class="num">%s</td></tr>`,
			i+1, html.EscapeString(s.Team), s.Played(), s.Wins, s.Draws, s.Losses, humanize.Ftoa(s.Points))
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func roundHTML(round league.MatchdayGroup[models.Match], now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<h3>Matchday %d</h3>`, round.Matchday)
	if len(round.Fixtures) == 0 {
		b.WriteString(`<p class="muted">No matches.</p>`)
		return b.String()
	}

	b.WriteString(`<table class="matchday"><tbody>`)
	for _, m := range round.Fixtures {
		score := "vs"
		updated := ""
		if m.Played() {
			score = fmt.Sprintf("%d - %d", *m.Score1, *m.Score2)
		}
		if m.UpdatedAt != nil {
			updated = "updated " + humanize.RelTime(*m.UpdatedAt, now, "ago", "from now")
		}
		fmt.Fprintf(&b, `<tr><td>%s</td><td class="score">%s</td><td>%s</td><td class="muted">%s</td></tr>`,
			html.EscapeString(m.Team1), score, html.EscapeString(m.Team2), updated)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

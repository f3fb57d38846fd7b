package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"maCentral/internal/models"

	"github.com/fatih/color"
)

type painter func(attr color.Attribute, s string) string

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printUser(w io.Writer, user models.UserPoints) {
	fmt.Fprintf(w, "%s (id %d)\n", user.Username, user.ID)
	fmt.Fprintf(w, "score:    %d points\n", user.Score)
	fmt.Fprintf(w, "lifetime: %d points\n", user.Lifetime)
}

// printEvents renders one row per event. The status column is last so its
// color codes do not shift the alignment.
func printEvents(w io.Writer, events []models.Event, nowMs int64, loc *time.Location, paint painter) error {
	tw := newTable(w)

	fmt.Fprintln(tw, "ID\tTITLE\tSTARTS\tWHERE\tPOINTS\tSTATUS")
	for _, e := range events {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Title,
			e.Start().In(loc).Format(models.DateLayout),
			orDash(e.HumanLocation),
			monetization(e.Monetization),
			eventStatus(e, nowMs, paint),
		)
	}

	return tw.Flush()
}

func monetization(m models.Monetization) string {
	switch m := m.(type) {
	case models.Points:
		return fmt.Sprintf("+%d", m.Reward)
	case models.Priced:
		return fmt.Sprintf("costs %d", m.Price)
	default:
		return "-"
	}
}

func eventStatus(e models.Event, nowMs int64, paint painter) string {
	switch {
	case e.Expired(nowMs):
		return paint(color.FgRed, "ended")
	case !e.OnSale(nowMs):
		return paint(color.FgYellow, "sales closed")
	case nowMs >= e.StartTime:
		return paint(color.FgGreen, "happening now")
	default:
		return ""
	}
}

func printTickets(w io.Writer, tickets []models.Ticket, titles map[int64]string, paint painter) error {
	tw := newTable(w)

	fmt.Fprintln(tw, "TICKET\tEVENT\tENTRY\tSTATUS")
	for _, t := range tickets {
		event := titles[t.EventID]
		if event == "" {
			event = fmt.Sprintf("#%d", t.EventID)
		}

		entry := "multi"
		if t.IsSingleEntry() {
			entry = "single"
		}

		status := paint(color.FgGreen, "unused")
		if t.IsExpended() {
			status = paint(color.FgRed, "used")
		}

		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", t.ID, event, entry, status)
	}

	return tw.Flush()
}

// printLeaderboard marks the row of self, if present.
func printLeaderboard(w io.Writer, board []models.UserPoints, self int64, paint painter) error {
	if len(board) == 0 {
		_, err := fmt.Fprintln(w, "the leaderboard is empty")
		return err
	}

	tw := newTable(w)

	fmt.Fprintln(tw, "RANK\tUSER\tLIFETIME\t")
	for i, u := range board {
		mark := ""
		if u.ID == self {
			mark = paint(color.FgCyan, "you")
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", i+1, u.Username, u.Lifetime, mark)
	}

	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package models

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// DateLayout is how event start dates are shown and searched.
const DateLayout = "Jan 2, 2006 3:04 PM"

type Event struct {
	ID            int64        `json:"id"`
	StartTime     int64        `json:"start_time"`
	EndTime       int64        `json:"end_time"`
	Title         string       `json:"title"`
	HumanLocation string       `json:"human_location"`
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`
	Details       string       `json:"details"`
	Image         string       `json:"image"`
	Monetization  Monetization `json:"-"`
}

// Monetization is either Points or Priced.
type Monetization interface {
	monetization()
}

// Points events reward attendees with points and cost nothing.
type Points struct {
	Reward int64
}

// Priced events sell tickets for points until SaleDeadline (epoch ms).
type Priced struct {
	Price        int64
	SaleDeadline int64
}

func (Points) monetization() {}
func (Priced) monetization() {}

type eventWire struct {
	ID            int64   `json:"id"`
	StartTime     int64   `json:"start_time"`
	EndTime       int64   `json:"end_time"`
	Title         string  `json:"title"`
	HumanLocation string  `json:"human_location"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Details       string  `json:"details"`
	Image         string  `json:"image"`
	PointReward   *int64  `json:"point_reward,omitempty"`
	TicketPrice   *int64  `json:"ticket_price,omitempty"`
	LastSaleDate  *int64  `json:"last_sale_date,omitempty"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	w := eventWire{
		ID:            e.ID,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		Title:         e.Title,
		HumanLocation: e.HumanLocation,
		Latitude:      e.Latitude,
		Longitude:     e.Longitude,
		Details:       e.Details,
		Image:         e.Image,
	}

	switch m := e.Monetization.(type) {
	case Priced:
		w.TicketPrice = &m.Price
		w.LastSaleDate = &m.SaleDeadline
	case Points:
		w.PointReward = &m.Reward
	default:
		var zero int64
		w.PointReward = &zero
	}

	return json.Marshal(w)
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var w eventWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*e = Event{
		ID:            w.ID,
		StartTime:     w.StartTime,
		EndTime:       w.EndTime,
		Title:         w.Title,
		HumanLocation: w.HumanLocation,
		Latitude:      w.Latitude,
		Longitude:     w.Longitude,
		Details:       w.Details,
		Image:         w.Image,
	}

	switch {
	case w.TicketPrice != nil:
		p := Priced{Price: *w.TicketPrice}
		if w.LastSaleDate != nil {
			p.SaleDeadline = *w.LastSaleDate
		}
		e.Monetization = p
	case w.PointReward != nil:
		e.Monetization = Points{Reward: *w.PointReward}
	default:
		e.Monetization = Points{}
	}

	return nil
}

// Expired reports whether the event has ended at nowMs. The end instant itself counts as ended.
func (e Event) Expired(nowMs int64) bool {
	return nowMs >= e.EndTime
}

// OnSale reports whether tickets can still be created at nowMs.
func (e Event) OnSale(nowMs int64) bool {
	if p, ok := e.Monetization.(Priced); ok {
		return nowMs <= p.SaleDeadline
	}

	return true
}

func (e Event) Start() time.Time {
	return time.UnixMilli(e.StartTime)
}

func (e Event) End() time.Time {
	return time.UnixMilli(e.EndTime)
}

// SortByStart orders events by ascending start time in place.
func SortByStart(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime < events[j].StartTime
	})
}

// Filter returns the events whose title, location or formatted start date
// contain query, ignoring case. loc is used to format dates.
func Filter(events []Event, query string, loc *time.Location) []Event {
	if query == "" {
		return events
	}
	if loc == nil {
		loc = time.Local
	}

	q := strings.ToLower(query)

	var out []Event
	for _, e := range events {
		date := strings.ToLower(e.Start().In(loc).Format(DateLayout))
		if strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.HumanLocation), q) ||
			strings.Contains(date, q) {
			out = append(out, e)
		}
	}

	return out
}

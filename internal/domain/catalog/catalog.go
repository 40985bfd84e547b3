// Package catalog holds the static tables the aggregator consults: known
// events, age categories and which categories an event may be ranked in.
package catalog

import (
	"fmt"
	"slices"
)

// Event describes one event code.
type Event struct {
	Code string
	// SmallerBetter is true for timed events.
	SmallerBetter bool
	// Components is how many sexagesimal numbers to render (1: SS, 2: M:SS, 3: H:MM:SS).
	Components int
	// Runbritain marks events queried from the road-running rankings site.
	Runbritain bool
	// Categories restricts the event to these age categories. Empty means any.
	Categories []string
}

// ValidFor reports whether a performance in category may be ranked for this event.
func (e Event) ValidFor(category string) bool {
	return len(e.Categories) == 0 || slices.Contains(e.Categories, category)
}

// Category is an age category with the age range used for Runbritain queries.
// MinAge and MaxAge are both zero when the category is searched by name.
type Category struct {
	Name   string
	MinAge int
	MaxAge int
}

// ByName reports whether the category is queried by name rather than age range.
func (c Category) ByName() bool {
	return c.MinAge == 0 && c.MaxAge == 0
}

// Open is the overall category every eligible performance is also offered to.
const Open = "ALL"

// Genders in report order.
var Genders = []string{"W", "M"}

// Catalog indexes events and categories.
type Catalog struct {
	events     []Event
	byCode     map[string]Event
	po10       []string
	categories []Category
}

// New builds a catalog from explicit tables.
func New(events []Event, po10 []string, categories []Category) *Catalog {
	c := &Catalog{
		events:     events,
		byCode:     make(map[string]Event, len(events)),
		po10:       po10,
		categories: categories,
	}
	for _, e := range events {
		c.byCode[e.Code] = e
	}
	return c
}

// Default returns the catalog of events and categories used by the club.
func Default() *Catalog {
	return New(defaultEvents, defaultPowerOf10Categories, defaultCategories)
}

// Lookup returns the event for code, or an error wrapping ErrUnknownEvent.
func (c *Catalog) Lookup(code string) (Event, error) {
	e, ok := c.byCode[code]
	if !ok {
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownEvent, code)
	}
	return e, nil
}

// Events returns every event in report order.
func (c *Catalog) Events() []Event {
	return slices.Clone(c.events)
}

// RunbritainEvents returns the events queried on Runbritain.
func (c *Catalog) RunbritainEvents() []Event {
	var out []Event
	for _, e := range c.events {
		if e.Runbritain {
			out = append(out, e)
		}
	}
	return out
}

// PowerOf10Categories returns the categories offered by the Po10 club rankings.
func (c *Catalog) PowerOf10Categories() []string {
	return slices.Clone(c.po10)
}

// Categories returns the Runbritain categories in report order.
func (c *Catalog) Categories() []Category {
	return slices.Clone(c.categories)
}

// Category returns the named category.
func (c *Catalog) Category(name string) (Category, bool) {
	for _, cat := range c.categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// OpenEligible reports whether a performance of code achieved in another
// category may also rank in the overall category.
func (c *Catalog) OpenEligible(code string) bool {
	e, ok := c.byCode[code]
	return ok && e.ValidFor(Open)
}

// CategoryForAge maps an age in years to the age-range category containing it.
// Senior ages between the junior and veteran bands have no category.
func (c *Catalog) CategoryForAge(age int) (string, bool) {
	for _, cat := range c.categories {
		if cat.ByName() {
			continue
		}
		if age >= cat.MinAge && age <= cat.MaxAge {
			return cat.Name, true
		}
	}
	return "", false
}

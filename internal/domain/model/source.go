package model

import "strconv"

// Kind identifies where a performance came from. Higher kinds take
// precedence when two sources report the same result for one athlete.
type Kind int

const (
	// KindFile is a manually maintained records spreadsheet.
	KindFile Kind = iota
	// KindRunbritain is the road-running rankings site.
	KindRunbritain
	// KindPowerOf10 is the site of record.
	KindPowerOf10
)

func (k Kind) String() string {
	switch k {
	case KindPowerOf10:
		return "Po10"
	case KindRunbritain:
		return "Runbritain"
	case KindFile:
		return "File(s)"
	default:
		return "unknown"
	}
}

// Source is the provenance of a performance.
type Source struct {
	Kind Kind `json:"kind"`
	// Year is the ranking year queried; zero for files.
	Year int `json:"year,omitempty"`
	// Label names the file and worksheet for file sources.
	Label string `json:"label,omitempty"`
}

// PowerOf10 returns the source for a Po10 ranking year.
func PowerOf10(year int) Source { return Source{Kind: KindPowerOf10, Year: year} }

// Runbritain returns the source for a Runbritain ranking year.
func Runbritain(year int) Source { return Source{Kind: KindRunbritain, Year: year} }

// File returns the source for a spreadsheet, labelled "path:sheet".
func File(label string) Source { return Source{Kind: KindFile, Label: label} }

// Outranks reports whether s takes precedence over other.
func (s Source) Outranks(other Source) bool {
	return s.Kind > other.Kind
}

// String renders the source as shown in reports, e.g. "Po10 2019".
func (s Source) String() string {
	if s.Kind == KindFile {
		return s.Label
	}
	return s.Kind.String() + " " + strconv.Itoa(s.Year)
}

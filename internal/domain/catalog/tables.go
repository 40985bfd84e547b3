package catalog

func ev(code string, smallerBetter bool, components int, runbritain bool, categories ...string) Event {
	return Event{Code: code, SmallerBetter: smallerBetter, Components: components, Runbritain: runbritain, Categories: categories}
}

// Timed events first, then field events and multi-events. Minithon and Oct
// only appear in club records files.
var defaultEvents = []Event{
	ev("1M", true, 2, true),
	ev("2M", true, 2, true),
	ev("5K", true, 2, true),
	ev("parkrun", true, 2, true),
	ev("4M", true, 2, true),
	ev("5M", true, 2, true),
	ev("10K", true, 2, true),
	ev("10M", true, 2, true),
	ev("HM", true, 2, true),
	ev("Mar", true, 3, true),
	ev("50K", true, 3, true),
	ev("100K", true, 3, true),
	ev("60", true, 1, false),
	ev("80", true, 1, false),
	ev("100", true, 1, false),
	ev("150", true, 1, false),
	ev("200", true, 1, false),
	ev("300", true, 1, false),
	ev("400", true, 1, false),
	ev("600", true, 1, false),
	ev("800", true, 2, true),
	ev("1500", true, 2, true),
	ev("Mile", true, 2, true),
	ev("3000", true, 2, true),
	ev("5000", true, 2, true),
	ev("10000", true, 2, true),
	ev("1500SC", true, 2, false),
	ev("1500SCW", true, 2, false),
	ev("2000SC", true, 2, false),
	ev("2000SCW", true, 2, false),
	ev("3000SC", true, 2, false),
	ev("3000SCW", true, 2, false),
	ev("MileW", true, 2, false),
	ev("1500W", true, 2, false),
	ev("2000W", true, 2, false),
	ev("3000W", true, 2, false),
	ev("70HU13W", true, 1, false, "U13"),
	ev("75HU13M", true, 1, false, "U13"),
	ev("75HU15W", true, 1, false, "U15"),
	ev("80HU15M", true, 1, false, "U15"),
	ev("80HU17W", true, 1, false, "U17"),
	ev("80HW", true, 1, false),
	ev("100HW", true, 1, false),
	ev("100HM50", true, 1, false, "V50", "V55"),
	ev("100HU17M", true, 1, false, "U17"),
	ev("110HU20M", true, 1, false, "U20"),
	ev("110H", true, 1, false),
	ev("110HM35", true, 1, false, "V35", "V40", "V45"),
	ev("300HW", true, 1, false),
	ev("400H", true, 1, false),
	ev("400HW", true, 1, false),
	ev("400HU17M", true, 1, false, "U17"),
	ev("4x100", true, 1, false),
	ev("4x400", true, 2, false),
	ev("HJ", false, 1, false),
	ev("PV", false, 1, false),
	ev("LJ", false, 1, false),
	ev("TJ", false, 1, false),
	ev("SP2.72K", false, 1, false),
	ev("SP3K", false, 1, false),
	ev("SP3.25K", false, 1, false),
	ev("SP4K", false, 1, false),
	ev("SP5K", false, 1, false),
	ev("SP6K", false, 1, false),
	ev("SP7.26K", false, 1, false),
	ev("DT0.75K", false, 1, false),
	ev("DT1K", false, 1, false),
	ev("DT1.25K", false, 1, false),
	ev("DT1.5K", false, 1, false),
	ev("DT1.75K", false, 1, false),
	ev("DT2K", false, 1, false),
	ev("HT3K", false, 1, false),
	ev("HT4K", false, 1, false),
	ev("HT5K", false, 1, false),
	ev("HT6K", false, 1, false),
	ev("HT7.26K", false, 1, false),
	ev("WT9.08K", false, 1, false),
	ev("WT11.34K", false, 1, false),
	ev("JT400", false, 1, false),
	ev("JT500", false, 1, false),
	ev("JT600", false, 1, false),
	ev("JT600PRE86", false, 1, false),
	ev("JT600PRE99", false, 1, false),
	ev("JT700", false, 1, false),
	ev("JT800", false, 1, false),
	ev("JT800PRE86", false, 1, false),
	ev("Minithon", false, 1, false),
	ev("Oct", false, 1, false),
	ev("PenU13W", false, 1, false, "U13"),
	ev("PenU13M", false, 1, false, "U13"),
	ev("PenU15W", false, 1, false, "U15"),
	ev("PenU15M", false, 1, false, "U15"),
	ev("PenU17W", false, 1, false, "U17"),
	ev("PenU17M", false, 1, false, "U17"),
	ev("PenU20M", false, 1, false, "U20"),
	ev("PenW", false, 1, false),
	ev("PenIM35", false, 1, false, "V35"),
	ev("PenIM40", false, 1, false, "V40"),
	ev("PenWtM40", false, 1, false, "V40"),
	ev("PenWtM45", false, 1, false, "V45"),
	ev("PenWtM55", false, 1, false, "V55"),
	ev("PenWtW60", false, 1, false, "V60"),
	ev("PenWtM60", false, 1, false, "V60"),
	ev("HepW", false, 1, false),
	ev("HepU17W", false, 1, false, "U17"),
	ev("Dec", false, 1, false),
}

var defaultPowerOf10Categories = []string{"ALL", "U13", "U15", "U17", "U20"}

// Seniors are covered by ALL. Runbritain misses results for some categories
// when searched by name, so age ranges are used where defined.
var defaultCategories = []Category{
	{Name: "ALL"},
	{Name: "Disability"},
	{Name: "U13", MinAge: 1, MaxAge: 12},
	{Name: "U15", MinAge: 13, MaxAge: 14},
	{Name: "U17", MinAge: 15, MaxAge: 16},
	{Name: "U20", MinAge: 17, MaxAge: 19},
	{Name: "U23", MinAge: 20, MaxAge: 22},
	{Name: "V35", MinAge: 35, MaxAge: 39},
	{Name: "V40", MinAge: 40, MaxAge: 44},
	{Name: "V45", MinAge: 45, MaxAge: 49},
	{Name: "V50", MinAge: 50, MaxAge: 54},
	{Name: "V55", MinAge: 55, MaxAge: 59},
	{Name: "V60", MinAge: 60, MaxAge: 64},
	{Name: "V65", MinAge: 65, MaxAge: 69},
	{Name: "V70", MinAge: 70, MaxAge: 74},
	{Name: "V75", MinAge: 75, MaxAge: 79},
	{Name: "V80", MinAge: 80, MaxAge: 84},
	{Name: "V85", MinAge: 85, MaxAge: 89},
	{Name: "V90", MinAge: 90, MaxAge: 120},
}

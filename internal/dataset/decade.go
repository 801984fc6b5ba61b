package dataset

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"historicmap/internal/types"
)

// Palette is the marker colour cycle for derived era styles. cadetblue is
// left out since it marks the fallback style.
var Palette = []string{"orange", "red", "green", "blue", "purple", "darkred", "darkgreen", "darkpurple"}

// An exact year; "1700s" has no word boundary after the digits so it stays a
// century label.
var yearRe = regexp.MustCompile(`\b(\d{4})\b`)

// BuildYear extracts the construction year from a record, looking at Year
// first and then the title.
func BuildYear(r types.PropertyRecord) (int, bool) {
	for _, s := range []string{r.Year, r.Title} {
		if m := yearRe.FindStringSubmatch(s); m != nil {
			y, err := strconv.Atoi(m[1])
			if err == nil {
				return y, true
			}
		}
	}
	return 0, false
}

// DecadeKey formats the decade containing year, e.g. 1905 -> "1900-1909".
func DecadeKey(year int) string {
	start := year - year%10
	return fmt.Sprintf("%d-%d", start, start+9)
}

// RegroupByDecade returns a copy of d whose eras are decades derived from each
// record's build year. Records without an exact year keep their era and, if
// it had one, its original style. Decade styles come first in ascending
// order, coloured from Palette.
func RegroupByDecade(d *Dataset) *Dataset {
	out := &Dataset{
		Name:    d.Name,
		Title:   d.Title,
		Records: make([]types.PropertyRecord, len(d.Records)),
	}

	decades := make(map[int]bool)
	kept := make(map[string]bool)
	for i, r := range d.Records {
		if y, ok := BuildYear(r); ok {
			start := y - y%10
			decades[start] = true
			r.Era = DecadeKey(y)
		} else {
			kept[r.Era] = true
		}
		out.Records[i] = r
	}

	starts := make([]int, 0, len(decades))
	for s := range decades {
		starts = append(starts, s)
	}
	sort.Ints(starts)

	for i, s := range starts {
		key := DecadeKey(s)
		out.Styles = append(out.Styles, types.EraStyle{
			Key:   key,
			Color: Palette[i%len(Palette)],
			Label: key,
		})
	}
	for _, st := range d.Styles {
		if kept[st.Key] {
			if _, clash := out.Styles.Lookup(st.Key); !clash {
				out.Styles = append(out.Styles, st)
			}
		}
	}
	return out
}

// StylesFromEras builds styles for the distinct eras in records, in first-seen
// order, coloured from Palette.
func StylesFromEras(records []types.PropertyRecord) types.EraStyles {
	var styles types.EraStyles
	seen := make(map[string]bool)
	for _, r := range records {
		if r.Era == "" || seen[r.Era] {
			continue
		}
		seen[r.Era] = true
		styles = append(styles, types.EraStyle{
			Key:   r.Era,
			Color: Palette[(len(styles))%len(Palette)],
			Label: r.Era,
		})
	}
	return styles
}

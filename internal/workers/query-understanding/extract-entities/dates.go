// internal/workers/query-understanding/extract-entities/dates.go
package extractentities

import (
	"regexp"
	"strconv"
	"time"

	"krishi-assistant/internal/common/lexicon"
	"krishi-assistant/internal/models"
)

const dayLayout = "2006-01-02"

var (
	dmyPattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	ymdPattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	dayPattern = regexp.MustCompile(`^(\d{1,2})$`)
)

// formatRange renders an inclusive day range as YYYY-MM-DD/YYYY-MM-DD.
func formatRange(start, end time.Time) string {
	return start.Format(dayLayout) + "/" + end.Format(dayLayout)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// resolveRelative turns a relative phrase into a concrete range. Week ranges
// run Monday to Sunday; the current week starts today.
func resolveRelative(rel lexicon.RelativeDate, now time.Time) string {
	today := midnight(now)
	if rel.Week {
		offset := (int(today.Weekday()) + 6) % 7
		monday := today.AddDate(0, 0, -offset)
		start := monday.AddDate(0, 0, 7*rel.OffsetDays)
		end := start.AddDate(0, 0, 6)
		if rel.OffsetDays == 0 {
			start = today
		}
		return formatRange(start, end)
	}

	days := rel.Days
	if days < 1 {
		days = 1
	}
	start := today.AddDate(0, 0, rel.OffsetDays)
	return formatRange(start, start.AddDate(0, 0, days-1))
}

// validDate builds a date and rejects overflow such as 31/02.
func validDate(y, m, d int, loc *time.Location) (time.Time, bool) {
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc)
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, false
	}
	return t, true
}

// explicitDates finds dd/mm/yyyy, yyyy-mm-dd, "15 october [2026]" and
// "october 15 [2026]" forms. A month name alone is not a date.
func (h *Handler) explicitDates(words []string, now time.Time) []candidate {
	var out []candidate
	add := func(t time.Time, start, end int) {
		out = append(out, candidate{
			entity: models.Entity{
				Type:       models.EntityDateRange,
				Value:      formatRange(t, t),
				Start:      start,
				End:        end,
				Confidence: ConfidenceCanonical,
				Origin:     models.OriginUtterance,
			},
			length: end - start,
		})
	}
	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	year := func(i int) (int, bool) {
		if i < len(words) {
			if y, err := strconv.Atoi(words[i]); err == nil && y >= 1900 && y <= 2100 {
				return y, true
			}
		}
		return now.Year(), false
	}

	for i, w := range words {
		if m := dmyPattern.FindStringSubmatch(w); m != nil {
			if t, ok := validDate(atoi(m[3]), atoi(m[2]), atoi(m[1]), now.Location()); ok {
				add(t, i, i+1)
			}
			continue
		}
		if m := ymdPattern.FindStringSubmatch(w); m != nil {
			if t, ok := validDate(atoi(m[1]), atoi(m[2]), atoi(m[3]), now.Location()); ok {
				add(t, i, i+1)
			}
			continue
		}
		if !dayPattern.MatchString(w) || i+1 >= len(words) {
			continue
		}
		// "15 october [2026]"
		if month, ok := h.lexicon.Month(words[i+1]); ok {
			y, hasYear := year(i + 2)
			end := i + 2
			if hasYear {
				end++
			}
			if t, ok := validDate(y, month, atoi(w), now.Location()); ok {
				add(t, i, end)
			}
		}
	}

	// "october 15 [2026]"
	for i := 0; i+1 < len(words); i++ {
		month, ok := h.lexicon.Month(words[i])
		if !ok || !dayPattern.MatchString(words[i+1]) {
			continue
		}
		if i > 0 && dayPattern.MatchString(words[i-1]) {
			continue
		}
		y, hasYear := year(i + 2)
		end := i + 2
		if hasYear {
			end++
		}
		if t, ok := validDate(y, month, atoi(words[i+1]), now.Location()); ok {
			add(t, i, end)
		}
	}
	return out
}

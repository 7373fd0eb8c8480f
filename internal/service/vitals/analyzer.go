package vitals

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jwalitptl/care-api/internal/model"
)

type timedRecord struct {
	record model.HealthRecord
	at     time.Time
	ok     bool
	seq    int
}

// chronological returns the readings of kind, oldest first. An empty kind
// keeps every reading. Readings with an unparseable timestamp sort before all
// others; equal timestamps keep insertion order, so the later insertion
// counts as more recent.
func chronological(records []model.HealthRecord, kind model.VitalKind) []model.HealthRecord {
	var timed []timedRecord
	for i, r := range records {
		if kind != "" && r.Kind != kind {
			continue
		}
		at, ok := r.RecordedAt()
		timed = append(timed, timedRecord{record: r, at: at, ok: ok, seq: i})
	}

	sort.SliceStable(timed, func(i, j int) bool {
		a, b := timed[i], timed[j]
		if a.ok != b.ok {
			return !a.ok
		}
		if !a.at.Equal(b.at) {
			return a.at.Before(b.at)
		}
		return a.seq < b.seq
	})

	out := make([]model.HealthRecord, len(timed))
	for i, t := range timed {
		out[i] = t.record
	}
	return out
}

// Latest returns the most recent reading of kind, or nil if there is none.
func Latest(records []model.HealthRecord, kind model.VitalKind) *model.HealthRecord {
	sorted := chronological(records, kind)
	if len(sorted) == 0 {
		return nil
	}
	latest := sorted[len(sorted)-1]
	return &latest
}

// Trend compares the leading numbers of the two most recent readings of kind.
func Trend(records []model.HealthRecord, kind model.VitalKind) model.Trend {
	sorted := chronological(records, kind)
	if len(sorted) < 2 {
		return model.TrendStable
	}

	latest, ok := LeadingNumber(sorted[len(sorted)-1].Value)
	if !ok {
		return model.TrendStable
	}
	previous, ok := LeadingNumber(sorted[len(sorted)-2].Value)
	if !ok {
		return model.TrendStable
	}

	switch {
	case latest > previous:
		return model.TrendUp
	case latest < previous:
		return model.TrendDown
	default:
		return model.TrendStable
	}
}

// Recent returns every reading, newest first.
func Recent(records []model.HealthRecord) []model.HealthRecord {
	sorted := chronological(records, "")
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	return sorted
}

// Overview builds one summary per kind, in table order.
func Overview(records []model.HealthRecord) []model.VitalSummary {
	out := make([]model.VitalSummary, 0, len(model.VitalKinds))
	for _, info := range model.VitalKinds {
		out = append(out, model.VitalSummary{
			VitalInfo: info,
			Latest:    Latest(records, info.Kind),
			Trend:     Trend(records, info.Kind),
		})
	}
	return out
}

// LeadingNumber parses the numeric prefix of the first component of a
// composite value: "120/80" is 120, "98.6F" is 98.6.
func LeadingNumber(value string) (float64, bool) {
	head := value
	if i := strings.IndexByte(value, '/'); i > 0 {
		head = value[:i]
	}
	head = strings.TrimSpace(head)

	end := 0
	if end < len(head) && (head[end] == '-' || head[end] == '+') {
		end++
	}
	digits := 0
	for end < len(head) && head[end] >= '0' && head[end] <= '9' {
		end++
		digits++
	}
	if end < len(head) && head[end] == '.' {
		end++
		for end < len(head) && head[end] >= '0' && head[end] <= '9' {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}

	n, err := strconv.ParseFloat(strings.TrimSuffix(head[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

package intent

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/dataset"
)

var forecastWords = []string{"พยากรณ์", "คาดการณ์", "ประมาณการ", "ทำนาย", "predict", "forecast", "คาดว่า", "estimate"}

var (
	barWords  = []string{"แท่ง", "bar", "column"}
	lineWords = []string{"เส้น", "line", "กราฟเส้น"}
)

// Numbers that are counts, not years
var (
	countUnits = []string{"คน", "ราย", "รายการ", "people", "students", "records"}
	limitVerbs = []string{"แค่", "ขอ", "เอา", "แสดง", "โชว์", "show", "top", "just"}
)

var (
	// year-word, first number, then a run of further numbers ("ปี 70 71", "year 2570, 2571")
	yearWordRe   = regexp.MustCompile(`(?:ปี|year)\s*(\d{2,4})((?:\s*(?:,|และ|and|-)?\s*\d{2,4})*)`)
	bareNumberRe = regexp.MustCompile(`\b(\d{2,4})\b`)
	runNumberRe  = regexp.MustCompile(`\d{2,4}`)
)

// IsForecast the utterance asks for a prediction
func IsForecast(utterance string) bool {
	return dataset.ContainsAny(Normalize(utterance), forecastWords...)
}

// ParseForecast extracts forecast slots. ok is false when no forecast word is present.
func (c *Classifier) ParseForecast(utterance string) (*Forecast, bool) {
	q := Normalize(utterance)
	if !dataset.ContainsAny(q, forecastWords...) {
		return nil, false
	}

	narrow := dataset.IsNarrow(q)
	f := &Forecast{
		Chart:    chartKind(q),
		Years:    ExtractYears(q),
		Narrow:   narrow,
		Datasets: c.selectDatasets(q, narrow),
	}
	if len(f.Years) == 0 {
		f.Years = UniqueYears(c.defaultYears)
	}
	return f, true
}

// line is tested after bar, so an utterance naming both gets a line chart
func chartKind(q string) ChartKind {
	kind := ChartLine
	if dataset.ContainsAny(q, barWords...) {
		kind = ChartBar
	}
	if dataset.ContainsAny(q, lineWords...) {
		kind = ChartLine
	}
	return kind
}

// ExtractYears finds target years. Year-word matches win; otherwise freestanding
// numbers in the Buddhist-era range are used. Result is sorted and unique.
func ExtractYears(utterance string) []int {
	q := Normalize(utterance)

	var years []int
	for _, m := range yearWordRe.FindAllStringSubmatchIndex(q, -1) {
		first, _ := strconv.Atoi(q[m[2]:m[3]])
		if first < 100 {
			first += 2500
		}
		years = append(years, first)

		if m[4] < 0 || m[4] == m[5] {
			continue
		}
		base := m[4]
		for _, n := range runNumberRe.FindAllStringIndex(q[m[4]:m[5]], -1) {
			start, end := base+n[0], base+n[1]
			if isCount(q, start, end) {
				continue
			}
			v, _ := strconv.Atoi(q[start:end])
			if y, ok := rangeYear(v); ok {
				years = append(years, y)
			}
		}
	}

	if len(years) == 0 {
		for _, m := range bareNumberRe.FindAllStringSubmatchIndex(q, -1) {
			if isCount(q, m[2], m[3]) {
				continue
			}
			v, _ := strconv.Atoi(q[m[2]:m[3]])
			if y, ok := rangeYear(v); ok {
				years = append(years, y)
			}
		}
	}
	return UniqueYears(years)
}

// rangeYear keeps 2500..2600 as is and maps 60..99 to 2560..2599
func rangeYear(v int) (int, bool) {
	switch {
	case v >= 2500 && v <= 2600:
		return v, true
	case v >= 60 && v <= 99:
		return v + 2500, true
	default:
		return 0, false
	}
}

// isCount the number at q[start:end] is followed by a count unit or preceded by a limit verb
func isCount(q string, start, end int) bool {
	after := strings.TrimLeft(q[end:], " \t")
	for _, u := range countUnits {
		if strings.HasPrefix(after, u) {
			return true
		}
	}
	before := strings.TrimRight(q[:start], " \t")
	for _, v := range limitVerbs {
		if strings.HasSuffix(before, v) {
			return true
		}
	}
	return false
}

// UniqueYears sorted ascending without repeats
func UniqueYears(years []int) []int {
	if len(years) == 0 {
		return nil
	}
	out := append([]int(nil), years...)
	sort.Ints(out)
	uniq := out[:1]
	for _, y := range out[1:] {
		if y != uniq[len(uniq)-1] {
			uniq = append(uniq, y)
		}
	}
	return uniq
}

func (c *Classifier) selectDatasets(q string, narrow bool) []string {
	keys := c.registry.Match(q, narrow)

	if len(keys) == 0 && narrow {
		switch {
		case dataset.ContainsAny(q, dataset.BudgetWords...) || dataset.ContainsAny(q, "รายรับ", "รายจ่าย"):
			if dataset.ContainsAny(q, "รายจ่าย", "expense") {
				keys = c.known(dataset.KeyScienceExpense)
			} else {
				keys = c.known(dataset.KeyScienceRevenue)
			}
		case dataset.ContainsAny(q, "นิสิต", "นักศึกษา", "student"):
			keys = c.known(dataset.KeyScienceStudents)
		}
	}

	if len(keys) == 0 {
		switch {
		case dataset.ContainsAny(q, dataset.BudgetWords...):
			keys = c.known(dataset.KeyUniversityBudget)
		case dataset.ContainsAny(q, dataset.RevenueWords...):
			keys = c.known(dataset.KeyUniversityRevenue)
		case dataset.ContainsAny(q, "รายจ่าย", "expense"):
			keys = c.known(dataset.KeyUniversityExpense)
		case dataset.ContainsAny(q, "นิสิต", "นักศึกษา", "student"):
			keys = c.known(dataset.KeyUniversityStudents)
		}
	}

	return dedupComposite(keys)
}

// known returns key when the registry has it
func (c *Classifier) known(key string) []string {
	if _, ok := c.registry.Lookup(key); ok {
		return []string{key}
	}
	return nil
}

// dedupComposite drops the composite budget key when its revenue twin is selected
func dedupComposite(keys []string) []string {
	hasRevenue := false
	for _, k := range keys {
		if k == dataset.KeyUniversityRevenue {
			hasRevenue = true
		}
	}
	if !hasRevenue {
		return keys
	}
	out := keys[:0:0]
	for _, k := range keys {
		if k != dataset.KeyUniversityBudget {
			out = append(out, k)
		}
	}
	return out
}

package dataset

import (
	"sort"
	"strings"
)

// Dataset keys, in registry order. Dedup and fallback rules depend on this order.
const (
	KeyUniversityRevenue  = "university-budget-revenue"
	KeyUniversityExpense  = "university-budget-expense"
	KeyUniversityBudget   = "university-budget"
	KeyScienceRevenue     = "science-budget-revenue"
	KeyScienceExpense     = "science-budget-expense"
	KeyUniversityStudents = "university-students"
	KeyScienceStudents    = "science-students"
)

const (
	UnitMillionBaht = "ล้านบาท"
	UnitPeople      = "คน"

	ScopeUniversity = "มหาวิทยาลัย"
	ScopeScience    = "คณะวิทยาศาสตร์"
)

// Scope vocabularies
var (
	NarrowScopeWords = []string{"คณะวิทยาศาสตร์", "วิทยาศาสตร์", "science", "คณะวิทย์"}
	BroadScopeWords  = []string{"มหาวิทยาลัย", "มจ", "mju", "ทั้งหมด"}
)

// Keyword groups shared by the classifier fallbacks
var (
	BudgetWords  = []string{"งบประมาณ", "budget", "งบ"}
	RevenueWords = []string{"รายรับ", "revenue"}
	ExpenseWords = []string{"รายจ่าย", "expense", "ค่าใช้จ่าย"}
	StudentWords = []string{"นิสิต", "นักศึกษา", "student", "จำนวนนิสิต"}
)

// Point one (year, value) observation
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Accessor returns the recorded points of a dataset
type Accessor func() []Point

// Descriptor registry entry. Never mutated after registration.
type Descriptor struct {
	Key           string   `json:"key"`
	Label         string   `json:"label"`
	Unit          string   `json:"unit"`
	Scope         string   `json:"scope"`
	Color         string   `json:"color"`
	Keywords      []string `json:"-"`
	ScopeKeywords []string `json:"-"`
	Data          Accessor `json:"-"`
}

// Points returns the accessor's points sorted by year, one value per year.
// The first value seen for a year wins.
func (d *Descriptor) Points() []Point {
	if d.Data == nil {
		return nil
	}
	raw := d.Data()
	pts := make([]Point, len(raw))
	copy(pts, raw)
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Year < pts[j].Year })

	out := pts[:0]
	for i, p := range pts {
		if i > 0 && p.Year == out[len(out)-1].Year {
			continue
		}
		out = append(out, p)
	}
	return out
}

// MatchesKeyword any keyword trigger is a substring of q
func (d *Descriptor) MatchesKeyword(q string) bool {
	return ContainsAny(q, d.Keywords...)
}

// InScope the descriptor's scope triggers belong to the requested vocabulary
func (d *Descriptor) InScope(narrow bool) bool {
	vocab := BroadScopeWords
	if narrow {
		vocab = NarrowScopeWords
	}
	for _, k := range d.ScopeKeywords {
		for _, v := range vocab {
			if k == v {
				return true
			}
		}
	}
	return false
}

// Registry ordered catalog of datasets
type Registry struct {
	order []*Descriptor
	byKey map[string]*Descriptor
}

// NewRegistry keeps the descriptors in the given order. A repeated key replaces the earlier entry in place.
func NewRegistry(ds ...*Descriptor) *Registry {
	r := &Registry{byKey: make(map[string]*Descriptor, len(ds))}
	for _, d := range ds {
		if _, ok := r.byKey[d.Key]; ok {
			for i, e := range r.order {
				if e.Key == d.Key {
					r.order[i] = d
				}
			}
		} else {
			r.order = append(r.order, d)
		}
		r.byKey[d.Key] = d
	}
	return r
}

// Lookup by key
func (r *Registry) Lookup(key string) (*Descriptor, bool) {
	d, ok := r.byKey[key]
	return d, ok
}

// All descriptors in registry order
func (r *Registry) All() []*Descriptor {
	out := make([]*Descriptor, len(r.order))
	copy(out, r.order)
	return out
}

// Keys in registry order
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.order))
	for i, d := range r.order {
		keys[i] = d.Key
	}
	return keys
}

// Match returns, in registry order, the keys whose keyword triggers occur in the
// lowercased utterance and whose scope agrees with narrow.
func (r *Registry) Match(utterance string, narrow bool) []string {
	q := strings.ToLower(utterance)
	var keys []string
	for _, d := range r.order {
		if d.MatchesKeyword(q) && d.InScope(narrow) {
			keys = append(keys, d.Key)
		}
	}
	return keys
}

// IsNarrow reports whether the utterance names the faculty scope
func IsNarrow(utterance string) bool {
	return ContainsAny(strings.ToLower(utterance), NarrowScopeWords...)
}

// ContainsAny substring test over a keyword list
func ContainsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// NewDefaultRegistry builds the seven dashboard datasets over t
func NewDefaultRegistry(t *Tables) *Registry {
	revenue := func(rows []BudgetYear) Accessor {
		return func() []Point {
			var pts []Point
			for _, r := range ActualBudget(rows) {
				pts = append(pts, Point{Year: r.Year, Value: r.Revenue})
			}
			return pts
		}
	}
	expense := func(rows []BudgetYear) Accessor {
		return func() []Point {
			var pts []Point
			for _, r := range ActualBudget(rows) {
				pts = append(pts, Point{Year: r.Year, Value: r.Expense})
			}
			return pts
		}
	}
	enrollment := func(rows []EnrollmentYear) Accessor {
		return func() []Point {
			var pts []Point
			for _, r := range rows {
				if !r.Forecast {
					pts = append(pts, Point{Year: r.Year, Value: float64(r.Total)})
				}
			}
			return pts
		}
	}

	return NewRegistry(
		&Descriptor{
			Key: KeyUniversityRevenue, Label: "รายรับมหาวิทยาลัย", Unit: UnitMillionBaht, Scope: ScopeUniversity,
			Color: "#00a651", Keywords: RevenueWords, ScopeKeywords: BroadScopeWords,
			Data: revenue(t.UniversityBudget),
		},
		&Descriptor{
			Key: KeyUniversityExpense, Label: "รายจ่ายมหาวิทยาลัย", Unit: UnitMillionBaht, Scope: ScopeUniversity,
			Color: "#E91E63", Keywords: ExpenseWords, ScopeKeywords: BroadScopeWords,
			Data: expense(t.UniversityBudget),
		},
		&Descriptor{
			Key: KeyUniversityBudget, Label: "งบประมาณมหาวิทยาลัย (รายรับ)", Unit: UnitMillionBaht, Scope: ScopeUniversity,
			Color: "#00a651", Keywords: BudgetWords, ScopeKeywords: BroadScopeWords,
			Data: revenue(t.UniversityBudget),
		},
		&Descriptor{
			Key: KeyScienceRevenue, Label: "รายรับคณะวิทยาศาสตร์", Unit: UnitMillionBaht, Scope: ScopeScience,
			Color: "#006838", Keywords: append(append([]string{}, RevenueWords...), BudgetWords...), ScopeKeywords: NarrowScopeWords,
			Data: revenue(t.ScienceBudget),
		},
		&Descriptor{
			Key: KeyScienceExpense, Label: "รายจ่ายคณะวิทยาศาสตร์", Unit: UnitMillionBaht, Scope: ScopeScience,
			Color: "#A23B72", Keywords: ExpenseWords, ScopeKeywords: NarrowScopeWords,
			Data: expense(t.ScienceBudget),
		},
		&Descriptor{
			Key: KeyUniversityStudents, Label: "จำนวนนิสิตมหาวิทยาลัย", Unit: UnitPeople, Scope: ScopeUniversity,
			Color: "#7B68EE", Keywords: StudentWords, ScopeKeywords: BroadScopeWords,
			Data: enrollment(t.StudentTrend),
		},
		&Descriptor{
			Key: KeyScienceStudents, Label: "จำนวนนิสิตคณะวิทยาศาสตร์", Unit: UnitPeople, Scope: ScopeScience,
			Color: "#006838", Keywords: StudentWords, ScopeKeywords: NarrowScopeWords,
			Data: enrollment(t.ScienceEnrollment),
		},
	)
}

package dataset

import "math"

// BudgetYear one fiscal year of a budget table, in million baht
type BudgetYear struct {
	Year     int     `json:"year"`
	Revenue  float64 `json:"revenue"`
	Expense  float64 `json:"expense"`
	Forecast bool    `json:"forecast,omitempty"`
}

// Surplus revenue minus expense, rounded to one decimal
func (b BudgetYear) Surplus() float64 {
	return math.Round((b.Revenue-b.Expense)*10) / 10
}

// SpendRatio expense as a percentage of revenue
func (b BudgetYear) SpendRatio() float64 {
	if b.Revenue == 0 {
		return 0
	}
	return b.Expense / b.Revenue * 100
}

// EnrollmentYear head count for one academic year
type EnrollmentYear struct {
	Year     int  `json:"year"`
	Total    int  `json:"total"`
	Forecast bool `json:"forecast,omitempty"`
}

// LevelCount head count for one degree level
type LevelCount struct {
	Icon  string `json:"icon"`
	Level string `json:"level"`
	Count int    `json:"count"`
}

// FacultyCount head count for one faculty
type FacultyCount struct {
	Name     string `json:"name"`
	Bachelor int    `json:"bachelor"`
	Master   int    `json:"master"`
	Doctoral int    `json:"doctoral"`
}

// Total all levels
func (f FacultyCount) Total() int {
	return f.Bachelor + f.Master + f.Doctoral
}

// Personnel faculty staff summary
type Personnel struct {
	Total     int `json:"total"`
	Male      int `json:"male"`
	Female    int `json:"female"`
	Doctorate int `json:"doctorate"`
}

// Tables is the static reference data every dataset accessor and topic reply reads from.
// Rows are stored in year order.
type Tables struct {
	UniversityBudget  []BudgetYear     `json:"university_budget"`
	ScienceBudget     []BudgetYear     `json:"science_budget"`
	StudentTrend      []EnrollmentYear `json:"student_trend"`
	ScienceEnrollment []EnrollmentYear `json:"science_enrollment"`
	StudentLevels     []LevelCount     `json:"student_levels"`
	ScienceLevels     []LevelCount     `json:"science_levels"`
	Faculties         []FacultyCount   `json:"faculties"`
	SciencePersonnel  Personnel        `json:"science_personnel"`
}

// DefaultTables illustrative figures for the dashboard
func DefaultTables() *Tables {
	return &Tables{
		UniversityBudget: []BudgetYear{
			{Year: 2563, Revenue: 2850.5, Expense: 2710.3},
			{Year: 2564, Revenue: 2910.2, Expense: 2795.6},
			{Year: 2565, Revenue: 3025.8, Expense: 2880.1},
			{Year: 2566, Revenue: 3120.4, Expense: 2990.7},
			{Year: 2567, Revenue: 3198.6, Expense: 3060.2},
			{Year: 2568, Revenue: 3305.1, Expense: 3152.9},
			{Year: 2569, Revenue: 3398.4, Expense: 3241.7, Forecast: true},
		},
		ScienceBudget: []BudgetYear{
			{Year: 2563, Revenue: 12.1, Expense: 11.4},
			{Year: 2564, Revenue: 12.6, Expense: 11.9},
			{Year: 2565, Revenue: 13.2, Expense: 12.5},
			{Year: 2566, Revenue: 13.8, Expense: 13.0},
			{Year: 2567, Revenue: 14.1, Expense: 13.4},
			{Year: 2568, Revenue: 14.5, Expense: 13.9},
			{Year: 2569, Revenue: 15.0, Expense: 14.4, Forecast: true},
		},
		StudentTrend: []EnrollmentYear{
			{Year: 2563, Total: 18650},
			{Year: 2564, Total: 18920},
			{Year: 2565, Total: 19105},
			{Year: 2566, Total: 19380},
			{Year: 2567, Total: 19560},
			{Year: 2568, Total: 19821},
			{Year: 2569, Total: 20050, Forecast: true},
		},
		ScienceEnrollment: []EnrollmentYear{
			{Year: 2565, Total: 371},
			{Year: 2566, Total: 389},
			{Year: 2567, Total: 402},
			{Year: 2568, Total: 429},
		},
		StudentLevels: []LevelCount{
			{Icon: "🎓", Level: "ปริญญาตรี", Count: 18105},
			{Icon: "📘", Level: "ปริญญาโท", Count: 1312},
			{Icon: "📕", Level: "ปริญญาเอก", Count: 404},
		},
		ScienceLevels: []LevelCount{
			{Icon: "🎓", Level: "ปริญญาตรี", Count: 1452},
			{Icon: "📘", Level: "ปริญญาโท", Count: 112},
			{Icon: "📕", Level: "ปริญญาเอก", Count: 27},
		},
		Faculties: []FacultyCount{
			{Name: "คณะผลิตกรรมการเกษตร", Bachelor: 2870, Master: 196, Doctoral: 54},
			{Name: "คณะบริหารธุรกิจ", Bachelor: 2745, Master: 131, Doctoral: 14},
			{Name: "คณะวิศวกรรมและอุตสาหกรรมเกษตร", Bachelor: 1968, Master: 102, Doctoral: 35},
			{Name: "คณะวิทยาศาสตร์", Bachelor: 1452, Master: 112, Doctoral: 27},
			{Name: "คณะเศรษฐศาสตร์", Bachelor: 1330, Master: 58, Doctoral: 14},
			{Name: "คณะศิลปศาสตร์", Bachelor: 1105, Master: 41, Doctoral: 0},
		},
		SciencePersonnel: Personnel{Total: 113, Male: 51, Female: 62, Doctorate: 68},
	}
}

// ActualBudget recorded rows of a budget table
func ActualBudget(rows []BudgetYear) []BudgetYear {
	out := make([]BudgetYear, 0, len(rows))
	for _, r := range rows {
		if !r.Forecast {
			out = append(out, r)
		}
	}
	return out
}

// FindBudgetYear looks up a row, forecast rows included
func FindBudgetYear(rows []BudgetYear, year int) (BudgetYear, bool) {
	for _, r := range rows {
		if r.Year == year {
			return r, true
		}
	}
	return BudgetYear{}, false
}

// StudentTotal sum of all degree levels
func StudentTotal(levels []LevelCount) int {
	total := 0
	for _, l := range levels {
		total += l.Count
	}
	return total
}

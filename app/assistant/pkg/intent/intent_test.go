package intent

import (
	"reflect"
	"testing"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/dataset"
)

func newClassifier() *Classifier {
	return New(dataset.NewDefaultRegistry(dataset.DefaultTables()), []int{2570, 2571})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ปี ๗๐", "ปี 70"},
		{"ＦＯＲＥＣＡＳＴ ２５７０", "forecast 2570"},
		{"  Hello ", "hello"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassify_ScienceBudgetScenario(t *testing.T) {
	res := newClassifier().Classify("พยากรณ์งบประมาณคณะวิทยาศาสตร์ ปี 70 71 แบบกราฟ")
	if res.Kind != KindForecast {
		t.Fatalf("Kind = %v, want forecast", res.Kind)
	}
	want := &Forecast{
		Years:    []int{2570, 2571},
		Chart:    ChartLine,
		Datasets: []string{dataset.KeyScienceRevenue},
		Narrow:   true,
	}
	if !reflect.DeepEqual(res.Forecast, want) {
		t.Errorf("Forecast = %+v, want %+v", res.Forecast, want)
	}
}

func TestClassify_ForecastBeatsStudentSearch(t *testing.T) {
	res := newClassifier().Classify("คาดการณ์จำนวนนักศึกษาสาขาคอม ปี 2570")
	if res.Kind != KindForecast {
		t.Fatalf("Kind = %v, want forecast", res.Kind)
	}
	if !reflect.DeepEqual(res.Forecast.Datasets, []string{dataset.KeyUniversityStudents}) {
		t.Errorf("Datasets = %v", res.Forecast.Datasets)
	}
}

func TestClassify_None(t *testing.T) {
	c := newClassifier()
	for _, q := range []string{"สวัสดีครับ", "hello", "นักศึกษา", "ค่าเทอมเท่าไหร่"} {
		if res := c.Classify(q); res.Kind != KindNone {
			t.Errorf("Classify(%q) = %v, want none", q, res.Kind)
		}
	}
}

func TestChartKind(t *testing.T) {
	tests := []struct {
		q    string
		want ChartKind
	}{
		{"พยากรณ์รายรับ", ChartLine},
		{"พยากรณ์รายรับ กราฟแท่ง", ChartBar},
		{"forecast revenue bar", ChartBar},
		{"forecast revenue bar or line", ChartLine},
	}
	c := newClassifier()
	for _, tt := range tests {
		f, ok := c.ParseForecast(tt.q)
		if !ok {
			t.Fatalf("ParseForecast(%q) not ok", tt.q)
		}
		if f.Chart != tt.want {
			t.Errorf("ParseForecast(%q).Chart = %v, want %v", tt.q, f.Chart, tt.want)
		}
	}
}

func TestExtractYears(t *testing.T) {
	tests := []struct {
		name string
		q    string
		want []int
	}{
		{"short year word", "ปี 70", []int{2570}},
		{"full year word", "ปี 2569", []int{2569}},
		{"run after year word", "ปี 71 70", []int{2570, 2571}},
		{"english run", "forecast year 2570, 2571 and 2572", []int{2570, 2571, 2572}},
		{"bare full year", "พยากรณ์ 2569", []int{2569}},
		{"bare short years", "พยากรณ์ 70 71", []int{2570, 2571}},
		{"bare out of range", "พยากรณ์ 150 2601", nil},
		{"bare 99 beside year word", "พยากรณ์ ปี 70 ขอ 99", []int{2570}},
		{"count is not a year", "พยากรณ์ 80 คน", nil},
		{"limit verb is not a year", "พยากรณ์ แสดง 75", nil},
		{"count inside run", "พยากรณ์ ปี 2570 99 คน", []int{2570}},
		{"dedup", "ปี 70 ปี 2570", []int{2570}},
		{"thai digits", "ปี ๗๑", []int{2571}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractYears(tt.q); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractYears(%q) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestParseForecast_DefaultYears(t *testing.T) {
	f, ok := newClassifier().ParseForecast("พยากรณ์รายจ่ายมหาวิทยาลัย")
	if !ok {
		t.Fatal("not a forecast")
	}
	if !reflect.DeepEqual(f.Years, []int{2570, 2571}) {
		t.Errorf("Years = %v", f.Years)
	}
	if !reflect.DeepEqual(f.Datasets, []string{dataset.KeyUniversityExpense}) {
		t.Errorf("Datasets = %v", f.Datasets)
	}
}

func TestParseForecast_Datasets(t *testing.T) {
	tests := []struct {
		name string
		q    string
		want []string
	}{
		{"composite dropped", "พยากรณ์งบประมาณ รายรับ", []string{dataset.KeyUniversityRevenue}},
		{"composite alone", "พยากรณ์งบประมาณ", []string{dataset.KeyUniversityBudget}},
		{"science expense", "พยากรณ์รายจ่ายคณะวิทย์", []string{dataset.KeyScienceExpense}},
		{"science students", "พยากรณ์นิสิตคณะวิทยาศาสตร์", []string{dataset.KeyScienceStudents}},
		{"revenue and expense", "forecast revenue and expense", []string{dataset.KeyUniversityRevenue, dataset.KeyUniversityExpense}},
		{"nothing known", "พยากรณ์อากาศ", nil},
	}
	c := newClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := c.ParseForecast(tt.q)
			if !ok {
				t.Fatal("not a forecast")
			}
			if !reflect.DeepEqual(f.Datasets, tt.want) {
				t.Errorf("Datasets = %v, want %v", f.Datasets, tt.want)
			}
		})
	}
}

func TestParseForecast_NarrowFallback(t *testing.T) {
	// a registry whose science entries have no keyword triggers forces the fallback chain
	reg := dataset.NewRegistry(
		&dataset.Descriptor{Key: dataset.KeyScienceRevenue, ScopeKeywords: dataset.NarrowScopeWords},
		&dataset.Descriptor{Key: dataset.KeyScienceExpense, ScopeKeywords: dataset.NarrowScopeWords},
		&dataset.Descriptor{Key: dataset.KeyScienceStudents, ScopeKeywords: dataset.NarrowScopeWords},
	)
	c := New(reg, []int{2570})

	tests := []struct {
		q    string
		want []string
	}{
		{"พยากรณ์งบคณะวิทย์", []string{dataset.KeyScienceRevenue}},
		{"พยากรณ์งบ expense science", []string{dataset.KeyScienceExpense}},
		{"พยากรณ์นักศึกษา science", []string{dataset.KeyScienceStudents}},
	}
	for _, tt := range tests {
		f, _ := c.ParseForecast(tt.q)
		if !reflect.DeepEqual(f.Datasets, tt.want) {
			t.Errorf("ParseForecast(%q).Datasets = %v, want %v", tt.q, f.Datasets, tt.want)
		}
	}
}

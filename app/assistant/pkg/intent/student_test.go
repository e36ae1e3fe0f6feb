package intent

import (
	"testing"
)

func TestIsStudentQuery(t *testing.T) {
	tests := []struct {
		q    string
		want bool
	}{
		{"นักศึกษาสาขาคอม 5 คน", true},
		{"รายชื่อรหัส 63", true},
		{"นักศึกษารอพินิจ", true},
		{"นักศึกษา", false},
		{"student life is fun", false},
		{"list honors students", true},
		{"สวัสดี", false},
	}
	for _, tt := range tests {
		if got := IsStudentQuery(tt.q); got != tt.want {
			t.Errorf("IsStudentQuery(%q) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestParseStudentSearch(t *testing.T) {
	tests := []struct {
		name string
		q    string
		want StudentSearch
	}{
		{
			name: "major with limit",
			q:    "นักศึกษาสาขาคอม 5 คน",
			want: StudentSearch{Limit: 5, Predicate: Predicate{Kind: PredicateMajor, Text: "วิทยาการคอมพิวเตอร์"}},
		},
		{
			name: "id beats major",
			q:    "นักศึกษารหัส 63 สาขาคอม",
			want: StudentSearch{Predicate: Predicate{Kind: PredicateIDPrefix, Text: "63"}},
		},
		{
			name: "bare id prefix",
			q:    "รายชื่อ 6301",
			want: StudentSearch{Predicate: Predicate{Kind: PredicateIDPrefix, Text: "6301"}},
		},
		{
			name: "name term",
			q:    "ค้นหานักศึกษาชื่อ สมชาย",
			want: StudentSearch{Predicate: Predicate{Kind: PredicateName, Text: "สมชาย"}},
		},
		{
			name: "name after verb",
			q:    "หานักศึกษา ชื่อ \"วิภา\"",
			want: StudentSearch{Predicate: Predicate{Kind: PredicateName, Text: "วิภา"}},
		},
		{
			name: "english it is a whole word",
			q:    "list IT students",
			want: StudentSearch{Predicate: Predicate{Kind: PredicateMajor, Text: "เทคโนโลยีสารสนเทศ"}},
		},
		{
			name: "year of study",
			q:    "นิสิตชั้นปี 2 มีใครบ้าง",
			want: StudentSearch{Predicate: Predicate{Kind: PredicateYear, Year: 2}},
		},
		{
			name: "at risk",
			q:    "นักศึกษารอพินิจ แค่ 3",
			want: StudentSearch{Limit: 3, Predicate: Predicate{Kind: PredicateAtRisk}},
		},
		{
			name: "honors with count",
			q:    "honors students, 3 คน",
			want: StudentSearch{Limit: 3, Predicate: Predicate{Kind: PredicateHonors}},
		},
		{
			name: "count is not an id prefix",
			q:    "นักศึกษาเกรดสูง 60 คน",
			want: StudentSearch{Limit: 60, Predicate: Predicate{Kind: PredicateHonors}},
		},
		{
			name: "limit verb number is not an id prefix",
			q:    "นักศึกษารอพินิจ แสดง 65",
			want: StudentSearch{Limit: 65, Predicate: Predicate{Kind: PredicateAtRisk}},
		},
		{
			name: "id prefix after a count",
			q:    "รายชื่อ 3 คน 6301",
			want: StudentSearch{Limit: 3, Predicate: Predicate{Kind: PredicateIDPrefix, Text: "6301"}},
		},
		{
			name: "thai digits",
			q:    "นักศึกษาเกียรตินิยม ๒ คน",
			want: StudentSearch{Limit: 2, Predicate: Predicate{Kind: PredicateHonors}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseStudentSearch(tt.q)
			if !ok {
				t.Fatalf("ParseStudentSearch(%q) not ok", tt.q)
			}
			if *got != tt.want {
				t.Errorf("ParseStudentSearch(%q) = %+v, want %+v", tt.q, *got, tt.want)
			}
		})
	}
}

func TestParseStudentSearch_NoPredicate(t *testing.T) {
	for _, q := range []string{
		"จำนวนนิสิต 2568",
		"นักศึกษามหาวิทยาลัยมีกี่คน",
	} {
		if s, ok := ParseStudentSearch(q); ok {
			t.Errorf("ParseStudentSearch(%q) = %+v, want no match", q, s)
		}
	}
}

func TestExtractLimit(t *testing.T) {
	tests := []struct {
		q    string
		want int
	}{
		{"5 คน", 5},
		{"ขอ 10", 10},
		{"show 4 honors", 4},
		{"top 3", 3},
		{"รายชื่อทั้งหมด", 0},
	}
	for _, tt := range tests {
		if got := ExtractLimit(tt.q); got != tt.want {
			t.Errorf("ExtractLimit(%q) = %d, want %d", tt.q, got, tt.want)
		}
	}
}

func TestPredicateRules_Order(t *testing.T) {
	want := []string{"id_prefix", "name", "major", "year", "gpa"}
	if len(PredicateRules) != len(want) {
		t.Fatalf("len(PredicateRules) = %d", len(PredicateRules))
	}
	for i, r := range PredicateRules {
		if r.Name != want[i] {
			t.Errorf("PredicateRules[%d] = %s, want %s", i, r.Name, want[i])
		}
	}

	c := newClassifier()
	rules := c.Rules()
	if rules[0].Name != "forecast" || rules[1].Name != "student_search" {
		t.Errorf("classifier rules = %s, %s", rules[0].Name, rules[1].Name)
	}
}

func TestClassify_StudentSearch(t *testing.T) {
	res := newClassifier().Classify("นักศึกษาสาขาคอม 5 คน")
	if res.Kind != KindStudentSearch {
		t.Fatalf("Kind = %v, want student_search", res.Kind)
	}
	if res.Search.Limit != 5 || res.Search.Predicate.Kind != PredicateMajor {
		t.Errorf("Search = %+v", res.Search)
	}
}

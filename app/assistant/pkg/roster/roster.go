package roster

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// AtRiskGPA below this a student is on probation
const AtRiskGPA = 2.0

// HonorsGPA at or above this a student is on the honors list
const HonorsGPA = 3.5

const (
	StatusAtRisk = "รอพินิจ"
	StatusNormal = "ปกติ"
)

// Majors in generator order
var Majors = []string{
	"วิทยาการคอมพิวเตอร์",
	"เทคโนโลยีสารสนเทศ",
	"คณิตศาสตร์",
	"เคมี",
	"ฟิสิกส์",
	"ชีววิทยา",
	"วิทยาการข้อมูล",
	"สถิติ",
}

var firstNames = []string{
	"สมชาย", "สมหญิง", "กิตติ", "ปิยะ", "วรัญญา", "จิรา", "ณัฐ", "พิมพ์", "อรุณ", "ธนา",
	"สุภา", "ชัยวัฒน์", "นภา", "วิภา", "เอก", "ภูมิ", "แก้ว", "ดวง", "พลอย", "มาลี",
}

var lastNames = []string{
	"ใจดี", "สุขสันต์", "รัตนา", "ศรีสุข", "วงศ์ดี", "จันทร์เพ็ญ", "แสงทอง", "มาลัย",
	"พงษ์ดี", "บุญมา", "ทองดี", "สมบูรณ์", "เจริญ", "รุ่งเรือง", "สว่าง",
}

// Student one roster record
type Student struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Major string  `json:"major"`
	Year  int     `json:"year"`
	GPA   float64 `json:"gpa"`
}

// Status derived from GPA
func (s Student) Status() string {
	if s.GPA < AtRiskGPA {
		return StatusAtRisk
	}
	return StatusNormal
}

// Roster read-only student list
type Roster struct {
	students []Student
}

// New wraps a fixed record list, e.g. a test fixture
func New(students []Student) *Roster {
	cp := make([]Student, len(students))
	copy(cp, students)
	return &Roster{students: cp}
}

// lcg Park-Miller minimal standard generator
type lcg struct {
	s int64
}

func (g *lcg) next() float64 {
	g.s = g.s * 16807 % 2147483647
	return float64(g.s-1) / 2147483646
}

// Generate builds size records from seed. The draw order per record is
// year, major, gpa, first name, last name.
func Generate(seed int64, size int) *Roster {
	g := &lcg{s: seed}
	students := make([]Student, 0, size)
	for i := 0; i < size; i++ {
		year := 1 + int(math.Floor(g.next()*4))
		major := Majors[int(math.Floor(g.next()*float64(len(Majors))))]
		gpa := math.Round((1.5+g.next()*2.5)*100) / 100
		fn := firstNames[int(math.Floor(g.next()*float64(len(firstNames))))]
		ln := lastNames[int(math.Floor(g.next()*float64(len(lastNames))))]

		students = append(students, Student{
			ID:    fmt.Sprintf("6%d01%04d", 6-year, i),
			Name:  fn + " " + ln,
			Major: major,
			Year:  year,
			GPA:   gpa,
		})
	}
	return &Roster{students: students}
}

// All records in roster order
func (r *Roster) All() []Student {
	out := make([]Student, len(r.students))
	copy(out, r.students)
	return out
}

// Len roster size
func (r *Roster) Len() int {
	return len(r.students)
}

// Filter records matching keep, in roster order
func (r *Roster) Filter(keep func(Student) bool) []Student {
	var out []Student
	for _, s := range r.students {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// ByIDPrefix records whose id starts with prefix
func (r *Roster) ByIDPrefix(prefix string) []Student {
	return r.Filter(func(s Student) bool { return strings.HasPrefix(s.ID, prefix) })
}

// ByName records whose name contains term
func (r *Roster) ByName(term string) []Student {
	return r.Filter(func(s Student) bool { return strings.Contains(s.Name, term) })
}

// ByMajor records in the given major
func (r *Roster) ByMajor(major string) []Student {
	return r.Filter(func(s Student) bool { return s.Major == major })
}

// ByYear records in the given year of study
func (r *Roster) ByYear(year int) []Student {
	return r.Filter(func(s Student) bool { return s.Year == year })
}

// AtRisk records below the probation threshold
func (r *Roster) AtRisk() []Student {
	return r.Filter(func(s Student) bool { return s.GPA < AtRiskGPA })
}

// Honors records at or above the honors threshold, highest GPA first
func (r *Roster) Honors() []Student {
	out := r.Filter(func(s Student) bool { return s.GPA >= HonorsGPA })
	sort.SliceStable(out, func(i, j int) bool { return out[i].GPA > out[j].GPA })
	return out
}

// Summary aggregate GPA figures
type Summary struct {
	Count      int            `json:"count"`
	AverageGPA float64        `json:"average_gpa"`
	AtLeast3   int            `json:"at_least_3"`
	AtRisk     int            `json:"at_risk"`
	ByMajor    map[string]int `json:"by_major"`
}

// Summarize computes GPA statistics over the whole roster
func (r *Roster) Summarize() Summary {
	sum := Summary{Count: len(r.students), ByMajor: make(map[string]int)}
	var total float64
	for _, s := range r.students {
		total += s.GPA
		if s.GPA >= 3.0 {
			sum.AtLeast3++
		}
		if s.GPA < AtRiskGPA {
			sum.AtRisk++
		}
		sum.ByMajor[s.Major]++
	}
	if sum.Count > 0 {
		sum.AverageGPA = total / float64(sum.Count)
	}
	return sum
}

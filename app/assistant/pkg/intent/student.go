package intent

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/dataset"
)

var studentWords = []string{
	"รหัส", "รายชื่อ", "หานักศึกษา", "ค้นหานักศึกษา", "นักศึกษา", "นิสิต", "สาขา", "ชั้นปี",
	"รอพินิจ", "เกรดต่ำ", "เกรดสูง", "เกียรตินิยม",
	"student", "roster", "major", "at-risk", "honors",
}

// signalWords disambiguate a roster query from a passing mention of students
var signalWords = []string{
	"สาขา", "ชั้นปี", "รอพินิจ", "เกรดต่ำ", "เกรดสูง", "เกียรตินิยม", "รายชื่อ", "ใคร", "คน", "ชื่อ",
	"name", "major", "year", "list", "who", "count", "honors", "at-risk",
}

// rosterContextWords gate the major and year-of-study rules
var rosterContextWords = []string{
	"สาขา", "นักศึกษา", "นิสิต", "คน", "รายชื่อ", "ใคร",
	"major", "student", "list", "who",
}

var (
	atRiskWords = []string{"รอพินิจ", "เกรดต่ำ", "เสี่ยง", "at-risk", "at risk", "probation"}
	honorsWords = []string{"เกรดสูง", "เกียรตินิยม", "gpa สูง", "honors", "honours"}
)

// nameWords introduce a name term; the term is the next whitespace-delimited token
var nameWords = []string{"ชื่อ", "ค้นหา", "หา", "name", "find", "search"}

// A name term containing one of these is a category, not a name
var nameStopWords = []string{
	"นักศึกษา", "นิสิต", "สาขา", "ชั้นปี", "รหัส", "รายชื่อ", "รอพินิจ", "เกรด", "เกียรตินิยม",
	"ทั้งหมด", "ทุกคน", "student", "major", "year", "all",
}

type majorKeyword struct {
	word  string
	whole bool
	major string
}

// majorKeywords tested in order
var majorKeywords = []majorKeyword{
	{word: "คอม", major: "วิทยาการคอมพิวเตอร์"},
	{word: "ไอที", major: "เทคโนโลยีสารสนเทศ"},
	{word: "it", whole: true, major: "เทคโนโลยีสารสนเทศ"},
	{word: "คณิต", major: "คณิตศาสตร์"},
	{word: "เคมี", major: "เคมี"},
	{word: "ฟิสิกส์", major: "ฟิสิกส์"},
	{word: "ชีว", major: "ชีววิทยา"},
	{word: "ข้อมูล", major: "วิทยาการข้อมูล"},
	{word: "data", major: "วิทยาการข้อมูล"},
	{word: "สถิติ", major: "สถิติ"},
	{word: "computer", major: "วิทยาการคอมพิวเตอร์"},
	{word: "math", major: "คณิตศาสตร์"},
	{word: "chem", major: "เคมี"},
	{word: "physics", major: "ฟิสิกส์"},
	{word: "bio", major: "ชีววิทยา"},
	{word: "statistics", major: "สถิติ"},
}

var (
	digitsRe     = regexp.MustCompile(`\d{2,}`)
	limitUnitRe  = regexp.MustCompile(`(\d+)\s*(?:คน|ราย|รายการ|people|students|records)`)
	limitVerbRe  = regexp.MustCompile(`(?:แค่|ขอ|เอา|แสดง|โชว์|show|top|just)\s*(\d+)`)
	idWordRe     = regexp.MustCompile(`(?:รหัส|id)\s*(\d{2,8})`)
	idPrefixRe   = regexp.MustCompile(`\b(6[0-9]\d{0,6})\b`)
	yearOfStudRe = regexp.MustCompile(`(?:ชั้นปี|ปี|year)\s*([1-4])(?:\D|$)`)
	wholeItRe    = regexp.MustCompile(`\bit\b`)
)

// PredicateRule one step of the student predicate order
type PredicateRule struct {
	Name    string
	Extract func(q string) (Predicate, bool)
}

// PredicateRules first match wins
var PredicateRules = []PredicateRule{
	{Name: "id_prefix", Extract: extractIDPrefix},
	{Name: "name", Extract: extractName},
	{Name: "major", Extract: extractMajor},
	{Name: "year", Extract: extractYearOfStudy},
	{Name: "gpa", Extract: extractGPA},
}

// IsStudentQuery needs a student word and a disambiguating signal
func IsStudentQuery(utterance string) bool {
	q := Normalize(utterance)
	if !dataset.ContainsAny(q, studentWords...) {
		return false
	}
	return digitsRe.MatchString(q) || dataset.ContainsAny(q, signalWords...)
}

// ParseStudentSearch extracts the limit and the first matching predicate
func ParseStudentSearch(utterance string) (*StudentSearch, bool) {
	q := Normalize(utterance)
	if !IsStudentQuery(q) {
		return nil, false
	}
	p, ok := ExtractPredicate(q)
	if !ok {
		return nil, false
	}
	return &StudentSearch{Limit: ExtractLimit(q), Predicate: p}, true
}

// ExtractPredicate runs PredicateRules in order
func ExtractPredicate(utterance string) (Predicate, bool) {
	q := Normalize(utterance)
	for _, r := range PredicateRules {
		if p, ok := r.Extract(q); ok {
			return p, true
		}
	}
	return Predicate{}, false
}

// ExtractLimit "<n> คน" first, then "แสดง <n>"; 0 means unlimited
func ExtractLimit(utterance string) int {
	q := Normalize(utterance)
	if m := limitUnitRe.FindStringSubmatch(q); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	if m := limitVerbRe.FindStringSubmatch(q); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	return 0
}

func extractIDPrefix(q string) (Predicate, bool) {
	if m := idWordRe.FindStringSubmatch(q); m != nil {
		return Predicate{Kind: PredicateIDPrefix, Text: m[1]}, true
	}
	// a bare number read as a result count is not an id
	for _, loc := range idPrefixRe.FindAllStringSubmatchIndex(q, -1) {
		if isCount(q, loc[2], loc[3]) {
			continue
		}
		return Predicate{Kind: PredicateIDPrefix, Text: q[loc[2]:loc[3]]}, true
	}
	return Predicate{}, false
}

func extractName(q string) (Predicate, bool) {
	for _, w := range nameWords {
		for from := 0; from < len(q); {
			idx := strings.Index(q[from:], w)
			if idx < 0 {
				break
			}
			at := from + idx
			from = at + len(w)

			// "หา" inside "มหา..." is not a search verb
			if w == "หา" && strings.HasSuffix(q[:at], "ม") {
				continue
			}
			term := nextToken(q[from:])
			if utf8.RuneCountInString(term) < 2 || dataset.ContainsAny(term, nameStopWords...) {
				continue
			}
			return Predicate{Kind: PredicateName, Text: term}, true
		}
	}
	return Predicate{}, false
}

// nextToken first whitespace-delimited token, quotes and trailing punctuation removed
func nextToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimFunc(fields[0], func(r rune) bool {
		return unicode.IsPunct(r) || r == '"' || r == '\'' || r == '“' || r == '”'
	})
}

func extractMajor(q string) (Predicate, bool) {
	if !dataset.ContainsAny(q, rosterContextWords...) {
		return Predicate{}, false
	}
	for _, k := range majorKeywords {
		hit := strings.Contains(q, k.word)
		if k.whole {
			hit = wholeItRe.MatchString(q)
		}
		if hit {
			return Predicate{Kind: PredicateMajor, Text: k.major}, true
		}
	}
	return Predicate{}, false
}

func extractYearOfStudy(q string) (Predicate, bool) {
	if !dataset.ContainsAny(q, rosterContextWords...) {
		return Predicate{}, false
	}
	m := yearOfStudRe.FindStringSubmatch(q)
	if m == nil {
		return Predicate{}, false
	}
	y, _ := strconv.Atoi(m[1])
	return Predicate{Kind: PredicateYear, Year: y}, true
}

func extractGPA(q string) (Predicate, bool) {
	switch {
	case dataset.ContainsAny(q, atRiskWords...):
		return Predicate{Kind: PredicateAtRisk}, true
	case dataset.ContainsAny(q, honorsWords...):
		return Predicate{Kind: PredicateHonors}, true
	}
	return Predicate{}, false
}

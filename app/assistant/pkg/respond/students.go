package respond

import (
	"fmt"
	"strings"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/intent"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/roster"
)

// Select applies the predicate. Honors results come back highest GPA first.
func Select(r *roster.Roster, p intent.Predicate) []roster.Student {
	switch p.Kind {
	case intent.PredicateIDPrefix:
		return r.ByIDPrefix(p.Text)
	case intent.PredicateName:
		return r.ByName(p.Text)
	case intent.PredicateMajor:
		return r.ByMajor(p.Text)
	case intent.PredicateYear:
		return r.ByYear(p.Year)
	case intent.PredicateAtRisk:
		return r.AtRisk()
	case intent.PredicateHonors:
		return r.Honors()
	default:
		return nil
	}
}

// Describe human-readable predicate
func Describe(p intent.Predicate) string {
	switch p.Kind {
	case intent.PredicateIDPrefix:
		return fmt.Sprintf("รหัสขึ้นต้นด้วย \"%s\"", p.Text)
	case intent.PredicateName:
		return fmt.Sprintf("ชื่อ \"%s\"", p.Text)
	case intent.PredicateMajor:
		return "สาขา" + p.Text
	case intent.PredicateYear:
		return fmt.Sprintf("ชั้นปี %d", p.Year)
	case intent.PredicateAtRisk:
		return "สถานะรอพินิจ (GPA < 2.00)"
	case intent.PredicateHonors:
		return "GPA สูง (≥ 3.50)"
	default:
		return ""
	}
}

// GPABand status glyph for a GPA
func GPABand(gpa float64) string {
	switch {
	case gpa >= 3.5:
		return "🟢"
	case gpa >= 2.5:
		return "🟡"
	case gpa >= 2.0:
		return "🟠"
	default:
		return "🔴"
	}
}

// Students lists the records selected by s. The limit applies after the
// predicate and its ordering; the total is counted before the limit.
func Students(r *roster.Roster, s *intent.StudentSearch) Reply {
	desc := Describe(s.Predicate)
	results := Select(r, s.Predicate)
	total := len(results)
	if total == 0 {
		return Reply{Text: fmt.Sprintf("🔍 ไม่พบนักศึกษา%s\n\nลองค้นหาด้วยรหัส สาขา ชั้นปี หรือสถานะอื่นครับ", desc)}
	}

	if s.Limit > 0 && len(results) > s.Limit {
		results = results[:s.Limit]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 **พบนักศึกษา %s** จำนวน %d คน", desc, total)
	if s.Limit > 0 && total > s.Limit {
		fmt.Fprintf(&sb, " (แสดง %d คน)", s.Limit)
	}
	sb.WriteString("\n\n")

	for i, st := range results {
		fmt.Fprintf(&sb, "**%d.** `%s` %s\n", i+1, st.ID, st.Name)
		fmt.Fprintf(&sb, "   📚 %s | ชั้นปี %d | %s GPA %s | %s\n", st.Major, st.Year, GPABand(st.GPA), GPA(st.GPA), st.Status())
	}

	if rest := total - len(results); rest > 0 {
		fmt.Fprintf(&sb, "\n_...และอีก %d คน (พิมพ์ \"ขอทั้งหมด\" เพื่อดูเพิ่ม)_", rest)
	}
	return Reply{Text: strings.TrimRight(sb.String(), "\n")}
}

package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/dataset"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/respond"
)

// NoInfoText what the model must answer for questions outside the dashboard
const NoInfoText = "ไม่ทราบข้อมูลนี้ในปัจจุบัน ผมตอบได้เฉพาะข้อมูลที่มีใน Dashboard มหาวิทยาลัยแม่โจ้เท่านั้นครับ"

const rules = `คุณคือ "MJU AI Assistant" ผู้เชี่ยวชาญด้าน Dashboard ของมหาวิทยาลัยแม่โจ้ (Maejo University - MJU)
คุณมีหน้าที่ตอบคำถามเกี่ยวกับข้อมูลที่มีอยู่ในระบบ Dashboard เท่านั้น

## กฎสำคัญ
1. ตอบเป็นภาษาไทยเสมอ ยกเว้นคำศัพท์เฉพาะ
2. ตอบเฉพาะข้อมูลที่มีอยู่ในระบบ Dashboard ด้านล่างเท่านั้น
3. ถ้าถูกถามเรื่องที่ไม่มีข้อมูลในระบบ ให้ตอบว่า "%s"
4. ใช้ emoji ประกอบเพื่อให้อ่านง่าย ตอบกระชับ ได้ใจความ
5. เมื่อผู้ใช้ขอกราฟ ให้แนบ JSON หนึ่งบล็อกไว้ท้ายข้อความในรูปแบบนี้:
` + "```json_chart" + `
{
  "chartType": "bar",
  "data": {
    "labels": ["ปี 2566", "ปี 2567", "ปี 2568"],
    "datasets": [
      {"label": "รายรับ", "data": [3120.4, 3198.6, 3305.1], "backgroundColor": "#00a651", "borderColor": "#006838"}
    ]
  }
}
` + "```" + `
   chartType รองรับ "bar", "line", "pie", "doughnut", "radar", "polarArea"
   Radar Chart ต้องมีอย่างน้อย 3 แกน และแปลงทุกแกนเป็นสเกล 0-100 ก่อนเสมอ
6. การพยากรณ์: ใช้ข้อมูลจริงในอดีตคำนวณแนวโน้ม (Linear Regression) และแยก dataset ข้อมูลจริงกับพยากรณ์ออกจากกัน
   Label ของปีในอนาคตให้ต่อท้ายด้วย "(พยากรณ์)" เสมอ`

// SystemInstruction serialises every dataset the local pipeline knows into
// the model's instructions.
func SystemInstruction(l *respond.Local) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, rules, NoInfoText)
	sb.WriteString("\n\n## ข้อมูลในระบบ Dashboard\n")

	t := l.Tables()
	section(&sb, "งบประมาณมหาวิทยาลัย (ล้านบาท)", budgetRows(t.UniversityBudget))
	section(&sb, "งบประมาณคณะวิทยาศาสตร์ (ล้านบาท)", budgetRows(t.ScienceBudget))
	section(&sb, "แนวโน้มจำนวนนิสิตมหาวิทยาลัย", enrollmentRows(t.StudentTrend))
	section(&sb, "จำนวนนิสิตคณะวิทยาศาสตร์แยกตามปีที่เข้า", enrollmentRows(t.ScienceEnrollment))
	section(&sb, "นิสิตปัจจุบันแยกตามระดับ", levelRows(t.StudentLevels))
	section(&sb, "นิสิตคณะวิทยาศาสตร์แยกตามระดับ", levelRows(t.ScienceLevels))

	faculties := make([]string, len(t.Faculties))
	for i, f := range t.Faculties {
		faculties[i] = fmt.Sprintf("- %s: ป.ตรี %s / ป.โท %s / ป.เอก %s (รวม %s)",
			f.Name, respond.Int(f.Bachelor), respond.Int(f.Master), respond.Int(f.Doctoral), respond.Int(f.Total()))
	}
	section(&sb, "นิสิตแยกตามคณะ", faculties)

	p := t.SciencePersonnel
	section(&sb, "บุคลากรคณะวิทยาศาสตร์", []string{
		fmt.Sprintf("- รวม %d คน (ชาย %d / หญิง %d) วุฒิปริญญาเอก %d คน", p.Total, p.Male, p.Female, p.Doctorate),
	})

	sum := l.Roster().Summarize()
	majors := make([]string, 0, len(sum.ByMajor))
	for m := range sum.ByMajor {
		majors = append(majors, m)
	}
	sort.Strings(majors)
	rosterLines := []string{
		fmt.Sprintf("- จำนวน %d คน, GPA เฉลี่ย %.2f, GPA ≥ 3.00: %d คน, รอพินิจ (GPA < 2.00): %d คน",
			sum.Count, sum.AverageGPA, sum.AtLeast3, sum.AtRisk),
	}
	for _, m := range majors {
		rosterLines = append(rosterLines, fmt.Sprintf("- %s: %d คน", m, sum.ByMajor[m]))
	}
	section(&sb, "ทะเบียนนักศึกษาคณะวิทยาศาสตร์", rosterLines)

	var datasets []string
	for _, d := range l.Registry().All() {
		datasets = append(datasets, fmt.Sprintf("- %s (%s)", d.Label, d.Unit))
	}
	section(&sb, "ชุดข้อมูลที่พยากรณ์ได้", datasets)

	return strings.TrimRight(sb.String(), "\n")
}

func section(sb *strings.Builder, title string, lines []string) {
	fmt.Fprintf(sb, "\n### %s\n%s\n", title, strings.Join(lines, "\n"))
}

func kind(forecast bool) string {
	if forecast {
		return "พยากรณ์"
	}
	return "ข้อมูลจริง"
}

func budgetRows(rows []dataset.BudgetYear) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = fmt.Sprintf("- ปี %d (%s): รายรับ %s / รายจ่าย %s / คงเหลือ %s",
			r.Year, kind(r.Forecast), respond.Float(r.Revenue), respond.Float(r.Expense), respond.Float(r.Surplus()))
	}
	return out
}

func enrollmentRows(rows []dataset.EnrollmentYear) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = fmt.Sprintf("- ปี %d (%s): %s คน", r.Year, kind(r.Forecast), respond.Int(r.Total))
	}
	return out
}

func levelRows(levels []dataset.LevelCount) []string {
	out := make([]string, 0, len(levels)+1)
	for _, l := range levels {
		out = append(out, fmt.Sprintf("- %s: %s คน", l.Level, respond.Int(l.Count)))
	}
	return append(out, fmt.Sprintf("- รวม: %s คน", respond.Int(dataset.StudentTotal(levels))))
}

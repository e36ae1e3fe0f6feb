package respond

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/dataset"
)

// NoDataText reply when nothing local matches
const NoDataText = "ไม่มีข้อมูลนี้ในระบบ 🙏\n\nลองถามเกี่ยวกับ: นักศึกษา (รหัส/สาขา/ชั้นปี), งบประมาณ, สถิตินิสิต, ค่าเทอม, การเงิน, กิจกรรม, หรือพิมพ์ \"ช่วย\" เพื่อดูสิ่งที่ผมทำได้ครับ"

// Topic one keyword-triggered reply. Match and Reply receive normalized text.
type Topic struct {
	Name  string
	Match func(q string) bool
	Reply func(q string) Reply
}

func words(ws ...string) func(string) bool {
	return func(q string) bool { return dataset.ContainsAny(q, ws...) }
}

func static(text string) func(string) Reply {
	return func(string) Reply { return Reply{Text: text} }
}

var (
	topicYearRe = regexp.MustCompile(`ปี\s*(\d{2,4})`)
	hiRe        = regexp.MustCompile(`\bhi\b`)
)

// Topics in evaluation order
func (l *Local) Topics() []Topic {
	return append([]Topic(nil), l.topics...)
}

func (l *Local) defaultTopics() []Topic {
	return []Topic{
		{Name: "budget", Match: words("งบประมาณ", "budget", "รายรับ", "รายจ่าย", "คงเหลือ"), Reply: l.budgetReply},
		{Name: "student_stats", Match: words("นิสิต", "นักศึกษา", "จำนวน", "student", "สถิติ"), Reply: l.studentStatsReply},
		{Name: "tuition", Match: words("ค่าเทอม", "tuition", "ค่าธรรมเนียม", "ค่าเรียน"), Reply: static(tuitionText)},
		{Name: "financial", Match: words("การเงิน", "จ่ายเงิน", "ทุน", "scholarship", "ค้างชำระ"), Reply: static(financialText)},
		{Name: "activity", Match: words("กิจกรรม", "activity", "ชั่วโมง", "จิตอาสา"), Reply: static(activityText)},
		{Name: "library", Match: words("ห้องสมุด", "library", "หนังสือ", "ยืม"), Reply: static(libraryText)},
		{Name: "gpa", Match: words("เกรด", "gpa", "ผลการเรียน"), Reply: l.gpaReply},
		{Name: "behavior", Match: words("ความประพฤติ", "behavior", "คะแนนความ"), Reply: static(behaviorText)},
		{Name: "university", Match: words("แม่โจ้", "mju", "มหาวิทยาลัย"), Reply: l.universityReply},
		{Name: "graduation", Match: words("จบ", "สำเร็จ", "graduation", "หน่วยกิต"), Reply: static(graduationText)},
		{Name: "dashboard", Match: words("dashboard", "กราฟ", "chart", "หน้า"), Reply: static(dashboardText)},
		{Name: "greeting", Match: func(q string) bool {
			return dataset.ContainsAny(q, "สวัสดี", "hello", "หวัดดี") || hiRe.MatchString(q)
		}, Reply: static(greetingText)},
		{Name: "help", Match: words("ช่วย", "help", "ทำอะไรได้"), Reply: static(helpText)},
	}
}

func (l *Local) budgetReply(q string) Reply {
	rows, scope := l.tables.UniversityBudget, "มหาวิทยาลัยแม่โจ้"
	if dataset.IsNarrow(q) {
		rows, scope = l.tables.ScienceBudget, dataset.ScopeScience
	}
	actual := dataset.ActualBudget(rows)
	if len(actual) == 0 {
		return Reply{Text: NoDataText}
	}

	if m := topicYearRe.FindStringSubmatch(q); m != nil {
		yr, _ := strconv.Atoi(m[1])
		if yr < 100 {
			yr += 2500
		}
		if row, ok := dataset.FindBudgetYear(rows, yr); ok {
			mark := ""
			if row.Forecast {
				mark = " (พยากรณ์)"
			}
			return Reply{Text: fmt.Sprintf("📊 **งบประมาณ%s ปี %d**%s\n\n", scope, row.Year, mark) +
				budgetLines(row)}
		}
	}

	latest := actual[len(actual)-1]
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 **งบประมาณ%s**\n\n", scope)
	fmt.Fprintf(&sb, "📅 ข้อมูลล่าสุด ปี %d:\n", latest.Year)
	sb.WriteString(budgetLines(latest))
	fmt.Fprintf(&sb, "\n\n📋 ข้อมูลย้อนหลัง %d ปี (%d–%d)\n", len(actual), actual[0].Year, latest.Year)
	for i, y := range actual {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "• ปี %d: รับ %s / จ่าย %s / เหลือ %s", y.Year, Float(y.Revenue), Float(y.Expense), Float(y.Surplus()))
	}
	sb.WriteString("\n\n💡 ลองถาม \"พยากรณ์งบประมาณปี 70 71 เป็นกราฟ\" เพื่อดูกราฟ")
	return Reply{Text: sb.String()}
}

func budgetLines(row dataset.BudgetYear) string {
	return fmt.Sprintf("💰 รายรับ: **%s** ล้านบาท\n", Float(row.Revenue)) +
		fmt.Sprintf("📉 รายจ่าย: **%s** ล้านบาท\n", Float(row.Expense)) +
		fmt.Sprintf("💎 คงเหลือ: **%s** ล้านบาท\n", Float(row.Surplus())) +
		fmt.Sprintf("📈 %% การใช้จ่าย: %s%%", Percent(row.SpendRatio()))
}

func levelLines(levels []dataset.LevelCount) string {
	lines := make([]string, len(levels))
	for i, l := range levels {
		lines[i] = fmt.Sprintf("%s %s: %s คน", l.Icon, l.Level, Int(l.Count))
	}
	return strings.Join(lines, "\n")
}

func (l *Local) studentStatsReply(q string) Reply {
	t := l.tables
	if dataset.IsNarrow(q) {
		var sb strings.Builder
		sb.WriteString("🔬 **สถิตินิสิตคณะวิทยาศาสตร์**\n\n")
		sb.WriteString(levelLines(t.ScienceLevels))
		fmt.Fprintf(&sb, "\n━━━━━━━━━━━━━━━━━━━\n📌 รวม: **%s** คน\n\n", Int(dataset.StudentTotal(t.ScienceLevels)))
		sb.WriteString("📊 แยกตามปีเข้า:")
		for _, e := range t.ScienceEnrollment {
			fmt.Fprintf(&sb, "\n• ปี %d: %d คน", e.Year, e.Total)
		}
		fmt.Fprintf(&sb, "\n\n👥 บุคลากร: %d คน (ป.เอก %d คน)", t.SciencePersonnel.Total, t.SciencePersonnel.Doctorate)
		return Reply{Text: sb.String()}
	}

	var sb strings.Builder
	sb.WriteString("📊 **สถิตินิสิตคงอยู่ปัจจุบัน มหาวิทยาลัยแม่โจ้**\n\n")
	sb.WriteString(levelLines(t.StudentLevels))
	fmt.Fprintf(&sb, "\n━━━━━━━━━━━━━━━━━━━\n📌 รวมทั้งหมด: **%s** คน\n\n", Int(dataset.StudentTotal(t.StudentLevels)))
	sb.WriteString("🏫 **แยกตามคณะ (5 อันดับแรก):**")
	for i, f := range t.Faculties {
		if i == 5 {
			break
		}
		fmt.Fprintf(&sb, "\n%d. %s: %s คน", i+1, f.Name, Int(f.Total()))
	}
	sb.WriteString("\n\n💡 ลอง \"พยากรณ์จำนวนนิสิตปี 70 71 แบบกราฟ\"")
	return Reply{Text: sb.String()}
}

func (l *Local) gpaReply(string) Reply {
	s := l.roster.Summarize()
	if s.Count == 0 {
		return Reply{Text: NoDataText}
	}
	pct := func(n int) string { return strconv.Itoa(int(float64(n)/float64(s.Count)*100 + 0.5)) }
	return Reply{Text: fmt.Sprintf("📊 **สรุป GPA นักศึกษา** (จากข้อมูลในระบบ %d คน)\n\n", s.Count) +
		fmt.Sprintf("📈 GPA เฉลี่ย: **%.2f**\n", s.AverageGPA) +
		fmt.Sprintf("🟢 GPA ≥ 3.00: %d คน (%s%%)\n", s.AtLeast3, pct(s.AtLeast3)) +
		fmt.Sprintf("🔴 GPA < 2.00 (รอพินิจ): %d คน (%s%%)\n\n", s.AtRisk, pct(s.AtRisk)) +
		"💡 ลอง \"นักศึกษาเกรดสูง\" หรือ \"นักศึกษารอพินิจ\" เพื่อดูรายชื่อ"}
}

func (l *Local) universityReply(string) Reply {
	t := l.tables
	sciRevenue := 0.0
	if actual := dataset.ActualBudget(t.ScienceBudget); len(actual) > 0 {
		sciRevenue = actual[len(actual)-1].Revenue
	}
	return Reply{Text: "🏫 **มหาวิทยาลัยแม่โจ้**\n📍 อ.สันทราย จ.เชียงใหม่\n\n" +
		fmt.Sprintf("👨‍🎓 นิสิตคงอยู่: **%s** คน\n", Int(dataset.StudentTotal(t.StudentLevels))) +
		"📚 18 คณะ/วิทยาลัย\n" +
		"🎓 อัตราสำเร็จการศึกษา: 89.5%\n" +
		"📊 GPA เฉลี่ย: 3.12\n\n" +
		fmt.Sprintf("🔬 คณะวิทยาศาสตร์: %s คน | บุคลากร %d คน\n", Int(dataset.StudentTotal(t.ScienceLevels)), t.SciencePersonnel.Total) +
		fmt.Sprintf("💰 งบประมาณคณะวิทย์ ปีล่าสุด: %s ล้านบาท", Float(sciRevenue))}
}

const tuitionText = "💰 **ค่าธรรมเนียมการศึกษา ม.แม่โจ้** (เหมาจ่าย)\n\n" +
	"📌 ค่าเทอม: **16,000 - 19,000** บาท/เทอม\n" +
	"📌 ค่าแรกเข้า: **2,000 - 3,000** บาท\n" +
	"📌 ตลอดหลักสูตร 4 ปี: **128,000 - 152,000** บาท\n\n" +
	"🏫 **แยกตามคณะ:**\n" +
	"• วิทยาศาสตร์: 17,500 บาท\n• วิศวกรรม: 19,000 บาท\n• บริหาร: 16,000 บาท\n• คอมพิวเตอร์: 18,500 บาท (รวมค่า Lab)\n\n" +
	"_สาขาคอมพิวเตอร์สูงกว่าเล็กน้อยเนื่องจากมีค่า Lab_"

const financialText = "💳 **สถานะการเงิน**\n\n" +
	"📋 ค่าเทอม 1/2568: **18,500** บาท สถานะ: ⚠️ **ค้างชำระ**\n" +
	"📅 ครบกำหนด: 28 ก.พ. 2568\n\n" +
	"🎓 **ทุนการศึกษา:**\n• ทุนเรียนดี คณะวิทยาศาสตร์: 10,000 บาท ✅ ได้รับทุน\n\n" +
	"📊 ยอดชำระแล้ว: 37,000 บาท | คงค้าง: 111,000 บาท"

const activityText = "🎯 **ชั่วโมงกิจกรรม**\n\n" +
	"📊 ผ่านแล้ว: **38/60** ชม. (63.3%)\n\n" +
	"• 🤝 จิตอาสา: 15 ชม.\n• ⚽ กีฬา: 8 ชม.\n• 📚 วิชาการ: 10 ชม.\n• 🎨 ศิลปวัฒนธรรม: 5 ชม.\n\n" +
	"⏳ ต้องทำเพิ่มอีก **22 ชั่วโมง**"

const libraryText = "📖 **รายการยืมหนังสือ** (3 เล่ม)\n\n" +
	"1. 📕 Introduction to Algorithms: ⏰ ใกล้กำหนดคืน\n" +
	"2. 📗 Clean Code: ✅ สถานะปกติ\n" +
	"3. 📘 Design Patterns: ⚠️ **เกินกำหนด** (ค่าปรับ 50 บาท)"

const behaviorText = "📋 **คะแนนความประพฤติ**\n\n" +
	"🏆 คะแนนปัจจุบัน: **92/100**\n📈 แนวโน้ม: ดีขึ้น (88 → 92)\n\n" +
	"📊 ย้อนหลัง:\n• 1/2566: 95 | 2/2566: 90 | 1/2567: 88 | 2/2567: 92"

const graduationText = "🎓 **ข้อมูลการสำเร็จการศึกษา**\n\n" +
	"📊 อัตราสำเร็จ: **89.5%**\n" +
	"📚 หน่วยกิตขั้นต่ำ: 120-140 หน่วยกิต (ขึ้นอยู่กับหลักสูตร)\n" +
	"🎯 ชั่วโมงกิจกรรม: 60 ชั่วโมง\n" +
	"📝 GPA ขั้นต่ำ: 2.00\n\n" +
	"เข้าดูรายละเอียดที่หน้า \"ตรวจสอบการจบ\" ได้ครับ"

const dashboardText = "📊 **หน้าต่างๆ ใน Dashboard:**\n\n" +
	"🏠 หน้าแรก: สรุปข้อมูลทั้งหมด\n" +
	"💳 ค่าธรรมเนียม: ค่าเทอมแยกคณะ\n" +
	"📊 สถิตินิสิต: จำนวนนิสิตแยกคณะ/ระดับ\n" +
	"💰 งบประมาณคณะ: รายรับ-รายจ่าย พร้อมกราฟพยากรณ์\n" +
	"💵 การเงิน: สถานะค่าเทอม/ทุน\n" +
	"🎯 กิจกรรม: ชั่วโมงกิจกรรม/ความประพฤติ\n" +
	"📋 รายชื่อนักศึกษา: ค้นหา/กรอง/Export CSV\n" +
	"🎓 ตรวจสอบการจบ: ตรวจหน่วยกิต/เกรด"

const greetingText = "สวัสดีครับ! 👋 ผม MJU AI Assistant ช่วยได้หลายอย่างเลยครับ:\n\n" +
	"🔍 **ค้นหานักศึกษา**: \"รายชื่อนักศึกษารหัส 63\" / \"นักศึกษาสาขาคอม 5 คน\"\n" +
	"📊 **ข้อมูลสถิติ**: \"สถิตินิสิตคณะวิทย์\" / \"งบประมาณปี 2568\"\n" +
	"🔮 **พยากรณ์**: \"พยากรณ์งบฯ คณะวิทย์ ปี 70 71 เป็นกราฟ\"\n" +
	"💰 **อื่นๆ**: ค่าเทอม, การเงิน, กิจกรรม, ห้องสมุด, เกรด"

const helpText = "📚 **ผมช่วยได้ดังนี้:**\n\n" +
	"🔍 **ค้นหานักศึกษา:**\n" +
	"• \"รายชื่อรหัส 63\" หาตามรหัส\n" +
	"• \"นักศึกษาสาขาคอม\" หาตามสาขา\n" +
	"• \"นิสิตชั้นปี 2\" หาตามชั้นปี\n" +
	"• \"นักศึกษารอพินิจ\" สถานะเสี่ยง\n" +
	"• \"นักศึกษาเกรดสูง 5 คน\" จำกัดจำนวน\n\n" +
	"📊 **ข้อมูลระบบ:**\n" +
	"• งบประมาณ (มหาวิทยาลัย/คณะวิทย์)\n" +
	"• สถิตินิสิต, GPA, ค่าเทอม\n" +
	"• การเงิน, กิจกรรม, ห้องสมุด\n\n" +
	"🔮 **พยากรณ์ + กราฟ:**\n" +
	"• \"พยากรณ์งบฯ คณะวิทย์ ปี 70 71 เป็นกราฟ\"\n" +
	"• \"คาดการณ์นิสิต ปี 2570 แบบกราฟแท่ง\""

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/llm"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/logger"
)

const insightTemperature = 0.2

const insightPrompt = `จากข้อมูลใน Dashboard ของมหาวิทยาลัยแม่โจ้ต่อไปนี้:
%s

ให้คุณทำหน้าที่เป็น Data Analyst วิเคราะห์ข้อมูลทั้งหมดแล้วสรุป Insight ที่น่าสนใจ ข้อควรระวัง หรือแนวโน้มสำคัญ มา 3 ข้อสั้นๆ (ข้อละไม่เกิน 1-2 บรรทัด)
ห้ามแต่งตัวเลขเองเด็ดขาด ให้ดึงจากข้อมูลที่มีเท่านั้น
ให้ตอบกลับมาเป็น JSON array ของ string เท่านั้น ห้ามพิมพ์ข้อความอื่นนอกกรอบ JSON
` + "```json\n[\"...\", \"...\", \"...\"]\n```"

// StaticInsights shown when the remote model cannot produce any
func StaticInsights() []string {
	return []string{
		"ข้อมูลนิสิตปี 2568 คาดว่าจะแตะ 21,200 คน เติบโตขึ้นราว 7%",
		"คณะศิลปศาสตร์มีอัตราสำเร็จการศึกษาสูงกว่าค่าเฉลี่ยมหาวิทยาลัย (94.1%)",
		"คะแนนความประพฤติเฉลี่ยของนิสิตส่วนใหญ่อยู่ในเกณฑ์ดีเยี่ยม (92/100)",
	}
}

// Insights three short observations about the dashboard data. The first
// successful remote answer is cached for the life of the engine.
func (e *Engine) Insights(ctx context.Context) []string {
	e.insightsMu.Lock()
	defer e.insightsMu.Unlock()

	if e.insights != nil {
		return append([]string(nil), e.insights...)
	}
	if !e.RemoteEnabled() {
		return StaticInsights()
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	msgs := []*schema.Message{schema.UserMessage(fmt.Sprintf(insightPrompt, e.system))}
	text, _, err := e.generate(ctx, msgs, model.WithTemperature(insightTemperature))
	if err != nil {
		logger.Log.WithError(err).Warn("insights unavailable, using static list")
		return StaticInsights()
	}

	insights, err := parseInsights(text)
	if err != nil {
		logger.Log.WithError(err).Warn("insights reply not a JSON array")
		return StaticInsights()
	}
	e.insights = insights
	return append([]string(nil), insights...)
}

func parseInsights(text string) ([]string, error) {
	var raw []string
	if err := json.Unmarshal([]byte(llm.CleanJSON(text)), &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, llm.ErrEmptyReply
	}
	return out, nil
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/config"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/llm"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/respond"
)

type fakeGenerator struct {
	mu    sync.Mutex
	calls int
	got   [][]*schema.Message
	opts  [][]model.Option
	fn    func(ctx context.Context, call int) (*schema.Message, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.mu.Lock()
	f.calls++
	n := f.calls
	f.got = append(f.got, input)
	f.opts = append(f.opts, opts)
	f.mu.Unlock()
	return f.fn(ctx, n)
}

func (f *fakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func reply(text string) func(context.Context, int) (*schema.Message, error) {
	return func(context.Context, int) (*schema.Message, error) {
		return schema.AssistantMessage(text, nil), nil
	}
}

func failing(err error) func(context.Context, int) (*schema.Message, error) {
	return func(context.Context, int) (*schema.Message, error) { return nil, err }
}

func newLocal() *respond.Local {
	return NewLocal(config.Default())
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Concurrency.RPM = 60000
	cfg.Concurrency.QPS = 100
	return cfg
}

func newTestEngine(cfg *config.Config, gens ...*fakeGenerator) *Engine {
	clients := make([]llm.Client, len(gens))
	for i, g := range gens {
		clients[i] = llm.Client{Model: "model-" + string(rune('a'+i)), Generator: g}
	}
	e := New(cfg, newLocal(), clients)
	e.retryDelay = time.Millisecond
	return e
}

func TestAsk_EmptyMessage(t *testing.T) {
	e := newTestEngine(testConfig())
	_, err := e.Ask(context.Background(), "s", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestAsk_LocalOnly(t *testing.T) {
	e := newTestEngine(testConfig())
	r, err := e.Ask(context.Background(), "s", "พยากรณ์งบประมาณคณะวิทยาศาสตร์ ปี 70 71 แบบกราฟ")
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, r.Source)
	require.NotNil(t, r.Chart)
	assert.Equal(t, "line", r.Chart.ChartType)
	assert.Empty(t, e.History("s"))

	r, err = e.Ask(context.Background(), "s", "weather in paris")
	require.NoError(t, err)
	assert.Equal(t, respond.NoDataText, r.Text)
}

func TestAsk_RemoteWithChart(t *testing.T) {
	g := &fakeGenerator{fn: reply("📊 รายรับ 3 ปีล่าสุด\n```json_chart\n{\"chartType\": \"radar\", // คำอธิบาย\n\"data\": {\"labels\": [\"a\",\"b\",\"c\"], \"datasets\": [{\"label\": \"x\", \"data\": [1,2,3]}]}}\n```")}
	e := newTestEngine(testConfig(), g)

	r, err := e.Ask(context.Background(), "s", "ขอกราฟรายรับ")
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, r.Source)
	assert.Equal(t, "model-a", r.Model)
	assert.Equal(t, "📊 รายรับ 3 ปีล่าสุด", r.Text)
	require.NotNil(t, r.Chart)
	assert.Equal(t, "radar", r.Chart.ChartType)

	sent := g.got[0]
	require.Len(t, sent, 2)
	assert.Equal(t, schema.System, sent[0].Role)
	assert.Contains(t, sent[0].Content, "json_chart")
	assert.Equal(t, "ขอกราฟรายรับ", sent[1].Content)

	h := e.History("s")
	require.Len(t, h, 2)
	assert.Equal(t, schema.User, h[0].Role)
	assert.Equal(t, schema.Assistant, h[1].Role)
}

func TestAsk_MalformedChartKeepsText(t *testing.T) {
	g := &fakeGenerator{fn: reply("สรุปงบประมาณ\n```json_chart\n{\"chartType\": \"bar\", \"data\": \n```")}
	e := newTestEngine(testConfig(), g)

	r, err := e.Ask(context.Background(), "s", "กราฟงบประมาณ")
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, r.Source)
	assert.Equal(t, "สรุปงบประมาณ", r.Text)
	assert.Nil(t, r.Chart)
}

func TestAsk_ModelChain(t *testing.T) {
	first := &fakeGenerator{fn: failing(errors.New("HTTP 404 model not found"))}
	empty := &fakeGenerator{fn: reply("  ")}
	third := &fakeGenerator{fn: reply("ตอบจากโมเดลที่สาม")}
	e := newTestEngine(testConfig(), first, empty, third)

	r, err := e.Ask(context.Background(), "s", "สวัสดี")
	require.NoError(t, err)
	assert.Equal(t, "model-c", r.Model)
	assert.Equal(t, "ตอบจากโมเดลที่สาม", r.Text)
	assert.Equal(t, 1, first.Calls())
	assert.Equal(t, 1, empty.Calls())
}

func TestAsk_RetriesRateLimit(t *testing.T) {
	g := &fakeGenerator{fn: func(_ context.Context, call int) (*schema.Message, error) {
		if call < 3 {
			return nil, errors.New("error, status code: 429, message: quota")
		}
		return schema.AssistantMessage("ok", nil), nil
	}}
	e := newTestEngine(testConfig(), g)

	r, err := e.Ask(context.Background(), "s", "สวัสดี")
	require.NoError(t, err)
	assert.Equal(t, "ok", r.Text)
	assert.Equal(t, 3, g.Calls())
}

func TestAsk_FallbackToLocal(t *testing.T) {
	a := &fakeGenerator{fn: failing(errors.New("connection refused"))}
	b := &fakeGenerator{fn: failing(errors.New("HTTP 503"))}
	e := newTestEngine(testConfig(), a, b)

	r, err := e.Ask(context.Background(), "s", "พยากรณ์งบประมาณคณะวิทยาศาสตร์ ปี 70 71 แบบกราฟ")
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, r.Source)
	assert.True(t, strings.HasPrefix(r.Text, UnavailableNotice))
	assert.Contains(t, r.Text, "ปี 2570: ~16 ล้านบาท")
	require.NotNil(t, r.Chart)
	assert.Empty(t, e.History("s"), "failed user turn must be dropped")
}

func TestAsk_AllRecoveryExhausted(t *testing.T) {
	g := &fakeGenerator{fn: failing(errors.New("boom"))}
	e := newTestEngine(testConfig(), g)

	r, err := e.Ask(context.Background(), "s", "weather in paris")
	require.NoError(t, err)
	assert.Equal(t, SourceError, r.Source)
	assert.Contains(t, r.Text, "model-a: boom")
	assert.Nil(t, r.Chart)
}

func TestAsk_Timeout(t *testing.T) {
	g := &fakeGenerator{fn: func(ctx context.Context, _ int) (*schema.Message, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	e := newTestEngine(testConfig(), g)
	e.timeout = 20 * time.Millisecond

	r, err := e.Ask(context.Background(), "s", "งบประมาณปี 2568")
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, r.Source)
	assert.Contains(t, r.Text, "คงเหลือ: **152.2** ล้านบาท")
}

func TestAsk_CallerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g := &fakeGenerator{fn: func(context.Context, int) (*schema.Message, error) {
		cancel()
		return nil, context.Canceled
	}}
	e := newTestEngine(testConfig(), g)

	_, err := e.Ask(ctx, "s", "สวัสดี")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, e.History("s"))
}

func TestAsk_SupersededCall(t *testing.T) {
	started := make(chan struct{})
	g := &fakeGenerator{fn: func(ctx context.Context, call int) (*schema.Message, error) {
		if call == 1 {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return schema.AssistantMessage("ตอบคำถามใหม่", nil), nil
	}}
	e := newTestEngine(testConfig(), g)

	errCh := make(chan error, 1)
	go func() {
		_, err := e.Ask(context.Background(), "s", "คำถามเก่า")
		errCh <- err
	}()
	<-started

	r, err := e.Ask(context.Background(), "s", "คำถามใหม่")
	require.NoError(t, err)
	assert.Equal(t, "ตอบคำถามใหม่", r.Text)
	assert.ErrorIs(t, <-errCh, ErrSuperseded)

	h := e.History("s")
	require.Len(t, h, 2)
	assert.Equal(t, "คำถามใหม่", h[0].Content)
	assert.Equal(t, "ตอบคำถามใหม่", h[1].Content)

	// the newer call only saw its own user turn
	assert.Len(t, g.got[1], 2)
}

func TestAsk_SessionsAreIndependent(t *testing.T) {
	g := &fakeGenerator{fn: reply("ok")}
	e := newTestEngine(testConfig(), g)

	_, err := e.Ask(context.Background(), "a", "หนึ่ง")
	require.NoError(t, err)
	_, err = e.Ask(context.Background(), "b", "สอง")
	require.NoError(t, err)

	assert.Len(t, e.History("a"), 2)
	assert.Len(t, e.History("b"), 2)
	assert.Len(t, g.got[1], 2, "session b must not see session a")
}

func TestAsk_HistoryTrimmed(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.MaxHistory = 4
	g := &fakeGenerator{fn: reply("ok")}
	e := newTestEngine(cfg, g)

	for _, q := range []string{"หนึ่ง", "สอง", "สาม"} {
		_, err := e.Ask(context.Background(), "s", q)
		require.NoError(t, err)
	}
	h := e.History("s")
	require.Len(t, h, 4)
	assert.Equal(t, "สอง", h[0].Content)
	assert.Equal(t, schema.User, h[0].Role)

	// system + 2 earlier turns + the new user turn
	assert.Len(t, g.got[2], 6)
}

func TestReset(t *testing.T) {
	g := &fakeGenerator{fn: reply("ok")}
	e := newTestEngine(testConfig(), g)

	_, err := e.Ask(context.Background(), "s", "หนึ่ง")
	require.NoError(t, err)
	e.Reset("s")
	assert.Empty(t, e.History("s"))
	e.Reset("missing")
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestAsk_SessionsCapped(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.MaxSessions = 3
	e := newTestEngine(cfg, &fakeGenerator{fn: reply("ok")})
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	e.now = clock.Now

	for _, id := range []string{"s1", "s2", "s3", "s4", "s5"} {
		_, err := e.Ask(context.Background(), id, "สวัสดี")
		require.NoError(t, err)
		clock.Advance(time.Second)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.Len(t, e.sessions, 3)
	for _, gone := range []string{"s1", "s2"} {
		assert.NotContains(t, e.sessions, gone)
	}
	assert.Contains(t, e.sessions, "s5")
}

func TestAsk_ManyOneShotSessionsBounded(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.MaxSessions = 50
	e := newTestEngine(cfg, &fakeGenerator{fn: reply("ok")})

	for i := 0; i < 500; i++ {
		_, err := e.Ask(context.Background(), fmt.Sprintf("one-shot-%d", i), "สวัสดี")
		require.NoError(t, err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	assert.LessOrEqual(t, len(e.sessions), 50)
}

func TestAsk_IdleSessionExpires(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.SessionIdleMinutes = 1
	e := newTestEngine(cfg, &fakeGenerator{fn: reply("ok")})
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	e.now = clock.Now

	_, err := e.Ask(context.Background(), "old", "สวัสดี")
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)
	_, err = e.Ask(context.Background(), "new", "สวัสดี")
	require.NoError(t, err)

	assert.Empty(t, e.History("old"))
	assert.Len(t, e.History("new"), 2)
}

func TestFinish_StaleCallAfterReset(t *testing.T) {
	e := newTestEngine(testConfig(), &fakeGenerator{fn: reply("ok")})
	ctx := context.Background()

	_, doneOld, oldSeq, _ := e.begin(ctx, "s", "คำถามแรก")
	e.Reset("s")
	_, doneNew, newSeq, _ := e.begin(ctx, "s", "คำถามใหม่")
	defer doneNew()
	doneOld()

	require.NotEqual(t, oldSeq, newSeq)
	e.finish("s", oldSeq, "คำตอบเก่า")

	h := e.History("s")
	require.Len(t, h, 1)
	assert.Equal(t, "คำถามใหม่", h[0].Content)
}

func TestTrim(t *testing.T) {
	h := []*schema.Message{
		schema.UserMessage("1"), schema.AssistantMessage("1", nil),
		schema.UserMessage("2"), schema.AssistantMessage("2", nil),
		schema.UserMessage("3"),
	}
	got := trim(h, 4)
	require.Len(t, got, 3)
	assert.Equal(t, "2", got[0].Content)
	assert.Equal(t, schema.User, got[0].Role)
	assert.Len(t, trim(h, 0), 5)
}

func TestInsights(t *testing.T) {
	t.Run("local only", func(t *testing.T) {
		e := newTestEngine(testConfig())
		assert.Equal(t, StaticInsights(), e.Insights(context.Background()))
	})

	t.Run("remote cached", func(t *testing.T) {
		g := &fakeGenerator{fn: reply("```json\n[\"งบประมาณเกินดุล\", \" \", \"นิสิตเพิ่มขึ้น\"]\n```")}
		e := newTestEngine(testConfig(), g)

		first := e.Insights(context.Background())
		second := e.Insights(context.Background())
		assert.Equal(t, []string{"งบประมาณเกินดุล", "นิสิตเพิ่มขึ้น"}, first)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, g.Calls())

		opts := model.GetCommonOptions(&model.Options{}, g.opts[0]...)
		require.NotNil(t, opts.Temperature)
		assert.InDelta(t, insightTemperature, *opts.Temperature, 1e-6)
	})

	t.Run("bad reply not cached", func(t *testing.T) {
		g := &fakeGenerator{fn: reply("ขออภัย ไม่สามารถสรุปได้")}
		e := newTestEngine(testConfig(), g)

		assert.Equal(t, StaticInsights(), e.Insights(context.Background()))
		e.Insights(context.Background())
		assert.Equal(t, 2, g.Calls())
	})
}

func TestSystemInstruction(t *testing.T) {
	s := SystemInstruction(newLocal())
	for _, want := range []string{
		"```json_chart",
		NoInfoText,
		"- ปี 2568 (ข้อมูลจริง): รายรับ 3,305.1 / รายจ่าย 3,152.9 / คงเหลือ 152.2",
		"- ปี 2569 (พยากรณ์): รายรับ 15 / รายจ่าย 14.4 / คงเหลือ 0.6",
		"- รวม: 19,821 คน",
		"GPA ≥ 3.00: 23 คน",
		"- จำนวนนิสิตคณะวิทยาศาสตร์",
	} {
		assert.Contains(t, s, want)
	}
	assert.NotContains(t, s, "%!")
}

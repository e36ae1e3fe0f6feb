package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/chart"
)

func TestLoadConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.yaml")

	c, err := loadConfig(missing, false)
	if err != nil {
		t.Fatalf("default path missing: %v", err)
	}
	if c.LLM.Provider != "" || c.Roster.Size != 50 {
		t.Errorf("defaults = %+v", c)
	}

	if _, err := loadConfig(missing, true); err == nil {
		t.Error("explicit missing path accepted")
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("llm:\n  provider: gemini\n  api_key: k\n  models: [gemini-2.0-flash]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = loadConfig(path, true)
	if err != nil {
		t.Fatal(err)
	}
	if !c.RemoteEnabled() {
		t.Errorf("remote not enabled: %+v", c.LLM)
	}
}

func TestDescribeChart(t *testing.T) {
	s := &chart.Spec{
		ChartType: "line",
		Data: chart.Data{
			Labels:   []string{"ปี 2567", "ปี 2568"},
			Datasets: []chart.Series{{Label: "a (ข้อมูลจริง)"}, {Label: "a (พยากรณ์)"}},
		},
	}
	want := "[chart line: 2 labels, series: a (ข้อมูลจริง), a (พยากรณ์)]"
	if got := describeChart(s); got != want {
		t.Errorf("describeChart() = %q, want %q", got, want)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"ask": false, "chat": false, "datasets": false, "students": false, "forecast": false}
	for _, c := range RootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, ok := range want {
		if !ok {
			t.Errorf("command %s not registered", name)
		}
	}
}

package respond

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/chart"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/dataset"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/intent"
	"github.com/Jirachtt/SCI-AI-DASHBORAD/app/assistant/pkg/regression"
)

const (
	actualSuffix   = " (ข้อมูลจริง)"
	forecastSuffix = " (พยากรณ์)"
	forecastFooter = "💡 _อ้างอิงจากข้อมูลในระบบเท่านั้น (Linear Regression)_"
)

// InsufficientInfoText reply when no dataset could be chosen
const InsufficientInfoText = "⚠️ **ข้อมูลไม่เพียงพอในการคาดการณ์**\n\nระบบมีข้อมูลสำหรับพยากรณ์ดังนี้:\n" +
	"• 📈 งบประมาณมหาวิทยาลัย (รายรับ/รายจ่าย)\n" +
	"• 🔬 งบประมาณคณะวิทยาศาสตร์ (รายรับ/รายจ่าย)\n" +
	"• 👨‍🎓 จำนวนนิสิตมหาวิทยาลัย\n" +
	"• 🧪 จำนวนนิสิตคณะวิทยาศาสตร์\n\n" +
	"ลองถามใหม่ เช่น \"พยากรณ์งบประมาณคณะวิทยาศาสตร์ ปี 70 71 แบบกราฟ\""

// YearLabel axis label for a year
func YearLabel(year int) string {
	return fmt.Sprintf("ปี %d", year)
}

type fitted struct {
	desc   *dataset.Descriptor
	points []dataset.Point
	model  regression.Model
}

// Forecast fits each requested dataset and builds an actual/forecast pair of
// series per dataset on one shared year axis. A dataset with too little data
// gets a warning line and no series; the others still proceed.
func Forecast(reg *dataset.Registry, f *intent.Forecast) Reply {
	if f == nil || len(f.Datasets) == 0 {
		return Reply{Text: InsufficientInfoText}
	}

	var (
		lines []string
		fits  []fitted
	)
	for _, key := range f.Datasets {
		d, ok := reg.Lookup(key)
		if !ok {
			continue
		}
		pts := d.Points()
		if len(pts) < regression.MinPoints {
			lines = append(lines, fmt.Sprintf("⚠️ %s: ข้อมูลไม่เพียงพอ (ต้องมีอย่างน้อย %d ปี)", d.Label, regression.MinPoints))
			continue
		}
		m, ok := regression.Fit(pts)
		if !ok {
			lines = append(lines, fmt.Sprintf("⚠️ %s: ไม่สามารถสร้างโมเดลพยากรณ์ได้", d.Label))
			continue
		}
		fits = append(fits, fitted{desc: d, points: pts, model: m})
		lines = append(lines, summary(d, pts, m, f.Years))
	}

	if len(lines) == 0 {
		return Reply{Text: InsufficientInfoText}
	}

	reply := Reply{Text: strings.Join(lines, "\n\n") + "\n\n" + forecastFooter}
	if len(fits) > 0 {
		reply.Chart = buildChart(fits, f)
	}
	return reply
}

func summary(d *dataset.Descriptor, pts []dataset.Point, m regression.Model, years []int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 **%s**\n", d.Label)
	fmt.Fprintf(&sb, "ข้อมูลจริง: %d-%d (%d ปี)\n", pts[0].Year, pts[len(pts)-1].Year, len(pts))
	sb.WriteString("พยากรณ์ (Linear Regression):")
	for _, y := range years {
		fmt.Fprintf(&sb, "\n   ปี %d: ~%s %s", y, Int(m.Predict(y)), d.Unit)
	}
	return sb.String()
}

// buildChart axis is the union of every charted dataset's years and the target years.
// A forecast series carries the model's prediction wherever its dataset has no record.
func buildChart(fits []fitted, f *intent.Forecast) *chart.Spec {
	axisSet := make(map[int]bool)
	for _, y := range f.Years {
		axisSet[y] = true
	}
	for _, fit := range fits {
		for _, p := range fit.points {
			axisSet[p.Year] = true
		}
	}
	axis := make([]int, 0, len(axisSet))
	for y := range axisSet {
		axis = append(axis, y)
	}
	sort.Ints(axis)

	labels := make([]string, len(axis))
	for i, y := range axis {
		labels[i] = YearLabel(y)
	}

	spec := &chart.Spec{
		ChartType: string(f.Chart),
		Data:      chart.Data{Labels: labels},
		Options:   chart.CartesianOptions(),
	}

	for _, fit := range fits {
		byYear := make(map[int]float64, len(fit.points))
		for _, p := range fit.points {
			byYear[p.Year] = p.Value
		}
		latest := fit.points[len(fit.points)-1].Year

		actual := make([]*float64, len(axis))
		forecast := make([]*float64, len(axis))
		for i, y := range axis {
			if v, ok := byYear[y]; ok {
				actual[i] = chart.Value(v)
				// both series meet at the latest recorded year
				if y == latest {
					forecast[i] = chart.Value(v)
				}
				continue
			}
			// every year the dataset has no record for, including years
			// only another charted dataset recorded
			forecast[i] = chart.Value(float64(fit.model.Predict(y)))
		}

		spec.Data.Datasets = append(spec.Data.Datasets,
			chart.Series{Label: fit.desc.Label + actualSuffix, Data: actual, Style: actualStyle(fit.desc.Color, f.Chart)},
			chart.Series{Label: fit.desc.Label + forecastSuffix, Data: forecast, Style: forecastStyle(fit.desc.Color, f.Chart)},
		)
	}
	return spec
}

func actualStyle(color string, kind intent.ChartKind) chart.Style {
	s := chart.Style{
		BorderColor:          color,
		BackgroundColor:      color + "20",
		Fill:                 kind == intent.ChartLine,
		Tension:              0.4,
		PointBackgroundColor: color,
		PointRadius:          5,
		BorderWidth:          2,
	}
	if kind == intent.ChartBar {
		s.BorderRadius = 6
	}
	return s
}

func forecastStyle(color string, kind intent.ChartKind) chart.Style {
	s := chart.Style{
		BorderColor:          color,
		BackgroundColor:      color + "40",
		Tension:              0.4,
		PointBackgroundColor: color + "cc",
		PointRadius:          5,
		PointStyle:           "triangle",
		BorderWidth:          2,
		BorderDash:           []int{6, 3},
	}
	if kind == intent.ChartBar {
		s.BorderRadius = 6
	}
	return s
}

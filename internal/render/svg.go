// Package render writes the Gantt chart and S-curve overlay as SVG.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mfurukawa/girder/internal/layout"
	"github.com/mfurukawa/girder/internal/scurve"
	"github.com/mfurukawa/girder/internal/timeline"
)

// Style holds the colors and dimensions of one SVG export.
type Style struct {
	PlanBar      string
	ActualBar    string
	GroupBar     string
	ScurvePlan   string
	ScurveActual string
	Today        string

	RowHeight    float64
	HeaderHeight float64
	LabelWidth   float64
	FontSize     float64
}

// DefaultStyle matches the defaults of the YAML config.
func DefaultStyle() Style {
	return Style{
		PlanBar:      "#83a598",
		ActualBar:    "#b8bb26",
		GroupBar:     "#928374",
		ScurvePlan:   "#458588",
		ScurveActual: "#d79921",
		Today:        "#fb4934",
		RowHeight:    28,
		HeaderHeight: 48,
		LabelWidth:   200,
		FontSize:     12,
	}
}

// SVG renders the laid-out chart. The timeline, chart and series must have
// been produced with the same start date, zoom and cell width; the renderer
// only translates geometry, it does not recompute it.
func SVG(w io.Writer, tl *timeline.Timeline, chart *layout.Chart, series *scurve.Series, cellWidth float64, today time.Time, st Style) error {
	gridW := tl.Width(cellWidth)
	bodyH := float64(len(chart.Rows)) * st.RowHeight
	if bodyH == 0 {
		bodyH = st.RowHeight
	}
	totalW := st.LabelWidth + gridW
	totalH := st.HeaderHeight + bodyH

	var svg strings.Builder
	svg.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&svg, `<svg width="%.0f" height="%.0f" xmlns="http://www.w3.org/2000/svg" font-family="sans-serif" font-size="%.0f">`+"\n",
		totalW, totalH, st.FontSize)
	fmt.Fprintf(&svg, `<rect width="100%%" height="100%%" fill="#ffffff"/>`+"\n")

	writeHeader(&svg, tl, cellWidth, st)
	writeGrid(&svg, tl, cellWidth, bodyH, st)
	writeRows(&svg, chart, st)
	writeLinks(&svg, chart, st)
	writeToday(&svg, tl, cellWidth, bodyH, today, st)
	if series != nil {
		writeScurve(&svg, series, bodyH, st)
	}

	svg.WriteString("</svg>\n")
	_, err := io.WriteString(w, svg.String())
	return err
}

func writeHeader(svg *strings.Builder, tl *timeline.Timeline, cellWidth float64, st Style) {
	groupH := st.HeaderHeight / 2
	x := st.LabelWidth
	for _, g := range tl.Groups {
		w := tl.GroupWidth(g, cellWidth)
		fmt.Fprintf(svg, `<rect x="%.1f" y="0" width="%.1f" height="%.1f" fill="#f2f2f2" stroke="#d0d0d0"/>`+"\n",
			x, w, groupH)
		fmt.Fprintf(svg, `<text x="%.1f" y="%.1f" text-anchor="middle">%s</text>`+"\n",
			x+w/2, groupH-6, escapeXML(tl.GroupLabel(g)))
		x += w
	}
	for i, item := range tl.Items {
		cx := st.LabelWidth + (float64(i)+0.5)*cellWidth
		fmt.Fprintf(svg, `<text x="%.1f" y="%.1f" text-anchor="middle" fill="#555555">%s</text>`+"\n",
			cx, st.HeaderHeight-6, escapeXML(tl.ItemLabel(item)))
	}
}

func writeGrid(svg *strings.Builder, tl *timeline.Timeline, cellWidth float64, bodyH float64, st Style) {
	top := st.HeaderHeight
	for i := 0; i <= len(tl.Items); i++ {
		x := st.LabelWidth + float64(i)*cellWidth
		fmt.Fprintf(svg, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#e8e8e8"/>`+"\n",
			x, top, x, top+bodyH)
	}
}

func writeRows(svg *strings.Builder, chart *layout.Chart, st Style) {
	barH := st.RowHeight * 0.55
	overlayH := st.RowHeight * 0.3
	for _, row := range chart.Rows {
		y := st.HeaderHeight + float64(row.Index)*st.RowHeight
		indent := float64(row.Depth) * 14

		fmt.Fprintf(svg, `<text x="%.1f" y="%.1f">%s</text>`+"\n",
			6+indent, y+st.RowHeight*0.65, escapeXML(row.Task.Name))

		barColor := st.PlanBar
		if row.Task.IsGroup() {
			barColor = st.GroupBar
		}
		if row.Task.Color != "" {
			barColor = row.Task.Color
		}
		barY := y + (st.RowHeight-barH)/2
		fmt.Fprintf(svg, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="2" fill="%s"/>`+"\n",
			st.LabelWidth+row.PlanBar.X, barY, row.PlanBar.W, barH, barColor)

		if row.ActualBar != nil && row.ActualBar.W > 0 {
			overlayY := y + (st.RowHeight-overlayH)/2
			fmt.Fprintf(svg, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="2" fill="%s"/>`+"\n",
				st.LabelWidth+row.ActualBar.X, overlayY, row.ActualBar.W, overlayH, st.ActualBar)
		}
	}
}

// writeLinks draws each dependency as an elbow from the predecessor bar end
// to the successor bar start.
func writeLinks(svg *strings.Builder, chart *layout.Chart, st Style) {
	for _, link := range chart.Links {
		fromY := st.HeaderHeight + (float64(link.FromRow)+0.5)*st.RowHeight
		toY := st.HeaderHeight + (float64(link.ToRow)+0.5)*st.RowHeight
		midX := st.LabelWidth + link.FromX + 6
		fmt.Fprintf(svg, `<path d="M%.1f,%.1f L%.1f,%.1f L%.1f,%.1f L%.1f,%.1f" stroke="#888888" fill="none"/>`+"\n",
			st.LabelWidth+link.FromX, fromY, midX, fromY, midX, toY, st.LabelWidth+link.ToX, toY)
	}
}

func writeToday(svg *strings.Builder, tl *timeline.Timeline, cellWidth float64, bodyH float64, today time.Time, st Style) {
	x := timeline.DateToX(today, tl.Start, tl.Zoom, cellWidth)
	if x < 0 || x > tl.Width(cellWidth) {
		return
	}
	fmt.Fprintf(svg, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-dasharray="4 3"/>`+"\n",
		st.LabelWidth+x, st.HeaderHeight, st.LabelWidth+x, st.HeaderHeight+bodyH, st.Today)
}

func writeScurve(svg *strings.Builder, series *scurve.Series, bodyH float64, st Style) {
	if len(series.Points) == 0 {
		return
	}
	toY := func(pct float64) float64 {
		return st.HeaderHeight + bodyH - pct/100*bodyH
	}

	var plan, actual strings.Builder
	for i, p := range series.Points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&plan, "%s%.1f,%.1f ", cmd, st.LabelWidth+p.X, toY(p.Plan))
	}
	first := true
	for _, p := range series.Points {
		if !series.HasActual(p.Date) {
			break
		}
		cmd := "L"
		if first {
			cmd = "M"
			first = false
		}
		fmt.Fprintf(&actual, "%s%.1f,%.1f ", cmd, st.LabelWidth+p.X, toY(p.Actual))
	}

	fmt.Fprintf(svg, `<path d="%s" stroke="%s" stroke-width="2" fill="none"/>`+"\n",
		strings.TrimSpace(plan.String()), st.ScurvePlan)
	if actual.Len() > 0 {
		fmt.Fprintf(svg, `<path d="%s" stroke="%s" stroke-width="2" fill="none"/>`+"\n",
			strings.TrimSpace(actual.String()), st.ScurveActual)
	}
}

// escapeXML escapes the characters that would break SVG text content.
func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

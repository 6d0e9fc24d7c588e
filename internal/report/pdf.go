// Package report renders a completed decision into a downloadable PDF.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/clearlead/decisio/internal/decision/domain"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"go.uber.org/fx"
)

type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

// Render writes the decision's title, each step with its score and
// insights, and the final report block.
func (r *Renderer) Render(d domain.Decision) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(12, "Decision Report", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(16,
		col.New(12).Add(
			text.New(d.Title, props.Text{Size: 14, Style: fontstyle.Bold}),
			text.New(d.CreatedAt.Format(time.RFC1123), props.Text{Top: 7, Size: 9}),
		),
	)

	for i, step := range d.Steps {
		m.AddRow(10,
			text.NewCol(9, fmt.Sprintf("%d. %s", i+1, step.Name), props.Text{Style: fontstyle.Bold, Size: 11}),
			text.NewCol(3, stepScore(step), props.Text{Size: 11, Align: align.Right}),
		)
		if step.Input != "" {
			m.AddRow(14, text.NewCol(12, step.Input, props.Text{Size: 9}))
		}
		if step.Insights != nil && step.Insights.Insights != "" {
			m.AddRow(12, text.NewCol(12, "Insight: "+step.Insights.Insights, props.Text{Size: 9, Style: fontstyle.Italic}))
		}
	}

	if fr := d.FinalReport; fr != nil {
		m.AddRow(14,
			text.NewCol(12, fmt.Sprintf("Overall Score: %.0f / 100", fr.OverallScore), props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Top:   4,
			}),
		)
		m.AddRow(10, text.NewCol(12, "Style: "+fr.Style, props.Text{Size: 9}))
		m.AddRow(10, text.NewCol(12, "Alignment: "+fr.Alignment, props.Text{Size: 9}))
		m.AddRow(12, text.NewCol(12, "Risks: "+fr.RiskSummary, props.Text{Size: 9}))
		m.AddRow(12, text.NewCol(12, "Coaching Tip: "+fr.CoachingTip, props.Text{Size: 9}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func stepScore(step domain.Step) string {
	if step.Insights == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f / 100", step.Insights.Score)
}

var Module = fx.Module("report",
	fx.Provide(NewRenderer),
)

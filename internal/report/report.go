// Package report は各段階の実行結果を人が読む形式で出力する
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/douhashi/issuepipe/internal/pipeline"
)

// Printer は結果の出力先とスタイルを保持する
type Printer struct {
	w       io.Writer
	heading lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	errs    lipgloss.Style
	dim     lipgloss.Style
}

// NewPrinter は出力先の端末に合わせたスタイルでPrinterを作成する
// 端末以外への出力では装飾は付かない
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
		errs:    r.NewStyle().Foreground(lipgloss.Color("196")),
		dim:     r.NewStyle().Faint(true),
	}
}

// Fetch は取得結果を出力する
func (p *Printer) Fetch(r *pipeline.FetchResult) {
	p.line(p.heading.Render("Fetch summary"))
	p.field("repository", r.Repository.NameWithOwner())
	if len(r.Saved) == 0 {
		p.field("saved", p.dim.Render("no open issues"))
		return
	}
	p.field("saved", p.ok.Render(fmt.Sprintf("%d issues", len(r.Saved))))
	p.field("directory", r.Dir)
}

// Close はクローズ結果を出力する
func (p *Printer) Close(r *pipeline.CloseResult) {
	title := "Close summary"
	if r.DryRun {
		title += " (dry run)"
	}
	p.line(p.heading.Render(title))
	p.field("repository", r.Repository.NameWithOwner())
	p.bucket("completed", r.Accepted)
	p.bucket("not planned", r.Blocked)

	failed := r.TotalFailed()
	if failed > 0 {
		p.field("failures", p.errs.Render(fmt.Sprintf("%d", failed)))
	} else {
		p.field("failures", "0")
	}
}

func (p *Printer) bucket(label string, b pipeline.BucketResult) {
	value := p.ok.Render(fmt.Sprintf("%d", len(b.Closed)))
	switch {
	case b.Missing:
		value += " " + p.dim.Render("(folder not found)")
	case b.Files == 0:
		value += " " + p.dim.Render("(folder empty)")
	}
	if len(b.Skipped) > 0 {
		value += " " + p.warn.Render(fmt.Sprintf("(%d skipped)", len(b.Skipped)))
	}
	p.field("closed as "+label, value)

	if len(b.Failed) > 0 {
		nums := make([]string, len(b.Failed))
		for i, n := range b.Failed {
			nums[i] = fmt.Sprintf("#%d", n)
		}
		p.field("  failed", p.errs.Render(strings.Join(nums, " ")))
	}
}

// Archive は変換結果を出力する
func (p *Printer) Archive(r *pipeline.ArchiveResult) {
	p.line(p.heading.Render("Archive summary"))
	if !r.AcceptedFound {
		p.field("converted", p.dim.Render("accepted folder not found"))
	} else {
		p.field("converted", p.ok.Render(fmt.Sprintf("%d", len(r.Converted))))
	}
	if len(r.Failed) > 0 {
		p.field("failed", p.errs.Render(fmt.Sprintf("%d", len(r.Failed))))
	}
	if len(r.Skipped) > 0 {
		p.field("skipped", p.warn.Render(fmt.Sprintf("%d", len(r.Skipped))))
	}
	p.field("appeals", r.AppealsDir)
	p.field("removed", fmt.Sprintf("%d folders", len(r.Removed)))
}

func (p *Printer) field(name, value string) {
	p.line(fmt.Sprintf("  %-20s %s", name+":", value))
}

func (p *Printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

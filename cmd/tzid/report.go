package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/codeGROOVE-dev/tzid/pkg/tzconvert"
	"github.com/codeGROOVE-dev/tzid/pkg/tzresolve"
	"github.com/fatih/color"
)

type reporter struct {
	out      io.Writer
	now      time.Time
	resolved *color.Color
	fallback *color.Color
	failed   *color.Color
	dim      *color.Color
}

func newReporter(out io.Writer, now time.Time) *reporter {
	return &reporter{
		out:      out,
		now:      now,
		resolved: color.New(color.FgGreen),
		fallback: color.New(color.FgYellow),
		failed:   color.New(color.FgRed, color.Bold),
		dim:      color.New(color.FgHiBlack),
	}
}

// line prints one identifier and how it resolved.
func (p *reporter) line(tzid string, res tzresolve.Result, err error) {
	if err != nil {
		reason := err.Error()
		var uncertain *tzresolve.UncertainError
		if errors.As(err, &uncertain) {
			reason = "no strategy matched"
		}
		fmt.Fprintf(p.out, "%s  %q  %s\n", p.failed.Sprint("FAIL"), tzid, p.dim.Sprint(reason))
		return
	}

	status := p.resolved.Sprint("OK  ")
	via := fmt.Sprintf("%s/%s", res.Stage, res.Strategy)
	if res.Stage == tzresolve.StageDefault {
		status = p.fallback.Sprint("DEF ")
		via = string(res.Stage)
	}

	offset := tzconvert.CurrentOffset(res.Reference.Location(), p.now)
	fmt.Fprintf(p.out, "%s  %q -> %s %s %s\n",
		status,
		tzid,
		res.Reference.Name(),
		tzconvert.FormatUTCOffset(offset),
		p.dim.Sprintf("[%s]", via),
	)
}

func (p *reporter) summary(total, fallbacks, failures int) {
	fmt.Fprintf(p.out, "\n%d identifiers: %s resolved, %s defaulted, %s failed\n",
		total,
		p.resolved.Sprint(total-fallbacks-failures),
		p.fallback.Sprint(fallbacks),
		p.failed.Sprint(failures),
	)
}

package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agrifaas/farmledger/internal/config"
	"github.com/agrifaas/farmledger/internal/export"
	"github.com/agrifaas/farmledger/internal/journal"
	"github.com/agrifaas/farmledger/internal/model"
	"github.com/agrifaas/farmledger/internal/reports"
)

// outputFlags select how a report table is written.
type outputFlags struct {
	format string
	out    string
	style  string
	width  int
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "text", "output format: text, csv, xlsx or md")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "write to this file instead of stdout")
	cmd.Flags().StringVar(&o.style, "style", "auto", "markdown terminal style (auto, dark, light, notty, raw)")
	cmd.Flags().IntVar(&o.width, "width", 100, "markdown terminal wrap width")
}

// emit writes t in the selected format to --out or stdout. Markdown on stdout
// is rendered for the terminal unless --style raw.
func (o *outputFlags) emit(cmd *cobra.Command, t reports.Table, currency string) error {
	format, err := export.ParseFormat(o.format)
	if err != nil {
		return err
	}

	if o.out != "" {
		f, err := os.Create(o.out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", o.out, err)
		}
		if err := export.Write(f, t, format, currency); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", o.out, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", o.out)
		return nil
	}

	w := cmd.OutOrStdout()
	switch {
	case format.Binary():
		return fmt.Errorf("%s output needs --out", format)
	case format == export.FormatMarkdown && o.style != "raw":
		style := o.style
		if style == "auto" {
			style = ""
		}
		rendered, err := export.Render(export.Markdown(t, currency), style, o.width)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, rendered)
		return err
	}
	return export.Write(w, t, format, currency)
}

// filterFlags build the model.Filter shared by every report.
type filterFlags struct {
	year     int
	from     string
	to       string
	asOf     string
	plot     string
	season   string
	currency string
}

func (f *filterFlags) register(cmd *cobra.Command, pointInTime bool) {
	cmd.Flags().IntVar(&f.year, "year", 0, "fiscal year (starting in this calendar year)")
	if pointInTime {
		cmd.Flags().StringVar(&f.asOf, "as-of", "", "report date YYYY-MM-DD (default: end of --year, else all entries)")
	} else {
		cmd.Flags().StringVar(&f.from, "from", "", "first day YYYY-MM-DD")
		cmd.Flags().StringVar(&f.to, "to", "", "last day YYYY-MM-DD")
	}
	cmd.Flags().StringVar(&f.plot, "plot", "", "only lines tagged with this plot")
	cmd.Flags().StringVar(&f.season, "season", "", "only lines tagged with this season")
	cmd.Flags().StringVar(&f.currency, "currency", "", "report currency (default: workspace currency)")
}

func (f *filterFlags) filter(fiscal config.FiscalConfig) (model.Filter, error) {
	flt := model.AllTime()
	if f.year != 0 {
		y, err := fiscal.Year(f.year)
		if err != nil {
			return model.Filter{}, err
		}
		flt = y
	}
	for _, b := range []struct {
		value string
		name  string
		set   func(time.Time)
	}{
		{f.from, "--from", func(t time.Time) { flt.Start = t }},
		{f.to, "--to", func(t time.Time) { flt.End = t }},
		{f.asOf, "--as-of", func(t time.Time) { flt.Start, flt.End = time.Time{}, t }},
	} {
		if b.value == "" {
			continue
		}
		t, err := time.Parse(journal.DateFormat, b.value)
		if err != nil {
			return model.Filter{}, fmt.Errorf("invalid %s %q: %w", b.name, b.value, err)
		}
		b.set(t)
	}
	if !flt.Start.IsZero() && !flt.End.IsZero() && flt.End.Before(flt.Start) {
		return model.Filter{}, fmt.Errorf("--to %s is before --from %s", flt.End.Format(journal.DateFormat), flt.Start.Format(journal.DateFormat))
	}
	if f.plot != "" {
		flt = flt.WithPlot(f.plot)
	}
	if f.season != "" {
		flt = flt.WithSeason(f.season)
	}
	return flt, nil
}

// describe renders a filter for report titles.
func describe(f model.Filter, pointInTime bool) string {
	var parts []string
	switch {
	case pointInTime && !f.End.IsZero():
		parts = append(parts, "as of "+f.End.Format(journal.DateFormat))
	case pointInTime:
	case !f.Start.IsZero() && !f.End.IsZero():
		parts = append(parts, f.Start.Format(journal.DateFormat)+" to "+f.End.Format(journal.DateFormat))
	case !f.Start.IsZero():
		parts = append(parts, "from "+f.Start.Format(journal.DateFormat))
	case !f.End.IsZero():
		parts = append(parts, "to "+f.End.Format(journal.DateFormat))
	}
	if f.PlotID != "" && f.PlotID != model.All {
		parts = append(parts, "plot "+f.PlotID)
	}
	if f.SeasonID != "" && f.SeasonID != model.All {
		parts = append(parts, "season "+f.SeasonID)
	}
	return strings.Join(parts, ", ")
}

func titled(t reports.Table, f model.Filter, pointInTime bool, currency string) reports.Table {
	suffix := describe(f, pointInTime)
	if suffix != "" {
		t.Title += ", " + suffix
	}
	t.Title += " (" + currency + ")"
	return t
}

package cmd

import (
	"github.com/pterm/pterm"

	"github.com/Kim2091/RTX-Remix-Downloader/remix/fetcher"
)

// termProgress renders transfer progress with pterm: a byte-based
// progress bar when the content length is known, a spinner otherwise.
type termProgress struct {
	bar     *pterm.ProgressbarPrinter
	spinner *pterm.SpinnerPrinter
}

var _ fetcher.ProgressReporter = (*termProgress)(nil)

func (p *termProgress) Start(name string, total int64) {
	if total > 0 {
		p.bar, _ = pterm.DefaultProgressbar.
			WithTitle("Downloading " + name).
			WithTotal(int(total)).
			WithShowCount(false).
			Start()
		return
	}
	p.spinner, _ = pterm.DefaultSpinner.Start("Downloading " + name)
}

func (p *termProgress) Update(complete, total int64) {
	if p.bar == nil {
		return
	}
	if delta := int(complete) - p.bar.Current; delta > 0 {
		p.bar.Add(delta)
	}
}

func (p *termProgress) Done() {
	if p.bar != nil {
		p.bar, _ = p.bar.Stop()
		p.bar = nil
	}
	if p.spinner != nil {
		p.spinner.Success("Download complete")
		p.spinner = nil
	}
}

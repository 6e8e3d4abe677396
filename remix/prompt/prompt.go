// Package prompt implements the interactive question sequence. Every
// prompt reads a single line, parses a 1-based numeric selection and
// silently substitutes a documented default when the input is invalid or
// out of range. There is no re-prompting.
package prompt

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/Kim2091/RTX-Remix-Downloader/remix"
)

// Prompter reads answers from a line-based input stream, os.Stdin in
// production.
type Prompter struct {
	in *bufio.Scanner
}

func New(r io.Reader) *Prompter {
	return &Prompter{in: bufio.NewScanner(r)}
}

// Choose prints a numbered menu and returns the zero-based index of the
// selected option. Invalid input selects def and echoes the substitution.
func (p *Prompter) Choose(title string, options []string, def int) int {
	pterm.Println()
	pterm.Println(title)
	for i, opt := range options {
		pterm.Printfln("%s. %s", pterm.Yellow(strconv.Itoa(i+1)), opt)
	}

	n, err := strconv.Atoi(strings.TrimSpace(p.readLine()))
	if err != nil || n < 1 || n > len(options) {
		pterm.Printfln("Invalid selection, defaulting to %s", options[def])
		return def
	}
	return n - 1
}

// Pause prints msg and blocks until one line of input arrives, keeping
// the terminal window open for users who launched the tool by double
// clicking it.
func (p *Prompter) Pause(msg string) {
	pterm.Println()
	pterm.Print(msg)
	p.readLine()
}

// Selection runs the full question sequence. Defaults: stable stream,
// x86 architecture and the first build type.
func (p *Prompter) Selection(buildTypes []string) remix.BuildSelection {
	stream := p.Choose("Choose build stream:", []string{
		"Stable Release (Use these for the most stable experience)",
		"Development Build (Use this for the latest features, but it may be unstable)",
	}, 0)

	arch := p.Choose("Choose game type:", []string{
		"32-bit (x86) Games (Most older games)",
		"64-bit (x64) Games (More modern games)",
	}, 0)

	buildType := p.Choose("Choose a build type (type the number and press Enter):", buildTypes, 0)

	return remix.BuildSelection{
		Stream:    remix.Stream(stream),
		Arch:      remix.Arch(arch),
		BuildType: buildTypes[buildType],
	}
}

func (p *Prompter) readLine() string {
	if p.in.Scan() {
		return p.in.Text()
	}
	return ""
}

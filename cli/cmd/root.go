package cmd

import (
	"context"
	"fmt"
	stdlog "log"
	"os"

	"github.com/go-logr/stdr"
	"github.com/pterm/pterm"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Kim2091/RTX-Remix-Downloader/remix"
	"github.com/Kim2091/RTX-Remix-Downloader/remix/config"
	"github.com/Kim2091/RTX-Remix-Downloader/remix/fetcher"
	"github.com/Kim2091/RTX-Remix-Downloader/remix/installer"
	"github.com/Kim2091/RTX-Remix-Downloader/remix/prompt"
	"github.com/Kim2091/RTX-Remix-Downloader/remix/resolver"
)

var Verbosity bool

var rootCmd = &cobra.Command{
	Use:   "remix-downloader",
	Short: "remix-downloader - download and assemble the latest RTX Remix runtime",
	Long: `remix-downloader fetches the newest RTX Remix runtime from the official
GitHub repositories, either a tagged stable release or the latest CI build,
and assembles a ready-to-use install in a "remix" folder in the current
directory. All choices are made through interactive prompts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInstall(cmd.Context())
	},
}

func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&Verbosity, "verbose", "v", false, "verbose output")

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Printfln("Error: %s", err)
		// Hold the terminal so the message survives a double-click launch.
		prompt.New(os.Stdin).Pause("Press Enter to exit...")
		os.Exit(1)
	}
}

func runInstall(ctx context.Context) error {
	if Verbosity {
		log.SetLevel(log.DebugLevel)
		stdr.SetVerbosity(5)
	}
	remix.SetLogger(stdr.New(stdlog.New(os.Stderr, "remix", stdlog.LstdFlags)))

	pterm.Println(pterm.Green(pterm.Bold.Sprint("RTX Remix Download Script " + version)))

	cfg := config.New()
	p := prompt.New(os.Stdin)
	sel := p.Selection(cfg.BuildTypes)
	log.Debugf("selected stream=%s arch=%s buildType=%s", sel.Stream, sel.Arch, sel.BuildType)

	ins := installer.New(cfg, resolver.New(cfg), fetcher.New(cfg.UserAgent, &termProgress{}))
	dir, err := ins.Run(ctx, sel)
	if err != nil {
		return err
	}

	pterm.Success.Println("Download complete!")
	pterm.Println("You can find the latest RTX Remix install in:")
	pterm.Println(clickablePath(dir))
	pterm.Println(pterm.Yellow("RTX Remix install guide:"))
	pterm.Println(pterm.Cyan(cfg.GuideURL))

	p.Pause("Press Enter to exit...")
	return nil
}

// clickablePath wraps path in an OSC 8 hyperlink so capable terminals
// render it as a clickable file:// link.
func clickablePath(path string) string {
	return pterm.Cyan(fmt.Sprintf("\x1b]8;;file://%s\x07%s\x1b]8;;\x07", path, path))
}

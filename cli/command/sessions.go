// (c) Siemens AG 2025
//
// SPDX-License-Identifier: MIT

// Provides the "caplog sessions" command for listing the capture sessions
// under the capture log root, with the current and last sessions marked.

package command

import (
	"os"

	"github.com/siemens/caplog"
	"github.com/siemens/caplog/cli"
	"github.com/spf13/cobra"
	"github.com/thediveo/go-plugger/v3"
	"github.com/thediveo/klo"
)

// Builtin custom-columns templates
const (
	// SessionListTemplate defines the custom columns when listing capture
	// sessions.
	SessionListTemplate = "SESSION:{.Name},STARTED:{.Started},FILES:{.Files},SIZE:{.Size},MARK:{.Mark}"
	// SessionWideListTemplate is like SessionListTemplate, but additionally
	// tacks on the system and tag columns.
	SessionWideListTemplate = SessionListTemplate + ",SYSTEM:{.System},TAG:{.Tag}"

	// SessionNameListTemplate for handling "-o name" and only showing a
	// custom "name" column; this template should be used with no headers
	// shown, as kubectl and others do.
	SessionNameListTemplate = "NAME:{.Name}"
)

// sessionsCmd defines the "caplog sessions" command.
var sessionsCmd = &cobra.Command{
	Use:     "sessions [flags]",
	Aliases: []string{"ls"},
	Short:   "List capture sessions",
	RunE:    sessions,
}

func init() {
	plugger.Group[cli.SetupCLI]().Register(SessionsSetupCLI, plugger.WithPlugin("sessions"))
}

// SessionsSetupCLI adds the “sessions” command.
func SessionsSetupCLI(cmd *cobra.Command) {
	cmd.AddCommand(sessionsCmd)
	listingFlags(sessionsCmd, "{.Name}")
}

// sessions lists the session directories under the capture log root for
// output using a template.
func sessions(cmd *cobra.Command, args []string) error {
	cfg := Settings()
	prn, err := getPrinter(cmd, &klo.Specs{
		DefaultColumnSpec: SessionListTemplate,
		WideColumnSpec:    SessionWideListTemplate,
	}, SessionNameListTemplate)
	if err != nil {
		return err
	}
	summaries, err := caplog.Summarize(cfg.Root, cfg.FilePattern)
	if err != nil {
		return err
	}
	prn.Fprint(os.Stdout, summaries)
	return nil
}

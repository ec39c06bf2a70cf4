package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobtracker/internal/proof"
)

var proofCmd = &cobra.Command{
	Use:   "proof",
	Short: "Collect submission links and ship the project",
}

var proofShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show links, their validity and the ship readiness",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := setup()
		defer d.close()

		s := d.gate.Submission()
		out := cmd.OutOrStdout()
		for _, link := range []struct{ name, value string }{
			{proof.LinkLovable, s.LovableURL},
			{proof.LinkGitHub, s.GitHubURL},
			{proof.LinkDeployed, s.DeployedURL},
		} {
			fmt.Fprintf(out, "%-9s %-6s %s\n", link.name, validity(link.value), link.value)
		}
		fmt.Fprintf(out, "\nStatus: %s\nTests passed: %t\nReady to ship: %t\n",
			s.Stage(), d.checklist.AllPassed(), d.gate.CanShip())
	},
}

var proofSetCmd = &cobra.Command{
	Use:       "set <lovable|github|deployed> <url>",
	Short:     "Store a submission link",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{proof.LinkLovable, proof.LinkGitHub, proof.LinkDeployed},
	Run: func(_ *cobra.Command, args []string) {
		d := setup()
		defer d.close()

		if err := d.gate.SetLink(args[0], args[1]); err != nil {
			d.logger.Fatal("storing link", zap.String("link", args[0]), zap.Error(err))
		}

		if !proof.ValidateURL(args[1]) {
			d.logger.Warn("link stored but it is not a valid http(s) url",
				zap.String("link", args[0]),
				zap.String("value", args[1]),
			)
			return
		}
		d.logger.Info("link stored", zap.String("link", args[0]))
	},
}

var proofShipCmd = &cobra.Command{
	Use:   "ship",
	Short: "Mark the project as shipped once every check passed and all links are valid",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		d := setup()
		defer d.close()

		shipped, err := d.gate.Ship()
		if err != nil {
			d.logger.Fatal("shipping", zap.Error(err))
		}
		if !shipped {
			d.logger.Info("not ready to ship",
				zap.Bool("tests_passed", d.checklist.AllPassed()),
				zap.Bool("links_valid", d.gate.Submission().LinksValid()),
			)
			return
		}
		d.logger.Info("shipped")
	},
}

var proofTextCmd = &cobra.Command{
	Use:   "text",
	Short: "Print the submission text for copying",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		d := setup()
		defer d.close()

		fmt.Fprint(cmd.OutOrStdout(), d.gate.SubmissionText())
	},
}

func init() {
	rootCmd.AddCommand(proofCmd)
	proofCmd.AddCommand(proofShowCmd, proofSetCmd, proofShipCmd, proofTextCmd)
}

func validity(link string) string {
	switch {
	case link == "":
		return "empty"
	case proof.ValidateURL(link):
		return "ok"
	default:
		return "bad"
	}
}

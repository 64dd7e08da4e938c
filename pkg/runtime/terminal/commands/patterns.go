package commands

import (
	"fmt"

	"github.com/dp-tools/privacy-atlas/pkg/services/patterns"
	"github.com/spf13/cobra"
)

type PatternsCmd struct {
	rulesPath string
}

func NewPatternsCmd() *cobra.Command {
	pc := &PatternsCmd{}
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the active detection rules",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.rulesPath, "rules", "", "Path to a detection rules file (defaults to the builtin rules)")

	return cmd
}

func (pc *PatternsCmd) run(cmd *cobra.Command, _ []string) error {
	registry := patterns.Builtin()
	if pc.rulesPath != "" {
		loaded, err := patterns.Load(pc.rulesPath)
		if err != nil {
			return err
		}
		registry = loaded
	}

	for _, rule := range registry.Rules() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %s)\n  %s\n",
			rule.DataType, rule.Classification, rule.GDPRCategory, rule.Matcher.String())
	}

	return nil
}

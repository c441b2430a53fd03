package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keyrates/toolschema/fragments"
)

func newPromptCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Fetch the key-rates API documents and print the system prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kr := a.cfg.KeyRates
			p := fragments.NewProvider(kr.URL, kr.AttrsURL, kr.NamesURL,
				fragments.WithLogger(a.logger),
				fragments.WithRate(a.cfg.Limits.Rate, a.cfg.Limits.Burst),
			)

			prompt, err := p.Prompt(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), prompt)
			return err
		},
	}
}

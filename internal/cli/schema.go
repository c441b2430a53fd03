package cli

import (
	"github.com/spf13/cobra"

	"github.com/keyrates/toolschema"
	"github.com/keyrates/toolschema/protocol"
)

func newSchemaCommand(a *app) *cobra.Command {
	var vendor string

	cmd := &cobra.Command{
		Use:   "schema [tool...]",
		Short: "Print the compiled schemas of the built-in tools",
		Example: `  toolschema schema --vendor gemini
  toolschema schema --vendor openai http_request`,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := protocol.ParseVendor(vendor)
			if err != nil {
				return err
			}
			reg, err := a.registry()
			if err != nil {
				return err
			}
			schemas, err := reg.Schemas(args...)
			if err != nil {
				return err
			}
			rendered, err := toolschema.Render(v, schemas)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), rendered)
		},
	}

	cmd.Flags().StringVar(&vendor, "vendor", string(protocol.VendorJSONSchema),
		"output format: gemini, openai, fantasy, gigachat or jsonschema")
	return cmd
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keyrates/toolschema/protocol"
)

func newCallCommand(a *app) *cobra.Command {
	var vendor string

	cmd := &cobra.Command{
		Use:   "call <tool> [json-arguments]",
		Short: "Invoke a built-in tool through the middleware stack",
		Example: `  toolschema call http_request '{"method":"GET","url":"http://127.0.0.1:23232/openapi.json"}'`,
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			call := &protocol.Call{Name: args[0]}
			if len(args) == 2 {
				if !json.Valid([]byte(args[1])) {
					return fmt.Errorf("arguments for %s are not valid JSON", args[0])
				}
				call.Arguments = json.RawMessage(args[1])
			}
			if vendor != "" {
				v, err := protocol.ParseVendor(vendor)
				if err != nil {
					return err
				}
				call.Vendor = v
			}

			reg, err := a.registry()
			if err != nil {
				return err
			}
			res, err := reg.Invoke(cmd.Context(), call)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&vendor, "vendor", "", "vendor to attribute the call to")
	return cmd
}

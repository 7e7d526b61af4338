package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var showTier bool

	cmd := &cobra.Command{
		Use:   "ask <query...>",
		Short: "Resolve one query and print the reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			res := a.Chat.Resolve(cmd.Context(), strings.Join(args, " "))
			if showTier {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n", res.Tier)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Reply)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showTier, "tier", false, "print the tier that produced the reply")
	return cmd
}

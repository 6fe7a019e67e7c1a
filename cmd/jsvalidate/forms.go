package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

func newFormsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List the defined forms by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, _, err := flags.registry()
			if err != nil {
				return err
			}
			names := reg.Names()
			slices.Sort(names)
			for _, name := range names {
				form, err := reg.Form(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d attributes\n", name, len(form.Rules))
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"falcon-signature/ntru/keys"
)

func newInspectCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the stored secret key, optionally with its LDL tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			priv, err := keys.LoadPrivate(v.GetString("keys-dir"))
			if err != nil {
				return err
			}
			sk, err := priv.SecretKey()
			if err != nil {
				return err
			}
			out := sk.String()
			if v.GetBool("tree") {
				out = sk.Detailed()
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().Bool("tree", false, "include the basis, Gram matrix and LDL tree")
	return cmd
}

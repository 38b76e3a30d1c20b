package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"falcon-signature/falcon"
	"falcon-signature/ntru"
	"falcon-signature/ntru/keys"
)

func newGenCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a key pair into --keys-dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := falcon.KeyGenOptions{
				Workers:   v.GetInt("workers"),
				MaxTrials: v.GetInt("max-trials"),
			}
			if seed := v.GetString("seed"); seed != "" {
				opts.Rand = ntru.NewRNG([]byte(seed))
			}
			sk, pk, err := falcon.GenerateKeyPairContext(cmd.Context(), v.GetInt("degree"), opts)
			if err != nil {
				return err
			}
			dir := v.GetString("keys-dir")
			if err := keys.SavePrivate(dir, keys.FromSecretKey(sk)); err != nil {
				return err
			}
			if err := keys.SavePublic(dir, keys.FromPublicKey(pk)); err != nil {
				return err
			}
			return printKey(cmd.OutOrStdout(), dir, pk)
		},
	}
	cmd.Flags().Int("workers", 1, "concurrent key candidate searches")
	cmd.Flags().Int("max-trials", 0, "give up after this many rejected candidates (0: never)")
	cmd.Flags().String("seed", "", "deterministic seed (testing only)")
	return cmd
}

func printKey(w io.Writer, dir string, pk *falcon.PublicKey) error {
	par := pk.Params()
	_, err := fmt.Fprintf(w, "generated n=%d key pair in %s (signature length %d bytes)\n", par.N, dir, par.SigByteLen)
	return err
}

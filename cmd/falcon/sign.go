package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"falcon-signature/ntru/keys"
)

func newSignCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message and write signature.json into --keys-dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := messageFrom(v)
			if err != nil {
				return err
			}
			dir := v.GetString("keys-dir")
			priv, err := keys.LoadPrivate(dir)
			if err != nil {
				return err
			}
			sk, err := priv.SecretKey()
			if err != nil {
				return err
			}
			sig, err := sk.Sign(msg)
			if err != nil {
				return err
			}
			par := sk.Params()
			if err := keys.Save(dir, keys.NewSignature(par.N, par.SigByteLen, msg, sig)); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), keys.EncodeBase64(sig))
			return err
		},
	}
	cmd.Flags().StringP("message", "m", "", "message to sign")
	cmd.Flags().String("in", "", "read the message from this file instead")
	return cmd
}

func messageFrom(v *viper.Viper) ([]byte, error) {
	if path := v.GetString("in"); path != "" {
		return os.ReadFile(path)
	}
	msg := v.GetString("message")
	if msg == "" {
		return nil, errors.New("one of --message or --in is required")
	}
	return []byte(msg), nil
}

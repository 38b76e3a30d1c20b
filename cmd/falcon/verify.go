package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"falcon-signature/ntru/keys"
)

var errInvalidSignature = errors.New("signature rejected")

func newVerifyCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify signature.json (or --message/--signature) against public.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := v.GetString("keys-dir")
			pub, err := keys.LoadPublic(dir)
			if err != nil {
				return err
			}
			pk, err := pub.PublicKey()
			if err != nil {
				return err
			}
			msg, sig, err := signedMessage(v, dir)
			if err != nil {
				return err
			}
			if !pk.Verify(msg, sig) {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
				return errInvalidSignature
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return err
		},
	}
	cmd.Flags().StringP("message", "m", "", "message (with --signature)")
	cmd.Flags().String("signature", "", "base64 signature (with --message)")
	return cmd
}

func signedMessage(v *viper.Viper, dir string) (msg, sig []byte, err error) {
	if s := v.GetString("signature"); s != "" {
		sig, err = keys.DecodeBase64(s)
		if err != nil {
			return nil, nil, fmt.Errorf("decode --signature: %w", err)
		}
		return []byte(v.GetString("message")), sig, nil
	}
	bundle, err := keys.Load(dir)
	if err != nil {
		return nil, nil, err
	}
	return bundle.Decode()
}

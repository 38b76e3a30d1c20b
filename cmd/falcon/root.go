package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"falcon-signature/internal/logging"
	"falcon-signature/measureutil"
	"falcon-signature/prof"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("FALCON")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "falcon",
		Short:         "Falcon lattice signatures",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			if path := v.GetString("config"); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config %s: %w", path, err)
				}
			}
			if lvl := v.GetString("log-level"); lvl != "" {
				if err := logging.SetLevel(lvl); err != nil {
					return err
				}
			}
			if v.GetBool("debug") {
				logging.SetDebug(true)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if !v.GetBool("metrics") {
				return nil
			}
			if err := measureutil.Fprint(cmd.ErrOrStderr(), measureutil.SnapshotAndReset()); err != nil {
				return err
			}
			return prof.Fprint(cmd.ErrOrStderr(), prof.SnapshotAndReset())
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "YAML/JSON/TOML config file")
	pf.Int("degree", 512, "ring degree n (power of two in [2, 1024])")
	pf.String("keys-dir", "falcon_keys", "directory holding private.json, public.json and signature.json")
	pf.Bool("debug", false, "debug logging")
	pf.String("log-level", "", "log level (trace, debug, info, warn, error)")
	pf.Bool("metrics", false, "print counters and stage timings to stderr when the command ends")

	root.AddCommand(newGenCmd(v), newSignCmd(v), newVerifyCmd(v), newInspectCmd(v))
	return root
}

// bindFlags makes every flag of fs, inherited ones included, a viper key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err == nil {
			err = v.BindPFlag(f.Name, f)
		}
	})
	return err
}

package commands

import (
	"strings"

	"github.com/ldksplicing/ldk-sample/pkg/analyzer"
	"github.com/ldksplicing/ldk-sample/pkg/flags"
	"github.com/ldksplicing/ldk-sample/pkg/logging"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	logger  logging.KVLogger = logging.NoopKVLogger{}
	verbose bool
)

// ErrReported is returned by commands that already printed a failure report,
// so main only has to set the exit code.
var ErrReported = errors.New("failure reported")

// RootCmd is the root command for rpcdecode. It is called once in the main
// function.
var RootCmd = &cobra.Command{
	Use:           "rpcdecode",
	Short:         "Decode and inspect bitcoind JSON-RPC responses",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		viper.SetEnvPrefix(flags.EnvPrefix)
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		if file := viper.GetString(flags.Config); file != "" {
			viper.SetConfigFile(file)
		} else {
			viper.SetConfigName("rpcdecode")
			viper.AddConfigPath(".")
		}
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return errors.Wrap(err, "failed to read config")
			}
		}

		logger, err = logging.New("rpcdecode", viper.GetString(flags.Log_Level), viper.GetString(flags.Log_Format))
		return err
	},
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.String(flags.Config, "", "config file (default ./rpcdecode.yaml)")
	pf.String(flags.Chain, "", "restrict addresses to a network: main, test, testnet4, signet or regtest (default any)")
	pf.String(flags.Log_Level, logging.LevelInfo, "level of logging: debug, info, warn or error")
	pf.String(flags.Log_Format, logging.FormatConsole, "log encoding: console or json")

	RootCmd.AddCommand(
		DecodeCmd,
		FetchCmd,
		VersionCmd,
	)
}

// network returns the configured chain, or nil when any network is accepted.
func network() (*chaincfg.Params, error) {
	chain := viper.GetString(flags.Chain)
	if chain == "" {
		return nil, nil
	}
	return analyzer.NetworkParams(chain)
}

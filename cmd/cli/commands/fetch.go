package commands

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/ldksplicing/ldk-sample/pkg/flags"
	"github.com/ldksplicing/ldk-sample/pkg/parser"
	"github.com/ldksplicing/ldk-sample/pkg/report"
	"github.com/ldksplicing/ldk-sample/pkg/rpcclient"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// FetchCmd calls a node and decodes the live response.
var FetchCmd = &cobra.Command{
	Use:   "fetch <method> [params...]",
	Short: "Call bitcoind and decode the response",
	Long: "Call bitcoind and print a JSON report for the decoded result.\n" +
		"Each param is sent as JSON when it parses as JSON, otherwise as a string.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		method := args[0]
		if !slices.Contains(parser.Methods(), method) {
			return emit(cmd.OutOrStdout(), report.Failure(method, errors.Wrapf(parser.ErrUnknownMethod, "%q", method)))
		}

		params, err := parseParams(args[1:])
		if err != nil {
			return err
		}
		net, err := network()
		if err != nil {
			return err
		}

		client := rpcclient.New(rpcclient.Config{
			URL:      viper.GetString(flags.RPC_URL),
			User:     viper.GetString(flags.RPC_User),
			Password: viper.GetString(flags.RPC_Password),
			Timeout:  viper.GetDuration(flags.RPC_Timeout),
			Network:  net,
		}, logger)

		result, err := client.Call(method, params...)
		if err != nil {
			return emit(cmd.OutOrStdout(), report.Failure(method, err))
		}
		return emit(cmd.OutOrStdout(), report.Build(method, result, net))
	},
}

func init() {
	AddRPCFlags(FetchCmd)
}

// AddRPCFlags exposes the node connection options on cmd.
func AddRPCFlags(cmd *cobra.Command) {
	cmd.Flags().String(flags.RPC_URL, "http://127.0.0.1:8332", "bitcoind JSON-RPC endpoint")
	cmd.Flags().String(flags.RPC_User, "", "RPC username")
	cmd.Flags().String(flags.RPC_Password, "", "RPC password")
	cmd.Flags().Duration(flags.RPC_Timeout, rpcclient.DefaultTimeout, "RPC request timeout")
}

func parseParams(args []string) ([]interface{}, error) {
	params := make([]interface{}, 0, len(args))
	for _, arg := range args {
		if !json.Valid([]byte(arg)) {
			params = append(params, arg)
			continue
		}
		dec := json.NewDecoder(bytes.NewReader([]byte(arg)))
		dec.UseNumber()
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return nil, errors.Wrapf(err, "invalid param %q", arg)
		}
		params = append(params, v)
	}
	return params, nil
}

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ldksplicing/ldk-sample/pkg/parser"
	"github.com/ldksplicing/ldk-sample/pkg/report"
	"github.com/ldksplicing/ldk-sample/pkg/types"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/ybbus/jsonrpc/v2"
)

var envelope bool

// DecodeCmd decodes a saved response body.
var DecodeCmd = &cobra.Command{
	Use:   "decode <method> [file|-]",
	Short: "Decode a saved RPC response",
	Long: "Decode the result of an RPC call read from a file or stdin and print a JSON report.\n\n" +
		"Known methods: " + strings.Join(parser.Methods(), ", "),
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		method := args[0]
		path := "-"
		if len(args) == 2 {
			path = args[1]
		}

		body, err := readInput(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}
		net, err := network()
		if err != nil {
			return err
		}

		r := decodeBody(method, body, net)
		logger.Debug("decoded", "method", method, "ok", r.OK, "warnings", len(r.Warnings))
		return emit(cmd.OutOrStdout(), r)
	},
}

func init() {
	DecodeCmd.Flags().BoolVar(&envelope, "envelope", false, "input is a full JSON-RPC response with result and error members")
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}
	return body, nil
}

func decodeBody(method string, body []byte, net *chaincfg.Params) types.Report {
	raw, err := parser.FromBytes(body)
	if err != nil {
		return report.Failure(method, err)
	}

	if envelope {
		if rpcErr := raw.Get("error"); rpcErr.Exists() && rpcErr.Type != gjson.Null {
			return report.Failure(method, &jsonrpc.RPCError{
				Code:    int(rpcErr.Get("code").Int()),
				Message: rpcErr.Get("message").String(),
			})
		}
		raw = raw.Get("result")
	}

	var opts []parser.Option
	if net != nil {
		opts = append(opts, parser.WithNetwork(net))
	}
	result, err := parser.Decode(method, raw, opts...)
	if err != nil {
		return report.Failure(method, err)
	}
	return report.Build(method, result, net)
}

// emit prints r and turns a failed report into ErrReported.
func emit(w io.Writer, r types.Report) error {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode report")
	}
	fmt.Fprintln(w, string(out))
	if !r.OK {
		return ErrReported
	}
	return nil
}

package report

import (
	"errors"

	"github.com/ldksplicing/ldk-sample/pkg/analyzer"
	"github.com/ldksplicing/ldk-sample/pkg/parser"
	"github.com/ldksplicing/ldk-sample/pkg/types"
	"github.com/ldksplicing/ldk-sample/pkg/utils"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/ybbus/jsonrpc/v2"
)

// Error codes reported in the envelope
const (
	CodeMissingField  = "MISSING_FIELD"
	CodeTypeMismatch  = "TYPE_MISMATCH"
	CodeMalformed     = "MALFORMED"
	CodeOutOfRange    = "OUT_OF_RANGE"
	CodeInvariant     = "INVARIANT_VIOLATION"
	CodeInvalidJSON   = "INVALID_JSON"
	CodeUnknownMethod = "UNKNOWN_METHOD"
	CodeRPCError      = "RPC_ERROR"
	CodeTransport     = "TRANSPORT_ERROR"
)

// WarnUndecodableTx is raised when a decoded response carries a transaction
// hex that wire cannot deserialize.
const WarnUndecodableTx = "UNDECODABLE_TX"

var kindCodes = map[error]string{
	parser.ErrMissingField: CodeMissingField,
	parser.ErrTypeMismatch: CodeTypeMismatch,
	parser.ErrMalformed:    CodeMalformed,
	parser.ErrOutOfRange:   CodeOutOfRange,
	parser.ErrInvariant:    CodeInvariant,
}

// ErrorCode maps a decode or transport error to its envelope code.
func ErrorCode(err error) string {
	if kind := parser.KindOf(err); kind != nil {
		return kindCodes[kind]
	}

	var rpcErr *jsonrpc.RPCError
	switch {
	case errors.Is(err, parser.ErrInvalidJSON):
		return CodeInvalidJSON
	case errors.Is(err, parser.ErrUnknownMethod):
		return CodeUnknownMethod
	case errors.As(err, &rpcErr):
		return CodeRPCError
	default:
		return CodeTransport
	}
}

// Failure builds the envelope for a failed decode or call.
func Failure(method string, err error) types.Report {
	return types.Report{
		OK:       false,
		Method:   method,
		Warnings: []types.Warning{},
		Error:    &types.ErrorInfo{Code: ErrorCode(err), Message: err.Error()},
	}
}

// Build wraps a decoded response in the envelope, attaching warnings and,
// when the response carries a transaction, a summary of it.
func Build(method string, result any, net *chaincfg.Params) types.Report {
	r := types.Report{
		OK:     true,
		Method: method,
		Result: result,
	}
	if net != nil {
		r.Network = net.Name
	}

	var extra []types.Warning
	if hexStr, ok := txHex(result); ok {
		tx, err := utils.DecodeMsgTx(hexStr)
		if err != nil {
			extra = append(extra, types.Warning{Code: WarnUndecodableTx})
		} else {
			r.Tx = analyzer.SummarizeTx(tx, net)
		}
	}
	if h, ok := result.(chainhash.Hash); ok {
		r.Result = h.String()
	}

	r.Warnings = append(analyzer.GenerateWarnings(result, r.Tx), extra...)
	return r
}

func txHex(result any) (string, bool) {
	switch r := result.(type) {
	case types.FundedTx:
		return r.Hex, true
	case types.RawTx:
		return r.Hex, true
	case types.SignedTx:
		return r.Hex, true
	}
	return "", false
}

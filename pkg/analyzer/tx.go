package analyzer

import (
	"encoding/hex"

	"github.com/ldksplicing/ldk-sample/pkg/types"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
)

// SummarizeTx describes a transaction carried in an RPC response
func SummarizeTx(tx *wire.MsgTx, net *chaincfg.Params) *types.TxSummary {
	if net == nil {
		net = &chaincfg.MainNetParams
	}

	outputs := make([]types.Output, 0, len(tx.TxOut))
	for i, out := range tx.TxOut {
		outputs = append(outputs, types.Output{
			N:               i,
			ValueSats:       out.Value,
			ScriptPubkeyHex: hex.EncodeToString(out.PkScript),
			ScriptType:      ClassifyOutputScript(out.PkScript),
			Address:         GetAddressFromScript(out.PkScript, net),
		})
	}

	return &types.TxSummary{
		Txid:         tx.TxHash().String(),
		Segwit:       tx.HasWitness(),
		Version:      tx.Version,
		Locktime:     tx.LockTime,
		LocktimeType: GetLocktimeType(tx.LockTime),
		RbfSignaling: IsRBFSignaling(tx.TxIn),
		VinCount:     len(tx.TxIn),
		VoutCount:    len(tx.TxOut),
		Vout:         outputs,
	}
}

package analyzer

import "github.com/btcsuite/btcd/txscript"

// Output script types
const (
	ScriptP2PKH    = "p2pkh"
	ScriptP2SH     = "p2sh"
	ScriptP2WPKH   = "p2wpkh"
	ScriptP2WSH    = "p2wsh"
	ScriptP2TR     = "p2tr"
	ScriptOpReturn = "op_return"
	ScriptUnknown  = "unknown"
)

// ClassifyOutputScript determines the script type of an output
func ClassifyOutputScript(scriptPubkey []byte) string {
	n := len(scriptPubkey)
	switch {
	case n == 0:
		return ScriptUnknown

	// OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG
	case n == 25 &&
		scriptPubkey[0] == txscript.OP_DUP &&
		scriptPubkey[1] == txscript.OP_HASH160 &&
		scriptPubkey[2] == txscript.OP_DATA_20 &&
		scriptPubkey[23] == txscript.OP_EQUALVERIFY &&
		scriptPubkey[24] == txscript.OP_CHECKSIG:
		return ScriptP2PKH

	// OP_HASH160 <20 bytes> OP_EQUAL
	case n == 23 &&
		scriptPubkey[0] == txscript.OP_HASH160 &&
		scriptPubkey[1] == txscript.OP_DATA_20 &&
		scriptPubkey[22] == txscript.OP_EQUAL:
		return ScriptP2SH

	// OP_0 <20 bytes>
	case n == 22 && scriptPubkey[0] == txscript.OP_0 && scriptPubkey[1] == txscript.OP_DATA_20:
		return ScriptP2WPKH

	// OP_0 <32 bytes>
	case n == 34 && scriptPubkey[0] == txscript.OP_0 && scriptPubkey[1] == txscript.OP_DATA_32:
		return ScriptP2WSH

	// OP_1 <32 bytes>
	case n == 34 && scriptPubkey[0] == txscript.OP_1 && scriptPubkey[1] == txscript.OP_DATA_32:
		return ScriptP2TR

	case scriptPubkey[0] == txscript.OP_RETURN:
		return ScriptOpReturn
	}
	return ScriptUnknown
}

package analyzer

import (
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// Locktime types
const (
	LocktimeNone          = "none"
	LocktimeBlockHeight   = "block_height"
	LocktimeUnixTimestamp = "unix_timestamp"
)

// GetLocktimeType determines if locktime is block height, timestamp, or none
func GetLocktimeType(locktime uint32) string {
	if locktime == 0 {
		return LocktimeNone
	}
	if locktime < txscript.LockTimeThreshold {
		return LocktimeBlockHeight
	}
	return LocktimeUnixTimestamp
}

// IsRBFSignaling checks if a transaction signals BIP125 replaceability:
// any input with a sequence below 0xfffffffe does.
func IsRBFSignaling(inputs []*wire.TxIn) bool {
	for _, in := range inputs {
		if in.Sequence < wire.MaxTxInSequenceNum-1 {
			return true
		}
	}
	return false
}

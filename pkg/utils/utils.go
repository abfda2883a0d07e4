package utils

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// HexToBytes converts hex string to bytes with validation
func HexToBytes(hexStr string) ([]byte, error) {
	if len(hexStr)%2 != 0 {
		return nil, errors.New("invalid hex string: odd length")
	}
	return hex.DecodeString(hexStr)
}

// DecodeMsgTx deserializes a raw transaction hex.
// Unsigned transactions with no inputs are ambiguous with the witness
// marker, so the legacy encoding is tried when the witness one fails.
func DecodeMsgTx(hexStr string) (*wire.MsgTx, error) {
	raw, err := HexToBytes(hexStr)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction hex: %w", err)
	}

	tx := wire.NewMsgTx(wire.TxVersion)
	witnessErr := tx.Deserialize(bytes.NewReader(raw))
	if witnessErr == nil {
		return tx, nil
	}

	tx = wire.NewMsgTx(wire.TxVersion)
	if err := tx.DeserializeNoWitness(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to deserialize transaction: %w", witnessErr)
	}
	return tx, nil
}

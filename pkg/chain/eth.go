package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// DefaultRPCTimeout bounds a single verification round trip against the RPC node.
const DefaultRPCTimeout = 10 * time.Second

// transferEventSig is keccak256("Transfer(address,address,uint256)"), the
// topic every ERC-20 transfer is logged under.
var transferEventSig = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))

// Backend is the slice of the Ethereum RPC client the verifier needs.
// *ethclient.Client satisfies it.
type Backend interface {
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// EthVerifier resolves tip references against a single ERC-20 asset contract.
type EthVerifier struct {
	Backend Backend
	Asset   common.Address
	Timeout time.Duration
}

// Make sure we conform to the interface.
var _ Verifier = (*EthVerifier)(nil)

// NewEthVerifier dials the RPC endpoint and binds the verifier to the payment
// asset contract.
func NewEthVerifier(rpcURL, assetAddress string) (*EthVerifier, error) {
	if !common.IsHexAddress(assetAddress) {
		return nil, fmt.Errorf("invalid payment asset address: %s", assetAddress)
	}

	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to eth rpc: %w", err)
	}

	return &EthVerifier{
		Backend: client,
		Asset:   common.HexToAddress(assetAddress),
		Timeout: DefaultRPCTimeout,
	}, nil
}

// VerifyPayment fetches the referenced transaction, requires it to be a
// confirmed call into the asset contract, and decodes the Transfer event it
// emitted.
func (v *EthVerifier) VerifyPayment(ctx context.Context, reference string) (*Payment, error) {
	timeout := v.Timeout
	if timeout <= 0 {
		timeout = DefaultRPCTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	hash := common.HexToHash(reference)

	tx, pending, err := v.Backend.TransactionByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, ErrTxNotFound
		}
		return nil, fmt.Errorf("failed to fetch transaction: %w", err)
	}
	if pending {
		return nil, ErrTxNotConfirmed
	}
	if tx.To() == nil || !strings.EqualFold(tx.To().Hex(), v.Asset.Hex()) {
		return nil, ErrWrongDestination
	}

	receipt, err := v.Backend.TransactionReceipt(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, ErrTxNotConfirmed
		}
		return nil, fmt.Errorf("failed to fetch receipt: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, ErrTxNotConfirmed
	}

	for _, entry := range receipt.Logs {
		if entry.Address != v.Asset {
			continue
		}
		if len(entry.Topics) != 3 || entry.Topics[0] != transferEventSig {
			continue
		}
		return decodeTransfer(entry)
	}

	return nil, ErrNoTransferFound
}

// decodeTransfer unpacks a Transfer log into a Payment. The asset uses six
// decimals, so the raw value is already in micro-units.
func decodeTransfer(entry *types.Log) (*Payment, error) {
	if len(entry.Data) != 32 {
		return nil, ErrTransferDecode
	}

	value := new(big.Int).SetBytes(entry.Data)
	if !value.IsInt64() {
		// Far past any amount the pipeline would accept.
		return nil, ErrTransferDecode
	}

	sender := common.BytesToAddress(entry.Topics[1].Bytes())
	recipient := common.BytesToAddress(entry.Topics[2].Bytes())

	return &Payment{
		Sender:      strings.ToLower(sender.Hex()),
		Recipient:   strings.ToLower(recipient.Hex()),
		AmountMicro: value.Int64(),
	}, nil
}

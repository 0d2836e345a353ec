package chain_test

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/BURAK1289/confession-tip/pkg/chain"
	"github.com/BURAK1289/confession-tip/pkg/chain/mocks"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	testAsset     = common.HexToAddress("0x3333333333333333333333333333333333333333")
	testSender    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testRecipient = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

const testReference = "0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"

func newTestVerifier(backend chain.Backend) *chain.EthVerifier {
	return &chain.EthVerifier{Backend: backend, Asset: testAsset, Timeout: time.Second}
}

func assetCallTx() *types.Transaction {
	to := testAsset
	return types.NewTx(&types.LegacyTx{To: &to})
}

func transferLog(value *big.Int) *types.Log {
	return &types.Log{
		Address: testAsset,
		Topics: []common.Hash{
			chain.TransferEventSig,
			common.BytesToHash(testSender.Bytes()),
			common.BytesToHash(testRecipient.Bytes()),
		},
		Data: common.LeftPadBytes(value.Bytes(), 32),
	}
}

func TestVerifyPayment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockBackend := new(mocks.Backend)
		verifier := newTestVerifier(mockBackend)

		receipt := &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs:   []*types.Log{transferLog(big.NewInt(50_000))},
		}
		mockBackend.On("TransactionByHash", mock.Anything, common.HexToHash(testReference)).
			Once().Return(assetCallTx(), false, nil)
		mockBackend.On("TransactionReceipt", mock.Anything, common.HexToHash(testReference)).
			Once().Return(receipt, nil)

		payment, err := verifier.VerifyPayment(context.Background(), testReference)

		assert.NoError(t, err)
		assert.Equal(t, "0x1111111111111111111111111111111111111111", payment.Sender)
		assert.Equal(t, "0x2222222222222222222222222222222222222222", payment.Recipient)
		assert.Equal(t, int64(50_000), payment.AmountMicro)
		mockBackend.AssertExpectations(t)
	})

	t.Run("Transaction Missing", func(t *testing.T) {
		mockBackend := new(mocks.Backend)
		verifier := newTestVerifier(mockBackend)

		mockBackend.On("TransactionByHash", mock.Anything, mock.Anything).
			Return(nil, false, ethereum.NotFound)

		_, err := verifier.VerifyPayment(context.Background(), testReference)

		assert.ErrorIs(t, err, chain.ErrTxNotFound)
		assert.True(t, chain.IsVerificationFailure(err))
		mockBackend.AssertExpectations(t)
	})

	t.Run("Still Pending", func(t *testing.T) {
		mockBackend := new(mocks.Backend)
		verifier := newTestVerifier(mockBackend)

		mockBackend.On("TransactionByHash", mock.Anything, mock.Anything).
			Return(assetCallTx(), true, nil)

		_, err := verifier.VerifyPayment(context.Background(), testReference)

		assert.ErrorIs(t, err, chain.ErrTxNotConfirmed)
		mockBackend.AssertExpectations(t)
	})

	t.Run("Wrong Destination", func(t *testing.T) {
		mockBackend := new(mocks.Backend)
		verifier := newTestVerifier(mockBackend)

		other := common.HexToAddress("0x4444444444444444444444444444444444444444")
		mockBackend.On("TransactionByHash", mock.Anything, mock.Anything).
			Return(types.NewTx(&types.LegacyTx{To: &other}), false, nil)

		_, err := verifier.VerifyPayment(context.Background(), testReference)

		assert.ErrorIs(t, err, chain.ErrWrongDestination)
		mockBackend.AssertExpectations(t)
	})

	t.Run("Contract Creation", func(t *testing.T) {
		mockBackend := new(mocks.Backend)
		verifier := newTestVerifier(mockBackend)

		mockBackend.On("TransactionByHash", mock.Anything, mock.Anything).
			Return(types.NewTx(&types.LegacyTx{}), false, nil)

		_, err := verifier.VerifyPayment(context.Background(), testReference)

		assert.ErrorIs(t, err, chain.ErrWrongDestination)
		mockBackend.AssertExpectations(t)
	})

	t.Run("Receipt Missing", func(t *testing.T) {
		mockBackend := new(mocks.Backend)
		verifier := newTestVerifier(mockBackend)

		mockBackend.On("TransactionByHash", mock.Anything, mock.Anything).
			Return(assetCallTx(), false, nil)
		mockBackend.On("TransactionReceipt", mock.Anything, mock.Anything).
			Return(nil, ethereum.NotFound)

		_, err := verifier.VerifyPayment(context.Background(), testReference)

		assert.ErrorIs(t, err, chain.ErrTxNotConfirmed)
		mockBackend.AssertExpectations(t)
	})

	t.Run("Reverted", func(t *testing.T) {
		mockBackend := new(mocks.Backend)
		verifier := newTestVerifier(mockBackend)

		mockBackend.On("TransactionByHash", mock.Anything, mock.Anything).
			Return(assetCallTx(), false, nil)
		mockBackend.On("TransactionReceipt", mock.Anything, mock.Anything).
			Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil)

		_, err := verifier.VerifyPayment(context.Background(), testReference)

		assert.ErrorIs(t, err, chain.ErrTxNotConfirmed)
		mockBackend.AssertExpectations(t)
	})

	t.Run("No Transfer Event", func(t *testing.T) {
		mockBackend := new(mocks.Backend)
		verifier := newTestVerifier(mockBackend)

		foreign := transferLog(big.NewInt(50_000))
		foreign.Address = common.HexToAddress("0x4444444444444444444444444444444444444444")
		receipt := &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs:   []*types.Log{foreign},
		}
		mockBackend.On("TransactionByHash", mock.Anything, mock.Anything).
			Return(assetCallTx(), false, nil)
		mockBackend.On("TransactionReceipt", mock.Anything, mock.Anything).
			Return(receipt, nil)

		_, err := verifier.VerifyPayment(context.Background(), testReference)

		assert.ErrorIs(t, err, chain.ErrNoTransferFound)
		mockBackend.AssertExpectations(t)
	})

	t.Run("Malformed Transfer Data", func(t *testing.T) {
		mockBackend := new(mocks.Backend)
		verifier := newTestVerifier(mockBackend)

		malformed := transferLog(big.NewInt(50_000))
		malformed.Data = []byte{0x01}
		receipt := &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs:   []*types.Log{malformed},
		}
		mockBackend.On("TransactionByHash", mock.Anything, mock.Anything).
			Return(assetCallTx(), false, nil)
		mockBackend.On("TransactionReceipt", mock.Anything, mock.Anything).
			Return(receipt, nil)

		_, err := verifier.VerifyPayment(context.Background(), testReference)

		assert.ErrorIs(t, err, chain.ErrTransferDecode)
		mockBackend.AssertExpectations(t)
	})

	t.Run("Value Overflows Int64", func(t *testing.T) {
		mockBackend := new(mocks.Backend)
		verifier := newTestVerifier(mockBackend)

		huge := transferLog(big.NewInt(0))
		huge.Data = bytes.Repeat([]byte{0xff}, 32)
		receipt := &types.Receipt{
			Status: types.ReceiptStatusSuccessful,
			Logs:   []*types.Log{huge},
		}
		mockBackend.On("TransactionByHash", mock.Anything, mock.Anything).
			Return(assetCallTx(), false, nil)
		mockBackend.On("TransactionReceipt", mock.Anything, mock.Anything).
			Return(receipt, nil)

		_, err := verifier.VerifyPayment(context.Background(), testReference)

		assert.ErrorIs(t, err, chain.ErrTransferDecode)
		mockBackend.AssertExpectations(t)
	})

	t.Run("RPC Outage Is Not A Verification Failure", func(t *testing.T) {
		mockBackend := new(mocks.Backend)
		verifier := newTestVerifier(mockBackend)

		mockBackend.On("TransactionByHash", mock.Anything, mock.Anything).
			Return(nil, false, errors.New("connection refused"))

		_, err := verifier.VerifyPayment(context.Background(), testReference)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch transaction")
		assert.False(t, chain.IsVerificationFailure(err))
		mockBackend.AssertExpectations(t)
	})
}

func TestNewEthVerifier(t *testing.T) {
	t.Run("Rejects Bad Asset Address", func(t *testing.T) {
		_, err := chain.NewEthVerifier("http://localhost:8545", "not-an-address")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid payment asset address")
	})
}

package tips

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BURAK1289/confession-tip/pkg/api"
	"github.com/BURAK1289/confession-tip/pkg/chain"
	chain_mocks "github.com/BURAK1289/confession-tip/pkg/chain/mocks"
	"github.com/BURAK1289/confession-tip/pkg/feed"
	feed_mocks "github.com/BURAK1289/confession-tip/pkg/feed/mocks"
	"github.com/BURAK1289/confession-tip/pkg/models"
	"github.com/BURAK1289/confession-tip/pkg/ratelimit"
	"github.com/BURAK1289/confession-tip/pkg/storage"
	storage_mocks "github.com/BURAK1289/confession-tip/pkg/storage/mocks"
	"github.com/BURAK1289/confession-tip/pkg/tipping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const (
	testConfessionID = "b7a1c2d3-e4f5-4678-9abc-def012345678"
	payerAddr        = "0x1111111111111111111111111111111111111111"
	ownerAddr        = "0x2222222222222222222222222222222222222222"
)

var testReference = "0x" + strings.Repeat("a", 64)

func storedConfession() *models.Confession {
	return &models.Confession{
		ID:             testConfessionID,
		OwnerAddress:   ownerAddr,
		Content:        "I name my plants after people I miss",
		Category:       "general",
		TotalTipsMicro: 100_000,
		TipCount:       2,
	}
}

// newHandler builds a TipsHandler around a real pipeline with mocked edges.
func newHandler(mockStorage *storage_mocks.ApiStore, mockVerifier *chain_mocks.Verifier, publisher feed.Publisher) *TipsHandler {
	service := tipping.NewService(mockStorage, mockVerifier, ratelimit.NewMemory(), nil)
	return NewTipsHandler(service, publisher)
}

// expectAdmission registers the mock sequence for one accepted tip.
func expectAdmission(mockStorage *storage_mocks.ApiStore, mockVerifier *chain_mocks.Verifier, amountMicro int64) {
	subject := storedConfession()
	mockStorage.On("FindTipByReference", mock.Anything, testReference).Once().Return(nil, storage.ErrTipNotFound)
	mockStorage.On("GetConfession", mock.Anything, testConfessionID).Once().Return(subject, nil)
	mockVerifier.On("VerifyPayment", mock.Anything, testReference).Once().Return(&chain.Payment{
		Sender:      payerAddr,
		Recipient:   ownerAddr,
		AmountMicro: amountMicro,
	}, nil)
	mockStorage.On("EnsureUser", mock.Anything, payerAddr).Once().Return(&models.UserStats{Address: payerAddr}, nil)
	mockStorage.On("EnsureUser", mock.Anything, ownerAddr).Once().Return(&models.UserStats{Address: ownerAddr}, nil)
	mockStorage.On("InsertTip", mock.Anything, mock.Anything).Once().Return(&models.TipRecord{
		ID:           "5f3a7c1e-0b2d-4e6f-8a9b-c0d1e2f3a4b5",
		SubjectID:    testConfessionID,
		PayerAddress: payerAddr,
		OwnerAddress: ownerAddr,
		AmountMicro:  amountMicro,
		Reference:    testReference,
	}, nil)
	mockStorage.On("IncrementConfessionTips", mock.Anything, testConfessionID, amountMicro).Once().Return(nil)
	mockStorage.On("AddUserTipsGiven", mock.Anything, payerAddr, amountMicro).Once().Return(nil)
	mockStorage.On("AddUserTipsReceived", mock.Anything, ownerAddr, amountMicro).Once().Return(nil)

	refreshed := *subject
	refreshed.TotalTipsMicro += amountMicro
	refreshed.TipCount++
	mockStorage.On("GetConfession", mock.Anything, testConfessionID).Once().Return(&refreshed, nil)
}

func postTip(handler *TipsHandler, payer, reference string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(api.NewTip{PayerAddress: payer, Reference: reference})
	req := httptest.NewRequest(http.MethodPost, "/confessions/"+testConfessionID+"/tips", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler.RecordTip(rr, req, testConfessionID)
	return rr
}

func TestRecordTip(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockVerifier := new(chain_mocks.Verifier)
		mockPublisher := new(feed_mocks.Publisher)
		handler := newHandler(mockStorage, mockVerifier, mockPublisher)

		expectAdmission(mockStorage, mockVerifier, 50_000)
		mockPublisher.On("Publish", mock.Anything, mock.MatchedBy(func(message feed.Message) bool {
			payload, ok := message.Payload.(feed.TipPayload)
			return ok && message.Type == feed.MessageTypeTip &&
				payload.SubjectID == testConfessionID && payload.AmountMicro == 50_000
		})).Once().Return(nil)

		rr := postTip(handler, payerAddr, testReference)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var receipt api.TipReceipt
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &receipt))
		assert.Equal(t, "0.050000", receipt.Tip.Amount)
		assert.Equal(t, testReference, receipt.Tip.Reference)
		assert.Equal(t, int64(150_000), receipt.Confession.TotalTipsMicro)
		assert.Equal(t, int64(3), receipt.Confession.TipCount)
		assert.NotContains(t, strings.ToLower(rr.Body.String()), ownerAddr)

		mockStorage.AssertExpectations(t)
		mockVerifier.AssertExpectations(t)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("Publish Failure Does Not Fail Request", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockVerifier := new(chain_mocks.Verifier)
		mockPublisher := new(feed_mocks.Publisher)
		handler := newHandler(mockStorage, mockVerifier, mockPublisher)

		expectAdmission(mockStorage, mockVerifier, 50_000)
		mockPublisher.On("Publish", mock.Anything, mock.Anything).Once().
			Return(errors.New("all subscribers gone"))

		rr := postTip(handler, payerAddr, testReference)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		handler := newHandler(new(storage_mocks.ApiStore), new(chain_mocks.Verifier), new(feed.NoOpPublisher))

		req := httptest.NewRequest(http.MethodPost, "/confessions/"+testConfessionID+"/tips", strings.NewReader("not-json"))
		rr := httptest.NewRecorder()
		handler.RecordTip(rr, req, testConfessionID)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid request body")
	})

	t.Run("Invalid Payer Address", func(t *testing.T) {
		handler := newHandler(new(storage_mocks.ApiStore), new(chain_mocks.Verifier), new(feed.NoOpPublisher))

		rr := postTip(handler, "0x123", testReference)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid payer address")
	})

	t.Run("Duplicate Returns Conflict", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, new(chain_mocks.Verifier), new(feed.NoOpPublisher))

		mockStorage.On("FindTipByReference", mock.Anything, testReference).Once().
			Return(&models.TipRecord{ID: "tip-0", Reference: testReference}, nil)

		rr := postTip(handler, payerAddr, testReference)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "already been recorded")
		mockStorage.AssertExpectations(t)
	})

	t.Run("Rate Limited", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockVerifier := new(chain_mocks.Verifier)
		mockPublisher := new(feed_mocks.Publisher)

		service := tipping.NewService(mockStorage, mockVerifier, ratelimit.NewMemory(), nil)
		service.Policy = ratelimit.Policy{Max: 1, Window: 24 * time.Hour}
		handler := NewTipsHandler(service, mockPublisher)

		expectAdmission(mockStorage, mockVerifier, 50_000)
		mockPublisher.On("Publish", mock.Anything, mock.Anything).Once().Return(nil)
		assert.Equal(t, http.StatusCreated, postTip(handler, payerAddr, testReference).Code)

		secondReference := "0x" + strings.Repeat("b", 64)
		mockStorage.On("FindTipByReference", mock.Anything, secondReference).Once().
			Return(nil, storage.ErrTipNotFound)

		rr := postTip(handler, payerAddr, secondReference)

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("Retry-After"))

		var errBody api.Error
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errBody))
		assert.NotNil(t, errBody.RetryAfterSeconds)
		assert.Greater(t, *errBody.RetryAfterSeconds, int64(23*60*60))
		mockStorage.AssertExpectations(t)
	})

	t.Run("Subject Not Found", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, new(chain_mocks.Verifier), new(feed.NoOpPublisher))

		mockStorage.On("FindTipByReference", mock.Anything, testReference).Once().Return(nil, storage.ErrTipNotFound)
		mockStorage.On("GetConfession", mock.Anything, testConfessionID).Once().
			Return(nil, storage.ErrConfessionNotFound)

		rr := postTip(handler, payerAddr, testReference)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "Confession not found")
	})

	t.Run("Self Tip", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, new(chain_mocks.Verifier), new(feed.NoOpPublisher))

		subject := storedConfession()
		subject.OwnerAddress = payerAddr
		mockStorage.On("FindTipByReference", mock.Anything, testReference).Once().Return(nil, storage.ErrTipNotFound)
		mockStorage.On("GetConfession", mock.Anything, testConfessionID).Once().Return(subject, nil)

		rr := postTip(handler, payerAddr, testReference)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Cannot tip your own confession")
	})

	t.Run("Payment Not Verified", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockVerifier := new(chain_mocks.Verifier)
		handler := newHandler(mockStorage, mockVerifier, new(feed.NoOpPublisher))

		mockStorage.On("FindTipByReference", mock.Anything, testReference).Once().Return(nil, storage.ErrTipNotFound)
		mockStorage.On("GetConfession", mock.Anything, testConfessionID).Once().Return(storedConfession(), nil)
		mockVerifier.On("VerifyPayment", mock.Anything, testReference).Once().Return(nil, chain.ErrTxNotFound)

		rr := postTip(handler, payerAddr, testReference)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "transaction not found")
	})

	t.Run("Sender Mismatch", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockVerifier := new(chain_mocks.Verifier)
		handler := newHandler(mockStorage, mockVerifier, new(feed.NoOpPublisher))

		mockStorage.On("FindTipByReference", mock.Anything, testReference).Once().Return(nil, storage.ErrTipNotFound)
		mockStorage.On("GetConfession", mock.Anything, testConfessionID).Once().Return(storedConfession(), nil)
		mockVerifier.On("VerifyPayment", mock.Anything, testReference).Once().Return(&chain.Payment{
			Sender:      "0x9999999999999999999999999999999999999999",
			Recipient:   ownerAddr,
			AmountMicro: 50_000,
		}, nil)

		rr := postTip(handler, payerAddr, testReference)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "sender does not match")
	})

	t.Run("Amount Out Of Range", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockVerifier := new(chain_mocks.Verifier)
		handler := newHandler(mockStorage, mockVerifier, new(feed.NoOpPublisher))

		mockStorage.On("FindTipByReference", mock.Anything, testReference).Once().Return(nil, storage.ErrTipNotFound)
		mockStorage.On("GetConfession", mock.Anything, testConfessionID).Once().Return(storedConfession(), nil)
		mockVerifier.On("VerifyPayment", mock.Anything, testReference).Once().Return(&chain.Payment{
			Sender:      payerAddr,
			Recipient:   ownerAddr,
			AmountMicro: models.MaxTipMicro + 1,
		}, nil)

		rr := postTip(handler, payerAddr, testReference)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "between 0.001 and 1.0")
	})

	t.Run("Internal Failure Is Generic", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newHandler(mockStorage, new(chain_mocks.Verifier), new(feed.NoOpPublisher))

		mockStorage.On("FindTipByReference", mock.Anything, testReference).Once().
			Return(nil, errors.New("dynamo unavailable"))

		rr := postTip(handler, payerAddr, testReference)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "try again")
		assert.NotContains(t, rr.Body.String(), "dynamo")
	})
}

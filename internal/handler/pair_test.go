package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pairloom/garden-engine/internal/domain"
	"github.com/pairloom/garden-engine/internal/handler"
	"github.com/pairloom/garden-engine/internal/profile"
)

// MockPairingService is a testify mock for the pairing service
type MockPairingService struct {
	mock.Mock
}

func (m *MockPairingService) Establish(ctx context.Context, userA, userB string) (string, error) {
	args := m.Called(ctx, userA, userB)
	return args.String(0), args.Error(1)
}

func (m *MockPairingService) Members(ctx context.Context, pairID string) ([2]string, error) {
	args := m.Called(ctx, pairID)
	return args.Get(0).([2]string), args.Error(1)
}

func (m *MockPairingService) PartnerOf(ctx context.Context, pairID, userID string) (string, error) {
	args := m.Called(ctx, pairID, userID)
	return args.String(0), args.Error(1)
}

func TestHandleEstablishPair(t *testing.T) {
	handler.InitValidator()

	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockPairingService)
		mockSvc.On("Establish", mock.Anything, "alice", "bob").Return("pair-1", nil)

		h := handler.HandleEstablishPair(mockSvc)
		w := doHandlerJSON(t, h, handler.EstablishPairRequest{UserA: "alice", UserB: "bob"})

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp handler.EstablishPairResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "pair-1", resp.PairID)
	})

	t.Run("Same user twice rejected by validation", func(t *testing.T) {
		mockSvc := new(MockPairingService)

		h := handler.HandleEstablishPair(mockSvc)
		w := doHandlerJSON(t, h, handler.EstablishPairRequest{UserA: "alice", UserB: "alice"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "Establish")
	})

	t.Run("Missing user rejected by validation", func(t *testing.T) {
		mockSvc := new(MockPairingService)

		h := handler.HandleEstablishPair(mockSvc)
		w := doHandlerJSON(t, h, handler.EstablishPairRequest{UserA: "alice"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "Establish")
	})
}

// MockProfileService is a testify mock for the profile service
type MockProfileService struct {
	mock.Mock
}

var _ profile.Service = (*MockProfileService)(nil)

func (m *MockProfileService) GetWallet(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileService) AdjustGold(ctx context.Context, userID string, delta int) (*domain.Profile, error) {
	args := m.Called(ctx, userID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileService) AdjustWater(ctx context.Context, userID string, delta int) (*domain.Profile, error) {
	args := m.Called(ctx, userID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func TestHandleGetWallet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockProfileService)
		mockSvc.On("GetWallet", mock.Anything, "alice").
			Return(&domain.Profile{UserID: "alice", Gold: 12, Water: 3, MaxWater: 3}, nil)

		h := handler.HandleGetWallet(mockSvc)
		req := httptest.NewRequest(http.MethodGet, "/profile/wallet?user_id=alice", nil)
		w := httptest.NewRecorder()
		h(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp domain.Profile
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 12, resp.Gold)
	})

	t.Run("Missing user_id", func(t *testing.T) {
		mockSvc := new(MockProfileService)

		h := handler.HandleGetWallet(mockSvc)
		req := httptest.NewRequest(http.MethodGet, "/profile/wallet", nil)
		w := httptest.NewRecorder()
		h(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "GetWallet")
	})
}

func doHandlerJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/pair", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

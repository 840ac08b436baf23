package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pairloom/garden-engine/internal/domain"
	"github.com/pairloom/garden-engine/internal/handler"
)

// MockGardenService is a testify mock for the garden service
type MockGardenService struct {
	mock.Mock
}

func (m *MockGardenService) GetOrCreateGardenState(ctx context.Context, pairID string) (*domain.GardenView, error) {
	args := m.Called(ctx, pairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GardenView), args.Error(1)
}

func (m *MockGardenService) Water(ctx context.Context, pairID, userID string) (*domain.WaterResult, error) {
	args := m.Called(ctx, pairID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaterResult), args.Error(1)
}

func (m *MockGardenService) Revive(ctx context.Context, pairID, userID string) (*domain.ReviveResult, error) {
	args := m.Called(ctx, pairID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviveResult), args.Error(1)
}

func (m *MockGardenService) PlantAt(ctx context.Context, pairID, userID string, itemType domain.ItemType, x, y float64, flipped bool) (*domain.PlaceResult, error) {
	args := m.Called(ctx, pairID, userID, itemType, x, y, flipped)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaceResult), args.Error(1)
}

func (m *MockGardenService) PlaceDecorAt(ctx context.Context, pairID, userID string, itemType domain.ItemType, x, y float64, flipped bool) (*domain.PlaceResult, error) {
	args := m.Called(ctx, pairID, userID, itemType, x, y, flipped)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaceResult), args.Error(1)
}

func (m *MockGardenService) PlaceLandmarkAt(ctx context.Context, pairID, userID string, itemType domain.ItemType, x, y float64, flipped bool) (*domain.PlaceLandmarkResult, error) {
	args := m.Called(ctx, pairID, userID, itemType, x, y, flipped)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlaceLandmarkResult), args.Error(1)
}

func (m *MockGardenService) ApplyPunishment(ctx context.Context, pairID string) (*domain.PunishResult, error) {
	args := m.Called(ctx, pairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PunishResult), args.Error(1)
}

func (m *MockGardenService) RemoveAllPlantsWithRefund(ctx context.Context, pairID string) (*domain.RefundResult, error) {
	args := m.Called(ctx, pairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefundResult), args.Error(1)
}

func (m *MockGardenService) RemoveAllDecorWithRefund(ctx context.Context, pairID string) (*domain.RefundResult, error) {
	args := m.Called(ctx, pairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefundResult), args.Error(1)
}

func (m *MockGardenService) RemoveAllLandmarksWithRefund(ctx context.Context, pairID string) (*domain.RefundResult, error) {
	args := m.Called(ctx, pairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefundResult), args.Error(1)
}

func (m *MockGardenService) RemoveAllGardenItemsWithRefund(ctx context.Context, pairID string) (*domain.RefundResult, error) {
	args := m.Called(ctx, pairID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefundResult), args.Error(1)
}

func (m *MockGardenService) ClaimPendingHarmonyBonus(ctx context.Context, pairID, userID string) (bool, error) {
	args := m.Called(ctx, pairID, userID)
	return args.Bool(0), args.Error(1)
}

// newGardenRouter mounts the handler the way the server does, so chi URL
// params resolve in tests.
func newGardenRouter(svc *MockGardenService) http.Handler {
	h := handler.NewGardenHandler(svc)
	r := chi.NewRouter()
	r.Route("/garden/{pairID}", func(r chi.Router) {
		r.Get("/", h.HandleGetGarden)
		r.Post("/water", h.HandleWater)
		r.Post("/revive", h.HandleRevive)
		r.Post("/plant", h.HandlePlant)
		r.Post("/decor", h.HandlePlaceDecor)
		r.Post("/landmark", h.HandlePlaceLandmark)
		r.Post("/items/remove", h.HandleRemoveItems)
		r.Post("/harmony/claim", h.HandleClaimBonus)
		r.Post("/punish", h.HandlePunish)
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if raw, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(raw))
	} else {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGardenHandler_Water(t *testing.T) {
	handler.InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockGardenService)
		expectedStatus int
		expectedError  string
		expectedReason string
	}{
		{
			name:        "Success",
			requestBody: handler.WaterGardenRequest{UserID: "alice"},
			setupMock: func(m *MockGardenService) {
				m.On("Water", mock.Anything, "pair-1", "alice").
					Return(&domain.WaterResult{
						StreakDays: 2,
						Health:     domain.HealthFresh,
						WateredAt:  time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Wilted garden",
			requestBody: handler.WaterGardenRequest{UserID: "alice"},
			setupMock: func(m *MockGardenService) {
				m.On("Water", mock.Anything, "pair-1", "alice").
					Return(nil, domain.ErrGardenWilted)
			},
			expectedStatus: http.StatusConflict,
			expectedReason: domain.ReasonGardenWilted,
		},
		{
			name:        "Cooldown active",
			requestBody: handler.WaterGardenRequest{UserID: "alice"},
			setupMock: func(m *MockGardenService) {
				m.On("Water", mock.Anything, "pair-1", "alice").
					Return(nil, domain.ErrCooldownActive)
			},
			expectedStatus: http.StatusTooManyRequests,
			expectedReason: domain.ReasonCooldownActive,
		},
		{
			name:        "Not enough water",
			requestBody: handler.WaterGardenRequest{UserID: "alice"},
			setupMock: func(m *MockGardenService) {
				m.On("Water", mock.Anything, "pair-1", "alice").
					Return(nil, domain.ErrInsufficientWater)
			},
			expectedStatus: http.StatusPaymentRequired,
			expectedReason: domain.ReasonInsufficientWater,
		},
		{
			name:        "Not a pair member",
			requestBody: handler.WaterGardenRequest{UserID: "mallory"},
			setupMock: func(m *MockGardenService) {
				m.On("Water", mock.Anything, "pair-1", "mallory").
					Return(nil, domain.ErrNotPairMember)
			},
			expectedStatus: http.StatusForbidden,
			expectedReason: domain.ReasonNotPairMember,
		},
		{
			name:           "Malformed JSON",
			requestBody:    "not-json",
			setupMock:      func(m *MockGardenService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request body",
		},
		{
			name:           "Missing user ID",
			requestBody:    handler.WaterGardenRequest{},
			setupMock:      func(m *MockGardenService) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(MockGardenService)
			tt.setupMock(mockSvc)
			router := newGardenRouter(mockSvc)

			w := doJSON(t, router, http.MethodPost, "/garden/pair-1/water", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, strings.ToLower(w.Body.String()), strings.ToLower(tt.expectedError))
			}
			if tt.expectedReason != "" {
				var resp handler.ErrorResponse
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedReason, resp.Reason)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestGardenHandler_Revive(t *testing.T) {
	handler.InitValidator()

	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockGardenService)
		mockSvc.On("Revive", mock.Anything, "pair-1", "bob").
			Return(&domain.ReviveResult{GoldSpent: 5, Health: domain.HealthFresh}, nil)
		router := newGardenRouter(mockSvc)

		w := doJSON(t, router, http.MethodPost, "/garden/pair-1/revive", handler.ReviveGardenRequest{UserID: "bob"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp handler.ReviveGardenResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 5, resp.Result.GoldSpent)
	})

	t.Run("Not wilted", func(t *testing.T) {
		mockSvc := new(MockGardenService)
		mockSvc.On("Revive", mock.Anything, "pair-1", "bob").
			Return(nil, domain.ErrGardenNotWilted)
		router := newGardenRouter(mockSvc)

		w := doJSON(t, router, http.MethodPost, "/garden/pair-1/revive", handler.ReviveGardenRequest{UserID: "bob"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Not enough gold", func(t *testing.T) {
		mockSvc := new(MockGardenService)
		mockSvc.On("Revive", mock.Anything, "pair-1", "bob").
			Return(nil, domain.ErrInsufficientGold)
		router := newGardenRouter(mockSvc)

		w := doJSON(t, router, http.MethodPost, "/garden/pair-1/revive", handler.ReviveGardenRequest{UserID: "bob"})

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
	})
}

func TestGardenHandler_Plant(t *testing.T) {
	handler.InitValidator()

	t.Run("Success", func(t *testing.T) {
		mockSvc := new(MockGardenService)
		mockSvc.On("PlantAt", mock.Anything, "pair-1", "alice", domain.ItemDaisy, 120.0, 340.0, false).
			Return(&domain.PlaceResult{
				Item:            domain.PlantedItem{ID: "item-1", Type: domain.ItemDaisy, Variant: 2},
				FirstOfCategory: true,
			}, nil)
		router := newGardenRouter(mockSvc)

		w := doJSON(t, router, http.MethodPost, "/garden/pair-1/plant", handler.PlaceItemRequest{
			UserID:   "alice",
			ItemType: string(domain.ItemDaisy),
			X:        120,
			Y:        340,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp domain.PlaceResult
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.FirstOfCategory)
		assert.Equal(t, 2, resp.Item.Variant)
	})

	t.Run("Collision rejected", func(t *testing.T) {
		mockSvc := new(MockGardenService)
		mockSvc.On("PlantAt", mock.Anything, "pair-1", "alice", domain.ItemOak, 100.0, 100.0, false).
			Return(nil, domain.ErrCollisionRejected)
		router := newGardenRouter(mockSvc)

		w := doJSON(t, router, http.MethodPost, "/garden/pair-1/plant", handler.PlaceItemRequest{
			UserID:   "alice",
			ItemType: string(domain.ItemOak),
			X:        100,
			Y:        100,
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp handler.ErrorResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, domain.ReasonCollisionRejected, resp.Reason)
	})

	t.Run("Unknown item type rejected by validation", func(t *testing.T) {
		mockSvc := new(MockGardenService)
		router := newGardenRouter(mockSvc)

		w := doJSON(t, router, http.MethodPost, "/garden/pair-1/plant", handler.PlaceItemRequest{
			UserID:   "alice",
			ItemType: "flower_imaginary",
			X:        100,
			Y:        100,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, strings.ToLower(w.Body.String()), "unknown item type")
		mockSvc.AssertNotCalled(t, "PlantAt")
	})
}

func TestGardenHandler_RemoveItems(t *testing.T) {
	handler.InitValidator()

	scopes := []struct {
		scope      string
		mockMethod string
	}{
		{"plants", "RemoveAllPlantsWithRefund"},
		{"decor", "RemoveAllDecorWithRefund"},
		{"landmarks", "RemoveAllLandmarksWithRefund"},
		{"all", "RemoveAllGardenItemsWithRefund"},
	}

	for _, tc := range scopes {
		t.Run("Scope "+tc.scope, func(t *testing.T) {
			mockSvc := new(MockGardenService)
			mockSvc.On(tc.mockMethod, mock.Anything, "pair-1").
				Return(&domain.RefundResult{ItemsRemoved: 3, GoldRefundedEach: 42}, nil)
			router := newGardenRouter(mockSvc)

			w := doJSON(t, router, http.MethodPost, "/garden/pair-1/items/remove", handler.RemoveItemsRequest{Scope: tc.scope})

			assert.Equal(t, http.StatusOK, w.Code)
			var resp handler.RemoveItemsResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, 3, resp.Result.ItemsRemoved)
			assert.Equal(t, 42, resp.Result.GoldRefundedEach)
			mockSvc.AssertExpectations(t)
		})
	}

	t.Run("Invalid scope", func(t *testing.T) {
		mockSvc := new(MockGardenService)
		router := newGardenRouter(mockSvc)

		w := doJSON(t, router, http.MethodPost, "/garden/pair-1/items/remove", handler.RemoveItemsRequest{Scope: "everything"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Valid options")
	})
}

func TestGardenHandler_ClaimBonus(t *testing.T) {
	handler.InitValidator()

	t.Run("Pending bonus claimed", func(t *testing.T) {
		mockSvc := new(MockGardenService)
		mockSvc.On("ClaimPendingHarmonyBonus", mock.Anything, "pair-1", "alice").Return(true, nil)
		router := newGardenRouter(mockSvc)

		w := doJSON(t, router, http.MethodPost, "/garden/pair-1/harmony/claim", handler.ClaimBonusRequest{UserID: "alice"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp handler.ClaimBonusResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Claimed)
	})

	t.Run("Nothing pending", func(t *testing.T) {
		mockSvc := new(MockGardenService)
		mockSvc.On("ClaimPendingHarmonyBonus", mock.Anything, "pair-1", "alice").Return(false, nil)
		router := newGardenRouter(mockSvc)

		w := doJSON(t, router, http.MethodPost, "/garden/pair-1/harmony/claim", handler.ClaimBonusRequest{UserID: "alice"})

		assert.Equal(t, http.StatusOK, w.Code)
		var resp handler.ClaimBonusResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Claimed)
	})
}

func TestGardenHandler_GetGarden(t *testing.T) {
	mockSvc := new(MockGardenService)
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	mockSvc.On("GetOrCreateGardenState", mock.Anything, "pair-1").
		Return(&domain.GardenView{
			State:  *domain.NewGardenState("pair-1", now),
			Health: domain.HealthFresh,
			Growth: map[string]domain.GrowthStage{},
		}, nil)
	router := newGardenRouter(mockSvc)

	req := httptest.NewRequest(http.MethodGet, "/garden/pair-1/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp domain.GardenView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pair-1", resp.State.PairID)
	assert.Equal(t, domain.HealthFresh, resp.Health)
}

func TestGardenHandler_Punish(t *testing.T) {
	mockSvc := new(MockGardenService)
	mockSvc.On("ApplyPunishment", mock.Anything, "pair-1").
		Return(&domain.PunishResult{Applied: true, LevelBefore: 3, LevelAfter: 2}, nil)
	router := newGardenRouter(mockSvc)

	w := doJSON(t, router, http.MethodPost, "/garden/pair-1/punish", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp domain.PunishResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Applied)
	assert.Equal(t, 2, resp.LevelAfter)
}

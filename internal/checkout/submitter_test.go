package checkout

import (
	"context"
	"sync"
	"testing"

	"shopfront/internal/cart"
	"shopfront/internal/model"
	"shopfront/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderClient is a mock implementation of OrderClient.
type MockOrderClient struct {
	mock.Mock
}

func (m *MockOrderClient) Place(ctx context.Context, req *model.OrderRequest, idempotencyKey string) (*model.OrderConfirmation, error) {
	args := m.Called(ctx, req, idempotencyKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderConfirmation), args.Error(1)
}

func (m *MockOrderClient) ListOrders(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func validDetails() CustomerDetails {
	return CustomerDetails{
		Name:          "Asha Rao",
		Email:         "asha@example.com",
		Address:       "12 MG Road, Bengaluru",
		Mobile:        "9876543210",
		PaymentMethod: PaymentCOD,
	}
}

func newCartWithItems(t *testing.T, products ...model.Product) *cart.Store {
	t.Helper()

	kv, err := storage.NewFileKV(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	store := cart.NewStore(context.Background(), kv, zerolog.Nop())
	for _, p := range products {
		require.NoError(t, store.Add(context.Background(), p))
	}
	return store
}

func availableProduct(id string, price float64) model.Product {
	return model.Product{
		ID:               id,
		Name:             "Product " + id,
		Price:            price,
		ProductAvailable: true,
		StockQuantity:    5,
	}
}

func TestSubmitter_Submit_Success(t *testing.T) {
	ctx := context.Background()
	cartStore := newCartWithItems(t,
		availableProduct("P001", 100),
		availableProduct("P001", 100),
		availableProduct("P002", 50),
	)

	mockOrders := new(MockOrderClient)
	mockOrders.On("Place", ctx, mock.AnythingOfType("*model.OrderRequest"), mock.AnythingOfType("string")).
		Return(&model.OrderConfirmation{OrderID: "ORD-1", Status: "PLACED"}, nil)

	submitter := NewSubmitter(cartStore, mockOrders, zerolog.Nop())

	confirmation, err := submitter.Submit(ctx, validDetails())

	require.NoError(t, err)
	require.NotNil(t, confirmation)
	assert.Equal(t, "ORD-1", confirmation.OrderID)

	// The request projected the cart lines.
	req := mockOrders.Calls[0].Arguments.Get(1).(*model.OrderRequest)
	require.Len(t, req.Items, 2)
	assert.Equal(t, model.OrderItemRequest{ProductID: "P001", Quantity: 2}, req.Items[0])
	assert.Equal(t, model.OrderItemRequest{ProductID: "P002", Quantity: 1}, req.Items[1])
	assert.Equal(t, "Asha Rao", req.CustomerName)

	// The idempotency key is a real UUID.
	key := mockOrders.Calls[0].Arguments.String(2)
	_, parseErr := uuid.Parse(key)
	assert.NoError(t, parseErr)

	// Success clears the cart.
	assert.Equal(t, 0, cartStore.Len())

	mockOrders.AssertExpectations(t)
}

func TestSubmitter_Submit_ValidationBlocksBeforeNetwork(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CustomerDetails)
		wantMsg string
	}{
		{
			name:    "empty name",
			mutate:  func(d *CustomerDetails) { d.Name = "  " },
			wantMsg: "name is required",
		},
		{
			name:    "empty email",
			mutate:  func(d *CustomerDetails) { d.Email = "" },
			wantMsg: "email is required",
		},
		{
			name:    "invalid email",
			mutate:  func(d *CustomerDetails) { d.Email = "not-an-email" },
			wantMsg: "email is not valid",
		},
		{
			name:    "empty address",
			mutate:  func(d *CustomerDetails) { d.Address = "" },
			wantMsg: "address is required",
		},
		{
			name:    "9 digit mobile",
			mutate:  func(d *CustomerDetails) { d.Mobile = "987654321" },
			wantMsg: "10 digit",
		},
		{
			name:    "11 digit mobile",
			mutate:  func(d *CustomerDetails) { d.Mobile = "98765432101" },
			wantMsg: "10 digit",
		},
		{
			name:    "mobile with letters",
			mutate:  func(d *CustomerDetails) { d.Mobile = "98765asdfg" },
			wantMsg: "10 digit",
		},
		{
			name:    "unknown payment method",
			mutate:  func(d *CustomerDetails) { d.PaymentMethod = "BARTER" },
			wantMsg: "payment method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cartStore := newCartWithItems(t, availableProduct("P001", 100))
			mockOrders := new(MockOrderClient)

			submitter := NewSubmitter(cartStore, mockOrders, zerolog.Nop())

			details := validDetails()
			tt.mutate(&details)

			confirmation, err := submitter.Submit(context.Background(), details)

			require.Error(t, err)
			assert.Nil(t, confirmation)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, model.ErrCodeValidation, domainErr.Code)

			// No network call was made and the cart is untouched.
			mockOrders.AssertNotCalled(t, "Place", mock.Anything, mock.Anything, mock.Anything)
			assert.Equal(t, 1, cartStore.Len())
		})
	}
}

func TestSubmitter_Submit_EmptyCart(t *testing.T) {
	cartStore := newCartWithItems(t)
	mockOrders := new(MockOrderClient)

	submitter := NewSubmitter(cartStore, mockOrders, zerolog.Nop())

	confirmation, err := submitter.Submit(context.Background(), validDetails())

	assert.ErrorIs(t, err, model.ErrEmptyCart)
	assert.Nil(t, confirmation)
	mockOrders.AssertNotCalled(t, "Place", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitter_Submit_FailureLeavesCartUntouched(t *testing.T) {
	ctx := context.Background()
	cartStore := newCartWithItems(t,
		availableProduct("P001", 100),
		availableProduct("P002", 50),
	)

	mockOrders := new(MockOrderClient)
	mockOrders.On("Place", ctx, mock.Anything, mock.Anything).
		Return(nil, &model.APIError{StatusCode: 500, Body: "boom"})

	submitter := NewSubmitter(cartStore, mockOrders, zerolog.Nop())

	confirmation, err := submitter.Submit(ctx, validDetails())

	require.Error(t, err)
	assert.Nil(t, confirmation)
	assert.Equal(t, 2, cartStore.Len())
	assert.Equal(t, 150.0, cartStore.Total())
}

func TestSubmitter_Submit_RejectsConcurrentSubmission(t *testing.T) {
	ctx := context.Background()
	cartStore := newCartWithItems(t, availableProduct("P001", 100))

	release := make(chan struct{})
	firstStarted := make(chan struct{})

	mockOrders := new(MockOrderClient)
	mockOrders.On("Place", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			close(firstStarted)
			<-release
		}).
		Return(&model.OrderConfirmation{OrderID: "ORD-1"}, nil)

	submitter := NewSubmitter(cartStore, mockOrders, zerolog.Nop())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := submitter.Submit(ctx, validDetails())
		assert.NoError(t, err)
	}()

	// Wait until the first submission is inside Place, then try again.
	<-firstStarted
	_, err := submitter.Submit(ctx, validDetails())
	assert.ErrorIs(t, err, model.ErrSubmissionInFlight)

	close(release)
	wg.Wait()

	mockOrders.AssertNumberOfCalls(t, "Place", 1)
}

func TestSubmitter_ListOrders(t *testing.T) {
	cartStore := newCartWithItems(t)

	orders := []model.Order{
		{
			OrderID:      "ORD-1",
			CustomerName: "Asha Rao",
			Status:       "DELIVERED",
			Items: []model.OrderItem{
				{ProductName: "Laptop", Quantity: 1, TotalPrice: 999.99},
				{ProductName: "Mouse", Quantity: 2, TotalPrice: 40},
			},
		},
	}

	mockOrders := new(MockOrderClient)
	mockOrders.On("ListOrders", mock.Anything).Return(orders, nil)

	submitter := NewSubmitter(cartStore, mockOrders, zerolog.Nop())

	got, err := submitter.ListOrders(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 1039.99, got[0].Total(), 0.001)
}

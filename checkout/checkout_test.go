package checkout

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/OmNinave/E-commerce-sub001/config"
	"github.com/OmNinave/E-commerce-sub001/models"
	"github.com/OmNinave/E-commerce-sub001/payment"
	"github.com/OmNinave/E-commerce-sub001/store"
)

const testPaymentSecret = "test-secret"

func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.WishlistItem{},
		&models.Product{},
		&models.Category{},
		&models.Order{},
		&models.OrderItem{},
		&models.GiftCard{},
	))

	return NewService(store.New(db), config.Fees{
		TaxPercent:         18,
		MarketplacePercent: 2,
		Shipping:           config.DefaultShipping(),
	}, testPaymentSecret)
}

func seedCheckout(t *testing.T, svc *Service, stock int) (userID string, addressID uint) {
	t.Helper()
	ctx := context.Background()

	user := models.User{ID: "user-1", Email: "u1@example.com", PasswordHash: "x"}
	require.NoError(t, svc.Store.CreateUser(ctx, &user))

	address := models.Address{
		UserID: user.ID, FullName: "U One", Line1: "1 Main St",
		City: "Pune", Country: "IN", PostalCode: "411001",
	}
	require.NoError(t, svc.Store.CreateAddress(ctx, &address))

	product := models.Product{ID: 1, Name: "P1", Price: 100, Stock: stock}
	require.NoError(t, svc.Store.CreateProduct(ctx, &product))

	return user.ID, address.ID
}

// Concrete scenario from the pipeline contract: price 100, stock 5, cart
// of 2 -> subtotal 200, stock drops to 3, order lands pending.
func TestPlaceOrderHappyPath(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID, addressID := seedCheckout(t, svc, 5)

	order, err := svc.PlaceOrder(ctx, userID, addressID,
		models.PaymentMethodRazorpay, models.ShippingStandard,
		[]CartLineInput{{ProductID: 1, Quantity: 2}}, "")
	require.NoError(t, err)

	assert.NotZero(t, order.ID)
	assert.NotEmpty(t, order.OrderRef)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 200.0, order.Subtotal, 1e-9)
	assert.InDelta(t, 50.0, order.DeliveryCharge, 1e-9)
	assert.InDelta(t, 4.0, order.MarketplaceFee, 1e-9)
	assert.InDelta(t, 36.72, order.Tax, 1e-9)
	assert.InDelta(t, 290.72, order.GrandTotal, 1e-9)
	require.Len(t, order.Items, 1)
	assert.InDelta(t, 100.0, order.Items[0].UnitPrice, 1e-9)

	product, err := svc.Store.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, product.Stock)

	// Shipping address is snapshotted onto the order.
	assert.Equal(t, "1 Main St", order.ShipLine1)
}

func TestPlaceOrderCashOnDeliveryIsPaidImmediately(t *testing.T) {
	svc := newTestService(t)
	userID, addressID := seedCheckout(t, svc, 5)

	order, err := svc.PlaceOrder(context.Background(), userID, addressID,
		models.PaymentMethodCOD, models.ShippingStandard,
		[]CartLineInput{{ProductID: 1, Quantity: 1}}, "")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
}

func TestPlaceOrderInsufficientStockLeavesStockUntouched(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID, addressID := seedCheckout(t, svc, 5)

	_, err := svc.PlaceOrder(ctx, userID, addressID,
		models.PaymentMethodCOD, models.ShippingStandard,
		[]CartLineInput{{ProductID: 1, Quantity: 10}}, "")
	require.Error(t, err)
	assert.Equal(t, KindInsufficientStock, KindOf(err))

	product, err := svc.Store.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, product.Stock)

	orders, err := svc.Store.ListUserOrders(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrderAddressMismatch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID, _ := seedCheckout(t, svc, 5)

	other := models.User{ID: "user-2", Email: "u2@example.com", PasswordHash: "x"}
	require.NoError(t, svc.Store.CreateUser(ctx, &other))
	foreign := models.Address{
		UserID: other.ID, Line1: "9 Other Rd", City: "Delhi",
		Country: "IN", PostalCode: "110001",
	}
	require.NoError(t, svc.Store.CreateAddress(ctx, &foreign))

	_, err := svc.PlaceOrder(ctx, userID, foreign.ID,
		models.PaymentMethodCOD, models.ShippingStandard,
		[]CartLineInput{{ProductID: 1, Quantity: 1}}, "")
	require.Error(t, err)
	assert.Equal(t, KindAddressMismatch, KindOf(err))
}

// Order lines are frozen snapshots: repricing the product afterwards must
// not change the persisted order.
func TestOrderItemsAreImmutableSnapshots(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID, addressID := seedCheckout(t, svc, 5)

	order, err := svc.PlaceOrder(ctx, userID, addressID,
		models.PaymentMethodCOD, models.ShippingStandard,
		[]CartLineInput{{ProductID: 1, Quantity: 2}}, "")
	require.NoError(t, err)

	_, err = svc.Store.UpdateProduct(ctx, 1, map[string]interface{}{"price": 999.0})
	require.NoError(t, err)

	reloaded, err := svc.Store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.InDelta(t, 100.0, reloaded.Items[0].UnitPrice, 1e-9)
	assert.InDelta(t, 200.0, reloaded.Subtotal, 1e-9)
}

// Two orders built against the same stock snapshot: the conditional
// decrement lets exactly one commit; the other fails with StockRaceLost
// and stock never goes negative.
func TestStockRaceExactlyOneWinner(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID, addressID := seedCheckout(t, svc, 1)

	// Validate once while stock is still 1, as two concurrent checkouts
	// would, then let both writers commit the same stale snapshot.
	cart, fees, err := svc.Validate(ctx, []CartLineInput{{ProductID: 1, Quantity: 1}}, "standard", "")
	require.NoError(t, err)

	writer := NewOrderWriter(svc.Store)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = writer.Create(ctx, userID, addressID,
				models.PaymentMethodCOD, models.ShippingStandard, cart, fees, "")
		}(i)
	}
	wg.Wait()

	var wins, races int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case KindOf(err) == KindStockRaceLost:
			races++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, races)

	product, err := svc.Store.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, product.Stock)
}

func TestPlaceOrderConsumesGiftCardBalance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	userID, addressID := seedCheckout(t, svc, 5)

	card := models.GiftCard{Code: "GC-1", Balance: 75, ExpiresAt: time.Now().Add(24 * time.Hour)}
	require.NoError(t, svc.Store.CreateGiftCard(ctx, &card))

	order, err := svc.PlaceOrder(ctx, userID, addressID,
		models.PaymentMethodCOD, models.ShippingStandard,
		[]CartLineInput{{ProductID: 1, Quantity: 2}}, "GC-1")
	require.NoError(t, err)
	assert.InDelta(t, 75.0, order.GiftCardDiscount, 1e-9)
	assert.InDelta(t, 215.72, order.GrandTotal, 1e-9)

	reloaded, err := svc.Store.GetGiftCard(ctx, "GC-1")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, reloaded.Balance, 1e-9)
}

func placePendingOrder(t *testing.T, svc *Service) *models.Order {
	t.Helper()
	ctx := context.Background()
	userID, addressID := seedCheckout(t, svc, 5)

	order, err := svc.PlaceOrder(ctx, userID, addressID,
		models.PaymentMethodRazorpay, models.ShippingStandard,
		[]CartLineInput{{ProductID: 1, Quantity: 2}}, "")
	require.NoError(t, err)

	require.NoError(t, svc.Store.SetProviderOrderID(ctx, order.ID, "order_prov_1"))
	return order
}

func TestConfirmPaymentMarksOrderPaid(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	order := placePendingOrder(t, svc)

	sig := payment.Sign("order_prov_1", "pay_1", testPaymentSecret)
	confirmed, err := svc.ConfirmPayment(ctx, "order_prov_1", "pay_1", sig)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPaid, confirmed.Status)
	assert.Equal(t, models.PaymentStatusPaid, confirmed.PaymentStatus)
	assert.Equal(t, "pay_1", confirmed.ProviderPaymentID)
	assert.Equal(t, order.ID, confirmed.ID)
}

// Replaying the same valid callback must not double-apply: the second call
// finds the order no longer pending.
func TestConfirmPaymentIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	placePendingOrder(t, svc)

	sig := payment.Sign("order_prov_1", "pay_1", testPaymentSecret)
	_, err := svc.ConfirmPayment(ctx, "order_prov_1", "pay_1", sig)
	require.NoError(t, err)

	_, err = svc.ConfirmPayment(ctx, "order_prov_1", "pay_1", sig)
	require.Error(t, err)
	assert.Equal(t, KindOrderNotPending, KindOf(err))
}

func TestConfirmPaymentRejectsForgedSignature(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	order := placePendingOrder(t, svc)

	_, err := svc.ConfirmPayment(ctx, "order_prov_1", "pay_1", "deadbeef")
	require.Error(t, err)
	assert.Equal(t, KindSignatureMismatch, KindOf(err))

	reloaded, err := svc.Store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, reloaded.Status)
}

// A losing confirmation must leave the earlier payment record intact: the
// status swap and the payment write commit as one transaction, so a failed
// swap writes nothing.
func TestConfirmPaymentLoserWritesNothing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	order := placePendingOrder(t, svc)

	sig := payment.Sign("order_prov_1", "pay_1", testPaymentSecret)
	_, err := svc.ConfirmPayment(ctx, "order_prov_1", "pay_1", sig)
	require.NoError(t, err)

	sig2 := payment.Sign("order_prov_1", "pay_2", testPaymentSecret)
	_, err = svc.ConfirmPayment(ctx, "order_prov_1", "pay_2", sig2)
	require.Error(t, err)
	assert.Equal(t, KindOrderNotPending, KindOf(err))

	reloaded, err := svc.Store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "pay_1", reloaded.ProviderPaymentID)
	assert.Equal(t, models.PaymentStatusPaid, reloaded.PaymentStatus)
}

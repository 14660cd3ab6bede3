package api

import (
	"context"
	"net/http"

	"github.com/mluvul69-gif/linea-store/internal/entity"
	"github.com/mluvul69-gif/linea-store/internal/payment"
	"github.com/mluvul69-gif/linea-store/internal/repository"
	"github.com/mluvul69-gif/linea-store/internal/session"
)

// fakeVerifier implements EventVerifier with canned results.
type fakeVerifier struct {
	completed *payment.CompletedCheckout
	err       error
}

func (f *fakeVerifier) VerifyEvent(_ []byte, _ string) (*payment.CompletedCheckout, error) {
	return f.completed, f.err
}

// fakeSessions implements SessionIdentifier with a fixed id.
type fakeSessions struct {
	sid string
}

func (f *fakeSessions) SessionID(_ *http.Request, _ http.ResponseWriter) (string, error) {
	return f.sid, nil
}

// fakeCartStore implements service.CartStore in memory.
type fakeCartStore struct {
	carts map[string][]entity.CartEntry
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[string][]entity.CartEntry{}}
}

func (f *fakeCartStore) Cart(_ context.Context, sid string) ([]entity.CartEntry, error) {
	return f.carts[sid], nil
}

func (f *fakeCartStore) SaveCart(_ context.Context, sid string, entries []entity.CartEntry) error {
	f.carts[sid] = entries
	return nil
}

func (f *fakeCartStore) ClearCart(_ context.Context, sid string) error {
	delete(f.carts, sid)
	return nil
}

// fakeCatalog implements service.Catalog over a fixed product set.
type fakeCatalog struct {
	products map[int]*entity.Product
}

func newFakeCatalog(products ...*entity.Product) *fakeCatalog {
	m := map[int]*entity.Product{}
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeCatalog{products: m}
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeCatalog) BumpPopularity(_ context.Context, _ int) error {
	return nil
}

// fakeGateway implements payment.Gateway with canned line items.
type fakeGateway struct {
	lineItems []payment.LineItem
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, _ []payment.LineItem, _ string) (*payment.CheckoutSession, error) {
	return &payment.CheckoutSession{ID: "cs_test", URL: "https://checkout.stripe.example/cs_test"}, nil
}

func (f *fakeGateway) SessionLineItems(_ context.Context, _ string) ([]payment.LineItem, error) {
	return f.lineItems, nil
}

// fakePendingStore implements service.PendingStore in memory.
type fakePendingStore struct {
	stash map[string]*entity.ShippingInfo
}

func newFakePendingStore() *fakePendingStore {
	return &fakePendingStore{stash: map[string]*entity.ShippingInfo{}}
}

func (f *fakePendingStore) SavePendingShipping(_ context.Context, checkoutID string, info *entity.ShippingInfo) error {
	f.stash[checkoutID] = info
	return nil
}

func (f *fakePendingStore) PendingShipping(_ context.Context, checkoutID string) (*entity.ShippingInfo, error) {
	info, ok := f.stash[checkoutID]
	if !ok {
		return nil, session.ErrNoPendingShipping
	}
	return info, nil
}

func (f *fakePendingStore) ClearPendingShipping(_ context.Context, checkoutID string) error {
	delete(f.stash, checkoutID)
	return nil
}

// fakeOrderRepo implements service.OrderRepo and records writes.
type fakeOrderRepo struct {
	created   *entity.Order
	createErr error
	orders    []*entity.Order
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order *entity.Order) (*entity.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	order.ID = 1
	f.created = order
	return order, nil
}

func (f *fakeOrderRepo) GetOrders(_ context.Context) ([]*entity.Order, error) {
	return f.orders, nil
}

// fakeSender implements mailer.Sender and counts sends.
type fakeSender struct {
	receipts int
	alerts   int
}

func (f *fakeSender) SendOrderReceipt(_ *entity.Order, _ *entity.ShippingInfo) error {
	f.receipts++
	return nil
}

func (f *fakeSender) SendAdminAlert(_ *entity.Order, _ *entity.ShippingInfo) error {
	f.alerts++
	return nil
}

// fakeAdminRepo implements service.AdminRepo with a single account.
type fakeAdminRepo struct {
	admin *entity.Admin
}

func (f *fakeAdminRepo) GetAdminByUsername(_ context.Context, username string) (*entity.Admin, error) {
	if f.admin == nil || f.admin.Username != username {
		return nil, repository.ErrAdminNotFound
	}
	return f.admin, nil
}

// fakeProductRepo implements service.ProductRepo over a fixed set.
type fakeProductRepo struct {
	products map[int]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := map[int]*entity.Product{}
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (f *fakeProductRepo) GetProductByID(_ context.Context, id int) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) GetProducts(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) GetFeaturedProducts(_ context.Context, limit int) ([]*entity.Product, error) {
	out, _ := f.GetProducts(context.Background())
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProductRepo) CreateProduct(_ context.Context, product *entity.Product) (*entity.Product, error) {
	product.ID = len(f.products) + 1
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeProductRepo) IncrementPopularity(_ context.Context, _ int) error {
	return nil
}

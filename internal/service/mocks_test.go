package service

import (
	"context"

	"github.com/mluvul69-gif/linea-store/internal/entity"
	"github.com/mluvul69-gif/linea-store/internal/payment"
	"github.com/mluvul69-gif/linea-store/internal/repository"
	"github.com/mluvul69-gif/linea-store/internal/session"
	"github.com/segmentio/kafka-go"
)

// fakeCartStore implements CartStore in memory.
type fakeCartStore struct {
	carts   map[string][]entity.CartEntry
	saveErr error
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[string][]entity.CartEntry{}}
}

func (f *fakeCartStore) Cart(_ context.Context, sid string) ([]entity.CartEntry, error) {
	return f.carts[sid], nil
}

func (f *fakeCartStore) SaveCart(_ context.Context, sid string, entries []entity.CartEntry) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.carts[sid] = entries
	return nil
}

func (f *fakeCartStore) ClearCart(_ context.Context, sid string) error {
	delete(f.carts, sid)
	return nil
}

// fakeCatalog implements Catalog over a fixed product set.
type fakeCatalog struct {
	products map[int]*entity.Product
	bumped   []int
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

func (f *fakeCatalog) BumpPopularity(_ context.Context, id int) error {
	f.bumped = append(f.bumped, id)
	return nil
}

// fakeProductRepo implements ProductRepo and counts repository reads so cache
// behavior is observable.
type fakeProductRepo struct {
	products map[int]*entity.Product
	getCalls int
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := map[int]*entity.Product{}
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (f *fakeProductRepo) GetProductByID(_ context.Context, id int) (*entity.Product, error) {
	f.getCalls++
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

func (f *fakeProductRepo) IncrementPopularity(_ context.Context, id int) error {
	if p, ok := f.products[id]; ok {
		p.Popularity++
	}
	return nil
}

// fakeGateway implements payment.Gateway and captures what was requested.
type fakeGateway struct {
	createdItems []payment.LineItem
	createdEmail string
	session      *payment.CheckoutSession
	createErr    error

	lineItems    []payment.LineItem
	lineItemsErr error
}

func (f *fakeGateway) CreateCheckoutSession(_ context.Context, items []payment.LineItem, email string) (*payment.CheckoutSession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdItems = items
	f.createdEmail = email
	return f.session, nil
}

func (f *fakeGateway) SessionLineItems(_ context.Context, _ string) ([]payment.LineItem, error) {
	return f.lineItems, f.lineItemsErr
}

// fakePendingStore implements PendingStore in memory.
type fakePendingStore struct {
	stash   map[string]*entity.ShippingInfo
	saveErr error
}

func newFakePendingStore() *fakePendingStore {
	return &fakePendingStore{stash: map[string]*entity.ShippingInfo{}}
}

func (f *fakePendingStore) SavePendingShipping(_ context.Context, checkoutID string, info *entity.ShippingInfo) error {
	if f.saveErr != nil {
		return f.saveErr
	}
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

// fakeOrderRepo implements OrderRepo and captures the created order.
type fakeOrderRepo struct {
	created   *entity.Order
	createErr error
	orders    []*entity.Order
	nextID    int
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order *entity.Order) (*entity.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	order.ID = f.nextID
	f.created = order
	return order, nil
}

func (f *fakeOrderRepo) GetOrders(_ context.Context) ([]*entity.Order, error) {
	return f.orders, nil
}

// fakeSender implements mailer.Sender and counts sends.
type fakeSender struct {
	receipts   int
	alerts     int
	receiptErr error
	alertErr   error

	lastShipping *entity.ShippingInfo
}

func (f *fakeSender) SendOrderReceipt(_ *entity.Order, shipping *entity.ShippingInfo) error {
	if f.receiptErr != nil {
		return f.receiptErr
	}
	f.receipts++
	f.lastShipping = shipping
	return nil
}

func (f *fakeSender) SendAdminAlert(_ *entity.Order, _ *entity.ShippingInfo) error {
	if f.alertErr != nil {
		return f.alertErr
	}
	f.alerts++
	return nil
}

// fakeEventWriter implements EventWriter and captures messages.
type fakeEventWriter struct {
	messages []kafka.Message
	writeErr error
}

func (f *fakeEventWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

// fakeAdminRepo implements AdminRepo with a single account.
type fakeAdminRepo struct {
	admin *entity.Admin
}

func (f *fakeAdminRepo) GetAdminByUsername(_ context.Context, username string) (*entity.Admin, error) {
	if f.admin == nil || f.admin.Username != username {
		return nil, repository.ErrAdminNotFound
	}
	return f.admin, nil
}

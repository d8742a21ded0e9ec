package service

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-tailorshop/internal/model"
	"go-tailorshop/internal/repository"
)

// In-memory repository fakes. They only implement the behavior the service
// tests exercise; tenant scoping follows the real queries (shop mismatch
// reads as record-not-found).

type fakeOrderRepo struct {
	orders map[uuid.UUID]*model.Order
	// dupFailures makes the next N Create calls fail with a duplicate-key
	// error, simulating a concurrent insert winning the unique index.
	dupFailures int
	creates     int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*model.Order)}
}

func (r *fakeOrderRepo) Create(order *model.Order) error {
	r.creates++
	if r.dupFailures > 0 {
		r.dupFailures--
		return gorm.ErrDuplicatedKey
	}
	for _, o := range r.orders {
		if o.ShopID == order.ShopID && o.OrderNumber == order.OrderNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) LastOrderNumber(shopID uuid.UUID) (string, error) {
	last := ""
	var lastSeq int
	for _, o := range r.orders {
		if o.ShopID != shopID || !model.ValidOrderNumber(o.OrderNumber) {
			continue
		}
		if seq := orderSeq(o.OrderNumber); seq > lastSeq {
			lastSeq = seq
			last = o.OrderNumber
		}
	}
	return last, nil
}

// orderSeq linearizes a code for "most recent" ordering in the fake.
func orderSeq(code string) int {
	letter := int(code[len(code)-1] - 'A')
	var num int
	for _, d := range code[:len(code)-1] {
		num = num*10 + int(d-'0')
	}
	return letter*1000 + num
}

func (r *fakeOrderRepo) FindAll(shopID uuid.UUID, filter repository.OrderFilter) ([]model.Order, error) {
	var out []model.Order
	for _, o := range r.orders {
		if o.ShopID != shopID {
			continue
		}
		if filter.ActiveOnly && !o.IsActive {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.CustomerID != nil && o.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.AssignedTailorID != nil &&
			(o.AssignedTailorID == nil || *o.AssignedTailorID != *filter.AssignedTailorID) {
			continue
		}
		if filter.AssignedCuttingMasterID != nil &&
			(o.AssignedCuttingMasterID == nil || *o.AssignedCuttingMasterID != *filter.AssignedCuttingMasterID) {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByID(shopID, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok || o.ShopID != shopID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) Update(order *model.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) Delete(shopID, id uuid.UUID) error {
	o, ok := r.orders[id]
	if !ok || o.ShopID != shopID {
		return gorm.ErrRecordNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) BulkAssignTailor(shopID uuid.UUID, orderIDs []uuid.UUID, tailorID uuid.UUID) (int64, error) {
	var modified int64
	for _, id := range orderIDs {
		o, ok := r.orders[id]
		if !ok || o.ShopID != shopID {
			continue
		}
		tid := tailorID
		o.AssignedTailorID = &tid
		modified++
	}
	return modified, nil
}

func (r *fakeOrderRepo) CountActive(shopID uuid.UUID) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.ShopID == shopID && o.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *fakeOrderRepo) CountActiveByStatus(shopID uuid.UUID, status model.OrderStatus) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.ShopID == shopID && o.IsActive && o.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeOrderRepo) StatusBreakdown(shopID uuid.UUID) ([]repository.StatusCount, error) {
	counts := make(map[model.OrderStatus]int64)
	for _, o := range r.orders {
		if o.ShopID == shopID && o.IsActive {
			counts[o.Status]++
		}
	}
	var out []repository.StatusCount
	for _, s := range model.OrderStatuses {
		if counts[s] > 0 {
			out = append(out, repository.StatusCount{Status: s, Count: counts[s]})
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Recent(shopID uuid.UUID, limit int) ([]model.Order, error) {
	out, _ := r.FindAll(shopID, repository.OrderFilter{})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *fakeCustomerRepo) Create(customer *model.Customer) error {
	for _, c := range r.customers {
		if c.ShopID == customer.ShopID && c.Phone == customer.Phone {
			return gorm.ErrDuplicatedKey
		}
	}
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	cp := *customer
	r.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) FindAll(shopID uuid.UUID, phoneSearch string) ([]model.Customer, error) {
	var digits strings.Builder
	for _, ch := range phoneSearch {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}
	var out []model.Customer
	for _, c := range r.customers {
		if c.ShopID != shopID {
			continue
		}
		if digits.Len() > 0 && !strings.Contains(c.Phone, digits.String()) {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) FindByID(shopID, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok || c.ShopID != shopID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) FindByPhone(shopID uuid.UUID, phone string) (*model.Customer, error) {
	for _, c := range r.customers {
		if c.ShopID == shopID && c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCustomerRepo) FindAllByPhone(phone string) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		if c.Phone == phone {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(customer *model.Customer) error {
	if _, ok := r.customers[customer.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, c := range r.customers {
		if c.ID != customer.ID && c.ShopID == customer.ShopID && c.Phone == customer.Phone {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *customer
	r.customers[customer.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) ReplaceMeasurements(customerID uuid.UUID, measurements []model.Measurement) error {
	c, ok := r.customers[customerID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Measurements = measurements
	return nil
}

func (r *fakeCustomerRepo) DeleteWithOrders(shopID, id uuid.UUID) error {
	c, ok := r.customers[id]
	if !ok || c.ShopID != shopID {
		return gorm.ErrRecordNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) Count(shopID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range r.customers {
		if c.ShopID == shopID {
			n++
		}
	}
	return n, nil
}

type fakeStaffRepo struct {
	staff map[uuid.UUID]*model.Staff
	// createErr, when set, fails the next Create call once.
	createErr error
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: make(map[uuid.UUID]*model.Staff)}
}

func (r *fakeStaffRepo) Create(s *model.Staff) error {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	for _, existing := range r.staff {
		if existing.ShopID == s.ShopID && existing.Role == s.Role && existing.Username == s.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.staff[s.ID] = &cp
	return nil
}

func (r *fakeStaffRepo) FindByUsername(shopID uuid.UUID, role model.Role, username string) (*model.Staff, error) {
	for _, s := range r.staff {
		if s.ShopID == shopID && s.Role == role && s.Username == username {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeStaffRepo) FindByID(shopID, id uuid.UUID) (*model.Staff, error) {
	s, ok := r.staff[id]
	if !ok || s.ShopID != shopID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStaffRepo) FindByRole(shopID uuid.UUID, role model.Role) ([]model.Staff, error) {
	var out []model.Staff
	for _, s := range r.staff {
		if s.ShopID == shopID && s.Role == role {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStaffRepo) Delete(shopID, id uuid.UUID, role model.Role) error {
	s, ok := r.staff[id]
	if !ok || s.ShopID != shopID || s.Role != role {
		return gorm.ErrRecordNotFound
	}
	delete(r.staff, id)
	return nil
}

func (r *fakeStaffRepo) UpdatePassword(staffID uuid.UUID, hashedPassword string) error {
	s, ok := r.staff[staffID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.PasswordHash = hashedPassword
	return nil
}

type fakeInventoryRepo struct {
	items map[uuid.UUID]*model.InventoryItem
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: make(map[uuid.UUID]*model.InventoryItem)}
}

func (r *fakeInventoryRepo) Create(item *model.InventoryItem) error {
	for _, existing := range r.items {
		if existing.ShopID == item.ShopID && existing.ItemName == item.ItemName {
			return gorm.ErrDuplicatedKey
		}
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) FindAll(shopID uuid.UUID) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	for _, i := range r.items {
		if i.ShopID == shopID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) FindByID(shopID, id uuid.UUID) (*model.InventoryItem, error) {
	i, ok := r.items[id]
	if !ok || i.ShopID != shopID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *i
	return &cp, nil
}

func (r *fakeInventoryRepo) Update(item *model.InventoryItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) Delete(shopID, id uuid.UUID) error {
	i, ok := r.items[id]
	if !ok || i.ShopID != shopID {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeInventoryRepo) AdjustQuantity(shopID, id uuid.UUID, delta int) (*model.InventoryItem, error) {
	i, ok := r.items[id]
	if !ok || i.ShopID != shopID {
		return nil, gorm.ErrRecordNotFound
	}
	i.Quantity += delta
	if i.Quantity < 0 {
		i.Quantity = 0
	}
	cp := *i
	return &cp, nil
}

func (r *fakeInventoryRepo) FindLowStock(shopID uuid.UUID) ([]model.InventoryItem, error) {
	var out []model.InventoryItem
	for _, i := range r.items {
		if i.ShopID == shopID && i.Quantity <= i.LowStockThreshold {
			out = append(out, *i)
		}
	}
	return out, nil
}

type fakeShopRepo struct {
	shops map[uuid.UUID]*model.Shop
	// deleted records rollback deletes during registration.
	deleted []uuid.UUID
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{shops: make(map[uuid.UUID]*model.Shop)}
}

func (r *fakeShopRepo) Create(shop *model.Shop) error {
	if shop.ID == uuid.Nil {
		shop.ID = uuid.New()
	}
	if shop.ShopCode == "" {
		shop.ShopCode = "TST00100"
	}
	cp := *shop
	r.shops[shop.ID] = &cp
	return nil
}

func (r *fakeShopRepo) Delete(id uuid.UUID) error {
	if _, ok := r.shops[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.shops, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeShopRepo) FindByID(id uuid.UUID) (*model.Shop, error) {
	s, ok := r.shops[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeShopRepo) FindByCode(code string) (*model.Shop, error) {
	for _, s := range r.shops {
		if s.ShopCode == code {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

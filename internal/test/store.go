package test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/stitchcraft/stitchcraft/internal/domain/errors"
	"github.com/stitchcraft/stitchcraft/internal/domain/model"
	"github.com/stitchcraft/stitchcraft/internal/domain/repository"
)

// Store is an in-memory repository.Factory with the same scoping and
// uniqueness rules as the postgres storage.
type Store struct {
	mu sync.Mutex

	Now func() time.Time
	// Err, when set, is returned by every operation.
	Err error
	// RecordErr, when set, is returned by Payments().Record.
	RecordErr error

	next int64

	users        map[int64]*model.User
	orgs         map[int64]*model.Organization
	memberships  map[int64]*model.Membership
	clients      map[int64]*model.Client
	measurements map[int64]*model.Measurement
	orders       map[int64]*model.Order
	payments     map[int64]*model.Payment
	intents      map[string]*model.PaymentIntent
	tokens       map[int64]*model.TrackingToken
	invoices     map[int64]*model.Invoice
	sequences    map[[2]int64]int
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		Now:          func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) },
		users:        make(map[int64]*model.User),
		orgs:         make(map[int64]*model.Organization),
		memberships:  make(map[int64]*model.Membership),
		clients:      make(map[int64]*model.Client),
		measurements: make(map[int64]*model.Measurement),
		orders:       make(map[int64]*model.Order),
		payments:     make(map[int64]*model.Payment),
		intents:      make(map[string]*model.PaymentIntent),
		tokens:       make(map[int64]*model.TrackingToken),
		invoices:     make(map[int64]*model.Invoice),
		sequences:    make(map[[2]int64]int),
	}
}

func (s *Store) id() int64 {
	s.next++
	return s.next
}

func (s *Store) Users() repository.UserRepository                   { return userStore{s} }
func (s *Store) Organizations() repository.OrganizationRepository   { return orgStore{s} }
func (s *Store) Clients() repository.ClientRepository               { return clientStore{s} }
func (s *Store) Measurements() repository.MeasurementRepository     { return measurementStore{s} }
func (s *Store) Orders() repository.OrderRepository                 { return orderStore{s} }
func (s *Store) Payments() repository.PaymentRepository             { return paymentStore{s} }
func (s *Store) PaymentIntents() repository.PaymentIntentRepository { return intentStore{s} }
func (s *Store) TrackingTokens() repository.TrackingTokenRepository { return tokenStore{s} }
func (s *Store) Invoices() repository.InvoiceRepository             { return invoiceStore{s} }

var _ repository.Factory = (*Store)(nil)

// Order returns a copy of the stored order for assertions.
func (s *Store) Order(id int64) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return model.Order{}, false
	}
	return *o, true
}

// PaymentCount returns the number of stored payments.
func (s *Store) PaymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payments)
}

// Intent returns a copy of the stored intent for assertions.
func (s *Store) Intent(reference string) (model.PaymentIntent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.intents[reference]
	if !ok {
		return model.PaymentIntent{}, false
	}
	return *in, true
}

func (s *Store) insertUser(u model.User) (*model.User, error) {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	u.ID = s.id()
	u.CreatedAt = s.Now()
	s.users[u.ID] = &u
	out := u
	return &out, nil
}

type userStore struct{ s *Store }

func (r userStore) Create(_ context.Context, u model.User) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.s.insertUser(u)
}

func (r userStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r userStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r userStore) SetActive(_ context.Context, id int64, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	u, ok := r.s.users[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	u.Active = active
	return nil
}

type orgStore struct{ s *Store }

func (r orgStore) CreateWithOwner(_ context.Context, owner model.User, org model.Organization) (*model.User, *model.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, nil, r.s.Err
	}
	user, err := r.s.insertUser(owner)
	if err != nil {
		return nil, nil, err
	}
	org.ID = r.s.id()
	org.OwnerID = user.ID
	org.CreatedAt = r.s.Now()
	r.s.orgs[org.ID] = &org
	r.s.memberships[user.ID] = &model.Membership{OrganizationID: org.ID, UserID: user.ID, Role: model.MembershipOwner, CreatedAt: r.s.Now()}
	out := org
	return user, &out, nil
}

func (r orgStore) GetByID(_ context.Context, id int64) (*model.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	org, ok := r.s.orgs[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *org
	return &out, nil
}

func (r orgStore) List(_ context.Context) ([]model.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := make([]model.Organization, 0, len(r.s.orgs))
	for _, org := range r.s.orgs {
		out = append(out, *org)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r orgStore) AddMember(_ context.Context, orgID int64, user model.User, permissions []string) (*model.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if _, ok := r.s.orgs[orgID]; !ok {
		return nil, domainErrors.ErrNotFound
	}
	created, err := r.s.insertUser(user)
	if err != nil {
		return nil, err
	}
	m := model.Membership{OrganizationID: orgID, UserID: created.ID, Role: model.MembershipWorker, Permissions: permissions, CreatedAt: r.s.Now()}
	r.s.memberships[created.ID] = &m
	return &model.Member{User: *created, Membership: m}, nil
}

func (r orgStore) MembershipByUser(_ context.Context, userID int64) (*model.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	m, ok := r.s.memberships[userID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *m
	return &out, nil
}

func (r orgStore) ListMembers(_ context.Context, orgID int64) ([]model.Member, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []model.Member
	for userID, m := range r.s.memberships {
		if m.OrganizationID == orgID {
			out = append(out, model.Member{User: *r.s.users[userID], Membership: *m})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].User.ID < out[j].User.ID })
	return out, nil
}

type clientStore struct{ s *Store }

func (r clientStore) Create(_ context.Context, c model.Client) (*model.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	c.ID = r.s.id()
	c.CreatedAt = r.s.Now()
	r.s.clients[c.ID] = &c
	out := c
	return &out, nil
}

func (r clientStore) get(orgID, id int64) (*model.Client, error) {
	c, ok := r.s.clients[id]
	if !ok || c.OrganizationID != orgID {
		return nil, domainErrors.ErrNotFound
	}
	return c, nil
}

func (r clientStore) Get(_ context.Context, orgID, id int64) (*model.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	c, err := r.get(orgID, id)
	if err != nil {
		return nil, err
	}
	out := *c
	return &out, nil
}

func (r clientStore) GetByUserID(_ context.Context, userID int64) (*model.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, c := range r.s.clients {
		if c.UserID != nil && *c.UserID == userID {
			out := *c
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r clientStore) List(_ context.Context, orgID int64) ([]model.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []model.Client
	for _, c := range r.s.clients {
		if c.OrganizationID == orgID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r clientStore) Update(_ context.Context, c model.Client) (*model.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	existing, err := r.get(c.OrganizationID, c.ID)
	if err != nil {
		return nil, err
	}
	existing.Name, existing.Phone, existing.Email, existing.Notes = c.Name, c.Phone, c.Email, c.Notes
	out := *existing
	return &out, nil
}

func (r clientStore) AttachUser(_ context.Context, orgID, clientID int64, user model.User) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	c, err := r.get(orgID, clientID)
	if err != nil {
		return nil, err
	}
	if c.UserID != nil {
		return nil, domainErrors.ErrAlreadyExists
	}
	created, err := r.s.insertUser(user)
	if err != nil {
		return nil, err
	}
	id := created.ID
	c.UserID = &id
	return created, nil
}

type measurementStore struct{ s *Store }

func (r measurementStore) Create(_ context.Context, m model.Measurement) (*model.Measurement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	m.ID = r.s.id()
	r.s.measurements[m.ID] = &m
	out := m
	return &out, nil
}

func (r measurementStore) ListByClient(_ context.Context, orgID, clientID int64) ([]model.Measurement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []model.Measurement
	for _, m := range r.s.measurements {
		if m.OrganizationID == orgID && m.ClientID == clientID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type orderStore struct{ s *Store }

func (r orderStore) Create(_ context.Context, o model.Order) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	o.ID = r.s.id()
	o.CreatedAt = r.s.Now()
	o.UpdatedAt = o.CreatedAt
	r.s.orders[o.ID] = &o
	out := o
	return &out, nil
}

func (r orderStore) Get(_ context.Context, orgID, id int64) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	o, ok := r.s.orders[id]
	if !ok || o.OrganizationID != orgID {
		return nil, domainErrors.ErrNotFound
	}
	out := *o
	return &out, nil
}

func (r orderStore) GetByID(_ context.Context, id int64) (*model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	o, ok := r.s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *o
	return &out, nil
}

func (r orderStore) filter(keep func(*model.Order) bool) []model.Order {
	var out []model.Order
	for _, o := range r.s.orders {
		if keep(o) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r orderStore) List(_ context.Context, orgID int64, status model.OrderStatus) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.filter(func(o *model.Order) bool {
		return o.OrganizationID == orgID && (status == "" || o.Status == status)
	}), nil
}

func (r orderStore) ListByClient(_ context.Context, orgID, clientID int64) ([]model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.filter(func(o *model.Order) bool {
		return o.OrganizationID == orgID && o.ClientID == clientID
	}), nil
}

func (r orderStore) UpdateStatus(_ context.Context, orgID, id int64, status model.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	o, ok := r.s.orders[id]
	if !ok || o.OrganizationID != orgID {
		return domainErrors.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = r.s.Now()
	return nil
}

type paymentStore struct{ s *Store }

func (r paymentStore) GetByReference(_ context.Context, reference string) (*model.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, p := range r.s.payments {
		if p.Reference == reference {
			out := *p
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r paymentStore) Record(_ context.Context, p model.Payment) (*model.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if r.s.RecordErr != nil {
		return nil, r.s.RecordErr
	}
	for _, existing := range r.s.payments {
		if existing.Reference == p.Reference {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	order, ok := r.s.orders[p.OrderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	p.ID = r.s.id()
	p.CreatedAt = r.s.Now()
	if p.PaidAt.IsZero() {
		p.PaidAt = p.CreatedAt
	}
	r.s.payments[p.ID] = &p
	order.PaidAmount = order.PaidAmount.Add(p.Amount)
	out := p
	return &out, nil
}

func (r paymentStore) filter(keep func(*model.Payment) bool) []model.Payment {
	var out []model.Payment
	for _, p := range r.s.payments {
		if keep(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r paymentStore) ListByOrder(_ context.Context, orgID, orderID int64) ([]model.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.filter(func(p *model.Payment) bool { return p.OrganizationID == orgID && p.OrderID == orderID }), nil
}

func (r paymentStore) List(_ context.Context, orgID int64) ([]model.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.filter(func(p *model.Payment) bool { return p.OrganizationID == orgID }), nil
}

func (r paymentStore) ListByClient(_ context.Context, orgID, clientID int64) ([]model.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.filter(func(p *model.Payment) bool {
		o, ok := r.s.orders[p.OrderID]
		return ok && p.OrganizationID == orgID && o.ClientID == clientID
	}), nil
}

type intentStore struct{ s *Store }

func (r intentStore) Create(_ context.Context, in model.PaymentIntent) (*model.PaymentIntent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if _, exists := r.s.intents[in.Reference]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	in.ID = r.s.id()
	in.CreatedAt = r.s.Now()
	r.s.intents[in.Reference] = &in
	out := in
	return &out, nil
}

func (r intentStore) GetByReference(_ context.Context, reference string) (*model.PaymentIntent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	in, ok := r.s.intents[reference]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *in
	return &out, nil
}

func (r intentStore) SelectPendingForVerification(_ context.Context, staleAfter time.Duration, limit int) ([]model.PaymentIntent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	now := r.s.Now()
	cutoff := now.Add(-staleAfter)
	var out []model.PaymentIntent
	for _, in := range r.s.intents {
		if in.Status != model.IntentStatusPending {
			continue
		}
		if in.LastCheckedAt != nil && in.LastCheckedAt.After(cutoff) {
			continue
		}
		out = append(out, *in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		stored := r.s.intents[out[i].Reference]
		stored.Attempts++
		checked := now
		stored.LastCheckedAt = &checked
		out[i] = *stored
	}
	return out, nil
}

func (r intentStore) UpdateStatus(_ context.Context, reference string, status model.IntentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	in, ok := r.s.intents[reference]
	if !ok {
		return domainErrors.ErrNotFound
	}
	in.Status = status
	return nil
}

type tokenStore struct{ s *Store }

func (r tokenStore) Create(_ context.Context, t model.TrackingToken) (*model.TrackingToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, existing := range r.s.tokens {
		if existing.Token == t.Token {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	t.ID = r.s.id()
	t.CreatedAt = r.s.Now()
	r.s.tokens[t.ID] = &t
	out := t
	return &out, nil
}

func (r tokenStore) GetByToken(_ context.Context, token string) (*model.TrackingToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, t := range r.s.tokens {
		if t.Token == token {
			out := *t
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (r tokenStore) ListByClient(_ context.Context, orgID, clientID int64) ([]model.TrackingToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []model.TrackingToken
	for _, t := range r.s.tokens {
		if t.OrganizationID == orgID && t.ClientID == clientID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r tokenStore) Deactivate(_ context.Context, orgID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	t, ok := r.s.tokens[id]
	if !ok || t.OrganizationID != orgID {
		return domainErrors.ErrNotFound
	}
	t.Active = false
	return nil
}

func (r tokenStore) Touch(_ context.Context, id int64, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	t, ok := r.s.tokens[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	used := at
	t.LastUsedAt = &used
	return nil
}

type invoiceStore struct{ s *Store }

func (r invoiceStore) Create(_ context.Context, inv model.Invoice) (*model.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	if inv.IssuedAt.IsZero() {
		inv.IssuedAt = r.s.Now()
	}
	if inv.Status == "" {
		inv.Status = model.InvoiceStatusIssued
	}
	year := inv.IssuedAt.Year()
	key := [2]int64{inv.OrganizationID, int64(year)}
	r.s.sequences[key]++
	inv.Number = invoiceNumber(year, r.s.sequences[key])
	inv.ID = r.s.id()
	r.s.invoices[inv.ID] = &inv
	out := inv
	return &out, nil
}

func (r invoiceStore) Get(_ context.Context, orgID, id int64) (*model.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	inv, ok := r.s.invoices[id]
	if !ok || inv.OrganizationID != orgID {
		return nil, domainErrors.ErrNotFound
	}
	out := *inv
	return &out, nil
}

func (r invoiceStore) List(_ context.Context, orgID int64) ([]model.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	var out []model.Invoice
	for _, inv := range r.s.invoices {
		if inv.OrganizationID == orgID {
			out = append(out, *inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r invoiceStore) Void(_ context.Context, orgID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	inv, ok := r.s.invoices[id]
	if !ok || inv.OrganizationID != orgID {
		return domainErrors.ErrNotFound
	}
	inv.Status = model.InvoiceStatusVoid
	return nil
}

// Money parses a decimal literal and panics on malformed input.
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func invoiceNumber(year, seq int) string {
	return fmt.Sprintf("INV-%d-%04d", year, seq)
}

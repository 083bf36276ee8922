package services

import (
	"context"
	"errors"
	"sync"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	mongorepo "github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories/mongodb"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/payphone"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/pixel"
	"github.com/Neoshock-inc/raffle-proyect-sub004/pkg/stripeapi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes for the repository and gateway interfaces, shared across
// the service tests in this package.

// The fakes answer misses with the same sentinel the mongo repositories use
// so the services' not-found mapping is exercised.
var errFakeNotFound = mongorepo.ErrNotFound

type fakeRaffleRepo struct {
	mu      sync.Mutex
	raffles map[primitive.ObjectID]*models.Raffle
}

func newFakeRaffleRepo(raffles ...*models.Raffle) *fakeRaffleRepo {
	repo := &fakeRaffleRepo{raffles: make(map[primitive.ObjectID]*models.Raffle)}
	for _, r := range raffles {
		repo.raffles[r.ID] = r
	}
	return repo
}

func (f *fakeRaffleRepo) Create(ctx context.Context, raffle *models.Raffle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if raffle.ID.IsZero() {
		raffle.ID = primitive.NewObjectID()
	}
	f.raffles[raffle.ID] = raffle
	return nil
}

func (f *fakeRaffleRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Raffle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raffle, ok := f.raffles[id]
	if !ok {
		return nil, errFakeNotFound
	}
	copied := *raffle
	return &copied, nil
}

func (f *fakeRaffleRepo) FindByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]*models.Raffle, error) {
	return nil, nil
}

func (f *fakeRaffleRepo) FindByStatus(ctx context.Context, tenantID primitive.ObjectID, status models.RaffleStatus) ([]*models.Raffle, error) {
	return nil, nil
}

func (f *fakeRaffleRepo) Update(ctx context.Context, raffle *models.Raffle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raffles[raffle.ID] = raffle
	return nil
}

func (f *fakeRaffleRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.raffles, id)
	return nil
}

func (f *fakeRaffleRepo) ReserveNumbers(ctx context.Context, id primitive.ObjectID, count int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raffle, ok := f.raffles[id]
	if !ok {
		return 0, errFakeNotFound
	}
	if raffle.TotalNumbers > 0 && raffle.NumbersIssued+count > raffle.TotalNumbers {
		return 0, errors.New("raffle sold out")
	}
	raffle.NumbersIssued += count
	return raffle.NumbersIssued - count + 1, nil
}

func (f *fakeRaffleRepo) ClearPoolRef(ctx context.Context, poolID primitive.ObjectID) error {
	return nil
}

type fakeAssignmentRepo struct {
	assignments []*models.NumberAssignment
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, assignment *models.NumberAssignment) error {
	if assignment.ID.IsZero() {
		assignment.ID = primitive.NewObjectID()
	}
	f.assignments = append(f.assignments, assignment)
	return nil
}

func (f *fakeAssignmentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.NumberAssignment, error) {
	for _, a := range f.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeAssignmentRepo) FindByReferral(ctx context.Context, referralID primitive.ObjectID) ([]*models.NumberAssignment, error) {
	var out []*models.NumberAssignment
	for _, a := range f.assignments {
		if a.ReferralID == referralID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) FindAssignedByRaffle(ctx context.Context, raffleID primitive.ObjectID) ([]*models.NumberAssignment, error) {
	var out []*models.NumberAssignment
	for _, a := range f.assignments {
		if a.RaffleID == raffleID && a.Status == models.AssignmentStatusAssigned {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignmentRepo) Update(ctx context.Context, assignment *models.NumberAssignment) error {
	for i, a := range f.assignments {
		if a.ID == assignment.ID {
			f.assignments[i] = assignment
			return nil
		}
	}
	return errFakeNotFound
}

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	invoices map[string]*models.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[string]*models.Invoice)}
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if invoice.ID.IsZero() {
		invoice.ID = primitive.NewObjectID()
	}
	f.invoices[invoice.OrderNumber] = invoice
	return nil
}

func (f *fakeInvoiceRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	invoice, ok := f.invoices[orderNumber]
	if !ok {
		return nil, errFakeNotFound
	}
	copied := *invoice
	return &copied, nil
}

func (f *fakeInvoiceRepo) FindByExternalRef(ctx context.Context, ref string) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, invoice := range f.invoices {
		if invoice.ExternalRef == ref {
			copied := *invoice
			return &copied, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeInvoiceRepo) FindByTenant(ctx context.Context, tenantID primitive.ObjectID, page, limit int) ([]*models.Invoice, error) {
	return nil, nil
}

func (f *fakeInvoiceRepo) CompletePending(ctx context.Context, orderNumber string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	invoice, ok := f.invoices[orderNumber]
	if !ok || invoice.Status != models.InvoiceStatusPending {
		return false, nil
	}
	invoice.Status = models.InvoiceStatusCompleted
	return true, nil
}

func (f *fakeInvoiceRepo) MarkCancelled(ctx context.Context, orderNumber string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	invoice, ok := f.invoices[orderNumber]
	if !ok {
		return errFakeNotFound
	}
	invoice.Status = models.InvoiceStatusCancelled
	return nil
}

func (f *fakeInvoiceRepo) SetExternalRef(ctx context.Context, orderNumber, ref string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	invoice, ok := f.invoices[orderNumber]
	if !ok {
		return errFakeNotFound
	}
	invoice.ExternalRef = ref
	return nil
}

func (f *fakeInvoiceRepo) SetAssignedNumbers(ctx context.Context, orderNumber string, numbers []int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	invoice, ok := f.invoices[orderNumber]
	if !ok {
		return errFakeNotFound
	}
	invoice.AssignedNumbers = numbers
	return nil
}

func (f *fakeInvoiceRepo) Count(ctx context.Context, tenantID primitive.ObjectID) (int64, error) {
	return int64(len(f.invoices)), nil
}

type fakeReferralRepo struct {
	referrals map[primitive.ObjectID]*models.Referral
}

func newFakeReferralRepo(referrals ...*models.Referral) *fakeReferralRepo {
	repo := &fakeReferralRepo{referrals: make(map[primitive.ObjectID]*models.Referral)}
	for _, r := range referrals {
		repo.referrals[r.ID] = r
	}
	return repo
}

func (f *fakeReferralRepo) Create(ctx context.Context, referral *models.Referral) error {
	if referral.ID.IsZero() {
		referral.ID = primitive.NewObjectID()
	}
	f.referrals[referral.ID] = referral
	return nil
}

func (f *fakeReferralRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Referral, error) {
	referral, ok := f.referrals[id]
	if !ok {
		return nil, errFakeNotFound
	}
	return referral, nil
}

func (f *fakeReferralRepo) FindByCode(ctx context.Context, tenantID primitive.ObjectID, code string) (*models.Referral, error) {
	for _, r := range f.referrals {
		if r.TenantID == tenantID && r.Code == code {
			return r, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeReferralRepo) FindByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]*models.Referral, error) {
	return nil, nil
}

func (f *fakeReferralRepo) Update(ctx context.Context, referral *models.Referral) error {
	f.referrals[referral.ID] = referral
	return nil
}

func (f *fakeReferralRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.referrals, id)
	return nil
}

func (f *fakeReferralRepo) IncrementStats(ctx context.Context, id primitive.ObjectID, sales int, commission float64) error {
	referral, ok := f.referrals[id]
	if !ok {
		return errFakeNotFound
	}
	referral.SalesCount += sales
	referral.CommissionTotal += commission
	return nil
}

type fakeTenantRepo struct {
	paymentConfigs map[primitive.ObjectID]*models.TenantPaymentConfig
}

func (f *fakeTenantRepo) Create(ctx context.Context, tenant *models.Tenant) error { return nil }
func (f *fakeTenantRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tenant, error) {
	return nil, errFakeNotFound
}
func (f *fakeTenantRepo) FindBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	return nil, errFakeNotFound
}
func (f *fakeTenantRepo) FindByDomain(ctx context.Context, domain string) (*models.Tenant, error) {
	return nil, errFakeNotFound
}
func (f *fakeTenantRepo) Update(ctx context.Context, tenant *models.Tenant) error { return nil }
func (f *fakeTenantRepo) FindAll(ctx context.Context) ([]*models.Tenant, error)   { return nil, nil }
func (f *fakeTenantRepo) GetPaymentConfig(ctx context.Context, tenantID primitive.ObjectID) (*models.TenantPaymentConfig, error) {
	cfg, ok := f.paymentConfigs[tenantID]
	if !ok {
		return nil, errFakeNotFound
	}
	return cfg, nil
}
func (f *fakeTenantRepo) UpsertPaymentConfig(ctx context.Context, config *models.TenantPaymentConfig) error {
	return nil
}
func (f *fakeTenantRepo) FindRoleByName(ctx context.Context, name string) (*models.Role, error) {
	return nil, errFakeNotFound
}

type fakeTicketPackageRepo struct {
	packages []*models.TicketPackage
}

func (f *fakeTicketPackageRepo) Create(ctx context.Context, pkg *models.TicketPackage) error {
	if pkg.ID.IsZero() {
		pkg.ID = primitive.NewObjectID()
	}
	f.packages = append(f.packages, pkg)
	return nil
}

func (f *fakeTicketPackageRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.TicketPackage, error) {
	for _, p := range f.packages {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errFakeNotFound
}

func (f *fakeTicketPackageRepo) FindByRaffle(ctx context.Context, raffleID primitive.ObjectID) ([]*models.TicketPackage, error) {
	var out []*models.TicketPackage
	for _, p := range f.packages {
		if p.RaffleID == raffleID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeTicketPackageRepo) Update(ctx context.Context, pkg *models.TicketPackage) error {
	for i, p := range f.packages {
		if p.ID == pkg.ID {
			f.packages[i] = pkg
			return nil
		}
	}
	return errFakeNotFound
}

func (f *fakeTicketPackageRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	for i, p := range f.packages {
		if p.ID == id {
			f.packages = append(f.packages[:i], f.packages[i+1:]...)
			return nil
		}
	}
	return errFakeNotFound
}

type fakeCardGateway struct {
	err      error
	sessions []stripeapi.SessionRequest
}

func (f *fakeCardGateway) CreateCheckoutSession(ctx context.Context, req stripeapi.SessionRequest) (*stripeapi.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sessions = append(f.sessions, req)
	return &stripeapi.Session{ID: "cs_test_" + req.OrderNumber, URL: "https://checkout.example.com/" + req.OrderNumber}, nil
}

type fakeLinkGateway struct {
	err        error
	authorized bool
}

func (f *fakeLinkGateway) CreateLink(ctx context.Context, req payphone.LinkRequest) (*payphone.LinkResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &payphone.LinkResponse{PaymentID: "pp_" + req.ClientTxID, PayWithCard: "https://pay.example.com/" + req.ClientTxID}, nil
}

func (f *fakeLinkGateway) Confirm(ctx context.Context, transactionID, clientTxID string) (*payphone.ConfirmResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	status := "Rejected"
	if f.authorized {
		status = "Approved"
	}
	return &payphone.ConfirmResponse{
		TransactionID:     transactionID,
		ClientTxID:        clientTxID,
		TransactionStatus: status,
		Authorized:        f.authorized,
	}, nil
}

type fakeMailer struct {
	confirmations int
	instructions  int
}

func (f *fakeMailer) SendPurchaseConfirmation(ctx context.Context, to, fullName, orderNumber string, numbers []int) error {
	f.confirmations++
	return nil
}

func (f *fakeMailer) SendBankTransferInstructions(ctx context.Context, to, fullName, orderNumber string, total float64) error {
	f.instructions++
	return nil
}

type fakeTracker struct {
	events []pixel.PurchaseEvent
}

func (f *fakeTracker) TrackPurchase(ctx context.Context, event pixel.PurchaseEvent) error {
	f.events = append(f.events, event)
	return nil
}

package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InvoiceRepository implements the repositories.InvoiceRepository interface
type InvoiceRepository struct {
	collection *mongo.Collection
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(db *mongo.Database) repositories.InvoiceRepository {
	return &InvoiceRepository{
		collection: db.Collection("invoices"),
	}
}

// Create creates a new invoice in PENDING state
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	invoice.CreatedAt = time.Now()
	invoice.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, invoice)
	if err != nil {
		return err
	}
	invoice.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByOrderNumber finds an invoice by its order number
func (r *InvoiceRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.collection.FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&invoice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByExternalRef finds an invoice by its gateway reference (session id,
// payphone transaction id). Used for webhook idempotency.
func (r *InvoiceRepository) FindByExternalRef(ctx context.Context, ref string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.collection.FindOne(ctx, bson.M{"externalRef": ref}).Decode(&invoice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByTenant finds a tenant's invoices, newest first
func (r *InvoiceRepository) FindByTenant(ctx context.Context, tenantID primitive.ObjectID, page, limit int) ([]*models.Invoice, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"tenantId": tenantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var invoices []*models.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []*models.Invoice{}
	}
	return invoices, nil
}

// CompletePending flips PENDING -> COMPLETED as a compare-and-swap. The
// status filter guarantees exactly one of two racing writers wins; the loser
// sees modified-count zero and must not re-run the downstream effects.
func (r *InvoiceRepository) CompletePending(ctx context.Context, orderNumber string) (bool, error) {
	now := time.Now()
	filter := bson.M{"orderNumber": orderNumber, "status": models.InvoiceStatusPending}
	update := bson.M{"$set": bson.M{
		"status":      models.InvoiceStatusCompleted,
		"completedAt": now,
		"updatedAt":   now,
	}}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// MarkCancelled marks a pending invoice as cancelled. Completed invoices are
// left untouched.
func (r *InvoiceRepository) MarkCancelled(ctx context.Context, orderNumber string) error {
	filter := bson.M{"orderNumber": orderNumber, "status": models.InvoiceStatusPending}
	update := bson.M{"$set": bson.M{
		"status":    models.InvoiceStatusCancelled,
		"updatedAt": time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// SetExternalRef records the gateway reference of an invoice
func (r *InvoiceRepository) SetExternalRef(ctx context.Context, orderNumber, ref string) error {
	update := bson.M{"$set": bson.M{"externalRef": ref, "updatedAt": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"orderNumber": orderNumber}, update)
	return err
}

// SetAssignedNumbers records the numbers allocated to a completed invoice
func (r *InvoiceRepository) SetAssignedNumbers(ctx context.Context, orderNumber string, numbers []int) error {
	update := bson.M{"$set": bson.M{"assignedNumbers": numbers, "updatedAt": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"orderNumber": orderNumber}, update)
	return err
}

// Count counts a tenant's invoices
func (r *InvoiceRepository) Count(ctx context.Context, tenantID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"tenantId": tenantID})
}

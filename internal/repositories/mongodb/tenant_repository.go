package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

// TenantRepository implements the repositories.TenantRepository interface
type TenantRepository struct {
	collection     *mongo.Collection
	paymentConfigs *mongo.Collection
	roles          *mongo.Collection
}

// NewTenantRepository creates a new TenantRepository
func NewTenantRepository(db *mongo.Database) repositories.TenantRepository {
	return &TenantRepository{
		collection:     db.Collection("tenants"),
		paymentConfigs: db.Collection("tenant_payment_configs"),
		roles:          db.Collection("roles"),
	}
}

// Create creates a new tenant
func (r *TenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	tenant.CreatedAt = time.Now()
	tenant.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, tenant)
	if err != nil {
		return err
	}
	tenant.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a tenant by ID
func (r *TenantRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tenant)
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// FindBySlug finds a tenant by its storefront slug
func (r *TenantRepository) FindBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&tenant)
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// FindByDomain finds a tenant by its custom domain
func (r *TenantRepository) FindByDomain(ctx context.Context, domain string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := r.collection.FindOne(ctx, bson.M{"customDomain": domain}).Decode(&tenant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

// Update updates a tenant
func (r *TenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	tenant.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": tenant.ID}, tenant)
	return err
}

// FindAll finds all tenants
func (r *TenantRepository) FindAll(ctx context.Context) ([]*models.Tenant, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tenants []*models.Tenant
	if err := cursor.All(ctx, &tenants); err != nil {
		return nil, err
	}
	if tenants == nil {
		tenants = []*models.Tenant{}
	}
	return tenants, nil
}

// GetPaymentConfig finds the payment configuration for a tenant
func (r *TenantRepository) GetPaymentConfig(ctx context.Context, tenantID primitive.ObjectID) (*models.TenantPaymentConfig, error) {
	var config models.TenantPaymentConfig
	err := r.paymentConfigs.FindOne(ctx, bson.M{"tenantId": tenantID}).Decode(&config)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &config, nil
}

// UpsertPaymentConfig creates or replaces the payment configuration for a tenant
func (r *TenantRepository) UpsertPaymentConfig(ctx context.Context, config *models.TenantPaymentConfig) error {
	config.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	_, err := r.paymentConfigs.ReplaceOne(ctx, bson.M{"tenantId": config.TenantID}, config, opts)
	return err
}

// FindRoleByName finds a role with its feature set. A role document with a
// missing or ill-shaped feature list decodes to an empty slice; a missing
// role is an explicit not-found.
func (r *TenantRepository) FindRoleByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.roles.FindOne(ctx, bson.M{"name": name}).Decode(&role)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("role %q: %w", name, ErrNotFound)
		}
		return nil, err
	}
	if role.Features == nil {
		role.Features = []models.Feature{}
	}
	return &role, nil
}

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

// ReferralRepository implements the repositories.ReferralRepository interface
type ReferralRepository struct {
	collection *mongo.Collection
}

// NewReferralRepository creates a new ReferralRepository
func NewReferralRepository(db *mongo.Database) repositories.ReferralRepository {
	return &ReferralRepository{
		collection: db.Collection("referrals"),
	}
}

// Create creates a new referral
func (r *ReferralRepository) Create(ctx context.Context, referral *models.Referral) error {
	referral.CreatedAt = time.Now()
	referral.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, referral)
	if err != nil {
		return err
	}
	referral.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a referral by ID
func (r *ReferralRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Referral, error) {
	var referral models.Referral
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&referral)
	if err != nil {
		return nil, err
	}
	return &referral, nil
}

// FindByCode finds a tenant's referral by ambassador code
func (r *ReferralRepository) FindByCode(ctx context.Context, tenantID primitive.ObjectID, code string) (*models.Referral, error) {
	var referral models.Referral
	err := r.collection.FindOne(ctx, bson.M{"tenantId": tenantID, "code": code}).Decode(&referral)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &referral, nil
}

// FindByTenant finds all referrals of a tenant
func (r *ReferralRepository) FindByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]*models.Referral, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"tenantId": tenantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var referrals []*models.Referral
	if err := cursor.All(ctx, &referrals); err != nil {
		return nil, err
	}
	if referrals == nil {
		referrals = []*models.Referral{}
	}
	return referrals, nil
}

// Update updates a referral
func (r *ReferralRepository) Update(ctx context.Context, referral *models.Referral) error {
	referral.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": referral.ID}, referral)
	return err
}

// Delete deletes a referral by ID
func (r *ReferralRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// IncrementStats accrues sales and commission counters atomically
func (r *ReferralRepository) IncrementStats(ctx context.Context, id primitive.ObjectID, sales int, commission float64) error {
	update := bson.M{
		"$inc": bson.M{"salesCount": sales, "commissionTotal": commission},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

package mongodb

import (
	"context"
	"time"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TicketPackageRepository implements the repositories.TicketPackageRepository interface
type TicketPackageRepository struct {
	collection *mongo.Collection
}

// NewTicketPackageRepository creates a new TicketPackageRepository
func NewTicketPackageRepository(db *mongo.Database) repositories.TicketPackageRepository {
	return &TicketPackageRepository{
		collection: db.Collection("ticket_packages"),
	}
}

// Create creates a new ticket package
func (r *TicketPackageRepository) Create(ctx context.Context, pkg *models.TicketPackage) error {
	pkg.CreatedAt = time.Now()
	pkg.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, pkg)
	if err != nil {
		return err
	}
	pkg.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a ticket package by ID
func (r *TicketPackageRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.TicketPackage, error) {
	var pkg models.TicketPackage
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pkg)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// FindByRaffle finds the packages configured for a raffle, cheapest ladder first
func (r *TicketPackageRepository) FindByRaffle(ctx context.Context, raffleID primitive.ObjectID) ([]*models.TicketPackage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sortOrder", Value: 1}, {Key: "basePrice", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"raffleId": raffleID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var packages []*models.TicketPackage
	if err := cursor.All(ctx, &packages); err != nil {
		return nil, err
	}
	if packages == nil {
		packages = []*models.TicketPackage{}
	}
	return packages, nil
}

// Update updates a ticket package
func (r *TicketPackageRepository) Update(ctx context.Context, pkg *models.TicketPackage) error {
	pkg.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": pkg.ID}, pkg)
	return err
}

// Delete deletes a ticket package by ID
func (r *TicketPackageRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

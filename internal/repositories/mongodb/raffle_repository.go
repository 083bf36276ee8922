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

// ErrSoldOut is returned when a reservation would exceed the raffle's total numbers.
var ErrSoldOut = errors.New("raffle sold out")

// RaffleRepository implements the repositories.RaffleRepository interface
type RaffleRepository struct {
	collection *mongo.Collection
}

// NewRaffleRepository creates a new RaffleRepository
func NewRaffleRepository(db *mongo.Database) repositories.RaffleRepository {
	return &RaffleRepository{
		collection: db.Collection("raffles"),
	}
}

// Create creates a new raffle
func (r *RaffleRepository) Create(ctx context.Context, raffle *models.Raffle) error {
	raffle.CreatedAt = time.Now()
	raffle.UpdatedAt = time.Now()
	res, err := r.collection.InsertOne(ctx, raffle)
	if err != nil {
		return err
	}
	raffle.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a raffle by ID
func (r *RaffleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Raffle, error) {
	var raffle models.Raffle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&raffle)
	if err != nil {
		return nil, err
	}
	return &raffle, nil
}

// FindByTenant finds all raffles belonging to a tenant
func (r *RaffleRepository) FindByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]*models.Raffle, error) {
	opts := options.Find().SetSort(bson.M{"drawDate": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"tenantId": tenantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var raffles []*models.Raffle
	if err := cursor.All(ctx, &raffles); err != nil {
		return nil, err
	}
	if raffles == nil {
		raffles = []*models.Raffle{}
	}
	return raffles, nil
}

// FindByStatus finds a tenant's raffles by status
func (r *RaffleRepository) FindByStatus(ctx context.Context, tenantID primitive.ObjectID, status models.RaffleStatus) ([]*models.Raffle, error) {
	filter := bson.M{"tenantId": tenantID, "status": status}
	opts := options.Find().SetSort(bson.M{"drawDate": -1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var raffles []*models.Raffle
	if err := cursor.All(ctx, &raffles); err != nil {
		return nil, err
	}
	if raffles == nil {
		raffles = []*models.Raffle{}
	}
	return raffles, nil
}

// Update updates a raffle
func (r *RaffleRepository) Update(ctx context.Context, raffle *models.Raffle) error {
	raffle.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": raffle.ID}, raffle)
	return err
}

// Delete deletes a raffle by ID
func (r *RaffleRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ReserveNumbers advances the issued-numbers counter atomically and returns
// the first number of the reserved block. The filter keeps the increment
// within totalNumbers so two racing completions cannot oversell.
func (r *RaffleRepository) ReserveNumbers(ctx context.Context, id primitive.ObjectID, count int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("invalid reservation count: %d", count)
	}

	filter := bson.M{
		"_id": id,
		"$expr": bson.M{
			"$lte": bson.A{bson.M{"$add": bson.A{"$numbersIssued", count}}, "$totalNumbers"},
		},
	}
	update := bson.M{
		"$inc": bson.M{"numbersIssued": count},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var raffle models.Raffle
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&raffle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrSoldOut
		}
		return 0, err
	}
	// First number of the block just reserved, one-based.
	return raffle.NumbersIssued - count + 1, nil
}

// ClearPoolRef removes the pool reference from raffles that used the pool
func (r *RaffleRepository) ClearPoolRef(ctx context.Context, poolID primitive.ObjectID) error {
	update := bson.M{
		"$unset": bson.M{"poolId": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	}
	_, err := r.collection.UpdateMany(ctx, bson.M{"poolId": poolID}, update)
	return err
}

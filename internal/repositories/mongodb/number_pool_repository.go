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

// NumberPoolRepository implements the repositories.NumberPoolRepository interface
type NumberPoolRepository struct {
	pools   *mongo.Collection
	numbers *mongo.Collection
}

// NewNumberPoolRepository creates a new NumberPoolRepository
func NewNumberPoolRepository(db *mongo.Database) repositories.NumberPoolRepository {
	return &NumberPoolRepository{
		pools:   db.Collection("number_pools"),
		numbers: db.Collection("number_pool_numbers"),
	}
}

// Create creates a new number pool
func (r *NumberPoolRepository) Create(ctx context.Context, pool *models.NumberPool) error {
	pool.CreatedAt = time.Now()
	pool.UpdatedAt = time.Now()
	res, err := r.pools.InsertOne(ctx, pool)
	if err != nil {
		return err
	}
	pool.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds a pool by ID
func (r *NumberPoolRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.NumberPool, error) {
	var pool models.NumberPool
	err := r.pools.FindOne(ctx, bson.M{"_id": id}).Decode(&pool)
	if err != nil {
		return nil, err
	}
	return &pool, nil
}

// FindByTenant finds all pools belonging to a tenant
func (r *NumberPoolRepository) FindByTenant(ctx context.Context, tenantID primitive.ObjectID) ([]*models.NumberPool, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.pools.Find(ctx, bson.M{"tenantId": tenantID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pools []*models.NumberPool
	if err := cursor.All(ctx, &pools); err != nil {
		return nil, err
	}
	if pools == nil {
		pools = []*models.NumberPool{}
	}
	return pools, nil
}

// Update updates a pool
func (r *NumberPoolRepository) Update(ctx context.Context, pool *models.NumberPool) error {
	pool.UpdatedAt = time.Now()
	_, err := r.pools.ReplaceOne(ctx, bson.M{"_id": pool.ID}, pool)
	return err
}

// Delete deletes a pool and its numbers
func (r *NumberPoolRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.numbers.DeleteMany(ctx, bson.M{"poolId": id}); err != nil {
		return err
	}
	_, err := r.pools.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// InsertNumbers bulk-inserts the imported numbers of a custom pool. Numbers
// already present in the pool are skipped via unordered insert, so re-running
// an import is safe.
func (r *NumberPoolRepository) InsertNumbers(ctx context.Context, poolID primitive.ObjectID, numbers []int) (int, error) {
	if len(numbers) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(numbers))
	now := time.Now()
	for _, n := range numbers {
		docs = append(docs, models.PoolNumber{
			PoolID:    poolID,
			Number:    n,
			CreatedAt: now,
		})
	}

	opts := options.InsertMany().SetOrdered(false)
	res, err := r.numbers.InsertMany(ctx, docs, opts)
	if err != nil {
		// Duplicate-key errors on the (poolId, number) unique index are
		// expected on re-import; everything else is fatal.
		if !mongo.IsDuplicateKeyError(err) {
			return 0, err
		}
	}
	if res == nil {
		return 0, nil
	}
	return len(res.InsertedIDs), nil
}

// CountNumbers counts the numbers stored for a custom pool
func (r *NumberPoolRepository) CountNumbers(ctx context.Context, poolID primitive.ObjectID) (int64, error) {
	return r.numbers.CountDocuments(ctx, bson.M{"poolId": poolID})
}

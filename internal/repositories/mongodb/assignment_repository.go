package mongodb

import (
	"context"

	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/models"
	"github.com/Neoshock-inc/raffle-proyect-sub004/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AssignmentRepository implements the repositories.AssignmentRepository interface
type AssignmentRepository struct {
	collection *mongo.Collection
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *mongo.Database) repositories.AssignmentRepository {
	return &AssignmentRepository{
		collection: db.Collection("raffle_number_assignments"),
	}
}

// Create creates a new range assignment
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.NumberAssignment) error {
	res, err := r.collection.InsertOne(ctx, assignment)
	if err != nil {
		return err
	}
	assignment.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByID finds an assignment by ID
func (r *AssignmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.NumberAssignment, error) {
	var assignment models.NumberAssignment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment)
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindByReferral finds all assignments for a referral, any status
func (r *AssignmentRepository) FindByReferral(ctx context.Context, referralID primitive.ObjectID) ([]*models.NumberAssignment, error) {
	opts := options.Find().SetSort(bson.M{"assignedAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"referralId": referralID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []*models.NumberAssignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []*models.NumberAssignment{}
	}
	return assignments, nil
}

// FindAssignedByRaffle finds the currently assigned (not returned) ranges of a raffle
func (r *AssignmentRepository) FindAssignedByRaffle(ctx context.Context, raffleID primitive.ObjectID) ([]*models.NumberAssignment, error) {
	filter := bson.M{"raffleId": raffleID, "status": models.AssignmentStatusAssigned}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assignments []*models.NumberAssignment
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []*models.NumberAssignment{}
	}
	return assignments, nil
}

// Update updates an assignment
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.NumberAssignment) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": assignment.ID}, assignment)
	return err
}

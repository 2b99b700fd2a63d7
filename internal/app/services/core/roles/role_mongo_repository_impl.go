package roles

import (
	"context"

	"appointmed-service/internal/app/contracts"
	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RoleMongoRepository struct {
	Collection *mongo.Collection
}

func NewRoleMongoRepository(db *mongo.Client, dbName string) contracts.RoleRepository {
	return &RoleMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionRoleAssignments),
	}
}

func (repo *RoleMongoRepository) FindByUID(ctx context.Context, uid string) (*models.RoleAssignment, error) {
	var assignment models.RoleAssignment
	err := repo.Collection.FindOne(ctx, bson.M{"uid": uid}).Decode(&assignment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &assignment, nil
}

func (repo *RoleMongoRepository) Assign(ctx context.Context, assignment *models.RoleAssignment) error {
	filter := bson.M{"uid": assignment.UID}
	update := bson.M{"$set": bson.M{
		"uid":        assignment.UID,
		"role":       assignment.Role,
		"subject_id": assignment.SubjectID,
		"created_at": assignment.CreatedAt,
	}}
	_, err := repo.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

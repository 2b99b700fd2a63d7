package doctors

import (
	"context"

	"appointmed-service/internal/app/contracts"
	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DoctorMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorMongoRepository(db *mongo.Client, dbName string) contracts.DoctorRepository {
	return &DoctorMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionDoctors),
	}
}

func (repo *DoctorMongoRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var doctor models.Doctor
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doctor, nil
}

func (repo *DoctorMongoRepository) FindAll(ctx context.Context, specialty string, skip, limit int64) ([]models.Doctor, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "full_name", Value: 1}}).SetSkip(skip)
	if limit > 0 {
		findOptions = findOptions.SetLimit(limit)
	}
	cursor, err := repo.Collection.Find(ctx, directoryFilter(specialty), findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	var doctors []models.Doctor
	err = cursor.All(ctx, &doctors)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return doctors, nil
}

func (repo *DoctorMongoRepository) Count(ctx context.Context, specialty string) (int64, error) {
	count, err := repo.Collection.CountDocuments(ctx, directoryFilter(specialty))
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return count, nil
}

func directoryFilter(specialty string) bson.M {
	filter := bson.M{"active": true}
	if specialty != "" {
		filter["specialty"] = specialty
	}
	return filter
}

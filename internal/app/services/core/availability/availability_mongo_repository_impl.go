package availability

import (
	"context"
	"time"

	"appointmed-service/internal/app/contracts"
	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AvailabilityMongoRepository struct {
	Collection *mongo.Collection
}

func NewAvailabilityMongoRepository(db *mongo.Client, dbName string) contracts.AvailabilityRepository {
	return &AvailabilityMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAvailabilityWindows),
	}
}

func (repo *AvailabilityMongoRepository) Insert(ctx context.Context, window *models.AvailabilityWindow) (string, error) {
	doc := bson.M{
		"doctor_id":    window.DoctorID,
		"start_time":   window.StartTime,
		"end_time":     window.EndTime,
		"is_available": true,
		"created_at":   window.CreatedAt,
	}
	result, err := repo.Collection.InsertOne(ctx, doc)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *AvailabilityMongoRepository) FindByDoctorAndDateRange(ctx context.Context, doctorID string, start, end time.Time) ([]models.AvailabilityWindow, error) {
	filter := bson.M{
		"doctor_id":  doctorID,
		"start_time": bson.M{"$gte": start, "$lt": end},
	}
	cursor, err := repo.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	var windows []models.AvailabilityWindow
	err = cursor.All(ctx, &windows)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return windows, nil
}

func (repo *AvailabilityMongoRepository) DeleteAllForDoctor(ctx context.Context, doctorID string) (int64, error) {
	result, err := repo.Collection.DeleteMany(ctx, bson.M{"doctor_id": doctorID})
	if err != nil {
		return 0, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount, nil
}

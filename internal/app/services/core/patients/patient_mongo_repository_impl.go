package patients

import (
	"context"

	"appointmed-service/internal/app/contracts"
	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PatientMongoRepository struct {
	Collection *mongo.Collection
}

func NewPatientMongoRepository(db *mongo.Client, dbName string) contracts.PatientRepository {
	return &PatientMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPatients),
	}
}

func (repo *PatientMongoRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	objectID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var patient models.Patient
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &patient, nil
}

func (repo *PatientMongoRepository) FindByNationalID(ctx context.Context, nationalID string) (*models.Patient, error) {
	var patient models.Patient
	err := repo.Collection.FindOne(ctx, bson.M{"national_id": nationalID}).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &patient, nil
}

func (repo *PatientMongoRepository) Create(ctx context.Context, patient *models.Patient) (*models.Patient, error) {
	doc := bson.M{
		"national_id": patient.NationalID,
		"full_name":   patient.FullName,
		"phone":       patient.Phone,
		"email":       patient.Email,
		"created_at":  patient.CreatedAt,
	}
	result, err := repo.Collection.InsertOne(ctx, doc)
	if err != nil {
		// unique index on national_id arbitrates concurrent registrations
		if mongo.IsDuplicateKeyError(err) {
			return nil, exceptions.ErrDuplicateIdentity(err)
		}
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	created := *patient
	created.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

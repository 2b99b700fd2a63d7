package appointments

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func (repo *AppointmentMongoRepository) Insert(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	doc := bson.M{
		"doctor_id":        appointment.DoctorID,
		"patient_id":       appointment.PatientID,
		"start_time":       appointment.StartTime,
		"duration_minutes": appointment.DurationMinutes,
		"status":           appointment.Status,
		"specialty":        appointment.Specialty,
		"notes":            appointment.Notes,
		"created_at":       appointment.CreatedAt,
		"updated_at":       appointment.UpdatedAt,
	}
	result, err := repo.Collection.InsertOne(ctx, doc)
	if err != nil {
		// the unique partial index on (doctor_id, start_time) is the
		// authoritative double-booking guard; losing the race surfaces here
		if mongo.IsDuplicateKeyError(err) {
			return nil, exceptions.ErrSlotUnavailable(err)
		}
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	created := *appointment
	created.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (repo *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var appointment models.Appointment
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (repo *AppointmentMongoRepository) FindByDoctorAndDateRange(ctx context.Context, doctorID string, start, end time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"doctor_id":  doctorID,
		"start_time": bson.M{"$gte": start, "$lt": end},
	}
	return repo.find(ctx, filter)
}

func (repo *AppointmentMongoRepository) FindByPatientAndDateRange(ctx context.Context, patientID string, start, end time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"patient_id": patientID,
		"start_time": bson.M{"$gte": start, "$lt": end},
	}
	return repo.find(ctx, filter)
}

func (repo *AppointmentMongoRepository) FindScheduledInWindow(ctx context.Context, windowStart, windowEnd time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"status":     bson.M{"$in": []string{constvars.AppointmentStatusScheduled, constvars.AppointmentStatusConfirmed}},
		"start_time": bson.M{"$gte": windowStart, "$lte": windowEnd},
	}
	return repo.find(ctx, filter)
}

func (repo *AppointmentMongoRepository) UpdateStatus(ctx context.Context, appointmentID, status string) error {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}}
	_, err = repo.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *AppointmentMongoRepository) find(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := repo.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	var appointments []models.Appointment
	err = cursor.All(ctx, &appointments)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

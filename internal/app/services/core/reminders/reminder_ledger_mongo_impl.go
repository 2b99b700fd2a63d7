package reminders

import (
	"context"
	"time"

	"appointmed-service/internal/app/contracts"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReminderLedgerMongoRepository struct {
	Collection *mongo.Collection
}

func NewReminderLedgerMongoRepository(db *mongo.Client, dbName string) contracts.ReminderLedger {
	return &ReminderLedgerMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSentReminders),
	}
}

func (repo *ReminderLedgerMongoRepository) TryRecord(ctx context.Context, appointmentID, leadTime string) (bool, error) {
	doc := bson.M{
		"appointment_id": appointmentID,
		"lead_time":      leadTime,
		"sent_at":        time.Now().UTC(),
	}
	_, err := repo.Collection.InsertOne(ctx, doc)
	if err != nil {
		// the unique (appointment_id, lead_time) index makes the insert the
		// idempotency check itself: a duplicate means already sent
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, exceptions.ErrMongoDBInsertDocument(err)
	}
	return true, nil
}

package main

import (
	"context"
	"log"
	"time"

	"appointmed-service/internal/app/config"
	"appointmed-service/internal/app/drivers/database"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Sets up the indexes the scheduling core relies on. The unique partial index
// on (doctor_id, start_time) is the booking race arbiter and must exist
// before the service takes traffic.
func main() {
	driverConfig := config.NewDriverConfig()

	client := database.NewMongoDB(driverConfig)
	db := client.Database(driverConfig.MongoDB.DbName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	createAppointmentIndexes(ctx, db)
	createPatientIndexes(ctx, db)
	createSentReminderIndexes(ctx, db)
	createAvailabilityIndexes(ctx, db)
	createRoleAssignmentIndexes(ctx, db)
	seedAdminRole(ctx, db)

	if err := client.Disconnect(ctx); err != nil {
		log.Fatalf("Error disconnecting from mongo: %v", err)
	}
	log.Println("Migration finished")
}

func createAppointmentIndexes(ctx context.Context, db *mongo.Database) {
	// partial filter keeps cancelled appointments out of the uniqueness
	// guard so their slot can be rebooked
	model := mongo.IndexModel{
		Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "start_time", Value: 1}},
		Options: options.Index().
			SetName("uniq_doctor_start_active").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"status": bson.M{"$in": []string{
					constvars.AppointmentStatusScheduled,
					constvars.AppointmentStatusConfirmed,
					constvars.AppointmentStatusCompleted,
				}},
			}),
	}
	mustCreateIndex(ctx, db, constvars.MongoCollectionAppointments, model)

	mustCreateIndex(ctx, db, constvars.MongoCollectionAppointments, mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "start_time", Value: 1}},
		Options: options.Index().SetName("status_start"),
	})
}

func createPatientIndexes(ctx context.Context, db *mongo.Database) {
	mustCreateIndex(ctx, db, constvars.MongoCollectionPatients, mongo.IndexModel{
		Keys:    bson.D{{Key: "national_id", Value: 1}},
		Options: options.Index().SetName("uniq_national_id").SetUnique(true),
	})
}

func createSentReminderIndexes(ctx context.Context, db *mongo.Database) {
	mustCreateIndex(ctx, db, constvars.MongoCollectionSentReminders, mongo.IndexModel{
		Keys:    bson.D{{Key: "appointment_id", Value: 1}, {Key: "lead_time", Value: 1}},
		Options: options.Index().SetName("uniq_appointment_lead").SetUnique(true),
	})
}

func createAvailabilityIndexes(ctx context.Context, db *mongo.Database) {
	mustCreateIndex(ctx, db, constvars.MongoCollectionAvailabilityWindows, mongo.IndexModel{
		Keys:    bson.D{{Key: "doctor_id", Value: 1}, {Key: "start_time", Value: 1}},
		Options: options.Index().SetName("doctor_start"),
	})
}

func createRoleAssignmentIndexes(ctx context.Context, db *mongo.Database) {
	mustCreateIndex(ctx, db, constvars.MongoCollectionRoleAssignments, mongo.IndexModel{
		Keys:    bson.D{{Key: "uid", Value: 1}},
		Options: options.Index().SetName("uniq_uid").SetUnique(true),
	})
}

// seedAdminRole upserts an explicit admin assignment for the uid configured
// via MIGRATION_ADMIN_UID. Roles only ever come from this collection; there
// is no admin-by-email fallback anywhere in the service.
func seedAdminRole(ctx context.Context, db *mongo.Database) {
	adminUID := utils.GetEnvString("MIGRATION_ADMIN_UID", "")
	if adminUID == "" {
		log.Println("MIGRATION_ADMIN_UID not set; skipping admin role seed")
		return
	}

	collection := db.Collection(constvars.MongoCollectionRoleAssignments)
	update := bson.M{"$set": bson.M{
		"uid":        adminUID,
		"role":       constvars.RoleAdmin,
		"created_at": time.Now().UTC(),
	}}
	_, err := collection.UpdateOne(ctx, bson.M{"uid": adminUID}, update, options.Update().SetUpsert(true))
	if err != nil {
		log.Fatalf("Error seeding admin role: %v", err)
	}
	log.Printf("Seeded admin role for uid %s", adminUID)
}

func mustCreateIndex(ctx context.Context, db *mongo.Database, collection string, model mongo.IndexModel) {
	_, err := db.Collection(collection).Indexes().CreateOne(ctx, model)
	if err != nil {
		log.Fatalf("Error creating index on %s: %v", collection, err)
	}
	log.Printf("Created index on %s", collection)
}

package contracts

import (
	"appointmed-service/internal/app/models"
	"context"
)

type PatientRepository interface {
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
	FindByNationalID(ctx context.Context, nationalID string) (*models.Patient, error)
	// Create inserts the patient. A duplicate-key conflict on the national id
	// unique index is translated to a duplicate-identity error.
	Create(ctx context.Context, patient *models.Patient) (*models.Patient, error)
}

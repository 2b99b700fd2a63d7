package doctors

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"appointmed-service/internal/app/models"
	"appointmed-service/internal/pkg/constvars"
	"appointmed-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeDoctorRepository struct {
	doctors []models.Doctor
}

func (r *fakeDoctorRepository) FindByID(_ context.Context, doctorID string) (*models.Doctor, error) {
	for i := range r.doctors {
		if r.doctors[i].ID == doctorID {
			found := r.doctors[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorRepository) FindAll(_ context.Context, specialty string, skip, limit int64) ([]models.Doctor, error) {
	matching := r.matching(specialty)
	sort.Slice(matching, func(i, j int) bool { return matching[i].FullName < matching[j].FullName })
	if skip >= int64(len(matching)) {
		return nil, nil
	}
	matching = matching[skip:]
	if limit > 0 && limit < int64(len(matching)) {
		matching = matching[:limit]
	}
	return matching, nil
}

func (r *fakeDoctorRepository) Count(_ context.Context, specialty string) (int64, error) {
	return int64(len(r.matching(specialty))), nil
}

func (r *fakeDoctorRepository) matching(specialty string) []models.Doctor {
	var out []models.Doctor
	for _, doctor := range r.doctors {
		if doctor.Active && (specialty == "" || doctor.Specialty == specialty) {
			out = append(out, doctor)
		}
	}
	return out
}

func newDoctorFixture(count int) *doctorUsecase {
	repo := &fakeDoctorRepository{}
	for i := 0; i < count; i++ {
		repo.doctors = append(repo.doctors, models.Doctor{
			ID:        fmt.Sprintf("doc-%02d", i),
			FullName:  fmt.Sprintf("Dr. %02d", i),
			Specialty: "cardiology",
			Active:    true,
		})
	}
	return &doctorUsecase{DoctorRepository: repo, Log: zap.NewNop()}
}

func TestDoctorFindAll(t *testing.T) {
	ctx := context.Background()

	t.Run("pages through the directory", func(t *testing.T) {
		usecase := newDoctorFixture(25)

		firstPage, total, err := usecase.FindAll(ctx, "", 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, 25, total)
		assert.Len(t, firstPage, 10)

		lastPage, total, err := usecase.FindAll(ctx, "", 3, 10)
		assert.NoError(t, err)
		assert.Equal(t, 25, total)
		assert.Len(t, lastPage, 5)
		assert.NotEqual(t, firstPage[0].ID, lastPage[0].ID)
	})

	t.Run("normalizes out-of-range paging inputs", func(t *testing.T) {
		usecase := newDoctorFixture(5)

		result, total, err := usecase.FindAll(ctx, "", 0, -3)
		assert.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Len(t, result, 5, "bad paging inputs fall back to the first default-sized page")
	})

	t.Run("filters by specialty", func(t *testing.T) {
		usecase := newDoctorFixture(3)

		result, total, err := usecase.FindAll(ctx, "dermatology", 1, 10)
		assert.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, result)
	})

	t.Run("excludes inactive doctors", func(t *testing.T) {
		repo := &fakeDoctorRepository{doctors: []models.Doctor{
			{ID: "doc-on", FullName: "Dr. On", Specialty: "cardiology", Active: true},
			{ID: "doc-off", FullName: "Dr. Off", Specialty: "cardiology", Active: false},
		}}
		usecase := &doctorUsecase{DoctorRepository: repo, Log: zap.NewNop()}

		result, total, err := usecase.FindAll(ctx, "", 1, 10)
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, result, 1)
		assert.Equal(t, "doc-on", result[0].ID)
	})
}

func TestDoctorFindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the doctor", func(t *testing.T) {
		usecase := newDoctorFixture(3)

		doctor, err := usecase.FindByID(ctx, "doc-01")
		assert.NoError(t, err)
		assert.Equal(t, "Dr. 01", doctor.FullName)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		usecase := newDoctorFixture(3)

		_, err := usecase.FindByID(ctx, "doc-99")
		assert.True(t, exceptions.IsStatus(err, constvars.StatusNotFound))
	})
}

package workouts

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrAccessDenied covers both a missing workout and one owned by someone
// else. Collapsing the two keeps non-owners from probing which ids exist.
var ErrAccessDenied = errors.New("access to this resource is denied")

type WorkoutService struct {
	db *gorm.DB
}

func NewWorkoutService(db *gorm.DB) *WorkoutService {
	return &WorkoutService{db: db}
}

// Create inserts the workout and its exercises in one statement batch; GORM
// wraps the association insert in a single transaction.
func (s *WorkoutService) Create(ownerID uuid.UUID, req WorkoutRequest) (*Workout, error) {
	workout := Workout{
		ID:        uuid.New(),
		UserID:    ownerID,
		Name:      req.Name,
		Date:      req.Date,
		Exercises: buildExercises(req.Exercises),
	}

	if err := s.db.Create(&workout).Error; err != nil {
		return nil, err
	}

	return &workout, nil
}

func (s *WorkoutService) ListForOwner(ownerID uuid.UUID) ([]Workout, error) {
	var list []Workout
	err := s.db.Preload("Exercises").
		Where("user_id = ?", ownerID).
		Order("date DESC").
		Find(&list).Error
	return list, err
}

func (s *WorkoutService) Get(workoutID, callerID uuid.UUID) (*Workout, error) {
	var workout Workout
	if err := s.db.Preload("Exercises").First(&workout, "id = ?", workoutID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}

	if workout.UserID != callerID {
		return nil, ErrAccessDenied
	}

	return &workout, nil
}

// Replace swaps the workout's name, date and full exercise set atomically:
// a failure at any step leaves the previous state intact.
func (s *WorkoutService) Replace(workoutID, callerID uuid.UUID, req WorkoutRequest) (*Workout, error) {
	if _, err := s.Get(workoutID, callerID); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workout_id = ?", workoutID).Delete(&Exercise{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&Workout{}).Where("id = ?", workoutID).
			Updates(map[string]interface{}{"name": req.Name, "date": req.Date}).Error; err != nil {
			return err
		}

		exercises := buildExercises(req.Exercises)
		for i := range exercises {
			exercises[i].WorkoutID = workoutID
		}
		if len(exercises) == 0 {
			return nil
		}
		return tx.Create(&exercises).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(workoutID, callerID)
}

// Delete removes the exercises before their parent workout and returns the
// record as it was at deletion time.
func (s *WorkoutService) Delete(workoutID, callerID uuid.UUID) (*Workout, error) {
	workout, err := s.Get(workoutID, callerID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workout_id = ?", workoutID).Delete(&Exercise{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Workout{}, "id = ?", workoutID).Error
	})
	if err != nil {
		return nil, err
	}

	return workout, nil
}

func buildExercises(reqs []ExerciseRequest) []Exercise {
	exercises := make([]Exercise, 0, len(reqs))
	for _, e := range reqs {
		exercises = append(exercises, Exercise{
			ID:     uuid.New(),
			Name:   e.Name,
			Sets:   e.Sets,
			Reps:   e.Reps,
			Weight: e.Weight,
		})
	}
	return exercises
}

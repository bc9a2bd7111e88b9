package service

import (
	"context"
	"strings"
	"time"

	"wellnest/backend/internal/domain"
	"wellnest/backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes backing the service tests. They mirror the
// Mongo implementations' observable behavior: ErrNotFound on missing
// documents, case-insensitive specialization matching, date normalization
// on log writes.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	copied := *user
	r.users[user.ID] = &copied
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) SetPendingTrainer(ctx context.Context, userID primitive.ObjectID, trainerID *primitive.ObjectID) error {
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.PendingTrainerID = trainerID
	return nil
}

func (r *fakeUserRepo) SetTrainer(ctx context.Context, userID primitive.ObjectID, trainerID *primitive.ObjectID) error {
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.TrainerID = trainerID
	return nil
}

func (r *fakeUserRepo) PromotePendingTrainer(ctx context.Context, userID, trainerID primitive.ObjectID) error {
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	promoted := trainerID
	u.TrainerID = &promoted
	u.PendingTrainerID = nil
	return nil
}

func (r *fakeUserRepo) FindByTrainerIDs(ctx context.Context, trainerIDs []primitive.ObjectID) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.TrainerID == nil {
			continue
		}
		for _, id := range trainerIDs {
			if *u.TrainerID == id {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindByPendingTrainerIDs(ctx context.Context, trainerIDs []primitive.ObjectID) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		if u.PendingTrainerID == nil {
			continue
		}
		for _, id := range trainerIDs {
			if *u.PendingTrainerID == id {
				out = append(out, *u)
				break
			}
		}
	}
	return out, nil
}

type fakeTrainerRepo struct {
	trainers map[primitive.ObjectID]*domain.Trainer
}

func newFakeTrainerRepo(trainers ...*domain.Trainer) *fakeTrainerRepo {
	r := &fakeTrainerRepo{trainers: make(map[primitive.ObjectID]*domain.Trainer)}
	for _, t := range trainers {
		if t.ID.IsZero() {
			t.ID = primitive.NewObjectID()
		}
		r.trainers[t.ID] = t
	}
	return r
}

func (r *fakeTrainerRepo) Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	if trainer.ID.IsZero() {
		trainer.ID = primitive.NewObjectID()
	}
	r.trainers[trainer.ID] = trainer
	return trainer.ID, nil
}

func (r *fakeTrainerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	t, ok := r.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTrainerRepo) List(ctx context.Context) ([]domain.Trainer, error) {
	out := make([]domain.Trainer, 0, len(r.trainers))
	for _, t := range r.trainers {
		out = append(out, *t)
	}
	return out, nil
}

func (r *fakeTrainerRepo) Update(ctx context.Context, trainer *domain.Trainer) error {
	if _, ok := r.trainers[trainer.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *trainer
	r.trainers[trainer.ID] = &copied
	return nil
}

func (r *fakeTrainerRepo) FindBySpecializationContaining(ctx context.Context, keyword string) ([]domain.Trainer, error) {
	var out []domain.Trainer
	for _, t := range r.trainers {
		if strings.Contains(strings.ToLower(t.Specialization), strings.ToLower(keyword)) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTrainerRepo) FindByContactEmail(ctx context.Context, email string) ([]domain.Trainer, error) {
	var out []domain.Trainer
	for _, t := range r.trainers {
		if strings.EqualFold(t.ContactEmail, email) {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTrainerRepo) ExistsByContactEmail(ctx context.Context, email string) (bool, error) {
	for _, t := range r.trainers {
		if strings.EqualFold(t.ContactEmail, email) {
			return true, nil
		}
	}
	return false, nil
}

type fakeWorkoutLogRepo struct {
	logs []domain.WorkoutLog
}

func (r *fakeWorkoutLogRepo) Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error) {
	if log.ID.IsZero() {
		log.ID = primitive.NewObjectID()
	}
	log.LogDate = domain.LogDay(log.LogDate)
	r.logs = append(r.logs, *log)
	return log.ID, nil
}

func (r *fakeWorkoutLogRepo) ListByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.WorkoutLog, error) {
	day := domain.LogDay(date)
	var out []domain.WorkoutLog
	for _, l := range r.logs {
		if l.UserID == userID && domain.LogDay(l.LogDate).Equal(day) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeWorkoutLogRepo) ListByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, dateRange repository.DateRange) ([]domain.WorkoutLog, error) {
	var out []domain.WorkoutLog
	for _, l := range r.logs {
		if l.UserID == userID && dateRange.Contains(domain.LogDay(l.LogDate)) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeMealLogRepo struct {
	logs []domain.MealLog
}

func (r *fakeMealLogRepo) Create(ctx context.Context, log *domain.MealLog) (primitive.ObjectID, error) {
	if log.ID.IsZero() {
		log.ID = primitive.NewObjectID()
	}
	log.LogDate = domain.LogDay(log.LogDate)
	r.logs = append(r.logs, *log)
	return log.ID, nil
}

func (r *fakeMealLogRepo) ListByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.MealLog, error) {
	day := domain.LogDay(date)
	var out []domain.MealLog
	for _, l := range r.logs {
		if l.UserID == userID && domain.LogDay(l.LogDate).Equal(day) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeMealLogRepo) ListByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, dateRange repository.DateRange) ([]domain.MealLog, error) {
	var out []domain.MealLog
	for _, l := range r.logs {
		if l.UserID == userID && dateRange.Contains(domain.LogDay(l.LogDate)) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeWaterSleepLogRepo struct {
	logs []domain.WaterSleepLog
}

func (r *fakeWaterSleepLogRepo) Create(ctx context.Context, log *domain.WaterSleepLog) (primitive.ObjectID, error) {
	if log.ID.IsZero() {
		log.ID = primitive.NewObjectID()
	}
	log.LogDate = domain.LogDay(log.LogDate)
	r.logs = append(r.logs, *log)
	return log.ID, nil
}

func (r *fakeWaterSleepLogRepo) ListByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) ([]domain.WaterSleepLog, error) {
	day := domain.LogDay(date)
	var out []domain.WaterSleepLog
	for _, l := range r.logs {
		if l.UserID == userID && domain.LogDay(l.LogDate).Equal(day) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeWaterSleepLogRepo) ListByUserAndDateRange(ctx context.Context, userID primitive.ObjectID, dateRange repository.DateRange) ([]domain.WaterSleepLog, error) {
	var out []domain.WaterSleepLog
	for _, l := range r.logs {
		if l.UserID == userID && dateRange.Contains(domain.LogDay(l.LogDate)) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakePlanRepo struct {
	workoutPlans []domain.WorkoutPlan
	mealPlans    []domain.MealPlan
}

func (r *fakePlanRepo) CreateWorkoutPlan(ctx context.Context, plan *domain.WorkoutPlan) (primitive.ObjectID, error) {
	if plan.ID.IsZero() {
		plan.ID = primitive.NewObjectID()
	}
	r.workoutPlans = append(r.workoutPlans, *plan)
	return plan.ID, nil
}

func (r *fakePlanRepo) GetWorkoutPlansByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	var out []domain.WorkoutPlan
	for i := len(r.workoutPlans) - 1; i >= 0; i-- {
		if r.workoutPlans[i].UserID == userID {
			out = append(out, r.workoutPlans[i])
		}
	}
	return out, nil
}

func (r *fakePlanRepo) CreateMealPlan(ctx context.Context, plan *domain.MealPlan) (primitive.ObjectID, error) {
	if plan.ID.IsZero() {
		plan.ID = primitive.NewObjectID()
	}
	r.mealPlans = append(r.mealPlans, *plan)
	return plan.ID, nil
}

func (r *fakePlanRepo) GetMealPlansByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.MealPlan, error) {
	var out []domain.MealPlan
	for i := len(r.mealPlans) - 1; i >= 0; i-- {
		if r.mealPlans[i].UserID == userID {
			out = append(out, r.mealPlans[i])
		}
	}
	return out, nil
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func idPtr(id primitive.ObjectID) *primitive.ObjectID { return &id }

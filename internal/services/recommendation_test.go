package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/types"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*types.User
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	_, err := f.GetByEmail(ctx, tx, email)
	return err == nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, tx *gorm.DB, user *types.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeCourseRepo struct {
	courses []*types.Course
}

func (f *fakeCourseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
	f.courses = append(f.courses, courses...)
	return courses, nil
}

func (f *fakeCourseRepo) GetByID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.Course, error) {
	for _, c := range f.courses {
		if c.ID == courseID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCourseRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Course, error) {
	return f.courses, nil
}

func (f *fakeCourseRepo) ListExcluding(ctx context.Context, tx *gorm.DB, excludeIDs []uuid.UUID) ([]*types.Course, error) {
	excluded := make(map[uuid.UUID]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var out []*types.Course
	for _, c := range f.courses {
		if !excluded[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) IncrementEnrolledCount(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error {
	for _, c := range f.courses {
		if c.ID == courseID {
			c.EnrolledCount++
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeEnrollmentRepo struct {
	enrollments []*types.Enrollment
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, tx *gorm.DB, e *types.Enrollment) (*types.Enrollment, error) {
	f.enrollments = append(f.enrollments, e)
	return e, nil
}

func (f *fakeEnrollmentRepo) GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.Enrollment, error) {
	for _, e := range f.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEnrollmentRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Enrollment, error) {
	var out []*types.Enrollment
	for _, e := range f.enrollments {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) CourseIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, e := range f.enrollments {
		if e.UserID == userID {
			out = append(out, e.CourseID)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) CountCompletedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	for _, e := range f.enrollments {
		if e.UserID == userID && e.IsCompleted {
			count++
		}
	}
	return count, nil
}

func (f *fakeEnrollmentRepo) Update(ctx context.Context, tx *gorm.DB, e *types.Enrollment) error {
	return nil
}

type fakeRecommendationRepo struct {
	recs  []*types.Recommendation
	trace *[]string
}

func (f *fakeRecommendationRepo) Create(ctx context.Context, tx *gorm.DB, rec *types.Recommendation) (*types.Recommendation, error) {
	if f.trace != nil {
		*f.trace = append(*f.trace, "persist")
	}
	f.recs = append(f.recs, rec)
	return rec, nil
}

func (f *fakeRecommendationRepo) ListByUserSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time, limit int) ([]*types.Recommendation, error) {
	var out []*types.Recommendation
	for _, r := range f.recs {
		if r.UserID == userID && !r.GeneratedAt.Before(since) {
			out = append(out, r)
		}
	}
	sortRecommendations(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRecommendationRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	var kept []*types.Recommendation
	for _, r := range f.recs {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	f.recs = kept
	return nil
}

func (f *fakeRecommendationRepo) MarkViewed(ctx context.Context, tx *gorm.DB, recID, userID uuid.UUID) error {
	for _, r := range f.recs {
		if r.ID == recID && r.UserID == userID {
			r.IsViewed = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fixtureSearcher struct {
	resources []Resource
	err       error
	queries   []string
	trace     *[]string
}

func (f *fixtureSearcher) Search(ctx context.Context, query string, limit int) ([]Resource, error) {
	if f.trace != nil {
		*f.trace = append(*f.trace, "search")
	}
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.resources, nil
}

type engineFixture struct {
	users    *fakeUserRepo
	courses  *fakeCourseRepo
	enrolls  *fakeEnrollmentRepo
	recs     *fakeRecommendationRepo
	searcher *fixtureSearcher
	service  RecommendationService
	userID   uuid.UUID
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}

	userID := uuid.New()
	fix := &engineFixture{
		users: &fakeUserRepo{users: map[uuid.UUID]*types.User{
			userID: {
				ID:                   userID,
				SkillLevel:           types.SkillBeginner,
				PreferredContentType: types.ContentVideo,
				Interests:            encodeJSON([]string{"python", "data"}),
			},
		}},
		courses:  &fakeCourseRepo{},
		enrolls:  &fakeEnrollmentRepo{},
		recs:     &fakeRecommendationRepo{},
		searcher: &fixtureSearcher{},
		userID:   userID,
	}
	fix.service = NewRecommendationService(
		nil, log, fix.users, fix.courses, fix.enrolls, fix.recs, fix.searcher, nil)
	return fix
}

func (fix *engineFixture) addCourse(title, category, level string, rating float64, enrolled int) *types.Course {
	c := &types.Course{
		ID:            uuid.New(),
		Title:         title,
		Category:      category,
		Level:         level,
		Rating:        rating,
		EnrolledCount: enrolled,
		Topics:        encodeJSON([]string{"python", "data"}),
	}
	fix.courses.courses = append(fix.courses.courses, c)
	return c
}

func TestGenerateExcludesEnrolledCourses(t *testing.T) {
	fix := newEngineFixture(t)
	enrolled := fix.addCourse("Enrolled Course", "data_science", types.SkillBeginner, 4.5, 100)
	candidate := fix.addCourse("Candidate Course", "data_science", types.SkillBeginner, 4.5, 100)
	fix.enrolls.enrollments = append(fix.enrolls.enrollments, &types.Enrollment{
		UserID: fix.userID, CourseID: enrolled.ID, Course: enrolled,
	})

	recs, err := fix.service.Generate(context.Background(), fix.userID, 6)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if recs[0].CourseID != candidate.ID {
		t.Fatalf("recommended %v, want candidate %v", recs[0].CourseID, candidate.ID)
	}
}

func TestGeneratePersistsAllCandidatesBeforeTruncation(t *testing.T) {
	fix := newEngineFixture(t)
	for i := 0; i < 10; i++ {
		fix.addCourse("Course", "data_science", types.SkillBeginner, 4.0, 500)
	}

	recs, err := fix.service.Generate(context.Background(), fix.userID, 3)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("returned %d, want limit 3", len(recs))
	}
	if len(fix.recs.recs) != 10 {
		t.Fatalf("persisted %d, want all 10 candidates", len(fix.recs.recs))
	}
}

func TestGenerateSearchesBeforePersisting(t *testing.T) {
	fix := newEngineFixture(t)
	for i := 0; i < 4; i++ {
		fix.addCourse("Course", "data_science", types.SkillBeginner, 4.0, 500)
	}

	var trace []string
	fix.searcher.trace = &trace
	fix.recs.trace = &trace

	if _, err := fix.service.Generate(context.Background(), fix.userID, 6); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(trace) != 8 {
		t.Fatalf("trace=%v, want 4 searches and 4 persists", trace)
	}
	firstPersist := -1
	for i, ev := range trace {
		if ev == "persist" {
			firstPersist = i
			break
		}
	}
	for _, ev := range trace[firstPersist:] {
		if ev == "search" {
			t.Fatalf("trace=%v: a lookup ran after persistence began", trace)
		}
	}
}

func TestGenerateOrdersByScoreThenCourseID(t *testing.T) {
	fix := newEngineFixture(t)
	// Identical courses score identically, so ordering falls to the
	// course id tie-break.
	fix.addCourse("Twin", "data_science", types.SkillBeginner, 4.0, 500)
	fix.addCourse("Twin", "data_science", types.SkillBeginner, 4.0, 500)
	// A clearly stronger course must come first.
	strong := fix.addCourse("Strong", "data_science", types.SkillBeginner, 5.0, 2000)

	recs, err := fix.service.Generate(context.Background(), fix.userID, 6)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}
	if recs[0].CourseID != strong.ID {
		t.Fatalf("first recommendation %v, want strongest %v", recs[0].CourseID, strong.ID)
	}
	if recs[1].TotalScore != recs[2].TotalScore {
		t.Fatalf("twins scored %v vs %v, want equal", recs[1].TotalScore, recs[2].TotalScore)
	}
	if recs[1].CourseID.String() >= recs[2].CourseID.String() {
		t.Fatalf("tie not broken by course id: %v before %v", recs[1].CourseID, recs[2].CourseID)
	}
}

func TestGenerateSwallowsSearcherFailure(t *testing.T) {
	fix := newEngineFixture(t)
	fix.searcher.err = errors.New("network down")
	fix.addCourse("Course", "data_science", types.SkillBeginner, 4.0, 500)

	recs, err := fix.service.Generate(context.Background(), fix.userID, 6)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	for _, reason := range decodeStringList(recs[0].Reasons) {
		if len(reason) >= 15 && reason[:15] == "Online resource" {
			t.Fatalf("unexpected resource reason after searcher failure: %q", reason)
		}
	}
}

func TestGenerateAppendsAtMostThreeResourceReasons(t *testing.T) {
	fix := newEngineFixture(t)
	for i := 0; i < 5; i++ {
		fix.searcher.resources = append(fix.searcher.resources, Resource{
			Title: "Related Course", URL: "https://example.com/course",
		})
	}
	fix.addCourse("Course", "data_science", types.SkillBeginner, 4.0, 500)

	recs, err := fix.service.Generate(context.Background(), fix.userID, 6)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	count := 0
	for _, reason := range decodeStringList(recs[0].Reasons) {
		if len(reason) >= 15 && reason[:15] == "Online resource" {
			count++
		}
	}
	if count != 3 {
		t.Fatalf("got %d resource reasons, want 3", count)
	}
}

func TestRefreshReplacesStoredRecommendations(t *testing.T) {
	fix := newEngineFixture(t)
	fix.addCourse("Course A", "data_science", types.SkillBeginner, 4.0, 500)
	fix.addCourse("Course B", "data_science", types.SkillBeginner, 4.0, 500)

	if _, err := fix.service.Generate(context.Background(), fix.userID, 6); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := fix.service.Refresh(context.Background(), fix.userID, 6); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(fix.recs.recs) != 2 {
		t.Fatalf("stored %d rows after refresh, want 2", len(fix.recs.recs))
	}
}

func TestRecentForUserGeneratesWhenEmpty(t *testing.T) {
	fix := newEngineFixture(t)
	fix.addCourse("Course", "data_science", types.SkillBeginner, 4.0, 500)

	recs, err := fix.service.RecentForUser(context.Background(), fix.userID, 6)
	if err != nil {
		t.Fatalf("RecentForUser: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(recs))
	}
	if len(fix.recs.recs) != 1 {
		t.Fatalf("stored %d rows, want 1 from on-demand generation", len(fix.recs.recs))
	}

	// A second call reuses the stored window instead of regenerating.
	if _, err := fix.service.RecentForUser(context.Background(), fix.userID, 6); err != nil {
		t.Fatalf("RecentForUser second call: %v", err)
	}
	if len(fix.recs.recs) != 1 {
		t.Fatalf("stored %d rows after recent read, want still 1", len(fix.recs.recs))
	}
}

func TestBuildReasonsFallback(t *testing.T) {
	course := &types.Course{Category: "data_science", Level: types.SkillBeginner, EnrolledCount: 10}
	scores := FactorScores{
		InterestMatch:  0.5,
		SkillLevel:     0.4,
		ContentMatch:   0.7,
		ProgressFactor: 0.7,
		Popularity:     0.3,
	}
	reasons := buildReasons(course, scores)
	if len(reasons) != 1 || reasons[0] != "Recommended based on your learning profile" {
		t.Fatalf("reasons=%v, want the generic fallback only", reasons)
	}
}

func TestBuildReasonsThresholds(t *testing.T) {
	course := &types.Course{Category: "data_science", Level: "Beginner", EnrolledCount: 1900}
	scores := FactorScores{
		InterestMatch:  0.8,
		SkillLevel:     1.0,
		ContentMatch:   0.9,
		ProgressFactor: 0.9,
		Popularity:     0.95,
	}
	reasons := buildReasons(course, scores)
	want := []string{
		"Matches your interest in data_science",
		"Perfect for your beginner skill level",
		"Delivered in your preferred format",
		"Continue your progress in this area",
		"Highly rated by 1900+ learners",
	}
	if len(reasons) != len(want) {
		t.Fatalf("got %d reasons %v, want %d", len(reasons), reasons, len(want))
	}
	for i := range want {
		if reasons[i] != want[i] {
			t.Fatalf("reason[%d]=%q, want %q", i, reasons[i], want[i])
		}
	}
}

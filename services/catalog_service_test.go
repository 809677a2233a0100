package services

import (
	"errors"
	"testing"

	"quizshop/models"

	"gorm.io/gorm"
)

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	svc := NewCatalogService(db)

	math, err := svc.CreateSubject(&CreateSubjectRequest{Name: "Mathematics"})
	if err != nil {
		t.Fatalf("failed to seed subject: %v", err)
	}
	history, err := svc.CreateSubject(&CreateSubjectRequest{Name: "History"})
	if err != nil {
		t.Fatalf("failed to seed subject: %v", err)
	}

	algebra, err := svc.CreateTest(&CreateTestRequest{
		Name: "Algebra basics", SubjectID: math.ID, Level: models.LevelBeginner,
	})
	if err != nil {
		t.Fatalf("failed to seed test: %v", err)
	}
	if _, err := svc.CreateTest(&CreateTestRequest{
		Name: "Ancient Rome", SubjectID: history.ID, Level: models.LevelAdvanced,
	}); err != nil {
		t.Fatalf("failed to seed test: %v", err)
	}

	_, err = svc.CreateQuestion(&CreateQuestionRequest{
		About:  "What is 2 + 2?",
		TestID: algebra.ID,
		Options: []CreateOptionRequest{
			{Name: "3"},
			{Name: "4", IsTrue: true},
			{Name: "5"},
		},
	})
	if err != nil {
		t.Fatalf("failed to seed question: %v", err)
	}
}

func TestListSubjectsFiltersByName(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewCatalogService(db)

	subjects, err := svc.ListSubjects(&SubjectFilter{Name: "math"})
	if err != nil {
		t.Fatalf("ListSubjects failed: %v", err)
	}
	if len(subjects) != 1 || subjects[0].Name != "Mathematics" {
		t.Errorf("expected only Mathematics, got %+v", subjects)
	}

	all, err := svc.ListSubjects(&SubjectFilter{})
	if err != nil {
		t.Fatalf("ListSubjects failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 subjects, got %d", len(all))
	}
}

func TestListTestsFilters(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewCatalogService(db)

	bySubject, err := svc.ListTests(&TestFilter{Subject: "hist"})
	if err != nil {
		t.Fatalf("ListTests failed: %v", err)
	}
	if len(bySubject) != 1 || bySubject[0].Name != "Ancient Rome" {
		t.Errorf("subject filter: expected Ancient Rome, got %+v", bySubject)
	}
	if bySubject[0].Subject != "History" {
		t.Errorf("expected the subject name flattened into the response, got %q", bySubject[0].Subject)
	}

	byLevel, err := svc.ListTests(&TestFilter{Level: "begin"})
	if err != nil {
		t.Fatalf("ListTests failed: %v", err)
	}
	if len(byLevel) != 1 || byLevel[0].Name != "Algebra basics" {
		t.Errorf("level filter: expected Algebra basics, got %+v", byLevel)
	}

	balls := 10
	byBalls, err := svc.ListTests(&TestFilter{Balls: &balls})
	if err != nil {
		t.Fatalf("ListTests failed: %v", err)
	}
	if len(byBalls) != 1 || byBalls[0].Name != "Algebra basics" {
		t.Errorf("balls filter: expected Algebra basics at 10 balls, got %+v", byBalls)
	}
}

func TestTestAccrualByLevel(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCatalogService(db)
	subject, err := svc.CreateSubject(&CreateSubjectRequest{Name: "Physics"})
	if err != nil {
		t.Fatalf("failed to seed subject: %v", err)
	}

	cases := []struct {
		level string
		want  int
	}{
		{models.LevelBeginner, 10},
		{models.LevelIntermediate, 20},
		{models.LevelAdvanced, 30},
	}

	for _, tc := range cases {
		test, err := svc.CreateTest(&CreateTestRequest{
			Name: "Test " + tc.level, SubjectID: subject.ID, Level: tc.level,
		})
		if err != nil {
			t.Fatalf("CreateTest(%s) failed: %v", tc.level, err)
		}
		if test.Balls != tc.want {
			t.Errorf("level %s: expected %d balls, got %d", tc.level, tc.want, test.Balls)
		}
		if test.Level != tc.level {
			t.Errorf("level %s must not be mutated on save, got %q", tc.level, test.Level)
		}
	}
}

func TestListQuestionsNestedOptions(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewCatalogService(db)

	questions, err := svc.ListQuestions(&QuestionFilter{Test: "algebra"})
	if err != nil {
		t.Fatalf("ListQuestions failed: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}

	q := questions[0]
	if q.Test != "Algebra basics" || q.TestLevel != models.LevelBeginner || q.TestBalls != 10 {
		t.Errorf("expected flattened test fields, got %+v", q)
	}
	if len(q.Options) != 3 {
		t.Fatalf("expected 3 nested options, got %d", len(q.Options))
	}
	trueCount := 0
	for _, opt := range q.Options {
		if opt.IsTrue {
			trueCount++
		}
	}
	if trueCount != 1 {
		t.Errorf("expected exactly one true option, got %d", trueCount)
	}
}

func TestCreateQuestionRequiresOneTrueOption(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewCatalogService(db)

	var test models.Test
	if err := db.First(&test).Error; err != nil {
		t.Fatalf("failed to load seeded test: %v", err)
	}

	for _, options := range [][]CreateOptionRequest{
		{{Name: "a"}, {Name: "b"}},
		{{Name: "a", IsTrue: true}, {Name: "b", IsTrue: true}},
	} {
		_, err := svc.CreateQuestion(&CreateQuestionRequest{
			About:   "bad question",
			TestID:  test.ID,
			Options: options,
		})
		if !errors.Is(err, ErrOneTrueOption) {
			t.Errorf("expected ErrOneTrueOption for options %+v, got %v", options, err)
		}
	}

	var count int64
	db.Model(&models.Question{}).Where("about = ?", "bad question").Count(&count)
	if count != 0 {
		t.Errorf("rejected question must not be persisted, found %d rows", count)
	}
}

package services

import (
	"errors"
	"strings"

	"quizshop/models"

	"gorm.io/gorm"
)

var ErrOneTrueOption = errors.New("each question must have exactly one true option")

// CatalogService serves the subject/test/question read side and the
// admin-facing creation of catalog entries.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

type SubjectFilter struct {
	Name string `form:"name"`
}

type TestFilter struct {
	Name    string `form:"name"`
	Level   string `form:"level"`
	Subject string `form:"subject"`
	Balls   *int   `form:"balls"`
}

type QuestionFilter struct {
	About     string `form:"about"`
	Test      string `form:"test"`
	TestLevel string `form:"test_level"`
	TestBalls *int   `form:"test_balls"`
}

// TestResponse flattens the subject relation into a name, the shape the
// clients expect.
type TestResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Level   string `json:"level"`
	Balls   int    `json:"balls"`
}

type QuestionResponse struct {
	ID        uint             `json:"id"`
	About     string           `json:"about"`
	Test      string           `json:"test"`
	TestLevel string           `json:"test_level"`
	TestBalls int              `json:"test_balls"`
	Options   []OptionResponse `json:"options"`
}

type OptionResponse struct {
	Name   string `json:"name"`
	IsTrue bool   `json:"is_true"`
}

type CreateSubjectRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateTestRequest struct {
	Name      string `json:"name" binding:"required"`
	SubjectID uint   `json:"subject_id" binding:"required"`
	Level     string `json:"level" binding:"required,oneof=beginner intermediate advanced"`
	Balls     int    `json:"balls"`
}

type CreateQuestionRequest struct {
	About   string                `json:"about" binding:"required"`
	TestID  uint                  `json:"test_id" binding:"required"`
	Options []CreateOptionRequest `json:"options" binding:"required,min=2,dive"`
}

type CreateOptionRequest struct {
	Name   string `json:"name" binding:"required"`
	IsTrue bool   `json:"is_true"`
}

func (s *CatalogService) ListSubjects(filter *SubjectFilter) ([]models.Subject, error) {
	var subjects []models.Subject
	query := s.db.Model(&models.Subject{})
	if filter.Name != "" {
		query = query.Where("LOWER(subjects.name) LIKE ?", containsPattern(filter.Name))
	}
	err := query.Order("subjects.name").Find(&subjects).Error
	return subjects, err
}

func (s *CatalogService) GetSubject(id uint) (*models.Subject, error) {
	var subject models.Subject
	if err := s.db.First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (s *CatalogService) ListTests(filter *TestFilter) ([]TestResponse, error) {
	var tests []models.Test
	query := s.db.Model(&models.Test{}).Preload("Subject")
	if filter.Name != "" {
		query = query.Where("LOWER(tests.name) LIKE ?", containsPattern(filter.Name))
	}
	if filter.Level != "" {
		query = query.Where("LOWER(tests.level) LIKE ?", containsPattern(filter.Level))
	}
	if filter.Subject != "" {
		query = query.Joins("JOIN subjects ON subjects.id = tests.subject_id").
			Where("LOWER(subjects.name) LIKE ?", containsPattern(filter.Subject))
	}
	if filter.Balls != nil {
		query = query.Where("tests.balls = ?", *filter.Balls)
	}

	if err := query.Order("tests.id").Find(&tests).Error; err != nil {
		return nil, err
	}

	responses := make([]TestResponse, 0, len(tests))
	for i := range tests {
		responses = append(responses, newTestResponse(&tests[i]))
	}
	return responses, nil
}

func (s *CatalogService) GetTest(id uint) (*TestResponse, error) {
	var test models.Test
	if err := s.db.Preload("Subject").First(&test, id).Error; err != nil {
		return nil, err
	}
	resp := newTestResponse(&test)
	return &resp, nil
}

func (s *CatalogService) ListQuestions(filter *QuestionFilter) ([]QuestionResponse, error) {
	var questions []models.Question
	query := s.db.Model(&models.Question{}).
		Joins("JOIN tests ON tests.id = questions.test_id").
		Preload("Test").
		Preload("Options")
	if filter.About != "" {
		query = query.Where("LOWER(questions.about) LIKE ?", containsPattern(filter.About))
	}
	if filter.Test != "" {
		query = query.Where("LOWER(tests.name) LIKE ?", containsPattern(filter.Test))
	}
	if filter.TestLevel != "" {
		query = query.Where("LOWER(tests.level) LIKE ?", containsPattern(filter.TestLevel))
	}
	if filter.TestBalls != nil {
		query = query.Where("tests.balls = ?", *filter.TestBalls)
	}

	if err := query.Order("questions.id").Find(&questions).Error; err != nil {
		return nil, err
	}

	responses := make([]QuestionResponse, 0, len(questions))
	for i := range questions {
		responses = append(responses, newQuestionResponse(&questions[i]))
	}
	return responses, nil
}

func (s *CatalogService) GetQuestion(id uint) (*QuestionResponse, error) {
	var question models.Question
	err := s.db.Preload("Test").Preload("Options").First(&question, id).Error
	if err != nil {
		return nil, err
	}
	resp := newQuestionResponse(&question)
	return &resp, nil
}

func (s *CatalogService) CreateSubject(req *CreateSubjectRequest) (*models.Subject, error) {
	subject := models.Subject{Name: req.Name}
	if err := s.db.Create(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (s *CatalogService) CreateTest(req *CreateTestRequest) (*TestResponse, error) {
	var subject models.Subject
	if err := s.db.First(&subject, req.SubjectID).Error; err != nil {
		return nil, err
	}

	test := models.Test{
		Name:      req.Name,
		SubjectID: req.SubjectID,
		Level:     req.Level,
		Balls:     req.Balls,
	}
	if err := s.db.Create(&test).Error; err != nil {
		return nil, err
	}

	return s.GetTest(test.ID)
}

// CreateQuestion stores a question with its options. Exactly one option
// must be marked true; any number of false options is fine.
func (s *CatalogService) CreateQuestion(req *CreateQuestionRequest) (*QuestionResponse, error) {
	trueCount := 0
	for _, opt := range req.Options {
		if opt.IsTrue {
			trueCount++
		}
	}
	if trueCount != 1 {
		return nil, ErrOneTrueOption
	}

	var test models.Test
	if err := s.db.First(&test, req.TestID).Error; err != nil {
		return nil, err
	}

	question := models.Question{
		About:  req.About,
		TestID: req.TestID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
		for _, opt := range req.Options {
			option := models.Option{
				QuestionID: question.ID,
				Name:       opt.Name,
				IsTrue:     opt.IsTrue,
			}
			if err := tx.Create(&option).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuestion(question.ID)
}

func newTestResponse(test *models.Test) TestResponse {
	return TestResponse{
		ID:      test.ID,
		Name:    test.Name,
		Subject: test.Subject.Name,
		Level:   test.Level,
		Balls:   test.Balls,
	}
}

func newQuestionResponse(question *models.Question) QuestionResponse {
	options := make([]OptionResponse, 0, len(question.Options))
	for _, opt := range question.Options {
		options = append(options, OptionResponse{Name: opt.Name, IsTrue: opt.IsTrue})
	}
	return QuestionResponse{
		ID:        question.ID,
		About:     question.About,
		Test:      question.Test.Name,
		TestLevel: question.Test.Level,
		TestBalls: question.Test.Balls,
		Options:   options,
	}
}

func containsPattern(value string) string {
	return "%" + strings.ToLower(value) + "%"
}

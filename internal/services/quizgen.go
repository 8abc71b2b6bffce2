package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"studytrack-backend/internal/models"
	"studytrack-backend/internal/repository"
)

// QuestionProvider generates multiple choice questions from raw study
// content. Providers are tried in order until one succeeds.
type QuestionProvider interface {
	Name() string
	Generate(ctx context.Context, req models.GenerateQuizRequest) ([]models.QuizQuestion, error)
}

type QuizGenService struct {
	providers []QuestionProvider
	quizRepo  *repository.QuizRepo
	jobRepo   *repository.JobRepo
	redis     *redis.Client
}

func NewQuizGenService(providers []QuestionProvider, quizRepo *repository.QuizRepo, jobRepo *repository.JobRepo, redisClient *redis.Client) *QuizGenService {
	return &QuizGenService{
		providers: providers,
		quizRepo:  quizRepo,
		jobRepo:   jobRepo,
		redis:     redisClient,
	}
}

// PublishUpdate sends a WebSocket update via Redis pub/sub
func (s *QuizGenService) PublishUpdate(ctx context.Context, userID uuid.UUID, msg models.WSMessage) {
	data, _ := json.Marshal(msg)
	s.redis.Publish(ctx, fmt.Sprintf("user_updates:%s", userID.String()), string(data))
}

// GenerateQuiz runs the provider chain for a queued job and stores the
// resulting question set on the quiz the job references.
func (s *QuizGenService) GenerateQuiz(ctx context.Context, job *models.Job) error {
	var config models.GenerateQuizRequest
	if err := json.Unmarshal(job.ConfigJSON, &config); err != nil {
		return fmt.Errorf("invalid job config: %w", err)
	}

	if config.NumQuestions <= 0 {
		config.NumQuestions = 5
	}

	s.PublishUpdate(ctx, job.UserID, models.WSMessage{
		Type: "status_update",
		Payload: models.StatusUpdate{
			JobID: job.ID, Step: 1, StepName: "Generating Questions",
		},
	})

	var questions []models.QuizQuestion
	var lastErr error
	for _, p := range s.providers {
		questions, lastErr = p.Generate(ctx, config)
		if lastErr == nil && len(questions) > 0 {
			break
		}
		log.Printf("Quiz provider %s failed: %v", p.Name(), lastErr)
	}
	if len(questions) == 0 {
		if lastErr != nil {
			return fmt.Errorf("all quiz providers failed: %w", lastErr)
		}
		return fmt.Errorf("all quiz providers returned no questions")
	}

	questions = validateQuizQuestions(questions)
	if len(questions) > config.NumQuestions {
		questions = questions[:config.NumQuestions]
	}

	s.PublishUpdate(ctx, job.UserID, models.WSMessage{
		Type: "status_update",
		Payload: models.StatusUpdate{
			JobID: job.ID, Step: 2, StepName: "Saving Quiz",
		},
	})

	return s.quizRepo.ReplaceQuestions(ctx, job.ReferenceID, questions)
}

func buildQuizPrompt(config models.GenerateQuizRequest) string {
	var b strings.Builder

	b.WriteString("You are an expert educational assessor. Generate quiz questions based on the following content.\n\n")
	b.WriteString("CRITICAL: Return ONLY a valid JSON array. No preamble, no markdown, no backticks.\n\n")

	b.WriteString(fmt.Sprintf("Generate exactly %d multiple choice questions.\n", config.NumQuestions))

	b.WriteString(`
JSON schema per question:
{"question": "string", "options": ["string"], "correct_option_index": int, "explanation": "string"}

Each question has exactly 4 options.
`)

	b.WriteString("\n---CONTENT---\n")
	b.WriteString(config.Content)
	b.WriteString("\n---END---\n")

	return b.String()
}

// parseQuizQuestions tolerates models wrapping the array in code
// fences or prose.
func parseQuizQuestions(rawText string) []models.QuizQuestion {
	rawText = strings.TrimSpace(rawText)
	rawText = strings.TrimPrefix(rawText, "```json")
	rawText = strings.TrimPrefix(rawText, "```")
	rawText = strings.TrimSuffix(rawText, "```")
	rawText = strings.TrimSpace(rawText)

	var questions []models.QuizQuestion
	if err := json.Unmarshal([]byte(rawText), &questions); err != nil {
		// Try to extract JSON array
		start := strings.Index(rawText, "[")
		end := strings.LastIndex(rawText, "]")
		if start >= 0 && end > start {
			json.Unmarshal([]byte(rawText[start:end+1]), &questions)
		}
	}
	return questions
}

func validateQuizQuestions(questions []models.QuizQuestion) []models.QuizQuestion {
	var valid []models.QuizQuestion
	for _, q := range questions {
		if q.Question == "" || len(q.Options) < 2 {
			continue
		}
		if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
			q.CorrectOptionIndex = 0
		}
		valid = append(valid, q)
	}
	return valid
}

package services

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"studytrack-backend/internal/models"
)

func TestParseQuizQuestions_PlainArray(t *testing.T) {
	raw := `[{"question": "What is 2+2?", "options": ["3", "4", "5", "6"], "correct_option_index": 1, "explanation": "Basic arithmetic."}]`

	questions := parseQuizQuestions(raw)

	if len(questions) != 1 {
		t.Fatalf("Expected 1 question, got %d", len(questions))
	}
	if questions[0].CorrectOptionIndex != 1 {
		t.Errorf("Expected correct index 1, got %d", questions[0].CorrectOptionIndex)
	}
}

func TestParseQuizQuestions_CodeFenced(t *testing.T) {
	raw := "```json\n[{\"question\": \"Q\", \"options\": [\"a\", \"b\"], \"correct_option_index\": 0, \"explanation\": \"E\"}]\n```"

	questions := parseQuizQuestions(raw)

	if len(questions) != 1 {
		t.Fatalf("Expected 1 question from fenced JSON, got %d", len(questions))
	}
}

func TestParseQuizQuestions_EmbeddedInProse(t *testing.T) {
	raw := `Here are your questions: [{"question": "Q", "options": ["a", "b"], "correct_option_index": 0, "explanation": "E"}] Enjoy!`

	questions := parseQuizQuestions(raw)

	if len(questions) != 1 {
		t.Fatalf("Expected 1 question extracted from prose, got %d", len(questions))
	}
}

func TestParseQuizQuestions_Garbage(t *testing.T) {
	if questions := parseQuizQuestions("not json at all"); len(questions) != 0 {
		t.Errorf("Expected no questions, got %d", len(questions))
	}
}

func TestValidateQuizQuestions(t *testing.T) {
	questions := []models.QuizQuestion{
		{Question: "", Options: []string{"a", "b"}},                                   // dropped: empty question
		{Question: "Q1", Options: []string{"only one"}},                               // dropped: too few options
		{Question: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectOptionIndex: 9}, // clamped
		{Question: "Q3", Options: []string{"a", "b"}, CorrectOptionIndex: 1},           // kept as-is
	}

	valid := validateQuizQuestions(questions)

	if len(valid) != 2 {
		t.Fatalf("Expected 2 valid questions, got %d", len(valid))
	}
	if valid[0].CorrectOptionIndex != 0 {
		t.Errorf("Expected out-of-range index clamped to 0, got %d", valid[0].CorrectOptionIndex)
	}
	if valid[1].CorrectOptionIndex != 1 {
		t.Errorf("Expected in-range index preserved, got %d", valid[1].CorrectOptionIndex)
	}
}

func TestBuildQuizPrompt_IncludesContentAndCount(t *testing.T) {
	prompt := buildQuizPrompt(models.GenerateQuizRequest{
		NumQuestions: 7,
		Content:      "Mitochondria are the powerhouse of the cell.",
	})

	if !strings.Contains(prompt, "exactly 7 multiple choice questions") {
		t.Errorf("Prompt missing question count: %s", prompt)
	}
	if !strings.Contains(prompt, "Mitochondria are the powerhouse of the cell.") {
		t.Errorf("Prompt missing content")
	}
}

func TestFallbackProvider_Deterministic(t *testing.T) {
	req := models.GenerateQuizRequest{
		NumQuestions: 2,
		Content:      "Photosynthesis converts light energy into chemical energy. Cellular respiration releases that stored energy. Short.",
	}

	p := NewFallbackProvider()
	first, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, _ := p.Generate(context.Background(), req)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected deterministic output across runs")
	}
	if len(first) != 2 {
		t.Fatalf("Expected 2 questions, got %d", len(first))
	}
	for _, q := range first {
		if len(q.Options) != 4 {
			t.Errorf("Expected 4 options, got %d", len(q.Options))
		}
		if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
			t.Errorf("Correct index out of range: %d", q.CorrectOptionIndex)
		}
	}
}

func TestFallbackProvider_NoUsableContent(t *testing.T) {
	p := NewFallbackProvider()
	if _, err := p.Generate(context.Background(), models.GenerateQuizRequest{NumQuestions: 3, Content: "Too short."}); err == nil {
		t.Errorf("Expected error for content with no usable sentences")
	}
}

func TestGenerateQuiz_CorruptJobConfig(t *testing.T) {
	s := NewQuizGenService(nil, nil, nil, nil)
	job := &models.Job{ConfigJSON: []byte("{not valid json")}

	err := s.GenerateQuiz(context.Background(), job)
	if err == nil {
		t.Fatal("Expected error for unparseable job config")
	}
	if !strings.Contains(err.Error(), "invalid job config") {
		t.Errorf("Expected a config parse error, got %v", err)
	}
}

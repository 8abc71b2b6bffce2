package services

import (
	"context"
	"fmt"
	"strings"

	"studytrack-backend/internal/models"
)

// FallbackProvider derives questions directly from the submitted
// content, so quiz generation still works when no AI provider is
// configured or all of them are down. Output is deterministic for a
// given input.
type FallbackProvider struct{}

func NewFallbackProvider() *FallbackProvider {
	return &FallbackProvider{}
}

func (p *FallbackProvider) Name() string { return "fallback" }

func (p *FallbackProvider) Generate(ctx context.Context, req models.GenerateQuizRequest) ([]models.QuizQuestion, error) {
	sentences := splitSentences(req.Content)
	if len(sentences) == 0 {
		return nil, fmt.Errorf("content has no usable sentences")
	}

	n := req.NumQuestions
	if n > len(sentences) {
		n = len(sentences)
	}

	questions := make([]models.QuizQuestion, 0, n)
	for i := 0; i < n; i++ {
		statement := sentences[i]
		questions = append(questions, models.QuizQuestion{
			Question: "According to the material, which statement is accurate?",
			Options: []string{
				statement,
				"The material states the opposite of this.",
				"The material does not cover this topic.",
				"None of the above.",
			},
			CorrectOptionIndex: 0,
			Explanation:        fmt.Sprintf("The material states: %s", statement),
		})
	}
	return questions, nil
}

func splitSentences(content string) []string {
	var sentences []string
	for _, raw := range strings.FieldsFunc(content, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	}) {
		s := strings.TrimSpace(raw)
		// Fragments are too short to quiz on
		if len(s) >= 30 {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

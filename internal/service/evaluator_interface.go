package service

import (
	"github.com/mattkeefer/sports-odds-backend/internal/models"
)

// Evaluator is an interface that abstracts market evaluation
// This allows for easier testing and mocking
type Evaluator interface {
	Evaluate(event *models.EventSnapshot, params models.EvaluationParams) *models.EvaluationResult
	EvaluateAll(events []models.EventSnapshot, params models.EvaluationParams) []models.EvaluationResult
}

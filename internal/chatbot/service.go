// Package chatbot answers free-text health questions, backed by a generative
// API with a cached-answer layer and canned fallbacks when the API is
// unavailable.
package chatbot

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/sanarehealth/medledger-backend/pkg/errors"
	"github.com/sanarehealth/medledger-backend/pkg/logger"
)

// Answer is a chatbot reply with its provenance.
type Answer struct {
	Response string `json:"response"`
	Cached   bool   `json:"cached,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Service answers health questions.
type Service interface {
	Ask(ctx context.Context, message string) (*Answer, error)
}

type service struct {
	generator Generator
	cache     *Cache
	logg      *logger.Logger
}

// NewService wires the chatbot. A nil generator means no API key is
// configured; every answer then comes from the fallback table.
func NewService(generator Generator, cache *Cache, logg *logger.Logger) (Service, error) {
	if cache == nil {
		return nil, fmt.Errorf("chatbot cache required")
	}
	return &service{generator: generator, cache: cache, logg: logg}, nil
}

func (s *service) Ask(ctx context.Context, message string) (*Answer, error) {
	if strings.TrimSpace(message) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}

	cacheKey := strings.ToLower(strings.TrimSpace(message))
	if cached, ok := s.cache.Get(cacheKey); ok {
		return &Answer{Response: cached, Cached: true}, nil
	}

	if s.generator == nil {
		return &Answer{Response: fallbackResponse(message), Fallback: true}, nil
	}

	response, err := s.generator.Generate(ctx, message)
	if err != nil || response == "" {
		if err != nil && s.logg != nil {
			s.logg.Error(ctx, "chatbot.generate_failed", err)
		}
		return &Answer{Response: fallbackResponse(message), Fallback: true}, nil
	}

	s.cache.Put(cacheKey, response)
	return &Answer{Response: response}, nil
}

func fallbackResponse(message string) string {
	msg := strings.ToLower(message)

	if strings.Contains(msg, "diet") || strings.Contains(msg, "food") || strings.Contains(msg, "nutrition") {
		return "Eat 5 servings of fruits/vegetables daily, choose whole grains, lean proteins. Stay hydrated with 8 glasses of water. Limit processed foods."
	}
	if strings.Contains(msg, "exercise") || strings.Contains(msg, "workout") {
		return "Aim for 150 minutes of moderate aerobic activity weekly. Include strength training 2-3 times per week. Start slowly and increase gradually."
	}
	return "I can help with: Diet & Nutrition, Exercise, Diabetes, Blood Pressure, Sleep, Stress, Weight, Heart Health. Ask me anything!"
}

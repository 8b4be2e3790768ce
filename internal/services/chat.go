package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/learnai/learnai-backend/internal/platform/apierr"
	"github.com/learnai/learnai-backend/internal/platform/logger"
	"github.com/learnai/learnai-backend/internal/repos"
	"github.com/learnai/learnai-backend/internal/types"
)

const chatFallbackAnswer = "I can only answer questions about a course you're currently learning. " +
	"Open a course and ask again, or ask about one of your enrolled courses."

// ChatService answers course questions from the stored course summary
// using keyword matching. Both sides of the exchange are persisted.
type ChatService interface {
	Ask(ctx context.Context, userID uuid.UUID, courseID *uuid.UUID, message string) (string, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*types.ChatMessage, error)
}

type chatService struct {
	db          *gorm.DB
	log         *logger.Logger
	courses     repos.CourseRepo
	enrollments repos.EnrollmentRepo
	messages    repos.ChatMessageRepo
}

func NewChatService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courses repos.CourseRepo,
	enrollments repos.EnrollmentRepo,
	messages repos.ChatMessageRepo,
) ChatService {
	return &chatService{
		db:          db,
		log:         baseLog.With("service", "ChatService"),
		courses:     courses,
		enrollments: enrollments,
		messages:    messages,
	}
}

func (s *chatService) Ask(ctx context.Context, userID uuid.UUID, courseID *uuid.UUID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", apierr.New(http.StatusBadRequest, "empty_message", errors.New("message is required"))
	}

	// Course context only counts when the caller is enrolled.
	var course *types.Course
	if courseID != nil {
		c, err := s.courses.GetByID(ctx, nil, *courseID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("load course: %w", err)
		}
		if c != nil {
			if _, err := s.enrollments.GetByUserAndCourse(ctx, nil, userID, c.ID); err == nil {
				course = c
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return "", fmt.Errorf("check enrollment: %w", err)
			}
		}
	}

	answer := chatFallbackAnswer
	var linkedCourseID *uuid.UUID
	if course != nil && course.ChatSummary != "" {
		courseContext := course.ChatSummary + "\n" + course.Description
		answer = answerFromCourseContext(message, courseContext, course.Title)
		linkedCourseID = &course.ID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		userMsg := &types.ChatMessage{
			UserID:   userID,
			CourseID: linkedCourseID,
			Role:     types.ChatRoleUser,
			Content:  message,
		}
		if _, err := s.messages.Create(ctx, tx, userMsg); err != nil {
			return fmt.Errorf("store user message: %w", err)
		}
		assistantMsg := &types.ChatMessage{
			UserID:   userID,
			CourseID: linkedCourseID,
			Role:     types.ChatRoleAssistant,
			Content:  answer,
		}
		if _, err := s.messages.Create(ctx, tx, assistantMsg); err != nil {
			return fmt.Errorf("store assistant message: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return answer, nil
}

func (s *chatService) History(ctx context.Context, userID uuid.UUID, limit int) ([]*types.ChatMessage, error) {
	messages, err := s.messages.ListByUser(ctx, nil, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat history: %w", err)
	}
	return messages, nil
}

// answerFromCourseContext builds a short answer from the course
// summary. Definition-style questions get the first sentence that
// shares words with the question; "how" questions get a key-points
// excerpt; everything else gets a bounded summary quote.
func answerFromCourseContext(question, courseContext, courseTitle string) string {
	q := strings.ToLower(question)

	if strings.Contains(q, "what") || strings.Contains(q, "explain") || strings.Contains(q, "define") {
		words := strings.Fields(strings.ReplaceAll(q, "?", ""))
		if len(words) > 3 {
			words = words[:3]
		}
		for _, sentence := range strings.Split(courseContext, ".") {
			lower := strings.ToLower(sentence)
			for _, w := range words {
				if strings.Contains(lower, w) {
					if trimmed := strings.TrimSpace(sentence); trimmed != "" {
						return trimmed + "."
					}
					return "This is covered in the course material. Check the relevant section in " + courseTitle + "."
				}
			}
		}
		return "According to " + courseTitle + ": " + truncate(courseContext, 300) + "..."
	}

	if strings.Contains(q, "how") {
		return "The course '" + courseTitle + "' covers this step by step. The key points: " + truncate(courseContext, 250) + "..."
	}

	if len(courseContext) > 400 {
		return "Based on " + courseTitle + ": " + truncate(courseContext, 400) + "..."
	}
	return "Based on " + courseTitle + ": " + courseContext
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/AlibekovAA/tasktracker/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/tasktracker/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/tasktracker/internal/common/errors"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
	"github.com/AlibekovAA/tasktracker/internal/common/validation"
	"github.com/AlibekovAA/tasktracker/internal/observability/metrics"
	"github.com/AlibekovAA/tasktracker/internal/task/domain"
	taskrepo "github.com/AlibekovAA/tasktracker/internal/task/repository"
	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
)

type titleInput struct {
	Title string `form:"task" validate:"required,max=200"`
}

type TaskService struct {
	repo        taskrepo.Repository
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewTaskService(
	repo taskrepo.Repository,
	idGenerator commoncrypto.IDGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *TaskService {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &TaskService{
		repo:        repo,
		idGenerator: idGenerator,
		clock:       clk,
		log:         log,
	}
}

func (s *TaskService) List(ctx context.Context, userID userdomain.ID) ([]domain.Task, error) {
	if userID == "" {
		return nil, commonerrors.ErrUnauthorized
	}

	tasks, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(userID),
			"action":  "task_list_failed",
		}).Errorf("list tasks failed: %v", err)
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) Add(ctx context.Context, userID userdomain.ID, title string) (domain.Task, error) {
	if userID == "" {
		return domain.Task{}, commonerrors.ErrUnauthorized
	}

	title, err := validateTitle(title)
	if err != nil {
		recordOperation("add", err)
		return domain.Task{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(userID),
			"action":  "task_id_generation_failed",
		}).Errorf("add task failed: id generation error: %v", err)
		recordOperation("add", err)
		return domain.Task{}, err
	}

	task := domain.Task{
		ID:        domain.ID(id),
		OwnerID:   userID,
		Title:     title,
		Done:      false,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(userID),
			"action":  "task_create_failed",
		}).Errorf("add task failed: %v", err)
		recordOperation("add", err)
		return domain.Task{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(userID),
		"task_id": id,
		"action":  "task_added",
	}).Debug("task added")
	recordOperation("add", nil)

	return task, nil
}

func (s *TaskService) Get(ctx context.Context, userID userdomain.ID, taskID string) (domain.Task, error) {
	if userID == "" {
		return domain.Task{}, commonerrors.ErrUnauthorized
	}
	if commoncrypto.ValidateID(taskID) != nil {
		return domain.Task{}, commonerrors.ErrNotFound
	}

	return s.repo.FindByID(ctx, userID, domain.ID(taskID))
}

// Toggle sets done to the supplied value; repeating it is harmless.
func (s *TaskService) Toggle(ctx context.Context, userID userdomain.ID, taskID string, done bool) error {
	if userID == "" {
		return commonerrors.ErrUnauthorized
	}
	if commoncrypto.ValidateID(taskID) != nil {
		recordOperation("toggle", commonerrors.ErrNotFound)
		return commonerrors.ErrNotFound
	}

	err := s.repo.SetDone(ctx, userID, domain.ID(taskID), done)
	s.logMutation(ctx, "toggle", userID, taskID, err)
	recordOperation("toggle", err)
	return err
}

func (s *TaskService) Rename(ctx context.Context, userID userdomain.ID, taskID string, title string) error {
	if userID == "" {
		return commonerrors.ErrUnauthorized
	}

	title, err := validateTitle(title)
	if err != nil {
		recordOperation("rename", err)
		return err
	}
	if commoncrypto.ValidateID(taskID) != nil {
		recordOperation("rename", commonerrors.ErrNotFound)
		return commonerrors.ErrNotFound
	}

	err = s.repo.UpdateTitle(ctx, userID, domain.ID(taskID), title)
	s.logMutation(ctx, "rename", userID, taskID, err)
	recordOperation("rename", err)
	return err
}

// Delete succeeds whether or not the task exists.
func (s *TaskService) Delete(ctx context.Context, userID userdomain.ID, taskID string) error {
	if userID == "" {
		return commonerrors.ErrUnauthorized
	}
	if commoncrypto.ValidateID(taskID) != nil {
		recordOperation("delete", nil)
		return nil
	}

	err := s.repo.Delete(ctx, userID, domain.ID(taskID))
	s.logMutation(ctx, "delete", userID, taskID, err)
	recordOperation("delete", err)
	return err
}

func (s *TaskService) logMutation(ctx context.Context, operation string, userID userdomain.ID, taskID string, err error) {
	fields := logger.Fields{
		"user_id": string(userID),
		"task_id": taskID,
	}

	switch {
	case err == nil:
		fields["action"] = "task_" + operation
		s.log.WithFields(ctx, fields).Debugf("task %s succeeded", operation)
	case errors.Is(err, commonerrors.ErrNotFound):
		fields["action"] = "task_" + operation + "_not_found"
		s.log.WithFields(ctx, fields).Warnf("task %s failed: not found", operation)
	default:
		fields["action"] = "task_" + operation + "_failed"
		s.log.WithFields(ctx, fields).Errorf("task %s failed: %v", operation, err)
	}
}

func validateTitle(title string) (string, error) {
	input := titleInput{Title: strings.TrimSpace(title)}
	if err := validation.Struct(input); err != nil {
		return "", err
	}
	return input.Title, nil
}

func recordOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
		if de, ok := commonerrors.AsDomainError(err); ok {
			result = strings.ToLower(string(de.Category()))
		}
	}
	metrics.TaskOperationsTotal.WithLabelValues(operation, result).Inc()
}

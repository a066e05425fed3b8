package usecase

import (
	"context"
	"fmt"
	"time"

	"alumnihub/internal/domain/entity"
	"alumnihub/internal/domain/repository"
	"alumnihub/pkg/errors"
	"alumnihub/pkg/logger"
)

// PostingUseCase handles job and event submissions and their admin review.
// Review outcomes feed the notification fan-out: the poster always hears the
// verdict, and approvals are announced to verified active alumni and
// students.
type PostingUseCase struct {
	jobRepo   repository.JobRepository
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	notifier  *NotificationUseCase
}

func NewPostingUseCase(
	jobRepo repository.JobRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	notifier *NotificationUseCase,
) *PostingUseCase {
	return &PostingUseCase{
		jobRepo:   jobRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

type CreateJobInput struct {
	Title       string
	Company     string
	Description string
}

type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
}

func (uc *PostingUseCase) CreateJob(ctx context.Context, posterID string, input CreateJobInput) (*entity.Job, error) {
	job := &entity.Job{
		Title:       input.Title,
		Company:     input.Company,
		Description: input.Description,
		PostedBy:    posterID,
		Status:      entity.PostingPending,
	}

	if err := uc.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

func (uc *PostingUseCase) CreateEvent(ctx context.Context, posterID string, input CreateEventInput) (*entity.Event, error) {
	event := &entity.Event{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		PostedBy:    posterID,
		Status:      entity.PostingPending,
	}

	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// ListJobs returns approved jobs for regular users and everything for Admin.
func (uc *PostingUseCase) ListJobs(ctx context.Context, role entity.Role) ([]*entity.Job, error) {
	if role == entity.RoleAdmin {
		return uc.jobRepo.List(ctx, "")
	}
	return uc.jobRepo.List(ctx, entity.PostingApproved)
}

func (uc *PostingUseCase) ListEvents(ctx context.Context, role entity.Role) ([]*entity.Event, error) {
	if role == entity.RoleAdmin {
		return uc.eventRepo.List(ctx, "")
	}
	return uc.eventRepo.List(ctx, entity.PostingApproved)
}

// ReviewJob settles a pending job exactly once. The review succeeds even when
// notification delivery fails.
func (uc *PostingUseCase) ReviewJob(ctx context.Context, jobID, action string) (*entity.Job, error) {
	status, err := reviewStatus(action)
	if err != nil {
		return nil, err
	}

	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != entity.PostingPending {
		return nil, errors.Conflict("Job has already been reviewed")
	}

	job.Status = status
	job.ReviewedAt = time.Now()
	if err := uc.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	title := "Job Rejected"
	message := fmt.Sprintf("Your job posting %q was rejected", job.Title)
	if status == entity.PostingApproved {
		title = "Job Approved"
		message = fmt.Sprintf("Your job posting %q is now live", job.Title)
	}
	uc.notifier.Notify(ctx, NotifyInput{
		RecipientID: job.PostedBy,
		Type:        entity.NotificationJobStatus,
		Title:       title,
		Message:     message,
		RelatedID:   job.ID,
	})

	if status == entity.PostingApproved {
		uc.broadcastAlert(ctx, job.PostedBy, entity.NotificationJobAlert,
			"New Job Posted", fmt.Sprintf("%s at %s", job.Title, job.Company), job.ID)
	}

	return job, nil
}

func (uc *PostingUseCase) ReviewEvent(ctx context.Context, eventID, action string) (*entity.Event, error) {
	status, err := reviewStatus(action)
	if err != nil {
		return nil, err
	}

	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != entity.PostingPending {
		return nil, errors.Conflict("Event has already been reviewed")
	}

	event.Status = status
	event.ReviewedAt = time.Now()
	if err := uc.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	title := "Event Rejected"
	message := fmt.Sprintf("Your event %q was rejected", event.Title)
	if status == entity.PostingApproved {
		title = "Event Approved"
		message = fmt.Sprintf("Your event %q is now listed", event.Title)
	}
	uc.notifier.Notify(ctx, NotifyInput{
		RecipientID: event.PostedBy,
		Type:        entity.NotificationEventStatus,
		Title:       title,
		Message:     message,
		RelatedID:   event.ID,
	})

	if status == entity.PostingApproved {
		uc.broadcastAlert(ctx, event.PostedBy, entity.NotificationEventAlert,
			"New Event", event.Title, event.ID)
	}

	return event, nil
}

// broadcastAlert fans an announcement out to verified active alumni and
// students, skipping the poster. Best effort per recipient.
func (uc *PostingUseCase) broadcastAlert(ctx context.Context, posterID string, notificationType entity.NotificationType, title, message, relatedID string) {
	for _, role := range []entity.Role{entity.RoleAlumni, entity.RoleStudent} {
		users, err := uc.userRepo.ListActiveByRole(ctx, role)
		if err != nil {
			logger.Error("Failed to list %s users for %s alert: %v", role, notificationType, err)
			continue
		}
		for _, user := range users {
			if user.ID == posterID {
				continue
			}
			uc.notifier.Notify(ctx, NotifyInput{
				RecipientID: user.ID,
				Type:        notificationType,
				Title:       title,
				Message:     message,
				RelatedID:   relatedID,
			})
		}
	}
}

func reviewStatus(action string) (entity.PostingStatus, error) {
	switch action {
	case "approve":
		return entity.PostingApproved, nil
	case "reject":
		return entity.PostingRejected, nil
	default:
		return "", errors.BadRequest("Action must be approve or reject", nil)
	}
}

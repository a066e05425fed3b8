package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"alumnihub/internal/domain/entity"
	"alumnihub/internal/domain/repository"
	"alumnihub/pkg/errors"
)

type firestoreJobRepository struct {
	client *firestore.Client
}

func NewFirestoreJobRepository(client *firestore.Client) repository.JobRepository {
	return &firestoreJobRepository{
		client: client,
	}
}

func (r *firestoreJobRepository) Create(ctx context.Context, job *entity.Job) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	job.CreatedAt = time.Now()

	_, err := r.client.Collection("jobs").Doc(job.ID).Set(ctx, job)
	if err != nil {
		return errors.Internal("Failed to create job", err)
	}

	return nil
}

func (r *firestoreJobRepository) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	doc, err := r.client.Collection("jobs").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Job", err)
		}
		return nil, errors.Internal("Failed to get job", err)
	}

	var job entity.Job
	if err := doc.DataTo(&job); err != nil {
		return nil, errors.Internal("Failed to parse job data", err)
	}

	return &job, nil
}

func (r *firestoreJobRepository) Update(ctx context.Context, job *entity.Job) error {
	_, err := r.client.Collection("jobs").Doc(job.ID).Set(ctx, job)
	if err != nil {
		return errors.Internal("Failed to update job", err)
	}

	return nil
}

func (r *firestoreJobRepository) List(ctx context.Context, status entity.PostingStatus) ([]*entity.Job, error) {
	query := r.client.Collection("jobs").OrderBy("createdAt", firestore.Desc)
	if status != "" {
		query = r.client.Collection("jobs").
			Where("status", "==", string(status)).
			OrderBy("createdAt", firestore.Desc)
	}

	iter := query.Documents(ctx)
	var jobs []*entity.Job

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list jobs", err)
		}

		var job entity.Job
		if err := doc.DataTo(&job); err != nil {
			return nil, errors.Internal("Failed to parse job data", err)
		}
		jobs = append(jobs, &job)
	}

	return jobs, nil
}

type firestoreEventRepository struct {
	client *firestore.Client
}

func NewFirestoreEventRepository(client *firestore.Client) repository.EventRepository {
	return &firestoreEventRepository{
		client: client,
	}
}

func (r *firestoreEventRepository) Create(ctx context.Context, event *entity.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now()

	_, err := r.client.Collection("events").Doc(event.ID).Set(ctx, event)
	if err != nil {
		return errors.Internal("Failed to create event", err)
	}

	return nil
}

func (r *firestoreEventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	doc, err := r.client.Collection("events").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Event", err)
		}
		return nil, errors.Internal("Failed to get event", err)
	}

	var event entity.Event
	if err := doc.DataTo(&event); err != nil {
		return nil, errors.Internal("Failed to parse event data", err)
	}

	return &event, nil
}

func (r *firestoreEventRepository) Update(ctx context.Context, event *entity.Event) error {
	_, err := r.client.Collection("events").Doc(event.ID).Set(ctx, event)
	if err != nil {
		return errors.Internal("Failed to update event", err)
	}

	return nil
}

func (r *firestoreEventRepository) List(ctx context.Context, status entity.PostingStatus) ([]*entity.Event, error) {
	query := r.client.Collection("events").OrderBy("createdAt", firestore.Desc)
	if status != "" {
		query = r.client.Collection("events").
			Where("status", "==", string(status)).
			OrderBy("createdAt", firestore.Desc)
	}

	iter := query.Documents(ctx)
	var events []*entity.Event

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list events", err)
		}

		var event entity.Event
		if err := doc.DataTo(&event); err != nil {
			return nil, errors.Internal("Failed to parse event data", err)
		}
		events = append(events, &event)
	}

	return events, nil
}

package repository

import (
	"context"

	"alumnihub/internal/domain/entity"
)

type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	Update(ctx context.Context, job *entity.Job) error
	List(ctx context.Context, status entity.PostingStatus) ([]*entity.Job, error)
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) error
	List(ctx context.Context, status entity.PostingStatus) ([]*entity.Event, error)
}

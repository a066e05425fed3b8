package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"alumnihub/internal/domain/entity"
	"alumnihub/pkg/errors"
)

// In-memory repository fakes. They mirror the firestore adapters' behavior:
// Create assigns a uuid and CreatedAt, lookups miss with a NOT_FOUND AppError.

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *fakeUserRepo) ListActiveByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	var users []*entity.User
	for _, user := range r.users {
		if user.Role == role && user.IsVerified && user.IsActive {
			users = append(users, user)
		}
	}
	return users, nil
}

type fakeChatRequestRepo struct {
	requests []*entity.ChatRequest
}

func (r *fakeChatRequestRepo) Create(ctx context.Context, request *entity.ChatRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	request.CreatedAt = time.Now()
	r.requests = append(r.requests, request)
	return nil
}

func (r *fakeChatRequestRepo) GetByID(ctx context.Context, id string) (*entity.ChatRequest, error) {
	for _, request := range r.requests {
		if request.ID == id {
			return request, nil
		}
	}
	return nil, errors.NotFound("Chat request", nil)
}

func (r *fakeChatRequestRepo) Update(ctx context.Context, request *entity.ChatRequest) error {
	for i, existing := range r.requests {
		if existing.ID == request.ID {
			r.requests[i] = request
			return nil
		}
	}
	return errors.NotFound("Chat request", nil)
}

func (r *fakeChatRequestRepo) ListPendingByTarget(ctx context.Context, targetID string) ([]*entity.ChatRequest, error) {
	var pending []*entity.ChatRequest
	for i := len(r.requests) - 1; i >= 0; i-- {
		request := r.requests[i]
		if request.TargetID == targetID && request.Status == entity.RequestPending {
			pending = append(pending, request)
		}
	}
	return pending, nil
}

func (r *fakeChatRequestRepo) FindPendingByPair(ctx context.Context, requesterID, targetID string) (*entity.ChatRequest, error) {
	for _, request := range r.requests {
		if request.RequesterID == requesterID && request.TargetID == targetID && request.Status == entity.RequestPending {
			return request, nil
		}
	}
	return nil, errors.NotFound("Chat request", nil)
}

type fakeConversationRepo struct {
	conversations []*entity.Conversation
	createErr     error
}

func (r *fakeConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	if conversation.ID == "" {
		conversation.ID = uuid.New().String()
	}
	conversation.CreatedAt = time.Now()
	r.conversations = append(r.conversations, conversation)
	return nil
}

func (r *fakeConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	for _, conversation := range r.conversations {
		if conversation.ID == id {
			return conversation, nil
		}
	}
	return nil, errors.NotFound("Conversation", nil)
}

func (r *fakeConversationRepo) Update(ctx context.Context, conversation *entity.Conversation) error {
	for i, existing := range r.conversations {
		if existing.ID == conversation.ID {
			r.conversations[i] = conversation
			return nil
		}
	}
	return errors.NotFound("Conversation", nil)
}

func (r *fakeConversationRepo) GetByChatRequestID(ctx context.Context, chatRequestID string) (*entity.Conversation, error) {
	for _, conversation := range r.conversations {
		if conversation.ChatRequestID == chatRequestID {
			return conversation, nil
		}
	}
	return nil, errors.NotFound("Conversation", nil)
}

func (r *fakeConversationRepo) ListApprovedByParticipant(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	var conversations []*entity.Conversation
	for _, conversation := range r.conversations {
		if conversation.Approved && conversation.HasParticipant(userID) {
			conversations = append(conversations, conversation)
		}
	}
	return conversations, nil
}

func (r *fakeConversationRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Conversation, error) {
	conversations := make([]*entity.Conversation, 0, len(r.conversations))
	for i := len(r.conversations) - 1; i >= 0 && len(conversations) < limit; i-- {
		conversations = append(conversations, r.conversations[i])
	}
	return conversations, nil
}

type fakeMessageRepo struct {
	messages []*entity.Message
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	for _, message := range r.messages {
		if message.ID == id {
			return message, nil
		}
	}
	return nil, errors.NotFound("Message", nil)
}

func (r *fakeMessageRepo) ListByConversation(ctx context.Context, conversationID string, limit int) ([]*entity.Message, error) {
	var all []*entity.Message
	for _, message := range r.messages {
		if message.ConversationID == conversationID {
			all = append(all, message)
		}
	}
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (r *fakeMessageRepo) MarkRead(ctx context.Context, messageID string) error {
	for _, message := range r.messages {
		if message.ID == messageID {
			message.IsRead = true
			return nil
		}
	}
	return errors.NotFound("Message", nil)
}

type fakeNotificationRepo struct {
	notifications []*entity.Notification
	createErr     error
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	for _, notification := range r.notifications {
		if notification.ID == id {
			return notification, nil
		}
	}
	return nil, errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]*entity.Notification, error) {
	var mine []*entity.Notification
	for i := len(r.notifications) - 1; i >= 0 && len(mine) < limit; i-- {
		if r.notifications[i].RecipientID == recipientID {
			mine = append(mine, r.notifications[i])
		}
	}
	return mine, nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID && !notification.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	for _, notification := range r.notifications {
		if notification.ID == id {
			notification.IsRead = true
			return nil
		}
	}
	return errors.NotFound("Notification", nil)
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID string) error {
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID {
			notification.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) MarkRelatedRead(ctx context.Context, recipientID, relatedID string) error {
	for _, notification := range r.notifications {
		if notification.RecipientID == recipientID && notification.RelatedID == relatedID {
			notification.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) byType(notificationType entity.NotificationType) []*entity.Notification {
	var matched []*entity.Notification
	for _, notification := range r.notifications {
		if notification.Type == notificationType {
			matched = append(matched, notification)
		}
	}
	return matched
}

type push struct {
	UserID  string
	Event   string
	Payload interface{}
}

type fakePusher struct {
	online map[string]bool
	pushes []push
}

func newFakePusher(onlineUsers ...string) *fakePusher {
	pusher := &fakePusher{online: make(map[string]bool)}
	for _, id := range onlineUsers {
		pusher.online[id] = true
	}
	return pusher
}

func (p *fakePusher) PushToUser(userID string, event string, payload interface{}) {
	p.pushes = append(p.pushes, push{UserID: userID, Event: event, Payload: payload})
}

func (p *fakePusher) IsOnline(userID string) bool {
	return p.online[userID]
}

type fakeJobRepo struct {
	jobs []*entity.Job
}

func (r *fakeJobRepo) Create(ctx context.Context, job *entity.Job) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	job.CreatedAt = time.Now()
	r.jobs = append(r.jobs, job)
	return nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	for _, job := range r.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return nil, errors.NotFound("Job", nil)
}

func (r *fakeJobRepo) Update(ctx context.Context, job *entity.Job) error {
	for i, existing := range r.jobs {
		if existing.ID == job.ID {
			r.jobs[i] = job
			return nil
		}
	}
	return errors.NotFound("Job", nil)
}

func (r *fakeJobRepo) List(ctx context.Context, status entity.PostingStatus) ([]*entity.Job, error) {
	var jobs []*entity.Job
	for _, job := range r.jobs {
		if status == "" || job.Status == status {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

type fakeEventRepo struct {
	events []*entity.Event
}

func (r *fakeEventRepo) Create(ctx context.Context, event *entity.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now()
	r.events = append(r.events, event)
	return nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	for _, event := range r.events {
		if event.ID == id {
			return event, nil
		}
	}
	return nil, errors.NotFound("Event", nil)
}

func (r *fakeEventRepo) Update(ctx context.Context, event *entity.Event) error {
	for i, existing := range r.events {
		if existing.ID == event.ID {
			r.events[i] = event
			return nil
		}
	}
	return errors.NotFound("Event", nil)
}

func (r *fakeEventRepo) List(ctx context.Context, status entity.PostingStatus) ([]*entity.Event, error) {
	var events []*entity.Event
	for _, event := range r.events {
		if status == "" || event.Status == status {
			events = append(events, event)
		}
	}
	return events, nil
}

func testUser(id, name string, role entity.Role) *entity.User {
	return &entity.User{
		ID:         id,
		Name:       name,
		Email:      id + "@campus.edu",
		Role:       role,
		IsVerified: true,
		IsActive:   true,
	}
}

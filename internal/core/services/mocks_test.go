package services_test

import (
	"context"
	"strconv"
	"time"

	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/SscSPs/ops_tracker/internal/models"
	"github.com/stretchr/testify/mock"
)

// --- Mock persistence collaborator ---
type MockPersistence struct {
	mock.Mock
}

func (m *MockPersistence) InsertUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockPersistence) InsertRecap(ctx context.Context, recap models.Recap) error {
	args := m.Called(ctx, recap)
	return args.Error(0)
}

func (m *MockPersistence) InsertComment(ctx context.Context, recapID string, comment models.Comment) error {
	args := m.Called(ctx, recapID, comment)
	return args.Error(0)
}

func (m *MockPersistence) InsertEvent(ctx context.Context, event models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPersistence) DeleteEvent(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockPersistence) InsertDocument(ctx context.Context, doc models.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockPersistence) InsertTransaction(ctx context.Context, txn models.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockPersistence) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockPersistence) ListRecaps(ctx context.Context) ([]models.Recap, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Recap), args.Error(1)
}

func (m *MockPersistence) ListEvents(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockPersistence) ListDocuments(ctx context.Context) ([]models.Document, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Document), args.Error(1)
}

func (m *MockPersistence) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

// acceptAllWrites makes every write succeed.
func (m *MockPersistence) acceptAllWrites() {
	for _, method := range []string{"InsertUser", "InsertRecap", "InsertEvent", "DeleteEvent", "InsertDocument", "InsertTransaction"} {
		m.On(method, mock.Anything, mock.Anything).Return(nil).Maybe()
	}
	m.On("InsertComment", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

// --- Mock intent classifier ---
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, utterance string, actor domain.User) ([]domain.Intent, error) {
	args := m.Called(ctx, utterance, actor)
	var intents []domain.Intent
	if args.Get(0) != nil {
		intents = args.Get(0).([]domain.Intent)
	}
	return intents, args.Error(1)
}

// steppingClock returns start plus one more minute on every call.
func steppingClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Minute)
	}
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}

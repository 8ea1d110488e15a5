package amqp

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/ops_tracker/internal/models"
	"github.com/SscSPs/ops_tracker/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishChange(ctx context.Context, msg *ChangeMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func TestPublishingWriter_PublishesAfterWrite(t *testing.T) {
	ctx := context.Background()
	pub := new(MockPublisher)
	inner := memory.NewPersistence()
	w := NewPublishingWriter(inner, pub)

	pub.On("PublishChange", ctx, mock.MatchedBy(func(msg *ChangeMessage) bool {
		return msg.Kind == "comment" && msg.ID == "c1" && msg.ParentID == "r1" && msg.Operation == OpInsert
	})).Return(nil).Once()
	pub.On("PublishChange", ctx, mock.MatchedBy(func(msg *ChangeMessage) bool {
		return msg.Kind == "recap"
	})).Return(nil).Once()

	require.NoError(t, w.InsertRecap(ctx, models.Recap{RecapID: "r1"}))
	require.NoError(t, w.InsertComment(ctx, "r1", models.Comment{CommentID: "c1"}))

	pub.AssertExpectations(t)
	recaps, err := w.ListRecaps(ctx)
	require.NoError(t, err)
	require.Len(t, recaps, 1)
	assert.Len(t, recaps[0].Comments, 1)
}

func TestPublishingWriter_PublishFailureIsNotAWriteFailure(t *testing.T) {
	ctx := context.Background()
	pub := new(MockPublisher)
	w := NewPublishingWriter(memory.NewPersistence(), pub)
	pub.On("PublishChange", ctx, mock.Anything).Return(errors.New("broker down"))

	assert.NoError(t, w.InsertEvent(ctx, models.Event{EventID: "e1"}))
	assert.NoError(t, w.DeleteEvent(ctx, "e1"))
	pub.AssertNumberOfCalls(t, "PublishChange", 2)
}

func TestPublishingWriter_FailedWriteIsNotPublished(t *testing.T) {
	ctx := context.Background()
	pub := new(MockPublisher)
	w := NewPublishingWriter(memory.NewPersistence(), pub)

	assert.Error(t, w.DeleteEvent(ctx, "missing"))
	pub.AssertNotCalled(t, "PublishChange", mock.Anything, mock.Anything)
}

func TestChangeMessage_JSON(t *testing.T) {
	msg, err := NewChangeMessage(OpInsert, "transaction", "t1", models.Transaction{TransactionID: "t1", Amount: "10.50"})
	require.NoError(t, err)
	data, err := msg.ToJSON()
	require.NoError(t, err)

	back, err := ChangeMessageFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "t1", back.ID)
	assert.Contains(t, string(back.Record), `"amount":"10.50"`)
}

package memory

import (
	"testing"
	"time"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stamp(author string) domain.Authorship {
	return domain.Authorship{AuthorID: author, CreatedAt: time.Now().UTC()}
}

func TestEntityStore_Users(t *testing.T) {
	s := NewEntityStore()
	require.NoError(t, s.AddUser(domain.User{UserID: "o", Role: domain.RoleOwner}))
	require.NoError(t, s.AddUser(domain.User{UserID: "m1", Role: domain.RoleManager}))

	assert.ErrorIs(t, s.AddUser(domain.User{UserID: "o2", Role: domain.RoleOwner}), apperrors.ErrDuplicate)
	assert.ErrorIs(t, s.AddUser(domain.User{UserID: "m1", Role: domain.RoleManager}), apperrors.ErrDuplicate)

	u, err := s.FindUserByID("m1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, u.Role)

	_, err = s.FindUserByID("ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	users := s.ListUsers()
	require.Len(t, users, 2)
	assert.Equal(t, "o", users[0].UserID)
}

func TestEntityStore_AppendCommentPreservesOrder(t *testing.T) {
	s := NewEntityStore()
	require.NoError(t, s.AppendRecap(domain.Recap{RecapID: "r1", Authorship: stamp("m1")}))
	require.NoError(t, s.AppendRecap(domain.Recap{RecapID: "r2", Authorship: stamp("m1")}))

	for _, id := range []string{"c1", "c2", "c3"} {
		_, err := s.AppendComment("r1", domain.Comment{CommentID: id})
		require.NoError(t, err)
	}

	recaps := s.ListRecaps()
	require.Len(t, recaps, 2)
	ids := make([]string, 0, 3)
	for _, c := range recaps[0].Comments {
		ids = append(ids, c.CommentID)
	}
	assert.Equal(t, []string{"c1", "c2", "c3"}, ids)
	assert.Empty(t, recaps[1].Comments)
}

func TestEntityStore_AppendCommentUnknownRecap(t *testing.T) {
	s := NewEntityStore()
	require.NoError(t, s.AppendRecap(domain.Recap{RecapID: "r1", Authorship: stamp("m1")}))
	_, err := s.AppendComment("r1", domain.Comment{CommentID: "c1"})
	require.NoError(t, err)
	before := s.ListRecaps()

	_, err = s.AppendComment("missing", domain.Comment{CommentID: "c2"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, before, s.ListRecaps())
}

func TestEntityStore_ListReturnsCopies(t *testing.T) {
	s := NewEntityStore()
	require.NoError(t, s.AppendRecap(domain.Recap{RecapID: "r1", MediaURLs: []string{"a"}, Authorship: stamp("m1")}))

	listed := s.ListRecaps()
	listed[0].MediaURLs[0] = "mutated"
	listed[0].Comments = append(listed[0].Comments, domain.Comment{CommentID: "x"})

	fresh := s.ListRecaps()
	assert.Equal(t, "a", fresh[0].MediaURLs[0])
	assert.Empty(t, fresh[0].Comments)
}

func TestEntityStore_RemoveEvent(t *testing.T) {
	s := NewEntityStore()
	require.NoError(t, s.AppendEvent(domain.CalendarEvent{EventID: "e1", Authorship: stamp("o")}))
	require.NoError(t, s.AppendEvent(domain.CalendarEvent{EventID: "e2", Authorship: stamp("o")}))
	assert.ErrorIs(t, s.AppendEvent(domain.CalendarEvent{EventID: "e1"}), apperrors.ErrDuplicate)

	require.NoError(t, s.RemoveEvent("e1"))
	assert.ErrorIs(t, s.RemoveEvent("e1"), apperrors.ErrNotFound)

	events := s.ListEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "e2", events[0].EventID)
}

func TestEntityStore_AppendOnlyCollections(t *testing.T) {
	s := NewEntityStore()
	require.NoError(t, s.AppendDocument(domain.Document{DocumentID: "d1"}))
	require.NoError(t, s.AppendTransaction(domain.Transaction{TransactionID: "t1"}))
	assert.ErrorIs(t, s.AppendDocument(domain.Document{DocumentID: "d1"}), apperrors.ErrDuplicate)
	assert.ErrorIs(t, s.AppendTransaction(domain.Transaction{TransactionID: "t1"}), apperrors.ErrDuplicate)
	assert.Len(t, s.ListDocuments(), 1)
	assert.Len(t, s.ListTransactions(), 1)
}

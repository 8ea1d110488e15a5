package bolt

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	portsrepo "github.com/SscSPs/ops_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/ops_tracker/internal/models"
	"go.etcd.io/bbolt"
)

const (
	usersBucket        = "users"
	recapsBucket       = "recaps"
	eventsBucket       = "events"
	documentsBucket    = "documents"
	transactionsBucket = "transactions"
)

var allBuckets = []string{usersBucket, recapsBucket, eventsBucket, documentsBucket, transactionsBucket}

// Store is the embedded persistence collaborator. Each kind lives in its own
// bucket as JSON keyed by id; comments are embedded in their recap record.
type Store struct {
	db *bbolt.DB
}

var _ portsrepo.PersistenceFacade = (*Store)(nil)

// Open opens or creates the database file at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) InsertUser(_ context.Context, user models.User) error {
	return s.insert(usersBucket, user.UserID, user)
}

func (s *Store) InsertRecap(_ context.Context, recap models.Recap) error {
	return s.insert(recapsBucket, recap.RecapID, recap)
}

func (s *Store) InsertEvent(_ context.Context, event models.Event) error {
	return s.insert(eventsBucket, event.EventID, event)
}

func (s *Store) InsertDocument(_ context.Context, doc models.Document) error {
	return s.insert(documentsBucket, doc.DocumentID, doc)
}

func (s *Store) InsertTransaction(_ context.Context, txn models.Transaction) error {
	return s.insert(transactionsBucket, txn.TransactionID, txn)
}

// InsertComment appends to the comments embedded in the recap record.
func (s *Store) InsertComment(_ context.Context, recapID string, comment models.Comment) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(recapsBucket))
		data := bucket.Get([]byte(recapID))
		if data == nil {
			return fmt.Errorf("%w: recap %s", apperrors.ErrNotFound, recapID)
		}
		var recap models.Recap
		if err := json.Unmarshal(data, &recap); err != nil {
			return fmt.Errorf("unmarshaling recap: %w", err)
		}
		comment.RecapID = recapID
		recap.Comments = append(recap.Comments, comment)
		updated, err := json.Marshal(recap)
		if err != nil {
			return fmt.Errorf("marshaling recap: %w", err)
		}
		return bucket.Put([]byte(recapID), updated)
	})
}

func (s *Store) DeleteEvent(_ context.Context, eventID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(eventsBucket))
		if bucket.Get([]byte(eventID)) == nil {
			return fmt.Errorf("%w: event %s", apperrors.ErrNotFound, eventID)
		}
		return bucket.Delete([]byte(eventID))
	})
}

func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	users, err := list[models.User](s.db, usersBucket)
	if err != nil {
		return nil, err
	}
	sortByCreation(users, func(u models.User) (time.Time, string) { return u.CreatedAt, u.UserID })
	return users, nil
}

func (s *Store) ListRecaps(_ context.Context) ([]models.Recap, error) {
	recaps, err := list[models.Recap](s.db, recapsBucket)
	if err != nil {
		return nil, err
	}
	sortByCreation(recaps, func(r models.Recap) (time.Time, string) { return r.CreatedAt, r.RecapID })
	return recaps, nil
}

func (s *Store) ListEvents(_ context.Context) ([]models.Event, error) {
	events, err := list[models.Event](s.db, eventsBucket)
	if err != nil {
		return nil, err
	}
	sortByCreation(events, func(e models.Event) (time.Time, string) { return e.CreatedAt, e.EventID })
	return events, nil
}

func (s *Store) ListDocuments(_ context.Context) ([]models.Document, error) {
	docs, err := list[models.Document](s.db, documentsBucket)
	if err != nil {
		return nil, err
	}
	sortByCreation(docs, func(d models.Document) (time.Time, string) { return d.CreatedAt, d.DocumentID })
	return docs, nil
}

func (s *Store) ListTransactions(_ context.Context) ([]models.Transaction, error) {
	txns, err := list[models.Transaction](s.db, transactionsBucket)
	if err != nil {
		return nil, err
	}
	sortByCreation(txns, func(t models.Transaction) (time.Time, string) { return t.CreatedAt, t.TransactionID })
	return txns, nil
}

func (s *Store) insert(bucketName, id string, record any) error {
	if id == "" {
		return fmt.Errorf("%w: %s record without id", apperrors.ErrValidation, bucketName)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket.Get([]byte(id)) != nil {
			return fmt.Errorf("%w: %s %s", apperrors.ErrDuplicate, bucketName, id)
		}
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", bucketName, err)
		}
		return bucket.Put([]byte(id), data)
	})
}

func list[T any](db *bbolt.DB, bucketName string) ([]T, error) {
	records := make([]T, 0)
	err := db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).ForEach(func(k, v []byte) error {
			var record T
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("unmarshaling %s %s: %w", bucketName, k, err)
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// sortByCreation orders records the way they were inserted; bbolt iterates by key.
func sortByCreation[T any](records []T, key func(T) (time.Time, string)) {
	slices.SortStableFunc(records, func(a, b T) int {
		at, aid := key(a)
		bt, bid := key(b)
		if c := at.Compare(bt); c != 0 {
			return c
		}
		return cmp.Compare(aid, bid)
	})
}

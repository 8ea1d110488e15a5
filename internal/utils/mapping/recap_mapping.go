package mapping

import (
	"fmt"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/SscSPs/ops_tracker/internal/models"
)

// ToModelRecap converts a domain Recap, comments included, to a model Recap
func ToModelRecap(d domain.Recap) models.Recap {
	m := models.Recap{
		RecapID:     d.RecapID,
		Title:       d.Title,
		Kind:        string(d.Kind),
		Description: d.Description,
		MediaURLs:   append([]string{}, d.MediaURLs...),
		AuditFields: ToModelAuditFields(d.Authorship),
	}
	for _, c := range d.Comments {
		m.Comments = append(m.Comments, ToModelComment(d.RecapID, c))
	}
	return m
}

// ToModelComment converts a domain Comment to a model Comment
func ToModelComment(recapID string, d domain.Comment) models.Comment {
	return models.Comment{
		CommentID: d.CommentID,
		RecapID:   recapID,
		AuthorID:  d.AuthorID,
		Content:   d.Content,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// ToDomainRecap coerces a model Recap into a domain Recap. An unknown kind or a
// comment without id rejects the whole record.
func ToDomainRecap(m models.Recap) (domain.Recap, error) {
	if err := requireID("recap", m.RecapID); err != nil {
		return domain.Recap{}, err
	}
	kind := domain.RecapKind(m.Kind)
	if !kind.IsValid() {
		return domain.Recap{}, fmt.Errorf("%w: recap %s has unknown kind %q", apperrors.ErrValidation, m.RecapID, m.Kind)
	}
	d := domain.Recap{
		RecapID:     m.RecapID,
		Title:       m.Title,
		Kind:        kind,
		Description: m.Description,
		MediaURLs:   append([]string{}, m.MediaURLs...),
		Comments:    make([]domain.Comment, 0, len(m.Comments)),
		Authorship:  ToDomainAuthorship(m.AuditFields),
	}
	for _, c := range m.Comments {
		if err := requireID("comment", c.CommentID); err != nil {
			return domain.Recap{}, err
		}
		d.Comments = append(d.Comments, domain.Comment{
			CommentID: c.CommentID,
			AuthorID:  c.AuthorID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt.UTC(),
		})
	}
	return d, nil
}

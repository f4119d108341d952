package notes

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/ldsnotes/internal/annotations"
	"github.com/MrSnakeDoc/ldsnotes/internal/domain"
	"github.com/MrSnakeDoc/ldsnotes/internal/logger"
)

// ErrNotFound is returned by Get when the index is past the last annotation.
var ErrNotFound = errors.New("annotation not found")

// Service fetches annotation pages and assembles them.
type Service struct {
	client    *Client
	assembler *annotations.Assembler
	log       logger.Logger
}

func NewService(c *Client, a *annotations.Assembler, log logger.Logger) *Service {
	return &Service{client: c, assembler: a, log: log}
}

// WithToken returns a Service whose notes calls use token.
func (s *Service) WithToken(token string) *Service {
	cp := *s
	cp.client = s.client.WithToken(token)
	return &cp
}

// Client exposes the underlying notes client for tags and folders.
func (s *Service) Client() *Client { return s.client }

// Search returns the annotations matching q, in API order.
func (s *Service) Search(ctx context.Context, q Query) ([]domain.Annotation, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if q.Folder != "" && q.FolderID == "" {
		id, err := s.client.FolderID(ctx, q.Folder)
		if err != nil {
			return nil, err
		}
		q.FolderID = id
	}

	records, err := s.client.Annotations(ctx, q)
	if err != nil {
		return nil, err
	}

	anns, err := s.assembler.Assemble(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("assemble %d annotations: %w", len(records), err)
	}

	s.log.Debug("annotations searched",
		logger.Int("start", q.Start),
		logger.Int("count", len(anns)),
		logger.Strings("types", q.Types))
	return anns, nil
}

// Get returns the annotation at 1-indexed position i.
func (s *Service) Get(ctx context.Context, i int) (domain.Annotation, error) {
	anns, err := s.Search(ctx, Query{Start: i, Count: 1})
	if err != nil {
		return nil, err
	}
	if len(anns) == 0 {
		return nil, fmt.Errorf("%w: index %d", ErrNotFound, i)
	}
	return anns[0], nil
}

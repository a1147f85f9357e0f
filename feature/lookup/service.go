package lookup

import (
	"context"

	"id-reconciler/core/resolve"

	"go.uber.org/zap"
)

// MaxBatch bounds the identifiers accepted by one batch request.
const MaxBatch = 500

// Response is the JSON form of a classification.
type Response struct {
	Identifier  string `json:"identifier"`
	Namespace   string `json:"namespace"`
	CanonicalID string `json:"canonical_id,omitempty"`
	Outcome     string `json:"outcome"`
	Source      string `json:"source"`
	Error       string `json:"error,omitempty"`
}

// Stats describes the shared resolver state.
type Stats struct {
	RunID  string `json:"run_id"`
	Cached int    `json:"cached"`
}

// Service classifies identifiers for the HTTP handler.
type Service struct {
	resolver *resolve.Resolver
	logger   *zap.Logger
}

// NewService creates a new lookup service.
func NewService(resolver *resolve.Resolver, logger *zap.Logger) *Service {
	return &Service{resolver: resolver, logger: logger}
}

// Classify classifies one identifier.
func (s *Service) Classify(ctx context.Context, identifier string) (Response, error) {
	cls, err := s.resolver.Classify(ctx, identifier)
	if err != nil {
		return Response{}, err
	}
	return toResponse(identifier, cls), nil
}

// ClassifyBatch classifies identifiers in order and stops at the first
// cancellation.
func (s *Service) ClassifyBatch(ctx context.Context, identifiers []string) ([]Response, error) {
	out := make([]Response, 0, len(identifiers))
	for _, id := range identifiers {
		resp, err := s.Classify(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Stats returns the run ID and the number of cached classifications.
func (s *Service) Stats() Stats {
	run := s.resolver.Run()
	return Stats{RunID: run.ID.String(), Cached: run.Cache.Len()}
}

func toResponse(requested string, cls resolve.Classification) Response {
	resp := Response{
		Identifier:  cls.Identifier,
		Namespace:   string(cls.Namespace),
		CanonicalID: cls.CanonicalID,
		Outcome:     string(cls.Outcome),
		Source:      string(cls.Source),
	}
	if resp.Identifier == "" {
		resp.Identifier = requested
	}
	if cls.Err != nil {
		resp.Error = cls.Err.Error()
	}
	return resp
}

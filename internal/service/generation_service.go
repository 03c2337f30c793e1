package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"quickthumb/internal/cache"
	"quickthumb/internal/errors"
	"quickthumb/internal/metrics"
	"quickthumb/internal/model"
	"quickthumb/internal/provider"
	"quickthumb/internal/repository"
	"quickthumb/internal/storage"
)

// ThumbnailHistoryLimit caps how many records a listing returns.
const ThumbnailHistoryLimit = 100

// GenerateInput carries the caller's free-text fields and optional
// base64-encoded reference images (data-URI prefixes allowed).
type GenerateInput struct {
	Description    string
	ThumbnailText  string
	Style          string
	AspectRatio    string
	SubjectImage   string
	ReferenceImage string
}

// GenerateResult is the artifact plus the post-deduction balance.
type GenerateResult struct {
	Image   string `json:"image"`
	Credits int    `json:"credits"`
}

// GenerationService sequences the external image generation call with
// credit deduction and record persistence. The three mutations after a
// successful provider call are independent operations; no transaction
// spans them.
type GenerationService interface {
	Generate(ctx context.Context, user *model.User, input GenerateInput) (*GenerateResult, error)
	ListThumbnails(ctx context.Context, userID string) ([]model.Thumbnail, error)
}

type generationService struct {
	userRepo      repository.UserRepository
	thumbnailRepo repository.ThumbnailRepository
	generator     provider.ImageGenerator
	artifacts     storage.ArtifactStore
	cache         *cache.Client
}

// NewGenerationService creates a new generation service.
func NewGenerationService(
	userRepo repository.UserRepository,
	thumbnailRepo repository.ThumbnailRepository,
	generator provider.ImageGenerator,
	artifacts storage.ArtifactStore,
	cache *cache.Client,
) GenerationService {
	return &generationService{
		userRepo:      userRepo,
		thumbnailRepo: thumbnailRepo,
		generator:     generator,
		artifacts:     artifacts,
		cache:         cache,
	}
}

func (s *generationService) Generate(ctx context.Context, user *model.User, input GenerateInput) (*GenerateResult, error) {
	// Precondition check before the provider call: a zero-balance request
	// must not mutate anything.
	if user.Credits <= 0 {
		metrics.GenerationsTotal.WithLabelValues("rejected").Inc()
		return nil, errors.ErrInsufficientCredits
	}

	prompt := buildPrompt(input)
	refs := collectRefImages(input)

	image, err := s.generator.Generate(ctx, prompt, refs)
	if err != nil {
		metrics.GenerationsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	if err := s.userRepo.SpendCredit(ctx, user.UserID); err != nil {
		metrics.GenerationsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("spend credit: %w", err)
	}
	_ = s.cache.Delete(ctx, UserCacheKey(user.UserID))

	artifact, err := s.artifacts.Save(ctx, image)
	if err != nil {
		// Credit is already spent at this point; surfaced as-is, the
		// operations are intentionally untransacted.
		metrics.GenerationsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("persist artifact: %w", err)
	}

	thumbnail := &model.Thumbnail{
		ID:            uuid.NewString(),
		UserID:        user.UserID,
		Description:   input.Description,
		ThumbnailText: input.ThumbnailText,
		Style:         input.Style,
		AspectRatio:   input.AspectRatio,
	}
	if !strings.HasPrefix(artifact, "data:") {
		thumbnail.ImageURL = artifact
	}
	if err := s.thumbnailRepo.Create(ctx, thumbnail); err != nil {
		metrics.GenerationsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("insert thumbnail record: %w", err)
	}

	metrics.GenerationsTotal.WithLabelValues("success").Inc()
	metrics.CreditsSpent.Inc()

	return &GenerateResult{
		Image:   artifact,
		Credits: user.Credits - 1,
	}, nil
}

func (s *generationService) ListThumbnails(ctx context.Context, userID string) ([]model.Thumbnail, error) {
	return s.thumbnailRepo.ListRecentByUser(ctx, userID, ThumbnailHistoryLimit)
}

// buildPrompt composes the provider prompt from the caller's fields.
func buildPrompt(input GenerateInput) string {
	var b strings.Builder
	b.WriteString("Create a YouTube thumbnail.")
	if input.Description != "" {
		fmt.Fprintf(&b, " Concept: %s.", input.Description)
	}
	if input.ThumbnailText != "" {
		fmt.Fprintf(&b, " Render the text: '%s'.", input.ThumbnailText)
	}
	if input.Style != "" {
		fmt.Fprintf(&b, " Style: %s.", input.Style)
	}
	if input.AspectRatio != "" {
		fmt.Fprintf(&b, " Aspect ratio: %s.", input.AspectRatio)
	}
	b.WriteString(" Make it eye-catching, high contrast, professional.")
	return b.String()
}

func collectRefImages(input GenerateInput) []string {
	var refs []string
	for _, img := range []string{input.SubjectImage, input.ReferenceImage} {
		if img == "" {
			continue
		}
		refs = append(refs, stripDataURI(img))
	}
	return refs
}

// stripDataURI removes a data:<mime>;base64, prefix so only raw base64 is
// forwarded to the provider.
func stripDataURI(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if idx := strings.Index(s, ";base64,"); idx >= 0 {
		return s[idx+len(";base64,"):]
	}
	return s
}

package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"synastry-service/aspect"
	"synastry-service/chart"
	"synastry-service/models"
	"synastry-service/synastry"
	"synastry-service/validation"
)

// ProfileInput is what a person submits to register.
type ProfileInput struct {
	Username        string `json:"username" validate:"required,min=3,max=40"`
	BirthDate       string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	BirthTime       string `json:"timeOfBirth" validate:"required,datetime=15:04"`
	Place           string `json:"placeOfBirth" validate:"required,max=200"`
	TimeZone        string `json:"timeZone,omitempty" validate:"omitempty,timezone"`
	Gender          string `json:"gender" validate:"required,oneof=man woman"`
	LookingForMen   bool   `json:"lookingForMen" validate:"required_without=LookingForWomen"`
	LookingForWomen bool   `json:"lookingForWomen"`
	Bio             string `json:"bio,omitempty" validate:"max=1000"`
}

// CreateProfile geocodes the birth place, computes the natal chart with the
// service defaults and stores the profile.
func (s *Service) CreateProfile(ctx context.Context, in ProfileInput) (models.Profile, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Place = strings.TrimSpace(in.Place)
	if err := validation.Struct(in); err != nil {
		return models.Profile{}, err
	}

	loc, err := s.locate(ctx, in.Place)
	if err != nil {
		return models.Profile{}, err
	}
	c, err := s.computeChart(chart.Request{
		Date:      in.BirthDate,
		Time:      in.BirthTime,
		TimeZone:  in.TimeZone,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	})
	if err != nil {
		return models.Profile{}, err
	}

	p := models.Profile{
		ID:              s.newID(),
		Username:        in.Username,
		BirthDate:       in.BirthDate,
		BirthTime:       in.BirthTime,
		Place:           in.Place,
		TimeZone:        in.TimeZone,
		Gender:          in.Gender,
		LookingForMen:   in.LookingForMen,
		LookingForWomen: in.LookingForWomen,
		Bio:             in.Bio,
		Location:        loc,
		Chart:           c,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.store.Create(ctx, p); err != nil {
		return models.Profile{}, fmt.Errorf("failed to store profile: %w", err)
	}

	s.metrics.ProfileCreated()
	s.logger.Info("profile created",
		zap.String("id", p.ID),
		zap.String("username", p.Username),
		zap.String("location", loc.DisplayName),
		zap.String("provider", loc.Provider))
	return p, nil
}

// Profile returns one profile.
func (s *Service) Profile(ctx context.Context, id string) (models.Profile, error) {
	return s.store.Get(ctx, id)
}

// Profiles returns all profiles.
func (s *Service) Profiles(ctx context.Context) ([]models.Profile, error) {
	return s.store.List(ctx)
}

// DeleteProfile removes one profile.
func (s *Service) DeleteProfile(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("profile deleted", zap.String("id", id))
	return nil
}

// NatalReport renders a stored profile's chart as text.
func (s *Service) NatalReport(ctx context.Context, id string) (string, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	subject := chart.Subject{Name: p.Username, BirthDate: p.BirthDate, BirthTime: p.BirthTime, Place: p.Place}
	return chart.NatalReport(subject, p.Chart, aspect.Natal(p.Chart)), nil
}

// ProfileSynastry compares two stored profiles.
func (s *Service) ProfileSynastry(ctx context.Context, id, otherID string) (models.SynastryResult, error) {
	r, _, _, err := s.profileSynastry(ctx, id, otherID)
	return r, err
}

// SynastryReport renders ProfileSynastry as text.
func (s *Service) SynastryReport(ctx context.Context, id, otherID string) (string, error) {
	r, a, b, err := s.profileSynastry(ctx, id, otherID)
	if err != nil {
		return "", err
	}
	return synastry.Report(a.Username, b.Username, r), nil
}

func (s *Service) profileSynastry(ctx context.Context, id, otherID string) (models.SynastryResult, models.Profile, models.Profile, error) {
	a, err := s.store.Get(ctx, id)
	if err != nil {
		return models.SynastryResult{}, models.Profile{}, models.Profile{}, err
	}
	b, err := s.store.Get(ctx, otherID)
	if err != nil {
		return models.SynastryResult{}, models.Profile{}, models.Profile{}, err
	}
	s.metrics.SynastryDone(1)
	return synastry.Compute(a.Chart, b.Chart), a, b, nil
}

// Matches ranks every other profile by compatibility with id. maxAge 0
// means no upper bound.
func (s *Service) Matches(ctx context.Context, id string, minAge, maxAge int) ([]models.Match, error) {
	if minAge < 0 || maxAge < 0 {
		return nil, invalid("ages must not be negative")
	}
	if maxAge > 0 && maxAge < minAge {
		return nil, invalid("maxAge %d is below minAge %d", maxAge, minAge)
	}
	seeker, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	candidates, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := synastry.Rank(ctx, seeker, candidates, synastry.MatchOptions{
		MinAge:      minAge,
		MaxAge:      maxAge,
		Now:         s.now(),
		Concurrency: s.concurrency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rank matches: %w", err)
	}
	s.metrics.SynastryDone(len(matches))
	return matches, nil
}

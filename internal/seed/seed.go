// Package seed loads the bundled demo mentors and stories into the stores.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	applog "github.com/careercanvas/career-canvas-api/internal/platform/logging"
	"github.com/careercanvas/career-canvas-api/internal/service/mentor"
	"github.com/careercanvas/career-canvas-api/internal/service/story"
)

//go:embed data.yaml
var data []byte

type mentorRecord struct {
	ID                string   `yaml:"id"`
	Email             string   `yaml:"email"`
	Name              string   `yaml:"name"`
	Title             string   `yaml:"title"`
	Department        string   `yaml:"department"`
	Bio               string   `yaml:"bio"`
	YearsOfExperience int      `yaml:"yearsOfExperience"`
	Skills            []string `yaml:"skills"`
	Interests         []string `yaml:"interests"`
	Availability      string   `yaml:"availability"`
	Rating            float64  `yaml:"rating"`
	MenteeCount       int      `yaml:"menteeCount"`
	History           struct {
		TotalMentees      int      `yaml:"totalMentees"`
		CompletedSessions int      `yaml:"completedSessions"`
		AverageRating     float64  `yaml:"averageRating"`
		Specializations   []string `yaml:"specializations"`
	} `yaml:"history"`
}

type storyRecord struct {
	ID          string   `yaml:"id"`
	AuthorEmail string   `yaml:"authorEmail"`
	AuthorName  string   `yaml:"authorName"`
	Title       string   `yaml:"title"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	Content     string   `yaml:"content"`
}

type file struct {
	Mentors []mentorRecord `yaml:"mentors"`
	Stories []storyRecord  `yaml:"stories"`
}

// Data is the parsed seed set.
type Data struct {
	Mentors []*mentor.Mentor
	Stories []*story.Story
}

// Parse decodes the bundled seed. Timestamps are derived from now, staggered
// so listing order is stable.
func Parse(now time.Time) (*Data, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("seed: decode: %w", err)
	}
	out := &Data{}
	for i, r := range f.Mentors {
		av := mentor.Availability(r.Availability)
		if !av.Valid() {
			return nil, fmt.Errorf("seed: mentor %s: unknown availability %q", r.ID, r.Availability)
		}
		created := now.Add(-time.Duration(len(f.Mentors)-i) * 24 * time.Hour)
		out.Mentors = append(out.Mentors, &mentor.Mentor{
			ID:                r.ID,
			Email:             r.Email,
			Name:              r.Name,
			Title:             r.Title,
			Department:        r.Department,
			Bio:               r.Bio,
			YearsOfExperience: r.YearsOfExperience,
			Skills:            r.Skills,
			Interests:         r.Interests,
			Availability:      av,
			Rating:            r.Rating,
			MenteeCount:       r.MenteeCount,
			History: mentor.History{
				TotalMentees:      r.History.TotalMentees,
				CompletedSessions: r.History.CompletedSessions,
				AverageRating:     r.History.AverageRating,
				Specializations:   r.History.Specializations,
			},
			CreatedAt: created,
			UpdatedAt: created,
		})
	}
	for i, r := range f.Stories {
		created := now.Add(-time.Duration(len(f.Stories)-i) * time.Hour)
		out.Stories = append(out.Stories, &story.Story{
			ID:          r.ID,
			AuthorEmail: r.AuthorEmail,
			AuthorName:  r.AuthorName,
			Title:       r.Title,
			Content:     r.Content,
			Category:    r.Category,
			Tags:        r.Tags,
			CreatedAt:   created,
			UpdatedAt:   created,
		})
	}
	return out, nil
}

// Result counts what Load wrote.
type Result struct {
	Mentors int
	Stories int
}

// Load writes the seed into the stores, skipping records that already exist,
// so it is safe to run repeatedly.
func Load(ctx context.Context, mentors mentor.Store, stories story.Store, now time.Time) (Result, error) {
	d, err := Parse(now)
	if err != nil {
		return Result{}, err
	}
	var res Result
	for _, m := range d.Mentors {
		err := mentors.Create(ctx, m)
		switch {
		case errors.Is(err, mentor.ErrAlreadyExists):
			continue
		case err != nil:
			return res, fmt.Errorf("seed: mentor %s: %w", m.ID, err)
		}
		res.Mentors++
	}
	if stories != nil {
		for _, s := range d.Stories {
			if _, err := stories.Get(ctx, s.ID); err == nil {
				continue
			} else if !errors.Is(err, story.ErrNotFound) {
				return res, fmt.Errorf("seed: story %s: %w", s.ID, err)
			}
			if err := stories.Create(ctx, s); err != nil {
				return res, fmt.Errorf("seed: story %s: %w", s.ID, err)
			}
			res.Stories++
		}
	}
	applog.LogInfo(ctx, "seed loaded", zap.Int("mentors", res.Mentors), zap.Int("stories", res.Stories))
	return res, nil
}

package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careercanvas/career-canvas-api/internal/service/mentor"
	"github.com/careercanvas/career-canvas-api/internal/service/story"
)

var now = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	d, err := Parse(now)
	require.NoError(t, err)
	require.NotEmpty(t, d.Mentors)
	require.NotEmpty(t, d.Stories)

	seen := map[string]bool{}
	for _, m := range d.Mentors {
		assert.NotEmpty(t, m.ID)
		assert.False(t, seen[m.Email], "duplicate email %s", m.Email)
		seen[m.Email] = true
		assert.True(t, m.Availability.Valid())
		assert.LessOrEqual(t, m.Rating, mentor.MaxRating)
		assert.True(t, m.CreatedAt.Before(now))
	}
}

func loaded(t *testing.T) (*mentor.Service, *mentor.MemoryStore, *story.MemoryStore) {
	t.Helper()
	mentors := mentor.NewMemoryStore()
	stories := story.NewMemoryStore()
	res, err := Load(context.Background(), mentors, stories, now)
	require.NoError(t, err)
	d, err := Parse(now)
	require.NoError(t, err)
	assert.Equal(t, Result{Mentors: len(d.Mentors), Stories: len(d.Stories)}, res)
	return mentor.NewService(mentors, nil), mentors, stories
}

func names(res *mentor.ListResult) []string {
	out := make([]string, len(res.Mentors))
	for i, r := range res.Mentors {
		out[i] = r.Mentor.Name
	}
	return out
}

func TestLoadDirectoryQueries(t *testing.T) {
	svc, _, _ := loaded(t)
	ctx := context.Background()

	res, err := svc.List(ctx, mentor.ParseFilter(mentor.RawFilter{Departments: "Engineering", MinRating: "4.5"}), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sarah Johnson"}, names(res))

	res, err = svc.List(ctx, mentor.ParseFilter(mentor.RawFilter{Search: "cloud"}), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"David Park"}, names(res))

	res, err = svc.List(ctx, mentor.DefaultFilterSpec(), "")
	require.NoError(t, err)
	require.NotEmpty(t, res.Mentors)
	assert.Equal(t, "Sarah Johnson", res.Mentors[0].Mentor.Name)
}

func TestLoadIsIdempotent(t *testing.T) {
	_, mentors, stories := loaded(t)

	res, err := Load(context.Background(), mentors, stories, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

func TestLoadWithoutStories(t *testing.T) {
	res, err := Load(context.Background(), mentor.NewMemoryStore(), nil, now)
	require.NoError(t, err)
	assert.Positive(t, res.Mentors)
	assert.Zero(t, res.Stories)
}

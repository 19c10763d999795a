package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	var c Collector
	require.NoError(t, c.Err())

	c.Required("title", "  ")
	c.Required("department", "Engineering")
	c.NonEmptyList("skills", []string{"", " "})
	c.MaxLength("bio", strings.Repeat("é", 11), 10)
	c.Check(false, "availability", "must be one of %s", "available, limited, busy")

	err := c.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	var verr *Error
	require.True(t, errors.As(err, &verr))
	fields := make([]string, len(verr.Issues))
	for i, is := range verr.Issues {
		fields[i] = is.Field
	}
	assert.Equal(t, []string{"title", "skills", "bio", "availability"}, fields)
	assert.Contains(t, err.Error(), "availability: must be one of available, limited, busy")
}

func TestCleanList(t *testing.T) {
	assert.Equal(t, []string{"Go", "Kubernetes"}, CleanList([]string{" Go ", "", "go", "Kubernetes"}))
	assert.Empty(t, CleanList(nil))
}

package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrimsAndValidates(t *testing.T) {
	r, err := New("  Pad Thai  ", " noodles ", []string{"rice noodles"}, []string{"Cook"}, "https://img.example/x.jpg")
	require.NoError(t, err)
	assert.Equal(t, "Pad Thai", r.Name)
	assert.Equal(t, "noodles", r.Description)
	assert.Nil(t, r.Rating)
	assert.False(t, r.CreatedAt.IsZero())
}

func TestNewRejectsMissingNameOrSteps(t *testing.T) {
	_, err := New("   ", "d", []string{"egg"}, []string{"Cook"}, "")
	assert.ErrorIs(t, err, ErrMissingName)

	_, err = New("Toast", "d", []string{"bread"}, nil, "")
	assert.ErrorIs(t, err, ErrNoSteps)
}

func TestApplyOnlyTouchesSetFields(t *testing.T) {
	r, err := New("Toast", "bread, toasted", []string{"bread"}, []string{"Toast it"}, "https://img.example/t.jpg")
	require.NoError(t, err)

	rating := 3
	r.Apply(Update{Rating: &rating})

	require.NotNil(t, r.Rating)
	assert.Equal(t, 3, *r.Rating)
	assert.Equal(t, "Toast", r.Name)
	assert.Equal(t, []string{"Toast it"}, r.Steps)

	name := "French Toast"
	r.Apply(Update{Name: &name, Steps: []string{"Dip", "Fry"}})
	assert.Equal(t, "French Toast", r.Name)
	assert.Equal(t, []string{"Dip", "Fry"}, r.Steps)
	assert.Equal(t, 3, *r.Rating)
}

func TestDetailPath(t *testing.T) {
	r := &Recipe{ID: "abc123"}
	assert.Equal(t, "/app/recipe/abc123", r.DetailPath())
}

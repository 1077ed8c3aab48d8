package match

import (
	"testing"

	"github.com/flatmatch/flatmatch-backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func userWith(location string, tags ...string) *domain.User {
	u := &domain.User{Preferences: tags}
	if location != "" {
		u.Location = strPtr(location)
	}
	return u
}

func TestScoreLifestyle(t *testing.T) {
	tests := []struct {
		name       string
		aTags      []string
		bTags      []string
		want       int
		wantCommon []string
	}{
		{
			name:       "identical sets score 100",
			aTags:      []string{"Vegan", "Quiet", "Night owl"},
			bTags:      []string{"Vegan", "Quiet", "Night owl"},
			want:       100,
			wantCommon: []string{"Vegan", "Quiet", "Night owl"},
		},
		{
			name:       "no tags on either side is a neutral 50",
			aTags:      nil,
			bTags:      nil,
			want:       50,
			wantCommon: []string{},
		},
		{
			name:       "disjoint sets score 0",
			aTags:      []string{"Vegan"},
			bTags:      []string{"Smoker"},
			want:       0,
			wantCommon: []string{},
		},
		{
			name:       "two of four distinct tags shared",
			aTags:      []string{"Early bird", "Vegan", "Gym"},
			bTags:      []string{"Early bird", "Vegan", "Quiet"},
			want:       50,
			wantCommon: []string{"Early bird", "Vegan"},
		},
		{
			name:       "one of three",
			aTags:      []string{"Vegan", "Gym"},
			bTags:      []string{"Vegan", "Quiet"},
			want:       33,
			wantCommon: []string{"Vegan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(userWith("", tt.aTags...), userWith("", tt.bTags...))
			assert.Equal(t, tt.want, got.Lifestyle)
			assert.Equal(t, tt.wantCommon, got.CommonTags)
		})
	}
}

func TestScoreLocation(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "Brooklyn, NY", "Brooklyn, NY", 100},
		{"case insensitive exact", "brooklyn, ny", "Brooklyn, NY", 100},
		{"one contains the other", "Brooklyn", "Williamsburg, Brooklyn", 75},
		{"shared segment", "Brooklyn, NY", "Williamsburg, Brooklyn", 75},
		{"unrelated", "Boston", "Chicago", 50},
		{"missing on one side", "", "Chicago", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(userWith(tt.a), userWith(tt.b))
			assert.Equal(t, tt.want, got.Location)
		})
	}
}

func TestScoreSchedule(t *testing.T) {
	tests := []struct {
		name  string
		aTags []string
		bTags []string
		want  int
	}{
		{"both early birds", []string{"Early bird"}, []string{"Early bird", "Vegan"}, 100},
		{"both night owls", []string{"Night owl"}, []string{"Night owl"}, 100},
		{"opposite schedules", []string{"Early bird"}, []string{"Night owl"}, 30},
		{"one side undeclared", []string{"Early bird"}, []string{"Vegan"}, 70},
		{"neither declared", []string{"Vegan"}, []string{"Gym"}, 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(userWith("", tt.aTags...), userWith("", tt.bTags...))
			assert.Equal(t, tt.want, got.Schedule)
		})
	}
}

func TestScoreOverallWeighting(t *testing.T) {
	// Two of four distinct tags shared, identical locations, both early
	// birds: 0.5*50 + 0.3*100 + 0.2*100 = 75.
	a := userWith("Austin, TX", "Early bird", "Vegan", "Gym")
	b := userWith("Austin, TX", "Early bird", "Vegan", "Quiet")

	got := Score(a, b)
	assert.Equal(t, 50, got.Lifestyle)
	assert.Equal(t, 100, got.Location)
	assert.Equal(t, 100, got.Schedule)
	assert.Equal(t, 75, got.Overall)
}

func TestScoreSymmetricOverall(t *testing.T) {
	pairs := [][2]*domain.User{
		{userWith("Brooklyn, NY", "Early bird", "Vegan"), userWith("Williamsburg, Brooklyn", "Night owl", "Vegan", "Gym")},
		{userWith("Boston"), userWith("Chicago", "Quiet")},
		{userWith("", "Vegan"), userWith("", "Vegan")},
	}
	for _, pair := range pairs {
		ab := Score(pair[0], pair[1])
		ba := Score(pair[1], pair[0])
		assert.Equal(t, ab.Overall, ba.Overall)
		assert.Equal(t, ab.Lifestyle, ba.Lifestyle)
		assert.Equal(t, ab.Location, ba.Location)
		assert.Equal(t, ab.Schedule, ba.Schedule)
	}
}

func TestScoreIgnoresDuplicateTags(t *testing.T) {
	a := userWith("", "Vegan", "Vegan", "Gym")
	b := userWith("", "Vegan", "Gym")
	got := Score(a, b)
	assert.Equal(t, 100, got.Lifestyle)
	assert.Equal(t, []string{"Vegan", "Gym"}, got.CommonTags)
}

func TestScoreCommonTagsKeepFirstArgumentOrder(t *testing.T) {
	a := userWith("", "Gym", "Vegan", "Quiet")
	b := userWith("", "Quiet", "Gym")
	got := Score(a, b)
	assert.Equal(t, []string{"Gym", "Quiet"}, got.CommonTags)
}

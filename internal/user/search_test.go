package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestBuildSearchBlankShortCircuits(t *testing.T) {
	for _, in := range [][2]string{{"", ""}, {"   ", "\t"}} {
		criteria, ok := BuildSearch(in[0], in[1])
		assert.False(t, ok)
		assert.Empty(t, criteria.Conditions)
	}
}

func TestBuildSearchConditions(t *testing.T) {
	criteria, ok := BuildSearch(" ana ", "")
	require.True(t, ok)
	assert.Equal(t, []Condition{
		{Field: FieldName, Text: "ana"},
		{Field: FieldSkills, Text: "ana"},
	}, criteria.Conditions)

	criteria, ok = BuildSearch("", "delhi")
	require.True(t, ok)
	assert.Equal(t, []Condition{{Field: FieldCity, Text: "delhi"}}, criteria.Conditions)

	criteria, ok = BuildSearch("go", "pune")
	require.True(t, ok)
	assert.Len(t, criteria.Conditions, 3)
}

func TestMatcherIsDisjunctive(t *testing.T) {
	anan := &User{Name: "Anan", City: "Pune"}
	banana := &User{Name: "Raj", Skills: []string{"go", "banana"}, City: "Mumbai"}
	neither := &User{Name: "Zoe", Skills: []string{"rust"}, City: "Goa"}
	delhi := &User{Name: "Priya", City: "New Delhi"}

	match := mustCriteria(t, "ana", "").Matcher()
	assert.True(t, match(anan))
	assert.True(t, match(banana))
	assert.False(t, match(neither))

	match = mustCriteria(t, "", "delhi").Matcher()
	assert.True(t, match(delhi))
	assert.False(t, match(anan))

	// location-only match is enough even when the query misses
	match = mustCriteria(t, "kotlin", "DELHI").Matcher()
	assert.True(t, match(delhi))
	assert.False(t, match(neither))
}

func TestMatcherTreatsInputLiterally(t *testing.T) {
	u := &User{Name: "C++ dev", Skills: []string{"c.net"}}

	assert.True(t, mustCriteria(t, "c++", "").Matcher()(u))
	assert.False(t, mustCriteria(t, "c.+", "").Matcher()(&User{Name: "cobol"}))
	assert.True(t, mustCriteria(t, "C.NET", "").Matcher()(u))
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%ana%`, Condition{Text: "ana"}.LikePattern())
	assert.Equal(t, `%50\%\_off\\%`, Condition{Text: `50%_off\`}.LikePattern())
}

func TestSearchFilter(t *testing.T) {
	filter := SearchFilter(mustCriteria(t, "a.b", "pune"))

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)
	assert.Equal(t, bson.M{"name": bson.Regex{Pattern: `a\.b`, Options: "i"}}, or[0])
	assert.Equal(t, bson.M{"skills": bson.Regex{Pattern: `a\.b`, Options: "i"}}, or[1])
	assert.Equal(t, bson.M{"city": bson.Regex{Pattern: "pune", Options: "i"}}, or[2])
}

func mustCriteria(t *testing.T, query, location string) SearchCriteria {
	t.Helper()
	criteria, ok := BuildSearch(query, location)
	require.True(t, ok)
	return criteria
}

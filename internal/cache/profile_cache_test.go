package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Baaaki/resume-backend/internal/models"
	"github.com/Baaaki/resume-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() *models.Profile {
	end := models.NewDate(testutil.Date(2021, 6, 30))
	exp := models.Experience{
		ID:          7,
		ProfileID:   1,
		CompanyName: "Engines Ltd",
		JobTitle:    "Programmer",
		StartDate:   models.NewDate(testutil.Date(2020, 1, 1)),
		EndDate:     &end,
	}
	exp.SetTechnologies([]string{"Go", "SQL"})

	return &models.Profile{
		ID:          1,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		Title:       "Engineer",
		Active:      true,
		Experiences: []models.Experience{exp},
		Skills:      []models.Skill{{ID: 3, ProfileID: 1, Name: "Go", Category: models.CategoryProgrammingLanguage}},
	}
}

// fill caches sampleProfile the way a reader does after a miss.
func fill(t *testing.T, c *ProfileCache) {
	t.Helper()
	ctx := context.Background()
	_, generation, ok := c.Get(ctx, 1)
	require.False(t, ok)
	c.Set(ctx, sampleProfile(), generation)
}

func TestProfileCache_RoundTrip(t *testing.T) {
	// Arrange
	rdb := testutil.SetupTestRedis(t)
	defer rdb.Teardown(t)
	c := NewProfileCache(rdb.Client, time.Minute)
	ctx := context.Background()

	// Act
	fill(t, c)
	got, _, ok := c.Get(ctx, 1)

	// Assert
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", got.Email)
	require.Len(t, got.Experiences, 1)
	assert.Equal(t, []string{"Go", "SQL"}, got.Experiences[0].TechnologyList())
	assert.Equal(t, testutil.Date(2021, 6, 30), models.TimeOf(*got.Experiences[0].EndDate))
	assert.Len(t, got.Skills, 1)
	assert.True(t, rdb.Server.Exists("profile:full:1"))
}

func TestProfileCache_InvalidateAndExpiry(t *testing.T) {
	rdb := testutil.SetupTestRedis(t)
	defer rdb.Teardown(t)
	c := NewProfileCache(rdb.Client, time.Minute)
	ctx := context.Background()

	fill(t, c)
	c.Invalidate(ctx, 1)
	_, _, ok := c.Get(ctx, 1)
	assert.False(t, ok, "invalidated entry must miss")

	fill(t, c)
	rdb.Server.FastForward(2 * time.Minute)
	_, _, ok = c.Get(ctx, 1)
	assert.False(t, ok, "expired entry must miss")
}

func TestProfileCache_SetAfterInvalidateIsDiscarded(t *testing.T) {
	// Arrange
	rdb := testutil.SetupTestRedis(t)
	defer rdb.Teardown(t)
	c := NewProfileCache(rdb.Client, time.Minute)
	ctx := context.Background()

	_, readerGeneration, ok := c.Get(ctx, 1)
	require.False(t, ok)

	// Act: a write commits and invalidates while the reader is still loading
	c.Invalidate(ctx, 1)
	c.Set(ctx, sampleProfile(), readerGeneration)

	// Assert
	_, generation, ok := c.Get(ctx, 1)
	assert.False(t, ok, "a load that started before the invalidation must not be cached")
	assert.Equal(t, readerGeneration+1, generation)
	assert.False(t, rdb.Server.Exists("profile:full:1"))

	c.Set(ctx, sampleProfile(), generation)
	_, _, ok = c.Get(ctx, 1)
	assert.True(t, ok, "a load that started after the invalidation is cached")
}

func TestProfileCache_GenerationPerProfile(t *testing.T) {
	rdb := testutil.SetupTestRedis(t)
	defer rdb.Teardown(t)
	c := NewProfileCache(rdb.Client, time.Minute)
	ctx := context.Background()

	_, generation, _ := c.Get(ctx, 1)
	c.Invalidate(ctx, 2)
	c.Set(ctx, sampleProfile(), generation)

	_, _, ok := c.Get(ctx, 1)
	assert.True(t, ok, "invalidating another profile leaves this one cacheable")
	assert.True(t, rdb.Server.TTL("profile:gen:2") > 0)
}

func TestProfileCache_CorruptEntryIsDropped(t *testing.T) {
	rdb := testutil.SetupTestRedis(t)
	defer rdb.Teardown(t)
	c := NewProfileCache(rdb.Client, time.Minute)
	require.NoError(t, rdb.Server.Set("profile:full:1", "{not json"))

	_, generation, ok := c.Get(context.Background(), 1)

	assert.False(t, ok)
	assert.Equal(t, NoGeneration, generation)
	assert.False(t, rdb.Server.Exists("profile:full:1"))
}

func TestProfileCache_Unavailable(t *testing.T) {
	ctx := context.Background()

	t.Run("nil client", func(t *testing.T) {
		c := NewProfileCache(nil, time.Minute)
		c.Set(ctx, sampleProfile(), 0)
		c.Invalidate(ctx, 1)
		_, generation, ok := c.Get(ctx, 1)
		assert.False(t, ok)
		assert.Equal(t, NoGeneration, generation)
	})

	t.Run("nil cache", func(t *testing.T) {
		var c *ProfileCache
		_, _, ok := c.Get(ctx, 1)
		assert.False(t, ok)
	})

	t.Run("server down", func(t *testing.T) {
		rdb := testutil.SetupTestRedis(t)
		c := NewProfileCache(rdb.Client, time.Minute)
		rdb.Server.Close()

		c.Set(ctx, sampleProfile(), 0)
		_, generation, ok := c.Get(ctx, 1)

		assert.False(t, ok)
		assert.Equal(t, NoGeneration, generation)
		_ = rdb.Client.Close()
	})
}

func TestConnect(t *testing.T) {
	rdb := testutil.SetupTestRedis(t)
	defer rdb.Teardown(t)

	client, err := Connect(context.Background(), "redis://"+rdb.Server.Addr())
	require.NoError(t, err)
	defer client.Close()

	_, err = Connect(context.Background(), "not a url")
	assert.Error(t, err)
}

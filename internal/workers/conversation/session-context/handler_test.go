package sessioncontext

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "krishi-assistant/internal/common/errors"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

var baseTime = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func createTestHandler(t *testing.T, store Store) (*Handler, *clock) {
	c := &clock{t: baseTime}
	h := NewHandler(LoadConfig(), store, logger.NewTestLogger(t)).WithClock(c.now)
	return h, c
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

var lucknow = &models.Location{Name: "Lucknow", State: "Uttar Pradesh", Lat: 26.8467, Lon: 80.9462}

func utteranceLocation(name string) models.Entity {
	return models.Entity{
		Type: models.EntityLocation, Value: name, Confidence: 1, Origin: models.OriginUtterance,
		Location: &models.Location{Name: name},
	}
}

func utteranceCommodity(name string) models.Entity {
	return models.Entity{Type: models.EntityCommodity, Value: name, Confidence: 1, Origin: models.OriginUtterance}
}

// ==========================
// Store Tests
// ==========================

func TestRedisStore_RoundTrip(t *testing.T) {
	mr, client := setupRedis(t)
	store := NewRedisStore(client, "", 30*time.Minute)
	ctx := context.Background()

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)

	sc := models.NewSessionContext("s1", baseTime)
	sc.LastLocation = lucknow
	sc.LastCommodity = "potato"
	require.NoError(t, store.Put(ctx, sc))
	assert.True(t, mr.Exists(DefaultKeyPrefix+"s1"))

	got, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Lucknow", got.LastLocation.Name)
	assert.Equal(t, "potato", got.LastCommodity)

	mr.FastForward(31 * time.Minute)
	got, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_Errors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, "p:", time.Minute)

	mock.ExpectGet("p:s1").SetErr(errors.New("connection refused"))
	_, err := store.Get(context.Background(), "s1")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionStoreFailed))

	mock.ExpectGet("p:s2").SetVal("{not json")
	_, err = store.Get(context.Background(), "s2")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionStoreFailed))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sc := models.NewSessionContext("s1", baseTime)
	sc.LastLocation = &models.Location{Name: "Patna"}
	require.NoError(t, store.Put(ctx, sc))

	sc.LastLocation.Name = "changed"
	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Patna", got.LastLocation.Name)
	assert.Equal(t, 1, store.Len())
}

// ==========================
// Load Tests
// ==========================

func TestHandler_Load(t *testing.T) {
	store := NewMemoryStore()
	h, c := createTestHandler(t, store)
	ctx := context.Background()

	sc := h.Load(ctx, "farmer-1")
	assert.Equal(t, "farmer-1", sc.SessionID)
	assert.Equal(t, 0, sc.TurnCount)

	sc.LastCommodity = "onion"
	require.NoError(t, h.Save(ctx, sc, nil, nil))

	c.advance(10 * time.Minute)
	again := h.Load(ctx, "farmer-1")
	assert.Equal(t, "onion", again.LastCommodity)
	assert.Equal(t, 1, again.TurnCount)

	c.advance(31 * time.Minute)
	expired := h.Load(ctx, "farmer-1")
	assert.Empty(t, expired.LastCommodity)
	assert.Equal(t, 0, expired.TurnCount)
}

func TestHandler_Load_StoreFailureStartsFresh(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet(DefaultKeyPrefix + "s1").SetErr(errors.New("timeout"))

	h, _ := createTestHandler(t, NewRedisStore(client, "", time.Minute))
	sc := h.Load(context.Background(), "s1")
	require.NotNil(t, sc)
	assert.Equal(t, "s1", sc.SessionID)
	assert.Nil(t, sc.LastLocation)
}

// ==========================
// Merge Tests
// ==========================

func TestHandler_Merge_LocationPriority(t *testing.T) {
	h, _ := createTestHandler(t, nil)
	session := models.NewSessionContext("s1", baseTime)
	session.LastLocation = &models.Location{Name: "Kanpur", State: "Uttar Pradesh"}

	subs := []models.SubQuery{
		{Index: 0, Intent: models.IntentWeather, Entities: models.Entities{utteranceLocation("Patna")}},
		{Index: 1, Intent: models.IntentWeather},
		{Index: 2, Intent: models.IntentGreeting},
	}

	// Caller beats session.
	merged := h.Merge(subs, session, lucknow)
	assert.Equal(t, "Patna", merged[0].Entities.LocationOf().Name)
	assert.Equal(t, "Lucknow", merged[1].Entities.LocationOf().Name)
	loc, _ := merged[1].Entities.First(models.EntityLocation)
	assert.Equal(t, models.OriginCaller, loc.Origin)
	assert.False(t, merged[2].Entities.Has(models.EntityLocation))

	// Session when there is no caller location.
	merged = h.Merge(subs, session, nil)
	loc, _ = merged[1].Entities.First(models.EntityLocation)
	assert.Equal(t, "Kanpur", loc.Value)
	assert.Equal(t, models.OriginSession, loc.Origin)
	assert.True(t, loc.Inherited)

	// The input slice is not modified.
	assert.False(t, subs[1].Entities.Has(models.EntityLocation))
}

func TestHandler_Merge_SessionCommodity(t *testing.T) {
	h, _ := createTestHandler(t, nil)
	session := models.NewSessionContext("s1", baseTime)
	session.LastCommodity = "potato"

	subs := []models.SubQuery{
		{Intent: models.IntentMarketPrice},
		{Intent: models.IntentMarketPrice, Entities: models.Entities{utteranceCommodity("onion")}},
		{Intent: models.IntentWeather},
	}

	merged := h.Merge(subs, session, nil)
	c, ok := merged[0].Entities.First(models.EntityCommodity)
	require.True(t, ok)
	assert.Equal(t, "potato", c.Value)
	assert.Equal(t, 0.8, c.Confidence)
	assert.Equal(t, models.OriginSession, c.Origin)

	assert.Equal(t, []string{"onion"}, merged[1].Entities.Values(models.EntityCommodity))
	assert.False(t, merged[2].Entities.Has(models.EntityCommodity))
}

// ==========================
// Save Tests
// ==========================

func TestHandler_Save(t *testing.T) {
	store := NewMemoryStore()
	h, c := createTestHandler(t, store)
	ctx := context.Background()

	sc := h.Load(ctx, "s1")
	subs := []models.SubQuery{
		{Intent: models.IntentMarketPrice, Entities: models.Entities{utteranceCommodity("tomato"), utteranceLocation("Agra")}},
		{Intent: models.IntentWeather, Entities: models.Entities{utteranceLocation("Agra").Inherit(models.OriginSibling)}},
	}

	c.advance(time.Minute)
	require.NoError(t, h.Save(ctx, sc, subs, lucknow))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Agra", got.LastLocation.Name)
	assert.Equal(t, "tomato", got.LastCommodity)
	assert.Equal(t, 1, got.TurnCount)
	assert.Equal(t, baseTime.Add(time.Minute), got.UpdatedAt)
}

func TestHandler_Save_CallerLocationRemembered(t *testing.T) {
	store := NewMemoryStore()
	h, _ := createTestHandler(t, store)
	ctx := context.Background()

	sc := h.Load(ctx, "s1")
	require.NoError(t, h.Save(ctx, sc, []models.SubQuery{{Intent: models.IntentGreeting}}, lucknow))

	got, _ := store.Get(ctx, "s1")
	assert.Equal(t, "Lucknow", got.LastLocation.Name)
}

func TestHandler_Save_StoreFailure(t *testing.T) {
	mr, client := setupRedis(t)
	h, _ := createTestHandler(t, NewRedisStore(client, "", time.Minute))
	mr.Close()

	err := h.Save(context.Background(), models.NewSessionContext("s1", baseTime), nil, nil)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSessionStoreFailed))
}

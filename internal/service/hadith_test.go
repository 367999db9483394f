package service

import (
	"context"
	"testing"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackHadiths(t *testing.T) {
	hadiths := FallbackHadiths()
	require.Len(t, hadiths, 5)
	for _, h := range hadiths {
		assert.NotEmpty(t, h.ID)
		assert.NotEmpty(t, h.Text)
		assert.Equal(t, "صحيح", h.Grade)
	}
	assert.Equal(t, "إنما الأعمال بالنيات", hadiths[1].Title)
}

func TestHadithService_Hadiths(t *testing.T) {
	env := newTestEnv(t)
	repo := &fakeHadiths{hadiths: []domain.Hadith{{ID: "1", Number: 1, Text: "نص"}}}
	svc := NewHadithService(repo, env.cache, env.prefs, 0, quietLogger)

	res := svc.Hadiths(context.Background(), "bukhari", 0)
	assert.False(t, res.Fallback)
	assert.NoError(t, res.Cause)
	assert.Equal(t, "صحيح البخاري", res.Collection.Name)
	require.Len(t, res.Hadiths, 1)

	var cached []domain.Hadith
	assert.True(t, env.cache.Get("hadiths-bukhari-20", &cached), "default limit is part of the key")

	svc.Hadiths(context.Background(), "bukhari", 0)
	assert.Equal(t, int32(1), repo.calls.Load())
}

func TestHadithService_FallbackOnError(t *testing.T) {
	env := newTestEnv(t)
	repo := &fakeHadiths{err: domain.ErrOffline}
	svc := NewHadithService(repo, env.cache, env.prefs, 10, quietLogger)

	res := svc.Hadiths(context.Background(), "muslim", 0)
	assert.True(t, res.Fallback)
	assert.ErrorIs(t, res.Cause, domain.ErrOffline)
	assert.Len(t, res.Hadiths, 5)

	var cached []domain.Hadith
	assert.False(t, env.cache.Get("hadiths-muslim-10", &cached), "fallback data is never cached")
}

func TestHadithService_UnknownCollectionStillFetches(t *testing.T) {
	env := newTestEnv(t)
	repo := &fakeHadiths{hadiths: []domain.Hadith{{ID: "1"}}}
	svc := NewHadithService(repo, env.cache, env.prefs, 0, quietLogger)

	res := svc.Hadiths(context.Background(), "ahmad", 5)
	assert.False(t, res.Fallback)
	assert.Equal(t, "ahmad", res.Collection.ID)
}

func TestHadithService_Selection(t *testing.T) {
	env := newTestEnv(t)
	svc := NewHadithService(&fakeHadiths{}, env.cache, env.prefs, 0, quietLogger)

	assert.Equal(t, "bukhari", svc.LastCollection().ID)
	assert.Len(t, svc.Collections(), 8)
	assert.Equal(t, DefaultHadithLimit, svc.Limit())

	require.NoError(t, svc.SelectCollection("tirmidhi"))
	assert.Equal(t, "tirmidhi", svc.LastCollection().ID)

	assert.ErrorIs(t, svc.SelectCollection("unknown"), domain.ErrNotFound)
}

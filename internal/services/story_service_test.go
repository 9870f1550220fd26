package services

import (
	"strings"
	"testing"
	"time"

	"github.com/Anway001/AI-Memory-Space/internal/database/databasetest"
	"github.com/Anway001/AI-Memory-Space/internal/dto"
	"github.com/Anway001/AI-Memory-Space/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedStory(t *testing.T, db *gorm.DB, owner uuid.UUID, title string, saved bool, createdAt time.Time) models.Story {
	t.Helper()
	st := models.Story{
		UserID:         owner,
		Title:          title,
		Text:           "text of " + title,
		SavedToGallery: saved,
		CreatedAt:      createdAt,
	}
	require.NoError(t, db.Create(&st).Error)
	return st
}

func ptr[T any](v T) *T { return &v }

func TestDefaultTitle(t *testing.T) {
	assert.Equal(t, "A short tale....", DefaultTitle("A short tale."))
	assert.Equal(t, strings.Repeat("a", 30)+"...", DefaultTitle(strings.Repeat("a", 45)))
	assert.Equal(t, strings.Repeat("ü", 30)+"...", DefaultTitle(strings.Repeat("ü", 31)))
}

func TestStoryCreate(t *testing.T) {
	svc := NewStoryService(databasetest.Open(t))
	owner := uuid.New()

	story, created, err := svc.Create(owner, &dto.CreateStoryRequest{Text: "A short tale."}, "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, uuid.Nil, story.ID)
	assert.Equal(t, owner, story.UserID)
	assert.Equal(t, "A short tale....", story.Title)
	assert.False(t, story.SavedToGallery)

	titled, _, err := svc.Create(owner, &dto.CreateStoryRequest{Title: "Harbor", Text: "Once", SavedToGallery: true}, "")
	require.NoError(t, err)
	assert.Equal(t, "Harbor", titled.Title)
	assert.True(t, titled.SavedToGallery)
}

func TestStoryCreateRequiresText(t *testing.T) {
	svc := NewStoryService(databasetest.Open(t))

	for _, text := range []string{"", "   \n"} {
		_, _, err := svc.Create(uuid.New(), &dto.CreateStoryRequest{Text: text}, "")
		assert.ErrorIs(t, err, ErrStoryTextRequired)
	}
}

func TestStoryCreateIdempotencyKey(t *testing.T) {
	db := databasetest.Open(t)
	svc := NewStoryService(db)
	owner := uuid.New()

	first, created, err := svc.Create(owner, &dto.CreateStoryRequest{Text: "Once"}, "req-1")
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := svc.Create(owner, &dto.CreateStoryRequest{Text: "Once"}, "req-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	// The same key from another user is a different story.
	other, created, err := svc.Create(uuid.New(), &dto.CreateStoryRequest{Text: "Once"}, "req-1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, first.ID, other.ID)

	var count int64
	require.NoError(t, db.Model(&models.Story{}).Where("user_id = ?", owner).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, _, err = svc.Create(owner, &dto.CreateStoryRequest{Text: "x"}, strings.Repeat("k", 129))
	assert.ErrorIs(t, err, ErrInvalidIdempotency)
}

func TestStoryListOrderingFilterAndDedupe(t *testing.T) {
	db := databasetest.Open(t)
	svc := NewStoryService(db)
	owner := uuid.New()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	oldest := seedStory(t, db, owner, "Harbor", true, base)
	middle := seedStory(t, db, owner, "Forest", false, base.Add(time.Hour))
	newest := seedStory(t, db, owner, "Harbor", false, base.Add(2*time.Hour))
	seedStory(t, db, uuid.New(), "Someone else", true, base.Add(3*time.Hour))

	all, err := svc.List(owner, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newest.ID, all[0].ID, "newest Harbor wins the title")
	assert.Equal(t, middle.ID, all[1].ID)

	saved, err := svc.List(owner, true)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, oldest.ID, saved[0].ID)

	none, err := svc.List(uuid.New(), false)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStoryUpdatePartial(t *testing.T) {
	db := databasetest.Open(t)
	svc := NewStoryService(db)
	owner := uuid.New()
	st := seedStory(t, db, owner, "Harbor", false, time.Now())

	updated, err := svc.Update(owner, st.ID, &dto.UpdateStoryRequest{SavedToGallery: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.SavedToGallery)
	assert.Equal(t, "Harbor", updated.Title)
	assert.Equal(t, st.Text, updated.Text)

	updated, err = svc.Update(owner, st.ID, &dto.UpdateStoryRequest{Title: ptr("Lighthouse"), Text: ptr("New text")})
	require.NoError(t, err)
	assert.Equal(t, "Lighthouse", updated.Title)
	assert.Equal(t, "New text", updated.Text)
	assert.True(t, updated.SavedToGallery)

	reloaded, err := svc.Get(owner, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lighthouse", reloaded.Title)

	_, err = svc.Update(owner, st.ID, &dto.UpdateStoryRequest{Text: ptr("  ")})
	assert.ErrorIs(t, err, ErrStoryTextRequired)
}

func TestStoryOwnershipIsScoped(t *testing.T) {
	db := databasetest.Open(t)
	svc := NewStoryService(db)
	owner, stranger := uuid.New(), uuid.New()
	st := seedStory(t, db, owner, "Harbor", false, time.Now())

	_, err := svc.Update(stranger, st.ID, &dto.UpdateStoryRequest{Title: ptr("Mine now")})
	assert.ErrorIs(t, err, ErrStoryNotFound)

	assert.ErrorIs(t, svc.Delete(stranger, st.ID), ErrStoryNotFound)

	still, err := svc.Get(owner, st.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harbor", still.Title)
}

func TestStoryDelete(t *testing.T) {
	db := databasetest.Open(t)
	svc := NewStoryService(db)
	owner := uuid.New()
	st := seedStory(t, db, owner, "Harbor", false, time.Now())

	require.NoError(t, svc.Delete(owner, st.ID))
	_, err := svc.Get(owner, st.ID)
	assert.ErrorIs(t, err, ErrStoryNotFound)
	assert.ErrorIs(t, svc.Delete(owner, st.ID), ErrStoryNotFound)
}

package services

import (
	"context"
	"testing"

	"snapbook-backend/models"
	"snapbook-backend/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileKey = "photographer_profile:p1"

func newProfile(t *testing.T, s store.Store, deps Deps) *ProfileManager {
	t.Helper()
	m, err := NewProfileManager(context.Background(), s, profileKey, deps)
	require.NoError(t, err)
	return m
}

func TestProfileDefaults(t *testing.T) {
	m := newProfile(t, store.NewMemoryStore(), testDeps())

	p := m.Profile()
	assert.Equal(t, "John", p.FirstName)
	assert.Equal(t, []string{"Wedding", "Portrait", "Event", "Corporate"}, p.Specialties)
	assert.False(t, m.Editing())
}

func TestProfileRequiresEditMode(t *testing.T) {
	ctx := context.Background()
	m := newProfile(t, store.NewMemoryStore(), testDeps())
	name := "Jane"

	_, err := m.Update(models.ProfileUpdate{FirstName: &name})
	assert.ErrorIs(t, err, ErrNotEditing)
	_, err = m.AddSpecialty("Macro")
	assert.ErrorIs(t, err, ErrNotEditing)
	assert.ErrorIs(t, m.RemoveSpecialty("Event"), ErrNotEditing)
	_, err = m.SetAvatar(ctx, UploadFile{Name: "me.png"})
	assert.ErrorIs(t, err, ErrNotEditing)
	_, err = m.Save(ctx)
	assert.ErrorIs(t, err, ErrNotEditing)

	assert.Equal(t, "John", m.Profile().FirstName)
}

func TestProfileAddSpecialtyTwice(t *testing.T) {
	m := newProfile(t, store.NewMemoryStore(), testDeps())
	m.Edit()

	added, err := m.AddSpecialty("Macro")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = m.AddSpecialty("  Macro ")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = m.AddSpecialty("   ")
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, []string{"Wedding", "Portrait", "Event", "Corporate", "Macro"}, m.Profile().Specialties)

	require.NoError(t, m.RemoveSpecialty("Event"))
	assert.Equal(t, []string{"Wedding", "Portrait", "Corporate", "Macro"}, m.Profile().Specialties)
}

func TestProfileSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	deps := testDeps()
	deps.Avatars = stubEncoder{}
	m := newProfile(t, s, deps)

	m.Edit()
	bio := "Film and digital."
	loc := "Boston, MA"
	_, err := m.Update(models.ProfileUpdate{Bio: &bio, Location: &loc})
	require.NoError(t, err)
	src, err := m.SetAvatar(ctx, UploadFile{Name: "me.png"})
	require.NoError(t, err)
	assert.Equal(t, "encoded:me.png", src)

	saved, err := m.Save(ctx)
	require.NoError(t, err)
	assert.False(t, m.Editing())

	reloaded := newProfile(t, s, testDeps())
	assert.Equal(t, saved, reloaded.Profile())
	assert.Equal(t, "Boston, MA", reloaded.Profile().Location)
	assert.Equal(t, "Smith", reloaded.Profile().LastName)
}

func TestProfileUnsavedEditsAreNotStored(t *testing.T) {
	s := store.NewMemoryStore()
	m := newProfile(t, s, testDeps())

	m.Edit()
	name := "Jane"
	_, err := m.Update(models.ProfileUpdate{FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Jane", m.Profile().FirstName)

	reloaded := newProfile(t, s, testDeps())
	assert.Equal(t, "John", reloaded.Profile().FirstName)
}

func TestProfileSaveFailureStaysEditing(t *testing.T) {
	s := newFlakyStore()
	m := newProfile(t, s, testDeps())
	m.Edit()
	s.failWrites(true)

	_, err := m.Save(context.Background())
	assert.ErrorIs(t, err, errWrite)
	assert.True(t, m.Editing())
}

type encoderFunc func(ctx context.Context, name string, data []byte) (string, error)

func (f encoderFunc) Encode(ctx context.Context, name string, data []byte) (string, error) {
	return f(ctx, name, data)
}

func TestSetAvatarAfterConcurrentSave(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	deps := testDeps()

	var m *ProfileManager
	deps.Avatars = encoderFunc(func(ctx context.Context, name string, _ []byte) (string, error) {
		// The form is saved while the avatar is still decoding.
		_, err := m.Save(ctx)
		require.NoError(t, err)
		return "encoded:" + name, nil
	})
	m = newProfile(t, s, deps)

	m.Edit()
	_, err := m.SetAvatar(ctx, UploadFile{Name: "me.png"})
	assert.ErrorIs(t, err, ErrNotEditing)
	assert.Equal(t, "/placeholder.svg", m.Profile().Avatar)
	assert.Equal(t, "/placeholder.svg", newProfile(t, s, testDeps()).Profile().Avatar)
}

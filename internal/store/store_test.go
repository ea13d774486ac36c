package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-tailor/internal/types"
)

// backends returns every Store implementation testable without a database
// server.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLite(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, KeyUserCVText, []byte("raw resume text")))

			got, err := s.Get(ctx, KeyUserCVText)
			require.NoError(t, err)
			assert.Equal(t, []byte("raw resume text"), got)

			// Overwrite
			require.NoError(t, s.Set(ctx, KeyUserCVText, []byte("updated")))
			got, err = s.Get(ctx, KeyUserCVText)
			require.NoError(t, err)
			assert.Equal(t, []byte("updated"), got)
		})
	}
}

func TestStore_MissingKey(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "absent")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, "k", []byte("v")))
			require.NoError(t, s.Delete(ctx, "k"))
			require.NoError(t, s.Delete(ctx, "k"))

			_, err := s.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewSQLite(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, KeyAutoTailor, []byte("true")))
	require.NoError(t, first.Close())

	second, err := NewSQLite(dir)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, KeyAutoTailor)
	require.NoError(t, err)
	assert.Equal(t, []byte("true"), got)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	resume := types.NewStructuredResume()
	resume.Personal.Name = "Jane Doe"
	resume.Skills = []string{"Go"}

	require.NoError(t, SetJSON(ctx, s, KeyUserCV, resume))

	var loaded types.StructuredResume
	require.NoError(t, GetJSON(ctx, s, KeyUserCV, &loaded))
	assert.Equal(t, "Jane Doe", loaded.Personal.Name)
	assert.Equal(t, []string{"Go"}, loaded.Skills)
}

func TestGetJSON_CorruptValue(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.Set(ctx, "k", []byte("{not json")))

	var out map[string]string
	err := GetJSON(ctx, s, "k", &out)
	require.Error(t, err)

	var storeErr *Error
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "get", storeErr.Op)
}

func TestTailoredURLSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	done, err := IsTailored(ctx, s, "https://a.example/jobs/1")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, MarkTailored(ctx, s, "https://a.example/jobs/1"))
	require.NoError(t, MarkTailored(ctx, s, "https://a.example/jobs/1"))
	require.NoError(t, MarkTailored(ctx, s, "https://a.example/jobs/2"))

	urls, err := TailoredURLs(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example/jobs/1", "https://a.example/jobs/2"}, urls)

	done, err = IsTailored(ctx, s, "https://a.example/jobs/1")
	require.NoError(t, err)
	assert.True(t, done)
}

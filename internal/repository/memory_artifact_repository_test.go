package repository

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocr-notes-server/internal/domain"
)

func newArtifact(id, name, text string) *domain.Artifact {
	return &domain.Artifact{
		ID:            id,
		FileName:      name,
		ContentType:   "image/png",
		RawBytes:      []byte(id),
		ExtractedText: text,
	}
}

func TestMemoryArtifactRepository_AppendAndList(t *testing.T) {
	repo := NewMemoryArtifactRepository(0, nil)

	require.NoError(t, repo.Append(newArtifact("1", "a.png", "A")))
	require.NoError(t, repo.Append(newArtifact("2", "b.png", "B")))
	require.NoError(t, repo.Append(newArtifact("3", "c.png", "C")))

	all := repo.ListAll()
	require.Len(t, all, 3)
	assert.Equal(t, "a.png", all[0].FileName)
	assert.Equal(t, "b.png", all[1].FileName)
	assert.Equal(t, "c.png", all[2].FileName)
	assert.Equal(t, 3, repo.Count())
}

func TestMemoryArtifactRepository_DuplicateNamesFirstMatchWins(t *testing.T) {
	repo := NewMemoryArtifactRepository(0, nil)

	require.NoError(t, repo.Append(newArtifact("first", "dup.png", "old")))
	require.NoError(t, repo.Append(newArtifact("second", "dup.png", "new")))

	found, err := repo.FindByName("dup.png")
	require.NoError(t, err)
	assert.Equal(t, "first", found.ID)
	assert.Equal(t, "old", found.ExtractedText)

	all := repo.ListAll()
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].ID)
	assert.Equal(t, "second", all[1].ID)
}

func TestMemoryArtifactRepository_FindByNameMissing(t *testing.T) {
	repo := NewMemoryArtifactRepository(0, nil)
	require.NoError(t, repo.Append(newArtifact("1", "a.png", "")))

	found, err := repo.FindByName("A.png")
	assert.Nil(t, found)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestMemoryArtifactRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryArtifactRepository(0, nil)
	original := newArtifact("1", "a.png", "A")
	require.NoError(t, repo.Append(original))

	original.RawBytes[0] = 'x'
	original.FileName = "mutated.png"

	found, err := repo.FindByName("a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), found.RawBytes)

	found.RawBytes[0] = 'y'
	listed := repo.ListAll()
	assert.Equal(t, []byte("1"), listed[0].RawBytes)
}

func TestMemoryArtifactRepository_EvictsOldestWhenBounded(t *testing.T) {
	repo := NewMemoryArtifactRepository(2, NewMockRepositoryLogger())

	for i := 1; i <= 4; i++ {
		require.NoError(t, repo.Append(newArtifact(fmt.Sprint(i), fmt.Sprintf("%d.png", i), "")))
	}

	all := repo.ListAll()
	require.Len(t, all, 2)
	assert.Equal(t, "3", all[0].ID)
	assert.Equal(t, "4", all[1].ID)

	_, err := repo.FindByName("1.png")
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestMemoryArtifactRepository_NegativeBoundIsUnlimited(t *testing.T) {
	repo := NewMemoryArtifactRepository(-5, nil)
	for i := 0; i < 10; i++ {
		require.NoError(t, repo.Append(newArtifact(fmt.Sprint(i), "x.png", "")))
	}
	assert.Equal(t, 10, repo.Count())
}

func TestMemoryArtifactRepository_ConcurrentAppendAndRead(t *testing.T) {
	repo := NewMemoryArtifactRepository(0, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = repo.Append(newArtifact(fmt.Sprint(i), fmt.Sprintf("%d.png", i), ""))
		}(i)
		go func() {
			defer wg.Done()
			_ = repo.ListAll()
			_, _ = repo.FindByName("0.png")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, repo.Count())
}

type mockRepositoryLogger struct{}

func NewMockRepositoryLogger() domain.Logger { return &mockRepositoryLogger{} }

func (l *mockRepositoryLogger) Info(msg string, fields ...interface{})             {}
func (l *mockRepositoryLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *mockRepositoryLogger) Debug(msg string, fields ...interface{})            {}
func (l *mockRepositoryLogger) Warn(msg string, fields ...interface{})             {}

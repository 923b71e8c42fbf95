package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alquimia/internal/store"
)

func populatedStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	require.NoError(t, s.SetAreaScore("Health", 9))
	require.NoError(t, s.SetAreaScore("Career", 3))
	require.NoError(t, s.SetArchetypeScore("Sorceress", 8))
	require.NoError(t, s.SetArchetypeNote("Sorceress", "rising"))
	require.NoError(t, s.SetReflection("gratitude", "the year behind me"))
	require.NoError(t, s.SetVisionText("health", "move gently every day"))
	require.NoError(t, s.AttachVisionImage("health", store.VisionImage{
		Source: store.ImageSourceUpload,
		URL:    "https://example.com/yoga.jpg",
		Title:  "morning yoga",
	}))
	_, err := s.AddGoal(store.GoalDraft{
		Title:      "Run 5k",
		Area:       "Health",
		TargetDate: "2026-03-01",
		Criterion:  "finish a parkrun",
		Archetype:  "Warrior",
		Priority:   store.PriorityHigh,
	})
	require.NoError(t, err)
	_, err = s.AddGoal(store.GoalDraft{Title: "Daily pages"})
	require.NoError(t, err)
	s.RecordCheckIn()
	return s
}

func TestRecordRoundTrip(t *testing.T) {
	s := populatedStore(t)

	artifact, err := RecordArtifact(s.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, "application/json", artifact.MIMEType)
	assert.True(t, strings.HasPrefix(artifact.Filename, "alquimia_"))
	assert.True(t, strings.HasSuffix(artifact.Filename, ".json"))

	record, err := ParseRecord(artifact.Data)
	require.NoError(t, err)

	restored, err := RestoreRecord(record)
	require.NoError(t, err)

	want := s.Snapshot()
	got := restored.Snapshot()

	assert.Equal(t, want.AreaScores, got.AreaScores)
	assert.Equal(t, want.Archetypes, got.Archetypes)
	assert.Equal(t, want.Reflections, got.Reflections)
	assert.Equal(t, want.Vision, got.Vision)
	require.Len(t, got.Goals, len(want.Goals))
	for i := range want.Goals {
		assert.Equal(t, want.Goals[i].ID, got.Goals[i].ID)
		assert.Equal(t, want.Goals[i].Title, got.Goals[i].Title)
		assert.Equal(t, want.Goals[i].Priority, got.Goals[i].Priority)
		assert.Equal(t, want.Goals[i].Completed, got.Goals[i].Completed)
		assert.True(t, want.Goals[i].CreatedAt.Equal(got.Goals[i].CreatedAt))
	}
	require.Len(t, got.CheckIns, len(want.CheckIns))
	for i := range want.CheckIns {
		assert.Equal(t, want.CheckIns[i].Scores, got.CheckIns[i].Scores)
		assert.InDelta(t, want.CheckIns[i].Average, got.CheckIns[i].Average, 1e-9)
	}
}

func TestRecordCarriesPersonalYear(t *testing.T) {
	record := BuildRecord(store.New().Snapshot())
	assert.Equal(t, store.CurrentPersonalYear, record.PersonalYear)
}

func TestParseRecordRejectsGarbage(t *testing.T) {
	_, err := ParseRecord([]byte("not json at all"))
	assert.Error(t, err)
}

func TestGoalsCSV(t *testing.T) {
	s := populatedStore(t)

	artifact, err := GoalsCSV(s.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, "text/csv", artifact.MIMEType)
	assert.True(t, strings.HasSuffix(artifact.Filename, ".csv"))

	rows, err := csv.NewReader(bytes.NewReader(artifact.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per goal")

	assert.Equal(t, []string{"title", "area", "date", "criterion", "archetype", "completed"}, rows[0])
	assert.Equal(t, []string{"Run 5k", "Health", "2026-03-01", "finish a parkrun", "Warrior", "false"}, rows[1])
	assert.Equal(t, []string{"Daily pages", "", "", "", "", "false"}, rows[2])
}

func TestGoalsCSVEmpty(t *testing.T) {
	artifact, err := GoalsCSV(store.New().Snapshot())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(artifact.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}

func TestFormatRegistry(t *testing.T) {
	info, ok := GetFormatInfo(FormatRecord)
	require.True(t, ok)
	assert.Equal(t, ".json", info.Extension)

	info, ok = GetFormatInfo(FormatGoalsCSV)
	require.True(t, ok)
	assert.Equal(t, "text/csv", info.MIMEType)

	_, ok = GetFormatInfo("xml")
	assert.False(t, ok)
}

// Package export flattens the session store into downloadable artifacts.
//
// Two formats are supported: a structured record that is lossless for all
// text and numeric fields, and a tabular goals listing that is lossy by
// contract. The serializer performs no I/O; callers receive an in-memory
// Artifact and decide how to deliver it.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"alquimia/internal/store"
)

// Format identifies an export format.
type Format string

const (
	// FormatRecord is the lossless structured-record export.
	FormatRecord Format = "record"
	// FormatGoalsCSV is the lossy one-row-per-goal projection.
	FormatGoalsCSV Format = "goals-csv"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatRecord: {
		Name:        FormatRecord,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "Structured record - full session state, lossless for text and numeric fields",
	},
	FormatGoalsCSV: {
		Name:        FormatGoalsCSV,
		MIMEType:    "text/csv",
		Extension:   ".csv",
		Description: "Goals table - one row per goal, other session data omitted",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// Artifact is a finished export ready to be offered as a download.
type Artifact struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Record is the structured export of a full session. Every text and numeric
// field of the store appears under a stable name; image bytes never do, only
// their references.
type Record struct {
	ExportedAt   time.Time                        `json:"exported_at"`
	PersonalYear store.PersonalYear               `json:"personal_year"`
	AreaScores   map[string]int                   `json:"area_scores"`
	Archetypes   map[string]store.ArchetypeRating `json:"archetypes"`
	Reflections  map[string]string                `json:"reflections"`
	Vision       []store.VisionEntry              `json:"vision"`
	Goals        []store.Goal                     `json:"goals"`
	CheckIns     []store.CheckIn                  `json:"check_ins"`
}

// BuildRecord assembles the lossless record from a snapshot.
func BuildRecord(snap store.Snapshot) Record {
	return Record{
		ExportedAt:   snap.TakenAt,
		PersonalYear: store.CurrentPersonalYear,
		AreaScores:   snap.AreaScores,
		Archetypes:   snap.Archetypes,
		Reflections:  snap.Reflections,
		Vision:       snap.Vision,
		Goals:        snap.Goals,
		CheckIns:     snap.CheckIns,
	}
}

// RecordArtifact serializes the structured record for download.
func RecordArtifact(snap store.Snapshot) (Artifact, error) {
	record := BuildRecord(snap)
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to marshal record: %w", err)
	}
	info := FormatRegistry[FormatRecord]
	return Artifact{
		Filename: exportFilename("alquimia", snap.TakenAt, info.Extension),
		MIMEType: info.MIMEType,
		Data:     data,
	}, nil
}

// ParseRecord decodes a structured record previously produced by
// RecordArtifact.
func ParseRecord(data []byte) (Record, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return Record{}, fmt.Errorf("failed to parse record: %w", err)
	}
	return record, nil
}

// RestoreRecord rebuilds a session store from a record. Round-tripping a
// store through RecordArtifact and RestoreRecord yields identical content
// for every text and numeric field.
func RestoreRecord(record Record) (*store.Store, error) {
	s := store.New()
	for area, score := range record.AreaScores {
		if err := s.SetAreaScore(area, score); err != nil {
			return nil, err
		}
	}
	for name, rating := range record.Archetypes {
		if err := s.SetArchetypeScore(name, rating.Rating); err != nil {
			return nil, err
		}
		if err := s.SetArchetypeNote(name, rating.Note); err != nil {
			return nil, err
		}
	}
	for key, text := range record.Reflections {
		if err := s.SetReflection(key, text); err != nil {
			return nil, err
		}
	}
	for _, entry := range record.Vision {
		if err := s.SetVisionText(entry.Category.Key, entry.Text); err != nil {
			return nil, err
		}
		for _, img := range entry.Images {
			if err := s.AttachVisionImage(entry.Category.Key, img); err != nil {
				return nil, err
			}
		}
	}
	for _, goal := range record.Goals {
		if err := s.PutGoal(goal); err != nil {
			return nil, err
		}
	}
	for _, checkIn := range record.CheckIns {
		s.PutCheckIn(checkIn)
	}
	return s, nil
}

// goalsHeader is the fixed column set of the tabular export.
var goalsHeader = []string{"title", "area", "date", "criterion", "archetype", "completed"}

// GoalsCSV serializes one row per goal. The projection drops scores,
// archetype notes, reflections, and the vision board; that lossiness is the
// contract of this format.
func GoalsCSV(snap store.Snapshot) (Artifact, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(goalsHeader); err != nil {
		return Artifact{}, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, goal := range snap.Goals {
		row := []string{
			goal.Title,
			goal.Area,
			goal.TargetDate,
			goal.Criterion,
			goal.Archetype,
			strconv.FormatBool(goal.Completed),
		}
		if err := w.Write(row); err != nil {
			return Artifact{}, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Artifact{}, fmt.Errorf("failed to flush csv: %w", err)
	}
	info := FormatRegistry[FormatGoalsCSV]
	return Artifact{
		Filename: exportFilename("alquimia_goals", snap.TakenAt, info.Extension),
		MIMEType: info.MIMEType,
		Data:     buf.Bytes(),
	}, nil
}

func exportFilename(stem string, at time.Time, ext string) string {
	return fmt.Sprintf("%s_%s%s", stem, at.Format("20060102"), ext)
}

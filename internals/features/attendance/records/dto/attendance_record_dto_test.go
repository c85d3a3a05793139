package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Tresorbana/school-sub000/internals/features/attendance/records/model"
)

func TestCountEntries(t *testing.T) {
	entry := func(status model.EntryStatus) model.StudentEntry {
		return model.StudentEntry{StudentID: uuid.New(), Status: status}
	}

	entries := []model.StudentEntry{
		entry(model.EntryPresent),
		entry(model.EntryPresent),
		entry(model.EntryAbsent),
		entry(model.EntrySick),
		entry(model.EntryPresent),
	}

	present, absent, sick := CountEntries(entries)
	assert.Equal(t, 3, present)
	assert.Equal(t, 1, absent)
	assert.Equal(t, 1, sick)

	present, absent, sick = CountEntries(nil)
	assert.Zero(t, present)
	assert.Zero(t, absent)
	assert.Zero(t, sick)
}

func TestEntriesPreservesOrderAndNotes(t *testing.T) {
	notes := "left early"
	in := CreateAttendanceRecordDTO{
		RosterID: uuid.New(),
		Date:     "2026-01-05",
		AttendanceRecords: []StudentEntryDTO{
			{StudentID: uuid.New(), Status: "present"},
			{StudentID: uuid.New(), Status: "sick", Notes: &notes},
		},
	}

	entries := in.Entries()
	assert.Len(t, entries, 2)
	assert.Equal(t, in.AttendanceRecords[0].StudentID, entries[0].StudentID)
	assert.Equal(t, model.EntryPresent, entries[0].Status)
	assert.Nil(t, entries[0].Notes)
	assert.Equal(t, model.EntrySick, entries[1].Status)
	if assert.NotNil(t, entries[1].Notes) {
		assert.Equal(t, notes, *entries[1].Notes)
	}
}

package meta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reflecta-be/internal/constant"
	"reflecta-be/internal/entity"
)

func userEntry(content string, at time.Time) *entity.Entry {
	return &entity.Entry{Role: constant.EntryRoleUser, Content: content, CreatedAt: at}
}

func assistantEntry(content string, at time.Time) *entity.Entry {
	return &entity.Entry{Role: constant.EntryRoleAssistant, Content: content, CreatedAt: at}
}

func TestDeriveNoUserEntries(t *testing.T) {
	now := time.Now()

	assert.Equal(t, SessionMeta{}, Derive(nil, ""))
	assert.Equal(t, SessionMeta{}, Derive([]*entity.Entry{
		assistantEntry("Üdvözöllek", now),
	}, ""))
}

func TestDeriveShortEntry(t *testing.T) {
	now := time.Now()
	long := "Ez egy hosszabb bejegyzés, amelyben részletesen kifejtem hogy milyen napom volt ma és miket éreztem közben végig."

	m := Derive([]*entity.Entry{userEntry("Fáradt vagyok.", now)}, "")
	assert.True(t, m.IsShortEntry)

	m = Derive([]*entity.Entry{userEntry(long, now)}, "")
	assert.False(t, m.IsShortEntry)
}

func TestDeriveQuestion(t *testing.T) {
	now := time.Now()

	tests := []struct {
		content string
		want    bool
	}{
		{"Mi lesz ebből?", true},
		{"Vajon jó irányba megyek", true},
		{"Miért érzem ezt", true},
		{"szerinted ez rendben van", true},
		{"Ma sokat sétáltam.", false},
		// Marker must stand alone, not inside another word.
		{"A hogyanokról nem beszélek.", false},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			m := Derive([]*entity.Entry{userEntry(tt.content, now)}, "")
			assert.Equal(t, tt.want, m.IsQuestion)
		})
	}
}

func TestDeriveReflective(t *testing.T) {
	now := time.Now()

	m := Derive([]*entity.Entry{userEntry("Úgy érzem, talán elengedhetném", now)}, "")
	assert.True(t, m.IsReflective)

	m = Derive([]*entity.Entry{userEntry("Megjavítottam a biciklit", now)}, "")
	assert.False(t, m.IsReflective)
}

func TestDeriveRepetition(t *testing.T) {
	now := time.Now()
	build := func(contents ...string) []*entity.Entry {
		var entries []*entity.Entry
		for i, c := range contents {
			entries = append(entries, userEntry(c, now.Add(time.Duration(i)*time.Minute)))
		}
		return entries
	}

	m := Derive(build("megint a munka", "nem tudom elengedni", "megint a munka"), "")
	assert.True(t, m.ShowsRepetition)

	m = Derive(build("a munka", "a család", "az egészség"), "")
	assert.False(t, m.ShowsRepetition)

	// Only the last three user entries count.
	m = Derive(build("x", "x", "friss téma", "másik téma", "harmadik téma"), "")
	assert.False(t, m.ShowsRepetition)
}

func TestDeriveRecentSilence(t *testing.T) {
	now := time.Now()

	m := Derive([]*entity.Entry{
		userEntry("első", now.Add(-10*time.Minute)),
		userEntry("második", now),
	}, "")
	assert.True(t, m.HasRecentSilence)

	m = Derive([]*entity.Entry{
		userEntry("első", now.Add(-2*time.Minute)),
		userEntry("második", now),
	}, "")
	assert.False(t, m.HasRecentSilence)

	// A single user entry has no gap to measure.
	m = Derive([]*entity.Entry{userEntry("egyetlen", now)}, "")
	assert.False(t, m.HasRecentSilence)
}

func TestDeriveIgnoresClosingTriggerEntries(t *testing.T) {
	now := time.Now()
	entries := []*entity.Entry{
		userEntry("Hosszú bejegyzés a mai napról, tele mindenféle gondolattal és érzéssel.", now.Add(-time.Minute)),
		userEntry("  lezárom a napot  ", now),
	}

	m := Derive(entries, "lezárom a napot")
	// The trigger entry is filtered, so the long entry drives the meta.
	assert.False(t, m.IsShortEntry)

	m = Derive(entries, "")
	assert.True(t, m.IsShortEntry)
}

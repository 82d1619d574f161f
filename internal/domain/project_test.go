package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_Validate(t *testing.T) {
	p := &Project{ID: "p1", Name: "Capstone"}
	assert.NoError(t, p.Validate())

	p.NextMeeting = "tomorrow"
	assert.Error(t, p.Validate())

	assert.Error(t, (&Project{ID: "p1"}).Validate())
	assert.Error(t, (&Project{Name: "x"}).Validate())
}

func TestProject_AddMemberDeduplicates(t *testing.T) {
	p := &Project{ID: "p1", Name: "Capstone"}

	assert.True(t, p.AddMember("u1"))
	assert.False(t, p.AddMember("u1"))
	assert.True(t, p.AddMember("u2"))
	assert.Equal(t, []string{"u1", "u2"}, p.Members)
}

func TestProject_DisplayID(t *testing.T) {
	assert.Equal(t, "TEAM42", (&Project{ID: "0123456789", Code: "TEAM42"}).DisplayID())
	assert.Equal(t, "01234567", (&Project{ID: "0123456789"}).DisplayID())
	assert.Equal(t, "p1", (&Project{ID: "p1"}).DisplayID())
}

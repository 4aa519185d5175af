package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalKeepsTypeAndTime(t *testing.T) {
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	in := BaseEvent{Type: TypeAdminLocked, Data: map[string]interface{}{"client": "s1"}, OccurredAt: at}

	b, err := Marshal(in)
	require.NoError(t, err)
	out, err := Unmarshal(b)
	require.NoError(t, err)

	assert.Equal(t, TypeAdminLocked, out.EventType())
	assert.True(t, at.Equal(out.Timestamp()))
	assert.Equal(t, "s1", out.Payload()["client"])
}

func TestUnmarshalRejectsUntyped(t *testing.T) {
	_, err := Unmarshal([]byte(`{"data":{}}`))
	assert.Error(t, err)
	_, err = Unmarshal([]byte(`not json`))
	assert.Error(t, err)
}

func TestIsKnowledgeChange(t *testing.T) {
	assert.True(t, IsKnowledgeChange(TypeKnowledgeAudioChanged))
	assert.False(t, IsKnowledgeChange(TypeAdminLocked))
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleMarker(t *testing.T) {
	assert.Equal(t, "CREATOR:", RoleCreator.Marker())
	assert.Equal(t, "CRITIC:", RoleCritic.Marker())
	assert.Empty(t, Role("referee").Marker())
}

func TestRoleOpponent(t *testing.T) {
	assert.Equal(t, RoleCritic, RoleCreator.Opponent())
	assert.Equal(t, RoleCreator, RoleCritic.Opponent())
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleCreator.IsValid())
	assert.True(t, RoleCritic.IsValid())
	assert.False(t, Role("moderator").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestEngineIDToolName(t *testing.T) {
	assert.Equal(t, "claude", EngineClaude.ToolName())
	assert.Equal(t, "gemini", EngineGemini.ToolName())
	assert.Empty(t, EngineCustom.ToolName())
	assert.Empty(t, EngineFallback.ToolName())
}

func TestEngineIDIsValid(t *testing.T) {
	for _, engine := range []EngineID{EngineClaude, EngineGemini, EngineCustom, EngineFallback} {
		assert.True(t, engine.IsValid(), engine.String())
	}
	assert.False(t, EngineID("gpt").IsValid())
}

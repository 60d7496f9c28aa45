package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureMode_IsValid(t *testing.T) {
	assert.True(t, FailureModeFailFast.IsValid())
	assert.True(t, FailureModeContinue.IsValid())
	assert.False(t, FailureMode("retry").IsValid())
	assert.False(t, FailureMode("").IsValid())
}

func TestFailureMode_Description(t *testing.T) {
	assert.Contains(t, FailureModeFailFast.Description(), "first failure")
	assert.Contains(t, FailureModeContinue.Description(), "every record")
	assert.Equal(t, unknownDescription, FailureMode("x").Description())
	assert.Equal(t, "fail-fast", FailureModeFailFast.String())
}

func TestReferenceTime_IsValid(t *testing.T) {
	assert.True(t, ReferenceTimeNow.IsValid())
	assert.True(t, ReferenceTimeEvent.IsValid())
	assert.False(t, ReferenceTime("object").IsValid())
	assert.Equal(t, "event", ReferenceTimeEvent.String())
}

func TestLogFormat_IsValid(t *testing.T) {
	assert.True(t, LogFormatText.IsValid())
	assert.True(t, LogFormatJSON.IsValid())
	assert.False(t, LogFormat("xml").IsValid())
}

func TestDefaultImporterSettings(t *testing.T) {
	s := DefaultImporterSettings()

	assert.Empty(t, s.Catalog.APIKey)
	assert.Empty(t, s.Catalog.OrgID)
	assert.Equal(t, DefaultCatalogEndpoint, s.Catalog.Endpoint)
	assert.Zero(t, s.Catalog.RequestsPerSecond)
	assert.Zero(t, s.Catalog.Timeout)
	assert.Equal(t, ReferenceTimeNow, s.Grouping.Reference)
	assert.Equal(t, FailureModeFailFast, s.FailureMode)
	assert.Equal(t, SchemeS3, s.URIScheme)
	assert.Equal(t, LogFormatText, s.LogFormat)
	assert.False(t, s.Extractor.ObjectMetadata)
	assert.Empty(t, s.Extractor.KeyPattern)
}

package services

import (
	"strings"
	"time"

	"github.com/custodia-labs/s3-importer/internal/core/domain"
	"github.com/custodia-labs/s3-importer/internal/core/ports/driving"
	"github.com/custodia-labs/s3-importer/internal/logger"
)

// dayLayout renders a calendar date the way the catalog compares `created`.
const dayLayout = "2006-01-02"

// Grouping policies build RoboQL queries for the catalog's
// create-if-not-exists dataset call. Each query identifies the single
// dataset a file should be grouped into.

// DatasetPerDay groups all files of the UTC calendar day containing ref.
// The window is half-open: midnight belongs to the day it starts.
func DatasetPerDay(ref time.Time) string {
	start, end := dayBounds(ref)
	return "created >= " + quote(start) + " AND created < " + quote(end)
}

// DatasetPerDevicePerDay groups files per device per UTC calendar day.
func DatasetPerDevicePerDay(deviceID string, ref time.Time) string {
	return DatasetPerDay(ref) + " AND device_id = " + quote(deviceID)
}

// DatasetPerName groups files under a caller-supplied dataset name.
// This is the most granular policy, typically fed from an existing
// mission or drive identifier.
func DatasetPerName(name string) string {
	return "name = " + quote(name)
}

// BestFitForArgs picks the most granular policy the args support,
// using the current time for day-based policies.
func BestFitForArgs(args domain.DatasetCreationArgs) string {
	return BestFitForArgsAt(args, time.Now())
}

// BestFitForArgsAt is BestFitForArgs with an explicit reference time.
//
// Precedence: name, then device per day, then day.
func BestFitForArgsAt(args domain.DatasetCreationArgs, ref time.Time) string {
	switch {
	case args.HasName():
		logger.Info("Using unique per name grouping query for name %s", args.Name)
		return DatasetPerName(args.Name)
	case args.HasDevice():
		logger.Info("Using unique per device per day grouping query for device %s", args.DeviceID)
		return DatasetPerDevicePerDay(args.DeviceID, ref)
	default:
		logger.Info("Using unique per day grouping query")
		return DatasetPerDay(ref)
	}
}

// dayBounds returns the UTC date of ref and the following date.
func dayBounds(ref time.Time) (string, string) {
	y, m, d := ref.UTC().Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return day.Format(dayLayout), day.AddDate(0, 0, 1).Format(dayLayout)
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quote renders s as a single-quoted query literal.
func quote(s string) string {
	return "'" + literalEscaper.Replace(s) + "'"
}

// Ensure GroupingService implements the interface.
var _ driving.GroupingService = (*GroupingService)(nil)

// GroupingService applies BestFitForArgsAt with a configured reference time.
type GroupingService struct {
	reference domain.ReferenceTime
	now       func() time.Time
}

// NewGroupingService creates a grouping service.
// An invalid reference falls back to domain.ReferenceTimeNow.
func NewGroupingService(reference domain.ReferenceTime) *GroupingService {
	if !reference.IsValid() {
		reference = domain.ReferenceTimeNow
	}
	return &GroupingService{
		reference: reference,
		now:       time.Now,
	}
}

// QueryFor returns the dataset match query for args.
func (g *GroupingService) QueryFor(args domain.DatasetCreationArgs, eventTime time.Time) string {
	return BestFitForArgsAt(args, g.referenceTime(eventTime))
}

func (g *GroupingService) referenceTime(eventTime time.Time) time.Time {
	if g.reference == domain.ReferenceTimeEvent && !eventTime.IsZero() {
		return eventTime
	}
	return g.now()
}

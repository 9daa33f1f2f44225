/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package calendar keeps a list of non-overlapping schedules.
package calendar

import (
	"cmp"
	"slices"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Layout is the timestamp format of the CLI and of stored schedules. It
// has no zone: times are wall-clock times.
const Layout = "2006-01-02T15:04:05"

// parseLayout also accepts fractional seconds found in older files.
const parseLayout = "2006-01-02T15:04:05.999999999"

// ParseTime parses s in Layout. Failures are InvalidTime errors.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(parseLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, InvalidTime.Wrap(err, TimeInput{Value: s})
	}
	return t, nil
}

// Schedule is one booked interval, End excluded.
type Schedule struct {
	ID      uint64
	Subject string
	Start   time.Time
	End     time.Time
}

// Intersects reports whether the half-open intervals overlap. Touching
// intervals do not.
func (s Schedule) Intersects(o Schedule) bool {
	return s.Start.Before(o.End) && o.Start.Before(s.End)
}

type scheduleJSON struct {
	ID      uint64 `json:"id"`
	Subject string `json:"subject"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// MarshalJSON writes times in Layout.
func (s Schedule) MarshalJSON() ([]byte, error) {
	return json.Marshal(scheduleJSON{
		ID:      s.ID,
		Subject: s.Subject,
		Start:   s.Start.Format(Layout),
		End:     s.End.Format(Layout),
	})
}

// UnmarshalJSON reads times in Layout.
func (s *Schedule) UnmarshalJSON(b []byte) error {
	var w scheduleJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	start, err := time.Parse(parseLayout, w.Start)
	if err != nil {
		return err
	}
	end, err := time.Parse(parseLayout, w.End)
	if err != nil {
		return err
	}
	*s = Schedule{ID: w.ID, Subject: w.Subject, Start: start, End: end}
	return nil
}

// Calendar is the stored document.
type Calendar struct {
	Schedules []Schedule `json:"schedules"`
}

// New returns an empty calendar.
func New() *Calendar {
	return &Calendar{Schedules: []Schedule{}}
}

// NextID is 0 for an empty calendar and the largest id plus one
// otherwise, so ids are never reused while a later schedule exists.
func (c *Calendar) NextID() uint64 {
	if len(c.Schedules) == 0 {
		return 0
	}
	return slices.MaxFunc(c.Schedules, func(a, b Schedule) int { return cmp.Compare(a.ID, b.ID) }).ID + 1
}

// Add books [start, end) under subject. It fails with InvalidRange when
// end is not after start and with Conflict naming the first overlapping
// schedule.
func (c *Calendar) Add(subject string, start, end time.Time) (Schedule, error) {
	if !end.After(start) {
		return Schedule{}, InvalidRange.Raise(Range{Start: start, End: end})
	}
	s := Schedule{ID: c.NextID(), Subject: subject, Start: start, End: end}
	for _, existing := range c.Schedules {
		if existing.Intersects(s) {
			return Schedule{}, Conflict.Raise(Overlap{ExistingID: existing.ID})
		}
	}
	c.Schedules = append(c.Schedules, s)
	return s, nil
}

// Delete removes the schedule with id, keeping the order of the rest. It
// fails with NotFound.
func (c *Calendar) Delete(id uint64) error {
	i := slices.IndexFunc(c.Schedules, func(s Schedule) bool { return s.ID == id })
	if i < 0 {
		return NotFound.Raise(Missing{ID: id})
	}
	c.Schedules = slices.Delete(c.Schedules, i, i+1)
	return nil
}

// Clone returns a deep copy.
func (c *Calendar) Clone() *Calendar {
	return &Calendar{Schedules: append([]Schedule{}, c.Schedules...)}
}

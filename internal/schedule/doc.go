// Package schedule provides the data model shared by the extractor and the calendar
// generator: meeting records, clock times, weekday sets, and semester date ranges.
//
// The package also owns the day/time grammar used to read institutional shorthand
// such as "MWF 10:00am-10:50am" or "TuTh 3:30pm-4:45pm EST". Each meeting has a
// deterministic SHA1-based key built from its identifying fields, which the
// extractor uses to drop repeated meetings.
package schedule

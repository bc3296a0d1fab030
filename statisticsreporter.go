package seismod

import "log"

// StatisticsReporter is a thin stats consumer: every sampleCount records it
// logs one descriptive-statistics line per axis (mean, min, max,
// peak-to-peak, RMS), then resets. It implements RecordHandler so it can run
// as its own worker off a fan-out subscription.
type StatisticsReporter struct {
	x, y, z *AxisStatistics
}

// NewStatisticsReporter builds a reporter that reduces every sampleCount
// samples per axis.
func NewStatisticsReporter(sampleCount int) *StatisticsReporter {
	return &StatisticsReporter{
		x: NewAxisStatistics(sampleCount),
		y: NewAxisStatistics(sampleCount),
		z: NewAxisStatistics(sampleCount),
	}
}

// Handle feeds one record's three axes into their respective accumulators
// and logs any report that falls out.
func (s *StatisticsReporter) Handle(rec Record) {
	if report, ok := s.x.Add(rec.X); ok {
		logReport("x", report)
	}
	if report, ok := s.y.Add(rec.Y); ok {
		logReport("y", report)
	}
	if report, ok := s.z.Add(rec.Z); ok {
		logReport("z", report)
	}
}

func logReport(axis string, r StatisticsReport) {
	log.Printf("statistics[%s]: mean=%.2f stddev=%.2f min=%d max=%d p2p=%d rms=%.2f",
		axis, r.Mean, r.StdDev, r.Min, r.Max, r.PeakToPeak, r.RMS)
}

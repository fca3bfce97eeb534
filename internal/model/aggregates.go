package model

// Scan targets for grouped aggregate queries.

type CategoryAverage struct {
	Category CompetencyCategory `json:"category"`
	Kind     ScoreKind          `json:"kind"`
	Average  float64            `json:"average"`
	Count    int64              `json:"count"`
}

type ScoreDistribution struct {
	Score int   `json:"score"`
	Count int64 `json:"count"`
}

type AttendanceCounts struct {
	Total    int64 `json:"total"`
	Attended int64 `json:"attended"`
}

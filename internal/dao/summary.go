package dao

// SummaryRequest selects one streaming pass over the configured source.
// Zero values fall back to the configured defaults.
type SummaryRequest struct {
	SampleSize int    `form:"sampleSize" json:"sampleSize" binding:"min=0,max=50000"`
	Freq       string `form:"freq" json:"freq" binding:"omitempty,periodfreq"`
}

// SummaryMeta reports where a summary came from.
type SummaryMeta struct {
	Cached     bool   `json:"cached"`
	Source     string `json:"source"`
	SampleSize int    `json:"sampleSize"`
	Freq       string `json:"freq"`
}

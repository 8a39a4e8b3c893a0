package dao

// HeatmapRequest bounds the industry axis.
type HeatmapRequest struct {
	TopN int `form:"topN" json:"topN" binding:"min=0,max=50"`
}

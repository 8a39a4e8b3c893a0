package dao

// ClusterRequest configures one clustering run.
type ClusterRequest struct {
	Clusters int `form:"clusters" json:"clusters" binding:"min=0,max=20"`
	TopN     int `form:"topN" json:"topN" binding:"min=0,max=200"`
}

// ClusterResponse maps company name to its cluster id. Assignments are
// recomputed per request from the current store snapshot, never persisted.
type ClusterResponse struct {
	Assignments map[string]int `json:"assignments"`
}

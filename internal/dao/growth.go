package dao

// GrowthRequest bounds the ranked movers list.
type GrowthRequest struct {
	TopN int `form:"topN" json:"topN" binding:"min=0,max=50"`
}

// GrowthItem is one ranked mover. PctChange is pre-formatted so infinite
// growth ("new" companies) survives JSON.
type GrowthItem struct {
	Company   string `json:"company"`
	Last      int64  `json:"last"`
	Prev      int64  `json:"prev"`
	PctChange string `json:"pctChange"`
}

type GrowthResponse struct {
	Items []GrowthItem `json:"items"`
}

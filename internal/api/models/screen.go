package models

// PageResponse is one cursor position of a paged screen. Notice is set when
// a next or previous request hit the end of the list and the item is unchanged.
type PageResponse[T any] struct {
	Item   T      `json:"item"`
	Index  int    `json:"index"`
	Total  int    `json:"total"`
	Notice string `json:"notice,omitempty"`
}

// RankingResponse is the air quality ranking, optionally filtered.
type RankingResponse[T any] struct {
	Query   string `json:"query,omitempty"`
	Entries []T    `json:"entries"`
}

// CitiesResponse lists preset cities.
type CitiesResponse[T any] struct {
	Cities []T `json:"cities"`
}

package models

// UserLocation - последняя известная позиция респондента.
// Живет только в памяти процесса, никуда не сохраняется.
type UserLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

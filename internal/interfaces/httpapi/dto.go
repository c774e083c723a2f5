package httpapi

type listDTO[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"totalItems"`
}

type refreshDTO struct {
	Cleared int `json:"cleared"`
}

package model

type DealersResponse struct {
	Dealers []Dealer `json:"dealers"`
}

type SubmitResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Invalid []string `json:"invalid,omitempty"`
}

type ErrorResponse struct {
	Status  int         `json:"status,omitempty"`
	Message string      `json:"msg,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

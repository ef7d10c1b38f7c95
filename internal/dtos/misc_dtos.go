package dtos

type LoginRequest struct {
	Name string `json:"name"`
}

type LoginResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EnumOption struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type EnumsResponse map[string][]EnumOption

type HealthCheckResponse struct {
	Status string `json:"status"`
}

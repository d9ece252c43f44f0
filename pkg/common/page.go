package common

const (
	defaultPageLimit = 50
	maxPageLimit     = 999
)

// PageReq is the skip/limit pagination every list endpoint accepts.
type PageReq struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}

func (p *PageReq) Normalize() {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
}

type PageResp[T any] struct {
	Data  T     `json:"data"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

package model

// PageArgs is 1-indexed pagination: page 2 with perPage 10 covers
// records 11-20.
type PageArgs struct {
	Page    int32
	PerPage int32
}

func (p PageArgs) Skip() int64 {
	return int64(p.Page-1) * int64(p.PerPage)
}

func (p PageArgs) Limit() int64 {
	return int64(p.PerPage)
}

func (p PageArgs) Valid() bool {
	return p.Page >= 1 && p.PerPage >= 1
}

package listview

// Pager tracks the server-driven page window. TotalCount/TotalPages are
// authoritative only after the most recent fetch resolved; they go stale
// the moment filters change and get replaced by the next response.
type Pager struct {
	Page       int `json:"page"` // 1-based
	Size       int `json:"size"`
	TotalCount int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func NewPager(size int) Pager {
	if size <= 0 {
		size = 10
	}
	return Pager{Page: 1, Size: size}
}

func (p *Pager) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	p.Page = n
}

// SetSize resets to page 1 so the next fetch can't land out of range.
func (p *Pager) SetSize(n int) {
	if n < 1 {
		return
	}
	if n != p.Size {
		p.Size = n
		p.Page = 1
	}
}

// ResetPage is what every filter/query change does before refetching.
func (p *Pager) ResetPage() { p.Page = 1 }

func (p *Pager) ApplyTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.TotalCount = total
	if p.Size > 0 {
		p.TotalPages = (total + p.Size - 1) / p.Size
	} else {
		p.TotalPages = 0
	}
}

package listquery

// Window is the derived page-button layout under a list. It is computed on
// demand and never stored.
type Window struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	Start      int   `json:"start"`
	End        int   `json:"end"`
	Pages      []int `json:"pages"`

	ShowFirst        bool `json:"show_first"`
	LeadingEllipsis  bool `json:"leading_ellipsis"`
	ShowLast         bool `json:"show_last"`
	TrailingEllipsis bool `json:"trailing_ellipsis"`

	PrevDisabled bool `json:"prev_disabled"`
	NextDisabled bool `json:"next_disabled"`
	// Disabled greys out every control while a fetch is in flight
	Disabled bool `json:"disabled"`
}

// ComputeWindow lays out at most maxVisible page buttons around page
func ComputeWindow(page, totalPages, maxVisible int, loading bool) Window {
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}
	if totalPages < 1 {
		totalPages = 1
	}
	page = clamp(page, 1, totalPages)

	half := maxVisible / 2
	start := clamp(page-half, 1, max(1, totalPages-maxVisible+1))
	end := min(totalPages, start+maxVisible-1)

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}

	return Window{
		Page:             page,
		TotalPages:       totalPages,
		Start:            start,
		End:              end,
		Pages:            pages,
		ShowFirst:        start > 1,
		LeadingEllipsis:  start > 2,
		ShowLast:         end < totalPages,
		TrailingEllipsis: end < totalPages-1,
		PrevDisabled:     loading || page <= 1,
		NextDisabled:     loading || page >= totalPages,
		Disabled:         loading,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

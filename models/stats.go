package models

import (
	"math"
	"strconv"
)

// Stats are the feed-health counters. ActiveUsers counts distinct authors
// (post or comment) seen in the trailing activity window.
type Stats struct {
	PostsToday   int64  `json:"postsToday"`
	ResolvedRate string `json:"resolvedRate"`
	ActiveUsers  int    `json:"activeUsers"`
	UrgentPosts  int64  `json:"urgentPosts"`
}

// FormatResolvedRate renders the share of posts with at least one comment
// as a whole percentage, e.g. "33%". Zero posts yields "0%".
func FormatResolvedRate(withComments, total int64) string {
	if total == 0 {
		return "0%"
	}
	rate := int(math.Round(float64(withComments) / float64(total) * 100))
	return strconv.Itoa(rate) + "%"
}

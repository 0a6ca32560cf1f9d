package analytics

import (
	"sort"

	"github.com/gitpulse/gitpulse/internal/store"
)

// Size buckets over insertions+deletions.
const (
	smallMax  = 50  // exclusive
	mediumMax = 300 // exclusive
)

// Bucket names.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// CommitSizes is the small/medium/large distribution of a commit stream.
// Percentages are rounded independently and may not sum to 100.
type CommitSizes struct {
	Small     int
	Medium    int
	Large     int
	SmallPct  int
	MediumPct int
	LargePct  int
	// MedianBucket is the bucket of the median commit by total lines
	// changed; empty when there are no commits.
	MedianBucket string
}

func computeCommitSizes(commits []store.Commit) CommitSizes {
	var sizes CommitSizes
	if len(commits) == 0 {
		return sizes
	}

	lines := make([]int, 0, len(commits))
	for _, c := range commits {
		total := c.Insertions + c.Deletions
		lines = append(lines, total)
		switch bucketFor(total) {
		case SizeSmall:
			sizes.Small++
		case SizeMedium:
			sizes.Medium++
		default:
			sizes.Large++
		}
	}

	total := len(commits)
	sizes.SmallPct = pct(sizes.Small, total)
	sizes.MediumPct = pct(sizes.Medium, total)
	sizes.LargePct = pct(sizes.Large, total)

	sort.Ints(lines)
	sizes.MedianBucket = bucketFor(lines[len(lines)/2])
	return sizes
}

func bucketFor(lines int) string {
	switch {
	case lines < smallMax:
		return SizeSmall
	case lines < mediumMax:
		return SizeMedium
	default:
		return SizeLarge
	}
}

package constants

// PageStatus is the canonical review status for archived pages.
type PageStatus string

// Stable values (store these exact strings in DB).
const (
	PageStatusExtracted PageStatus = "EXTRACTED" // fields extracted and normalized
	PageStatusReview    PageStatus = "REVIEW"    // flagged for manual review
	PageStatusReviewed  PageStatus = "REVIEWED"  // manually confirmed
)

// MinModelConfidence is the default threshold below which extracted pages
// are flagged for review.
const MinModelConfidence float32 = 0.60

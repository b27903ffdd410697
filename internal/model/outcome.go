package model

// OutcomeKind is the terminal classification of one pipeline run.
type OutcomeKind string

const (
	OutcomeInstantLinks OutcomeKind = "instant_links"
	OutcomeHostedLink   OutcomeKind = "hosted_link"
	OutcomeFailed       OutcomeKind = "failed"
)

// FailReason explains a failed outcome.
type FailReason string

const (
	FailTooLarge FailReason = "too_large"
	FailUpload   FailReason = "upload_error"
	FailInternal FailReason = "internal_error"
)

// LinkSet holds the instant links produced for one file without re-uploading its
// content. The URLs embed the short id, the integrity hash and the sanitized display
// name; whoever serves the configured base URL resolves them back through the record
// store.
type LinkSet struct {
	ShortID int    `json:"short_id"`
	Hash    string `json:"hash"`
	Direct  string `json:"direct"`
	Stream  string `json:"stream"`
}

// Outcome is the terminal result of one pipeline run. Exactly one Outcome is produced
// per inbound file event; it is reported to the user and logged, never persisted.
type Outcome struct {
	Kind   OutcomeKind
	Links  *LinkSet
	Hosted string
	Reason FailReason
	Err    error
}

// Instant builds an InstantLinks outcome.
func Instant(links *LinkSet) Outcome {
	return Outcome{Kind: OutcomeInstantLinks, Links: links}
}

// Hosted builds a HostedLink outcome.
func HostedOutcome(url string) Outcome {
	return Outcome{Kind: OutcomeHostedLink, Hosted: url}
}

// Fail builds a Failed outcome. err may be nil for pre-validated rejections.
func Fail(reason FailReason, err error) Outcome {
	return Outcome{Kind: OutcomeFailed, Reason: reason, Err: err}
}

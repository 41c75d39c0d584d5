package tui

import "intelhub/types"

// Messages for the tea program

type runCompleteMsg struct {
	run types.RunRecord
	err error
}

type digestsCompleteMsg struct {
	digests int
	err     error
}

type healthMsg struct {
	ok bool
}

package queries

import "doodle/contexts/community-scheduling/doodle-poll/domain/entities"

// EligibilityContext describes the page the poll is rendered into.
type EligibilityContext struct {
	IsOpen           bool
	DisplayMode      entities.DisplayMode
	IsLatestRevision bool
}

// AcceptsActions reports whether a submitted form may be applied: the page is
// shown normally and the latest revision is being viewed. It does not look at
// IsOpen.
func AcceptsActions(ctx EligibilityContext) bool {
	return ctx.DisplayMode == entities.DisplayModeShow && ctx.IsLatestRevision
}

// CanVote reports whether the vote input row should be offered.
func CanVote(ctx EligibilityContext) bool {
	return ctx.IsOpen && AcceptsActions(ctx)
}

func ResultLabelFor(config entities.PollConfig) entities.ResultLabel {
	if config.IsOpen {
		return entities.ResultLabelCount
	}
	return entities.ResultLabelFinalResult
}

func InputTypeFor(config entities.PollConfig) entities.InputType {
	if config.VoteType == entities.VoteTypeMulti {
		return entities.InputTypeCheckbox
	}
	return entities.InputTypeRadio
}

package markup

import (
	"fmt"
	"regexp"
	"strings"

	"doodle/contexts/community-scheduling/doodle-poll/domain/entities"
	domainerrors "doodle/contexts/community-scheduling/doodle-poll/domain/errors"
)

const (
	openTag  = "<doodlesimple"
	closeTag = "</doodlesimple>"
)

var (
	attributePattern = regexp.MustCompile(`(\w+?)="(.*?)"`)
	optionPattern    = regexp.MustCompile(`(?m)^   \* (.*?)$`)
	voteTypePattern  = regexp.MustCompile(`single|multi`)
	sortModePattern  = regexp.MustCompile(`name|time`)
)

// ParseBlock reads a poll block of the form
//
//	<doodlesimple title="..." voteType="single|multi" sortedBy="name|time" isOpen="true|false">
//	   * Option 1
//	   * Option 2 **bold** \\ __underlined__
//	</doodlesimple>
//
// The surrounding tags are optional. The returned title is trimmed but not
// escaped; options are escaped and decorated. A block with no options yields
// an empty option list, not an error.
func ParseBlock(block string) (entities.PollConfig, []string, error) {
	const op = "markup.ParseBlock"

	body := strings.TrimSpace(block)
	if strings.HasPrefix(body, openTag) {
		body = strings.TrimPrefix(body, openTag)
		body = strings.TrimSuffix(body, closeTag)
	}

	parameters, choices, found := strings.Cut(body, ">")
	if !found {
		return entities.PollConfig{}, nil, fmt.Errorf("%s: %w: missing '>' after parameters", op, domainerrors.ErrInvalidPollMarkup)
	}

	return parseParameters(parameters), ParseOptions(choices), nil
}

func parseParameters(raw string) entities.PollConfig {
	config := entities.DefaultPollConfig()
	for _, match := range attributePattern.FindAllStringSubmatch(raw, -1) {
		name := strings.ToUpper(match[1])
		value := match[2]
		switch name {
		case "TITLE":
			config.Title = strings.TrimSpace(value)
		case "VOTETYPE":
			if voteTypePattern.MatchString(value) {
				config.VoteType = entities.VoteType(value)
			}
		case "SORTEDBY":
			if sortModePattern.MatchString(value) {
				if value == string(entities.SortByName) {
					config.SortMode = entities.SortByName
				} else {
					config.SortMode = entities.SortByTime
				}
			}
		case "ISOPEN":
			config.IsOpen = strings.EqualFold(value, "true")
		}
	}
	return config.Normalized()
}

// ParseOptions extracts the list items ("   * text") in source order,
// dropping items that are empty after trimming.
func ParseOptions(raw string) []string {
	options := make([]string, 0)
	for _, match := range optionPattern.FindAllStringSubmatch(raw, -1) {
		if option, ok := EncodeOption(match[1]); ok {
			options = append(options, option)
		}
	}
	return options
}

package bot

import (
	"strconv"

	"github.com/kballard/go-shellquote"

	"github.com/m3rciful/findyourad/internal/domain"
	"github.com/m3rciful/findyourad/internal/service"
)

// parseAddRequest splits a raw /add_request message into its input.
// Quoted segments keep spaces: /add_request 'Описание' 5000 'it,tech' 49.99
func parseAddRequest(text string) (service.AddRequestInput, error) {
	parts, err := shellquote.Split(text)
	if err != nil {
		return service.AddRequestInput{}, &domain.ValidationError{Field: "args", Reason: "unbalanced quotes"}
	}
	if len(parts) < 5 {
		return service.AddRequestInput{}, &domain.ValidationError{Field: "args", Reason: "expected description, audience, tags, price"}
	}

	audience, err := strconv.Atoi(parts[2])
	if err != nil {
		return service.AddRequestInput{}, &domain.ValidationError{Field: "audience", Reason: "not a number"}
	}
	price, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return service.AddRequestInput{}, &domain.ValidationError{Field: "price", Reason: "not a number"}
	}

	return service.AddRequestInput{
		Description: parts[1],
		Audience:    audience,
		Tags:        parts[3],
		Price:       price,
	}, nil
}

// parseAddChannel splits a raw /add_channel message into its input.
// Argument order differs from /add_request: price comes before tags.
func parseAddChannel(text string) (service.AddChannelInput, error) {
	parts, err := shellquote.Split(text)
	if err != nil {
		return service.AddChannelInput{}, &domain.ValidationError{Field: "args", Reason: "unbalanced quotes"}
	}
	if len(parts) < 5 {
		return service.AddChannelInput{}, &domain.ValidationError{Field: "args", Reason: "expected channel, name, price, tags"}
	}

	price, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return service.AddChannelInput{}, &domain.ValidationError{Field: "price", Reason: "not a number"}
	}

	return service.AddChannelInput{
		Link:         parts[1],
		Name:         parts[2],
		PricePerPost: price,
		Tags:         parts[4],
	}, nil
}

// parsePage reads an optional page argument; anything non-numeric means page 1.
func parsePage(args []string) int {
	if len(args) == 0 {
		return 1
	}
	page, err := strconv.Atoi(args[0])
	if err != nil {
		return 1
	}
	return page
}

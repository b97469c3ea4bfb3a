package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedInput is returned when the invocation event does not carry
// a list of URL strings under "urls".
var ErrMalformedInput = errors.New("malformed input")

type Event struct {
	URLs []string `json:"urls"`
}

// DecodeEvent validates the raw invocation payload and unpacks it.
// An empty list is valid and results in no submissions.
func DecodeEvent(raw []byte) (Event, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Event{}, fmt.Errorf("%w: event is not an object: %s", ErrMalformedInput, err.Error())
	}

	urls, ok := fields["urls"]
	if !ok || string(urls) == "null" {
		return Event{}, fmt.Errorf("%w: missing urls", ErrMalformedInput)
	}

	var event Event
	if err := json.Unmarshal(urls, &event.URLs); err != nil {
		return Event{}, fmt.Errorf("%w: urls is not a list of strings: %s", ErrMalformedInput, err.Error())
	}
	return event, nil
}

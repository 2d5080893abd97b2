package botkit

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrEmptyArgs = errors.New("command arguments are empty")

// ParseJSON разбирает аргументы команды вида /cmd {"key": "value"}
func ParseJSON[T any](src string) (T, error) {
	var args T

	src = strings.TrimSpace(src)
	if src == "" {
		return args, ErrEmptyArgs
	}

	if err := json.Unmarshal([]byte(src), &args); err != nil {
		return args, err
	}

	return args, nil
}

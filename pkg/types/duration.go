package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDuration возвращается при некорректной записи длительности
var ErrInvalidDuration = errors.New("invalid duration format")

// ParseDuration переводит длительность в минуты
// Поддерживаемые форматы: "HH:MM:SS", "HH:MM" и целое число минут ("45")
// Секунды отбрасываются
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidDuration)
	}

	if !strings.Contains(s, ":") {
		minutes, err := strconv.Atoi(s)
		if err != nil || minutes < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		return minutes, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	values := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		if i > 0 && v > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		values[i] = v
	}

	return values[0]*60 + values[1], nil
}

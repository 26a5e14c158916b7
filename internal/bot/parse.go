package bot

import (
	"fmt"
	"strconv"
)

// ParseChatID extracts a numeric chat ID from command arguments.
func ParseChatID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("chat ID is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chat ID %q", args[0])
	}
	return id, nil
}

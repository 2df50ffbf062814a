package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// FormatBalance formats an amount of bucks with thousand separators
func FormatBalance(balance int64) string {
	str := fmt.Sprintf("%d", balance)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// GetDisplayName returns the server-specific display name for a user.
// Falls back to username if nickname is not set or if there's an error.
func GetDisplayName(s *discordgo.Session, guildID, userID string) string {
	member, err := s.GuildMember(guildID, userID)
	if err == nil && member != nil {
		if member.Nick != "" {
			return member.Nick
		}
		if member.User != nil {
			return member.User.Username
		}
	}

	user, err := s.User(userID)
	if err == nil && user != nil {
		return user.Username
	}

	return "Unknown"
}

// GetDisplayNameInt64 is a convenience wrapper that accepts int64 user IDs
func GetDisplayNameInt64(s *discordgo.Session, guildID string, userID int64) string {
	return GetDisplayName(s, guildID, strconv.FormatInt(userID, 10))
}

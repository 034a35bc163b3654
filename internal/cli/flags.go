package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

const dateLayout = "2006-01-02"

func addProjectFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVarP(target, "project", "p", "", "Project short ID or UUID")
}

func addMemberFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVarP(target, "member", "m", "", "Member name, email or UUID")
}

// parseDate parses a YYYY-MM-DD flag value at midnight in loc.
func parseDate(flag, value string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q (want YYYY-MM-DD)", flag, value)
	}
	return d, nil
}

// optionalDate parses value when the flag was set. An empty value clears it.
func optionalDate(fs *pflag.FlagSet, flag, value string, loc *time.Location) (set bool, d *time.Time, err error) {
	if !fs.Changed(flag) {
		return false, nil, nil
	}
	if strings.TrimSpace(value) == "" {
		return true, nil, nil
	}
	parsed, err := parseDate(flag, value, loc)
	if err != nil {
		return true, nil, err
	}
	return true, &parsed, nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

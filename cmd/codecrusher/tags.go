package main

import (
	"regexp"
	"strings"

	"github.com/sagarc03/codecrusher/config"
)

// negativeNumber matches tokens such as "-1" or "-.5". No flag looks like a
// number, so these are values, not flags.
var negativeNumber = regexp.MustCompile(`^-\d+$|^-\d*\.\d+$`)

// expandTagArgs rewrites "--tags a b c" into "--tags=a --tags=b --tags=c" so
// the flag takes several space separated values. Values are consumed up to
// the next argument starting with "-" that is not a negative number. A bare
// "--tags" with no values is left for the flag parser to reject. Nothing
// after "--" is touched.
//
// The result is never nil.
func expandTagArgs(args []string) []string {
	flag := "--" + config.FlagTags
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if arg != flag {
			out = append(out, arg)
			continue
		}

		j := i + 1
		for j < len(args) && isTagValue(args[j]) {
			out = append(out, flag+"="+args[j])
			j++
		}
		if j == i+1 {
			out = append(out, arg)
		}
		i = j - 1
	}

	return out
}

func isTagValue(arg string) bool {
	return !strings.HasPrefix(arg, "-") || negativeNumber.MatchString(arg)
}

package runlog

import "strings"

const redacted = "<redacted>"

// SanitizeArgs returns a copy of args with the value of the --password
// flag (-p) replaced. It understands every spelling pflag accepts:
// "--password v", "--password=v", "-p v", "-p=v" and "-pv".
func SanitizeArgs(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)

	for i := 0; i < len(out); i++ {
		arg := out[i]
		switch {
		case arg == "--":
			return out
		case arg == "--password" || arg == "-p":
			if i+1 < len(out) {
				out[i+1] = redacted
				i++
			} else {
				out = append(out, redacted)
			}
		case strings.HasPrefix(arg, "--password="):
			out[i] = "--password=" + redacted
		case strings.HasPrefix(arg, "-p="):
			out[i] = "-p=" + redacted
		case strings.HasPrefix(arg, "-p") && !strings.HasPrefix(arg, "--"):
			out[i] = "-p" + redacted
		}
	}
	return out
}

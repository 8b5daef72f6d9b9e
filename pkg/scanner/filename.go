package scanner

import "strings"

// TargetFilename derives the record filename stem for a target by keeping
// only its alphanumeric characters, matching the naming scheme the bulk
// scan wrapper has always used. Distinct targets can collide after
// filtering; the driver warns when that happens within a run but the later
// file still overwrites the earlier one.
func TargetFilename(target string) string {
	var b strings.Builder
	for _, r := range target {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "target"
	}
	return b.String()
}

// Package codec converts between the free-text lora spec DSL and the
// structured entry list. Decode is lossy about formatting; Encode is
// surgical and preserves all non-token text byte-for-byte, so repeated
// round-trips cannot corrupt text the user typed.
package codec

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lorabridge/lorabridge/internal/core/domain"
)

// tokenRE matches <lora:name>, <lora:name:strength> and
// <lora:name:strength:clip>. Strength fields that fail to parse as
// floats make the token malformed; malformed tokens are plain text.
var tokenRE = regexp.MustCompile(`<lora:([^:<>]+)(?::([^:<>]+))?(?::([^:<>]+))?>`)

// Decode extracts every well-formed lora token from text, left to
// right. Malformed tokens are skipped and remain plain text. A missing
// strength defaults to 1.0. Duplicate names collapse to the last
// occurrence's strengths at the first occurrence's position. Decoded
// entries are active: the text has no notion of a disabled entry.
func Decode(text string) domain.EntryList {
	var list domain.EntryList
	for _, m := range tokenRE.FindAllStringSubmatch(text, -1) {
		e, ok := parseToken(m[1], m[2], m[3])
		if !ok {
			continue
		}
		if i := list.Index(e.Name); i >= 0 {
			list[i].Strength = e.Strength
			list[i].ClipStrength = e.ClipStrength
			continue
		}
		list = append(list, e)
	}
	return list
}

// Encode rewrites only the token regions of previousText to reflect
// entries, matched by name. Tokens whose entry was removed are deleted,
// duplicate tokens of an already-emitted name are deleted, entries with
// no token are appended at the end, and a token whose parsed values
// already match its entry is kept verbatim so well-formed text
// round-trips to identity. Everything that is not a well-formed token
// is preserved byte-for-byte.
func Encode(previousText string, entries domain.EntryList) string {
	emitted := make(map[string]bool, len(entries))

	var b strings.Builder
	last := 0
	for _, idx := range tokenRE.FindAllStringSubmatchIndex(previousText, -1) {
		start, end := idx[0], idx[1]
		b.WriteString(previousText[last:start])
		last = end

		raw := previousText[start:end]
		e, ok := parseToken(group(previousText, idx, 1), group(previousText, idx, 2), group(previousText, idx, 3))
		if !ok {
			// Malformed token: plain text, keep it.
			b.WriteString(raw)
			continue
		}

		i := entries.Index(e.Name)
		if i < 0 || emitted[e.Name] {
			// Entry removed, or duplicate of a token already written.
			continue
		}
		emitted[e.Name] = true

		cur := entries[i]
		if e.Strength == cur.Strength && e.ClipStrength == cur.ClipStrength {
			b.WriteString(raw)
		} else {
			b.WriteString(FormatToken(cur))
		}
	}
	b.WriteString(previousText[last:])

	out := b.String()
	for _, e := range entries {
		if emitted[e.Name] {
			continue
		}
		if out != "" && !strings.HasSuffix(out, " ") {
			out += " "
		}
		out += FormatToken(e)
	}
	return out
}

// Merge unions incoming into current by name. An entry present in both
// keeps current's Active flag and position but adopts incoming's
// strengths; entries only in incoming are appended active; entries only
// in current are kept unchanged. Merge is total and deterministic, and
// merging a list with itself is the identity.
func Merge(incoming, current domain.EntryList) domain.EntryList {
	byName := make(map[string]domain.Entry, len(incoming))
	for _, e := range incoming {
		byName[e.Name] = e
	}

	out := make(domain.EntryList, 0, len(current)+len(incoming))
	for _, c := range current {
		if inc, ok := byName[c.Name]; ok {
			c.Strength = inc.Strength
			c.ClipStrength = inc.ClipStrength
		}
		out = append(out, c)
	}
	for _, e := range incoming {
		if current.Index(e.Name) >= 0 {
			continue
		}
		e.Active = true
		out = append(out, e)
	}
	return out
}

// FormatToken renders an entry as its canonical token. The clip
// strength argument is emitted only when it meaningfully differs from
// the model strength, matching the remote service's formatting.
func FormatToken(e domain.Entry) string {
	if e.SplitStrength() {
		return "<lora:" + e.Name + ":" + formatStrength(e.Strength) + ":" + formatStrength(e.ClipStrength) + ">"
	}
	return "<lora:" + e.Name + ":" + formatStrength(e.Strength) + ">"
}

func formatStrength(s float64) string {
	return strconv.FormatFloat(s, 'g', -1, 64)
}

// parseToken builds an entry from the three token groups. It reports
// false when a present strength field does not parse as a float.
func parseToken(name, strength, clip string) (domain.Entry, bool) {
	e := domain.Entry{Name: name, Strength: 1.0, Active: true}
	if strength != "" {
		v, err := strconv.ParseFloat(strength, 64)
		if err != nil {
			return domain.Entry{}, false
		}
		e.Strength = v
	}
	e.ClipStrength = e.Strength
	if clip != "" {
		v, err := strconv.ParseFloat(clip, 64)
		if err != nil {
			return domain.Entry{}, false
		}
		e.ClipStrength = v
	}
	return e, true
}

// group extracts submatch n from a FindAllStringSubmatchIndex entry,
// returning "" for an absent optional group.
func group(s string, idx []int, n int) string {
	if idx[2*n] < 0 {
		return ""
	}
	return s[idx[2*n]:idx[2*n+1]]
}

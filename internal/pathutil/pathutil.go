package pathutil

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

const (
	MapFile         = "map.txt"
	DisabledSuffix  = ".disabled"
	DefaultMaxPath  = 512
	maxExtensionLen = 5
)

var ErrPathTooLong = errors.New("path too long")

func fold(s string) string {
	return cases.Fold().String(s)
}

// PrefixMatch reports whether s begins with prefix, ignoring case.
func PrefixMatch(prefix, s string) bool {
	return strings.HasPrefix(fold(s), fold(prefix))
}

// SuffixMatch reports whether s ends with suffix, ignoring case.
func SuffixMatch(suffix, s string) bool {
	return strings.HasSuffix(fold(s), fold(suffix))
}

func ExactMatch(a, b string) bool {
	return a == b
}

// CompareFold orders two labels case-insensitively.
func CompareFold(a, b string) int {
	return strings.Compare(fold(a), fold(b))
}

func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") || SuffixMatch(DisabledSuffix, name) || name == MapFile
}

// Check returns ErrPathTooLong when p exceeds limit bytes. A limit of zero
// or less disables the check.
func Check(p string, limit int) error {
	if limit > 0 && len(p) > limit {
		return fmt.Errorf("%w: %d > %d bytes: %s", ErrPathTooLong, len(p), limit, p)
	}
	return nil
}

// Under reports whether p is root itself or a descendant of it.
func Under(root, p string) bool {
	return p == root || strings.HasPrefix(p, root+"/")
}

// DisplayName derives the user-facing label for a file or directory path.
// platform, when non-empty, is dropped if it is the final path component so
// that Tools/<platform> reads as Tools.
func DisplayName(p, platform string) string {
	work := p
	if platform != "" && SuffixMatch("/"+platform, work) {
		work = work[:strings.LastIndex(work, "/")]
	}

	name := work
	if i := strings.LastIndex(work, "/"); i >= 0 {
		name = work[i+1:]
	}

	for {
		dot := strings.LastIndex(name, ".")
		if dot < 0 {
			break
		}
		ext := len(name) - dot
		if ext <= 2 || ext > maxExtensionLen {
			break
		}
		name = name[:dot]
	}

	stripped := name
	for {
		cut := strings.LastIndex(name, "(")
		if cut < 0 {
			cut = strings.LastIndex(name, "[")
		}
		if cut <= 0 {
			break
		}
		name = name[:cut]
	}
	if name == "" {
		name = stripped
	}

	trimmed := strings.TrimRightFunc(name, unicode.IsSpace)
	if trimmed == "" && name != "" {
		return name[:1]
	}
	return trimmed
}

// SystemDir returns the first path segment below romRoot, or the basename
// of p when p is not under romRoot.
func SystemDir(p, romRoot string) string {
	if romRoot != "" && PrefixMatch(romRoot+"/", p) {
		rest := p[len(romRoot)+1:]
		if i := strings.Index(rest, "/"); i >= 0 {
			return rest[:i]
		}
		return rest
	}
	return path.Base(p)
}

// EmuTag extracts the emulator tag for a ROM path, e.g. "GB" from
// "/mnt/SDCARD/Roms/Game Boy (GB)/mario.gb".
func EmuTag(p, romRoot string) string {
	segment := p
	if romRoot != "" && PrefixMatch(romRoot+"/", p) {
		segment = SystemDir(p, romRoot)
	}

	open := strings.LastIndex(segment, "(")
	if open < 0 {
		return segment
	}
	tag := segment[open+1:]
	if end := strings.Index(tag, ")"); end >= 0 {
		tag = tag[:end]
	}
	if tag == "" {
		return segment
	}
	return tag
}

// AlphaBucket classifies a label by its first letter: 0 for anything that is
// not a-z, 1..26 otherwise.
func AlphaBucket(name string) int {
	if name == "" {
		return 0
	}
	c := unicode.ToLower(rune(name[0]))
	if c >= 'a' && c <= 'z' {
		return int(c-'a') + 1
	}
	return 0
}

// TrimSortingMeta drops a leading ordering prefix such as "001) " from a
// label. The input is returned unchanged when no prefix is present.
func TrimSortingMeta(name string) string {
	i := 0
	for i < len(name) && name[i] >= '0' && name[i] <= '9' {
		i++
	}
	if i >= len(name) || name[i] != ')' {
		return name
	}
	return strings.TrimLeft(name[i+1:], " \t")
}

// NormalizeLine strips a trailing CRLF or LF.
func NormalizeLine(line string) string {
	return strings.TrimRight(line, "\r\n")
}

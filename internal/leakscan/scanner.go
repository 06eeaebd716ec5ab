// Package leakscan evaluates staged file names and staged diff content
// against a fixed rule table before a commit is finalized. Any single
// match blocks. The scanner sees added lines only, so pre-existing
// committed secrets are not re-flagged on unrelated changes.
package leakscan

import (
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/pushwatch/internal/model"
)

// maxEvidence caps reported evidence so the report itself
// never leaks a full secret value.
const maxEvidence = 100

// Line is one added line of a staged diff, attributed to its file.
type Line struct {
	File string
	Text string
}

// Scanner holds the compiled rule tables and exclusion list.
type Scanner struct {
	filenameRules []FilenameRule
	contentRules  []ContentRule
	excluded      []string
}

// New returns a Scanner with the built-in rule tables.
func New() *Scanner {
	return &Scanner{
		filenameRules: DefaultFilenameRules,
		contentRules:  DefaultContentRules,
		excluded:      DefaultExcludedPaths,
	}
}

// AddFilenameRule appends an operator-defined filename pattern.
func (s *Scanner) AddFilenameRule(id, pattern string) {
	s.filenameRules = append(s.filenameRules, FilenameRule{ID: id, Pattern: pattern})
}

// AddContentRule compiles and appends an operator-defined content regex.
func (s *Scanner) AddContentRule(id, expr string) error {
	re, err := regexp.Compile(expr)
	if err != nil {
		return err
	}
	s.contentRules = append(s.contentRules, ContentRule{ID: id, Re: re})
	return nil
}

// Exclude adds a path to the never-scanned list.
func (s *Scanner) Exclude(p string) {
	s.excluded = append(s.excluded, p)
}

// Rules returns the active rule identifiers for display.
func (s *Scanner) Rules() (filenames, contents []string) {
	for _, r := range s.filenameRules {
		filenames = append(filenames, r.ID+"  "+r.Pattern)
	}
	for _, r := range s.contentRules {
		contents = append(contents, r.ID+"  "+r.Re.String())
	}
	return filenames, contents
}

// Scan evaluates staged file names and added diff lines against the
// rule tables and returns a single verdict. Both checks run in full so
// the verdict carries every match, not just the first.
func (s *Scanner) Scan(files []string, added []Line) model.ScanVerdict {
	var v model.ScanVerdict

	for _, f := range files {
		if s.isExcluded(f) {
			continue
		}
		for _, r := range s.filenameRules {
			if matchFilename(r.Pattern, f) {
				v.Matches = append(v.Matches, model.RuleMatch{
					RuleID:   r.ID,
					File:     f,
					Evidence: truncate(f),
				})
				break
			}
		}
	}

	for _, line := range added {
		if s.isExcluded(line.File) {
			continue
		}
		for _, r := range s.contentRules {
			if m := r.Re.FindString(line.Text); m != "" {
				v.Matches = append(v.Matches, model.RuleMatch{
					RuleID:   r.ID,
					File:     line.File,
					Evidence: truncate(m),
				})
				break
			}
		}
	}

	v.Blocked = len(v.Matches) > 0
	return v
}

// isExcluded reports whether p is on the never-scan list.
func (s *Scanner) isExcluded(p string) bool {
	p = strings.TrimPrefix(p, "./")
	for _, ex := range s.excluded {
		if p == ex || strings.HasSuffix(p, "/"+ex) {
			return true
		}
	}
	return false
}

// matchFilename matches pattern against the basename, or as a path
// suffix when the pattern itself contains a slash (e.g. .aws/credentials).
func matchFilename(pattern, file string) bool {
	if strings.Contains(pattern, "/") {
		return file == pattern || strings.HasSuffix(file, "/"+pattern)
	}
	ok, err := path.Match(pattern, path.Base(file))
	return err == nil && ok
}

// truncate bounds evidence to maxEvidence bytes, backing off to a rune
// boundary so reported evidence is always valid UTF-8.
func truncate(s string) string {
	if len(s) <= maxEvidence {
		return s
	}
	cut := maxEvidence
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

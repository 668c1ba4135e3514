package workflow

import (
	"regexp"
	"strings"
)

// Extraction is deliberately conservative: simple deterministic patterns with
// safe defaults, so a wrong guess falls through to escalation or generic
// handling instead of acting against the wrong resource.

var (
	quotedRe  = regexp.MustCompile(`"([^"]+)"`)
	courseRe  = regexp.MustCompile(`(?i)course[:\s]+([A-Za-z][\w\s]+)`)
	docSiteRe = regexp.MustCompile(`(?i)sharepoint\s+(\w+)`)
)

// defaultCourseName is used when no course can be extracted; the learning
// system treats it as "the requester's current course".
const defaultCourseName = "Your Course"

// extractCourseName pulls a course name from the subject/content: a quoted
// title wins, then a "course: X" capture, then the safe default.
func extractCourseName(subject, content string) string {
	combined := subject + " " + content

	if m := quotedRe.FindStringSubmatch(combined); m != nil {
		return m[1]
	}
	if m := courseRe.FindStringSubmatch(combined); m != nil {
		return strings.TrimSpace(m[1])
	}
	return defaultCourseName
}

// AccessKind selects which provisioning capability serves an access request.
type AccessKind int

const (
	AccessGeneric AccessKind = iota
	AccessChatOps
	AccessDocSite
)

// AccessTarget names the system an access request is about.
type AccessTarget struct {
	Kind AccessKind
	Name string
}

// extractAccessTarget classifies what the requester wants access to.
// Unrecognized systems map to the generic kind so no provisioning call is
// made against a guessed resource.
func extractAccessTarget(subject, content string) AccessTarget {
	combined := strings.ToLower(subject + " " + content)

	if strings.Contains(combined, "slack") {
		return AccessTarget{Kind: AccessChatOps, Name: "Slack"}
	}
	if strings.Contains(combined, "sharepoint") {
		if m := docSiteRe.FindStringSubmatch(combined); m != nil {
			return AccessTarget{Kind: AccessDocSite, Name: "SharePoint " + capitalize(m[1])}
		}
		return AccessTarget{Kind: AccessDocSite, Name: "SharePoint"}
	}
	if strings.Contains(combined, "jira") {
		return AccessTarget{Kind: AccessGeneric, Name: "Jira"}
	}
	if strings.Contains(combined, "confluence") {
		return AccessTarget{Kind: AccessGeneric, Name: "Confluence"}
	}
	return AccessTarget{Kind: AccessGeneric, Name: "System Access"}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCourseName(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		content string
		want    string
	}{
		{
			name:    "quoted title in subject wins",
			subject: `Please mark "Security Fundamentals" complete`,
			content: "I finished it last week",
			want:    "Security Fundamentals",
		},
		{
			name:    "quoted title in content",
			subject: "Course completion",
			content: `I completed "Data Privacy 101" yesterday`,
			want:    "Data Privacy 101",
		},
		{
			name:    "course prefix capture",
			subject: "Completion request",
			content: "Please update my record for course: Compliance Training",
			want:    "Compliance Training",
		},
		{
			name:    "no signal falls back to default",
			subject: "Help",
			content: "I finished my training",
			want:    defaultCourseName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCourseName(tt.subject, tt.content))
		})
	}
}

func TestExtractAccessTarget(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		content  string
		wantKind AccessKind
		wantName string
	}{
		{
			name:     "slack maps to chat ops",
			subject:  "Need Slack access",
			content:  "",
			wantKind: AccessChatOps,
			wantName: "Slack",
		},
		{
			name:     "sharepoint with site name",
			subject:  "Access request",
			content:  "please add me to the SharePoint finance site",
			wantKind: AccessDocSite,
			wantName: "SharePoint Finance",
		},
		{
			name:     "sharepoint trailing keyword keeps bare name",
			subject:  "Need sharepoint",
			content:  "",
			wantKind: AccessDocSite,
			wantName: "SharePoint",
		},
		{
			name:     "jira is generic",
			subject:  "Jira access please",
			content:  "",
			wantKind: AccessGeneric,
			wantName: "Jira",
		},
		{
			name:     "confluence is generic",
			subject:  "",
			content:  "need a confluence account",
			wantKind: AccessGeneric,
			wantName: "Confluence",
		},
		{
			name:     "unknown system stays generic",
			subject:  "Access to the reporting dashboard",
			content:  "",
			wantKind: AccessGeneric,
			wantName: "System Access",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractAccessTarget(tt.subject, tt.content)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantName, got.Name)
		})
	}
}

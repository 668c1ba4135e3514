package systems

import "strings"

// Article is one knowledge-base entry. BaseRelevance is the article's standing
// score before query matching adjusts it.
type Article struct {
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Keywords      []string `json:"keywords"`
	BaseRelevance float64  `json:"baseRelevance"`
}

// DefaultArticles seeds the knowledge base with the self-service articles the
// support team maintains.
func DefaultArticles() []Article {
	return []Article{
		{
			Title:         "How to Export Data to CSV or Excel",
			URL:           "https://kb.example.com/data-export",
			Keywords:      []string{"export", "data", "csv", "excel", "download", "spreadsheet"},
			BaseRelevance: 0.95,
		},
		{
			Title:         "How to Reset Your Password",
			URL:           "https://kb.example.com/password-reset",
			Keywords:      []string{"password", "reset", "forgot", "login"},
			BaseRelevance: 0.95,
		},
		{
			Title:         "Account Lockout Troubleshooting",
			URL:           "https://kb.example.com/account-lockout",
			Keywords:      []string{"lock", "locked", "lockout", "account", "unlock"},
			BaseRelevance: 0.88,
		},
		{
			Title:         "Accessing SharePoint Sites",
			URL:           "https://kb.example.com/sharepoint-access",
			Keywords:      []string{"sharepoint", "access", "permission", "site"},
			BaseRelevance: 0.82,
		},
		{
			Title:         "Printer Setup and Troubleshooting Guide",
			URL:           "https://kb.example.com/printer-setup",
			Keywords:      []string{"printer", "print", "printing", "setup", "install"},
			BaseRelevance: 0.79,
		},
		{
			Title:         "Email Notification Settings",
			URL:           "https://kb.example.com/email-notifications",
			Keywords:      []string{"email", "notification", "alerts", "receiving"},
			BaseRelevance: 0.75,
		},
	}
}

const (
	relevanceCeiling = 0.98
	keywordBoost     = 0.1
	noMatchDecay     = 0.3
)

// scoreArticle adjusts an article's relevance for a query: each matched
// keyword boosts the base score up to the ceiling, and an article with no
// keyword match decays hard so it cannot clear the resolution threshold.
func scoreArticle(a Article, queryLower string) (relevance float64, matched int) {
	for _, kw := range a.Keywords {
		if strings.Contains(queryLower, kw) {
			matched++
		}
	}
	if matched == 0 {
		return a.BaseRelevance * noMatchDecay, 0
	}
	relevance = a.BaseRelevance + float64(matched)*keywordBoost
	if relevance > relevanceCeiling {
		relevance = relevanceCeiling
	}
	return relevance, matched
}

// bestMatch scores every article against the query and returns the highest
// scorer. ok is false only for an empty article set.
func bestMatch(articles []Article, query string) (best Article, relevance float64, matched int, ok bool) {
	if len(articles) == 0 {
		return Article{}, 0, 0, false
	}
	queryLower := strings.ToLower(query)
	relevance = -1
	for _, a := range articles {
		score, n := scoreArticle(a, queryLower)
		if score > relevance {
			best, relevance, matched = a, score, n
		}
	}
	return best, relevance, matched, true
}

package digest

import (
	"fmt"
	"net/url"
	"strings"
)

// PlainText renders the digest as a numbered list for the clipboard.
func PlainText(d *Digest) string {
	if d == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top %d Jobs For You - 9AM Digest\n", len(d.Jobs))
	fmt.Fprintf(&b, "%s\n", d.DateKey)

	for i, job := range d.Jobs {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, job.Title)
		fmt.Fprintf(&b, "   Company: %s\n", job.Company)
		fmt.Fprintf(&b, "   Location: %s\n", job.Location)
		fmt.Fprintf(&b, "   Match Score: %d%%\n", job.MatchScore)
		fmt.Fprintf(&b, "   Apply: %s\n", job.ApplyURL)
	}

	return b.String()
}

// Subject is the mail subject used by MailtoLink.
func Subject(d *Digest) string {
	return "My 9AM Job Digest - " + d.DateKey
}

// MailtoLink builds a draft link whose body is PlainText.
func MailtoLink(d *Digest) string {
	if d == nil {
		return ""
	}
	return "mailto:?subject=" + escape(Subject(d)) + "&body=" + escape(PlainText(d))
}

// escape percent-encodes spaces too; mail clients do not decode "+".
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

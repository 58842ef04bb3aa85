package seo

import (
	"strings"
)

// AICrawlers are the answer-engine and training crawlers the site welcomes.
var AICrawlers = []string{
	"GPTBot",
	"ChatGPT-User",
	"Google-Extended",
	"GoogleOther",
	"anthropic-ai",
	"Claude-Web",
	"PerplexityBot",
	"Bytespider",
	"CCBot",
}

var privatePrefixes = []string{"/api/", "/admin/", "/widgets/"}

// RobotsGroup is one User-agent block of robots.txt.
type RobotsGroup struct {
	UserAgents []string
	Allow      []string
	Disallow   []string
}

// RobotsGroups returns the crawler rules in output order.
func RobotsGroups() []RobotsGroup {
	return []RobotsGroup{
		{UserAgents: []string{"*"}, Allow: []string{"/"}, Disallow: append(append([]string{}, privatePrefixes...), "/*.md")},
		{UserAgents: AICrawlers, Allow: []string{"/"}, Disallow: privatePrefixes},
		{UserAgents: []string{"Googlebot", "Bingbot"}, Allow: []string{"/"}, Disallow: privatePrefixes},
	}
}

// Robots renders robots.txt with a sitemap line for site.
func Robots(site Site) string {
	var b strings.Builder
	for i, group := range RobotsGroups() {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, agent := range group.UserAgents {
			b.WriteString("User-agent: " + agent + "\n")
		}
		for _, allow := range group.Allow {
			b.WriteString("Allow: " + allow + "\n")
		}
		for _, disallow := range group.Disallow {
			b.WriteString("Disallow: " + disallow + "\n")
		}
	}
	b.WriteString("\nSitemap: " + site.URL("/sitemap.xml") + "\n")
	return b.String()
}

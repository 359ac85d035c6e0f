package domain

type Site struct {
	Title       string
	Description string
	Footer      string
}

func DefaultSite() Site {
	return Site{
		Title:       "React Blog",
		Description: "Exploring React, TypeScript, and modern web development",
		Footer:      "A demo blog. Sessions live in memory and end when the server restarts.",
	}
}

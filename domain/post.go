package domain

// Post is a published blog article. Posts are loaded once at start-up and
// never change afterwards.
type Post struct {
	ID      int    `yaml:"id"`
	Slug    string `yaml:"slug"`
	Title   string `yaml:"title"`
	Excerpt string `yaml:"excerpt"`
	Author  string `yaml:"author"`
	Date    string `yaml:"date"`
	Content string `yaml:"-"`
}

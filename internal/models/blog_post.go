package models

// BlogPostModel is a marketing blog post as served by /api/blogs.
type BlogPostModel struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Excerpt    *string  `json:"excerpt"`
	Content    string   `json:"content"`
	Author     string   `json:"author"`
	CoverImage *string  `json:"cover_image"`
	Tags       []string `json:"tags"`
}

// DefaultBlogAuthor is used when a stored post has no author.
const DefaultBlogAuthor = "Team"

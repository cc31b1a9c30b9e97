package models

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

const excerptLength = 200

// excerptStripper removes Markdown punctuation from excerpts.
var excerptStripper = strings.NewReplacer(
	"#", "", "*", "", "_", "", "`", "", ">", "", "[", "", "]", "",
)

// Summary projects the post for list responses: the first 200 characters of
// the content, with Markdown punctuation stripped, replace the full body.
func (p *BlogPost) Summary() PostSummary {
	excerpt := p.Content
	if runes := []rune(excerpt); len(runes) > excerptLength {
		excerpt = string(runes[:excerptLength])
	}
	return PostSummary{
		Slug:      p.Slug,
		Title:     p.Title,
		Excerpt:   excerptStripper.Replace(excerpt),
		Author:    p.Author,
		Tags:      p.Tags,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Published: p.Published,
	}
}

// Validate checks that all required creation fields are present.
func (r *CreatePostRequest) Validate() error {
	return validate.Struct(r)
}

// ApplyTo overlays the fields present in the request onto post. Slug and
// CreatedAt are left untouched.
func (r *UpdatePostRequest) ApplyTo(post *BlogPost) {
	if r.Title != nil {
		post.Title = *r.Title
	}
	if r.Content != nil {
		post.Content = *r.Content
	}
	if r.Author != nil {
		post.Author = *r.Author
	}
	if r.Tags != nil {
		post.Tags = *r.Tags
	}
	if r.Published != nil {
		post.Published = *r.Published
	}
}

package interfaces

import (
	"context"
	"strings"
)

// ContentLoader exposes the read side of the site content tree. Implementations
// never fail a call: unreadable or malformed files degrade into placeholder
// records so a single authoring mistake cannot break a build.
type ContentLoader interface {
	// LoadSection returns every published post in the section, sorted and
	// without rendered content.
	LoadSection(ctx context.Context, section string) []Post
	// LoadSectionResults is LoadSection with per-record outcomes attached.
	LoadSectionResults(ctx context.Context, section string) []PostResult
	// LoadPost reads a single post and renders its body into HTML.
	LoadPost(ctx context.Context, section, slug string) Post
	// LoadPostResult is LoadPost with the outcome attached.
	LoadPostResult(ctx context.Context, section, slug string) PostResult
}

// Post is the record produced for every markdown file in a section. Optional
// fields use their zero value (or nil) when absent.
type Post struct {
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Date        string         `json:"date,omitempty"`
	Weight      *float64       `json:"weight,omitempty"`
	Extra       Extra          `json:"extra,omitempty"`
	Params      map[string]any `json:"params,omitempty"`
	Content     string         `json:"content,omitempty"`
}

// HasDate reports whether the post carries a validated date.
func (p Post) HasDate() bool {
	return p.Date != ""
}

// HasWeight reports whether the post declared a weight.
func (p Post) HasWeight() bool {
	return p.Weight != nil
}

// WeightValue returns the declared weight or zero.
func (p Post) WeightValue() float64 {
	if p.Weight == nil {
		return 0
	}
	return *p.Weight
}

// Href resolves the link a listing should use for the post: the external
// extra.link_to when set, otherwise the post's own page within section.
func (p Post) Href(section string) string {
	if link, ok := p.Extra.LinkTo(); ok {
		return link
	}
	section = strings.Trim(section, "/")
	if section == "" {
		return "/" + p.Slug + "/"
	}
	return "/" + section + "/" + p.Slug + "/"
}

// Extra is the free-form extra mapping from frontmatter. Nested mappings are
// always map[string]any.
type Extra map[string]any

const (
	ExtraLinkTo      = "link_to"
	ExtraRemoteImage = "remote_image"
	ExtraLocalImage  = "local_image"
)

// LinkTo returns extra.link_to when it is a non-blank string.
func (e Extra) LinkTo() (string, bool) {
	return e.stringValue(ExtraLinkTo)
}

// RemoteImage returns extra.remote_image when it is a non-blank string.
func (e Extra) RemoteImage() (string, bool) {
	return e.stringValue(ExtraRemoteImage)
}

// LocalImage returns extra.local_image when it is a non-blank string.
func (e Extra) LocalImage() (string, bool) {
	return e.stringValue(ExtraLocalImage)
}

// ImageURL prefers the remote image over the local one.
func (e Extra) ImageURL() (string, bool) {
	if url, ok := e.RemoteImage(); ok {
		return url, true
	}
	return e.LocalImage()
}

func (e Extra) stringValue(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	value, ok := e[key].(string)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Outcome tags how faithfully a Post reflects its source file.
type Outcome string

const (
	// OutcomeLoaded means every field was read as authored.
	OutcomeLoaded Outcome = "loaded"
	// OutcomeDegraded means the record was built but at least one field was
	// dropped or defaulted, or rendering fell back to raw text.
	OutcomeDegraded Outcome = "degraded"
	// OutcomePlaceholder means the source could not be read or parsed and the
	// record only carries the slug and derived title.
	OutcomePlaceholder Outcome = "placeholder"
)

// PostResult pairs a Post with its outcome and the issues encountered while
// building it.
type PostResult struct {
	Post    Post
	Outcome Outcome
	Issues  []error
}

// OK reports whether the post was loaded without any issue.
func (r PostResult) OK() bool {
	return r.Outcome == OutcomeLoaded
}

// Posts strips the outcome metadata from a result slice.
func Posts(results []PostResult) []Post {
	posts := make([]Post, 0, len(results))
	for _, result := range results {
		posts = append(posts, result.Post)
	}
	return posts
}

// WithImages keeps the posts whose extra mapping carries an image URL.
func WithImages(posts []Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, post := range posts {
		if _, ok := post.Extra.ImageURL(); ok {
			out = append(out, post)
		}
	}
	return out
}

package booru

// postsResponse is the envelope of the search endpoint.
type postsResponse struct {
	Posts []Post `json:"posts"`
}

// postResponse is the envelope of the single-post endpoint.
type postResponse struct {
	Post Post `json:"post"`
}

// Post is one image-board post.
type Post struct {
	ID           int64         `json:"id"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
	File         File          `json:"file"`
	Preview      Preview       `json:"preview"`
	Sample       Sample        `json:"sample"`
	Score        Score         `json:"score"`
	Tags         Tags          `json:"tags"`
	Rating       string        `json:"rating"`
	FavCount     int64         `json:"fav_count"`
	Sources      []string      `json:"sources"`
	Pools        []int64       `json:"pools"`
	Relationship Relationships `json:"relationships"`
	Flags        Flags         `json:"flags"`
	UploaderID   int64         `json:"uploader_id"`
	UploaderName string        `json:"uploader_name"`
	Description  string        `json:"description"`
	CommentCount int64         `json:"comment_count"`
	Duration     *float64      `json:"duration"`
}

// File describes the full-size upload.
type File struct {
	Width  int64   `json:"width"`
	Height int64   `json:"height"`
	Ext    string  `json:"ext"`
	Size   int64   `json:"size"`
	MD5    string  `json:"md5"`
	URL    *string `json:"url"`
}

// Preview is the small thumbnail variant.
type Preview struct {
	Width  int64   `json:"width"`
	Height int64   `json:"height"`
	URL    *string `json:"url"`
}

// Sample is the downscaled display variant.
type Sample struct {
	Has    bool    `json:"has"`
	Width  int64   `json:"width"`
	Height int64   `json:"height"`
	URL    *string `json:"url"`
}

// Score is the post's vote tally.
type Score struct {
	Up    int64 `json:"up"`
	Down  int64 `json:"down"`
	Total int64 `json:"total"`
}

// Tags groups the post's tags by category.
type Tags struct {
	General   []string `json:"general"`
	Artist    []string `json:"artist"`
	Copyright []string `json:"copyright"`
	Character []string `json:"character"`
	Species   []string `json:"species"`
	Meta      []string `json:"meta"`
	Lore      []string `json:"lore"`
}

// Flags carries the post's moderation state.
type Flags struct {
	Pending      bool `json:"pending"`
	Flagged      bool `json:"flagged"`
	NoteLocked   bool `json:"note_locked"`
	StatusLocked bool `json:"status_locked"`
	RatingLocked bool `json:"rating_locked"`
	Deleted      bool `json:"deleted"`
}

// Relationships links parent and child posts.
type Relationships struct {
	ParentID          *int64  `json:"parent_id"`
	HasChildren       bool    `json:"has_children"`
	HasActiveChildren bool    `json:"has_active_children"`
	Children          []int64 `json:"children"`
}

// FileURL returns the post's full-size image URL, or "" when the board
// withholds it (login-gated content).
func (p *Post) FileURL() string {
	if p.File.URL == nil {
		return ""
	}
	return *p.File.URL
}

// PreviewURL returns the thumbnail URL, falling back to the full file.
func (p *Post) PreviewURL() string {
	if p.Preview.URL != nil {
		return *p.Preview.URL
	}
	return p.FileURL()
}

// DisplayURL returns the downscaled sample when the board provides one,
// otherwise the full-size file. Samples keep decode and transmit cheap
// for very large uploads.
func (p *Post) DisplayURL() string {
	if p.Sample.Has && p.Sample.URL != nil {
		return *p.Sample.URL
	}
	return p.FileURL()
}

// Artist returns the first artist tag, or "unknown".
func (p *Post) Artist() string {
	if len(p.Tags.Artist) > 0 {
		return p.Tags.Artist[0]
	}
	return "unknown"
}

package domain

import "encoding/json"

// Reference is a citation extracted from generated research. Providers return
// references either as {title, url} objects or as plain strings; both forms
// decode into this type.
type Reference struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
	Text  string `json:"text,omitempty"`
}

// UnmarshalJSON accepts both the object form and the bare-string form.
func (r *Reference) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.Text = s
		return nil
	}

	var obj struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.Title = obj.Title
	r.URL = obj.URL
	return nil
}

// Display returns the normalized display string: "title - url" when both are
// present, then title alone, then url alone, then the plain text.
func (r Reference) Display() string {
	switch {
	case r.Title != "" && r.URL != "":
		return r.Title + " - " + r.URL
	case r.Title != "":
		return r.Title
	case r.URL != "":
		return r.URL
	default:
		return r.Text
	}
}

// Package models defines the core data structures for protected items,
// global settings and access decisions.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// ItemID identifies a content item. It decodes from either a JSON string
// or a JSON number, since host systems send both.
type ItemID string

// UnmarshalJSON accepts "42" as well as 42.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("item id must be a string or a number")
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return errors.New("item id must be an integer")
	}
	*id = ItemID(n.String())
	return nil
}

// Protection is the per-item protection record.
type Protection struct {
	// ItemID is the protected item.
	ItemID string `json:"item_id"`
	// Enabled toggles the password challenge for the item.
	Enabled bool `json:"enabled"`
	// Password is compared verbatim against visitor submissions. May be empty.
	Password string `json:"password"`
}

// Settings holds the global challenge customization.
type Settings struct {
	// BackgroundColor of the challenge form; empty selects the default.
	BackgroundColor string `json:"background_color"`
	// FontColor of the challenge form; empty selects the default.
	FontColor string `json:"font_color"`
	// TermsEnabled turns on the "view terms" popup.
	TermsEnabled bool `json:"terms_enabled"`
	// TermsCopy is the popup body; empty selects the default.
	TermsCopy string `json:"terms_copy"`
}

// Decision is the outcome of an access check.
type Decision int

const (
	// ShowContent means the original content may be rendered.
	ShowContent Decision = iota
	// ShowChallenge means the password challenge replaces the content.
	ShowChallenge
)

func (d Decision) String() string {
	if d == ShowContent {
		return "content"
	}
	return "challenge"
}

// UnlockResult is the outcome of a password submission.
type UnlockResult int

const (
	// Rejected covers every failed submission without saying why.
	Rejected UnlockResult = iota
	// Unlocked means the session may now view the item.
	Unlocked
)

func (r UnlockResult) String() string {
	if r == Unlocked {
		return "unlocked"
	}
	return "rejected"
}

// Challenge describes the password prompt for an external renderer.
type Challenge struct {
	ItemID          string `json:"item_id"`
	Action          string `json:"action"`
	BackgroundColor string `json:"background_color"`
	FontColor       string `json:"font_color"`
	TermsEnabled    bool   `json:"terms_enabled"`
	TermsCopy       string `json:"terms_copy,omitempty"`
}

// RenderResult is either the original content or a challenge.
type RenderResult struct {
	Decision  string     `json:"decision"`
	Content   string     `json:"content,omitempty"`
	Challenge *Challenge `json:"challenge,omitempty"`
}
